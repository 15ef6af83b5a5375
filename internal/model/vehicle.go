package model

// Vehicle is a vehicle registered for preparation. The chassis field
// keeps the backend's wire name.
type Vehicle struct {
	ID        int    `json:"id"`
	Model     string `json:"model"`
	Color     string `json:"color"`
	Chassis   string `json:"chassi"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Preparer is a vehicle preparer attached to a branch.
type Preparer struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Branch     int    `json:"branch,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}
