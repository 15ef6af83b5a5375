package model

// User is the authenticated actor's profile as returned by the auth
// endpoints. List endpoints return the same shape without the profile
// fields (branch, employee id, supervisor flag).
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	EmployeeID   string     `json:"employee_id,omitempty"`
	IsSupervisor bool       `json:"is_supervisor,omitempty"`
	Branch       *BranchRef `json:"branch,omitempty"`
}

// DisplayName returns the user's full name, falling back to the
// username when no name is set.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}

// BranchName returns the affiliated branch name, or empty when the
// record carries no branch.
func (u User) BranchName() string {
	if u.Branch == nil {
		return ""
	}
	return u.Branch.Name
}
