package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/prepdesk/prepdesk/internal/model"
)

// LoginRequest is the credential-exchange payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Branch   int    `json:"branch"`
}

// LoginResponse is the credential-exchange reply.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login exchanges credentials for a bearer token and profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the profile of the currently authenticated user.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me/", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate is a partial profile edit. Empty fields are left
// untouched by the server.
type ProfileUpdate struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
}

// UpdateProfile submits a partial profile edit and returns the
// server's updated profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile/", nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListBranches returns all branches. Called unauthenticated from the
// login view to populate the branch picker.
func (c *Client) ListBranches(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	if err := c.do(ctx, http.MethodGet, "/api/branches/", nil, nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// BranchInput is the create payload for a branch.
type BranchInput struct {
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}

// CreateBranch creates a branch.
func (c *Client) CreateBranch(ctx context.Context, input BranchInput) (*model.Branch, error) {
	var branch model.Branch
	if err := c.do(ctx, http.MethodPost, "/api/branches/", nil, input, &branch); err != nil {
		return nil, err
	}
	return &branch, nil
}

// ListUsers returns all users.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/api/users/", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserInput is the create/update payload for a user and its profile.
type UserInput struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Password     string `json:"password,omitempty"`
	EmployeeID   string `json:"employee_id,omitempty"`
	Branch       int    `json:"branch,omitempty"`
	IsSupervisor bool   `json:"is_supervisor"`
}

// CreateUser creates a user with its profile.
func (c *Client) CreateUser(ctx context.Context, input UserInput) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/api/users/", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user.
func (c *Client) UpdateUser(ctx context.Context, id int, input UserInput) (*model.User, error) {
	var user model.User
	path := fmt.Sprintf("/api/users/%d/", id)
	if err := c.do(ctx, http.MethodPut, path, nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d/", id), nil, nil, nil)
}

// ListVehicles returns all registered vehicles.
func (c *Client) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := c.do(ctx, http.MethodGet, "/api/vehicles/", nil, nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// VehicleInput is the create payload for a vehicle.
type VehicleInput struct {
	Model   string `json:"model"`
	Color   string `json:"color"`
	Chassis string `json:"chassi"`
}

// CreateVehicle registers a vehicle.
func (c *Client) CreateVehicle(ctx context.Context, input VehicleInput) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := c.do(ctx, http.MethodPost, "/api/vehicles/", nil, input, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListPreparers returns all preparers.
func (c *Client) ListPreparers(ctx context.Context) ([]model.Preparer, error) {
	var preparers []model.Preparer
	if err := c.do(ctx, http.MethodGet, "/api/preparers/", nil, nil, &preparers); err != nil {
		return nil, err
	}
	return preparers, nil
}

// PreparerInput is the create payload for a preparer.
type PreparerInput struct {
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Branch     int    `json:"branch"`
}

// CreatePreparer creates a preparer.
func (c *Client) CreatePreparer(ctx context.Context, input PreparerInput) (*model.Preparer, error) {
	var preparer model.Preparer
	if err := c.do(ctx, http.MethodPost, "/api/preparers/", nil, input, &preparer); err != nil {
		return nil, err
	}
	return &preparer, nil
}

// AppointmentFilter scopes an appointment list query. Zero fields are
// omitted from the query string.
type AppointmentFilter struct {
	Date      string
	DateStart string
	DateEnd   string
	Status    model.AppointmentStatus
	Branch    int
}

func (f AppointmentFilter) values() url.Values {
	q := url.Values{}
	if f.Date != "" {
		q.Set("date", f.Date)
	}
	if f.DateStart != "" {
		q.Set("date_start", f.DateStart)
	}
	if f.DateEnd != "" {
		q.Set("date_end", f.DateEnd)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Branch != 0 {
		q.Set("branch", strconv.Itoa(f.Branch))
	}
	return q
}

// ListAppointments returns appointments matching the filter.
func (c *Client) ListAppointments(ctx context.Context, filter AppointmentFilter) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments/", filter.values(), nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// AppointmentInput is the create payload for an appointment.
type AppointmentInput struct {
	AppointmentDate string                    `json:"appointment_date"`
	Time            string                    `json:"time"`
	Seller          string                    `json:"seller"`
	Client          string                    `json:"client"`
	ClientPhone     string                    `json:"client_phone,omitempty"`
	ClientEmail     string                    `json:"client_email,omitempty"`
	VehicleID       int                       `json:"vehicle_id"`
	BranchID        int                       `json:"branch_id"`
	PreparerID      *int                      `json:"preparer_id,omitempty"`
	Priority        model.AppointmentPriority `json:"priority,omitempty"`
	Notes           string                    `json:"notes,omitempty"`
}

// CreateAppointment schedules an appointment.
func (c *Client) CreateAppointment(ctx context.Context, input AppointmentInput) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments/", nil, input, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// UpdateAppointmentStatus advances an appointment to the given status.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int, status model.AppointmentStatus) (*model.Appointment, error) {
	payload := struct {
		Status model.AppointmentStatus `json:"status"`
	}{Status: status}

	var appointment model.Appointment
	path := fmt.Sprintf("/api/appointments/%d/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, payload, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// ListDeliveries returns all deliveries. Delivery routes are not
// mounted under /api on the backend.
func (c *Client) ListDeliveries(ctx context.Context) ([]model.Delivery, error) {
	var deliveries []model.Delivery
	if err := c.do(ctx, http.MethodGet, "/deliveries/", nil, nil, &deliveries); err != nil {
		return nil, err
	}
	return deliveries, nil
}

// UpdateDeliveryStatus marks a delivery delivered or cancelled.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, id int, status model.DeliveryStatus) (*model.Delivery, error) {
	payload := struct {
		Status model.DeliveryStatus `json:"status"`
	}{Status: status}

	var delivery model.Delivery
	path := fmt.Sprintf("/deliveries/%d/", id)
	if err := c.do(ctx, http.MethodPatch, path, nil, payload, &delivery); err != nil {
		return nil, err
	}
	return &delivery, nil
}
