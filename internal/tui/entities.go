package tui

import (
	"context"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prepdesk/prepdesk/internal/api"
	"github.com/prepdesk/prepdesk/internal/model"
)

// Field order inside each entity form. Submit code indexes drafts by
// these positions.
const (
	branchFieldName = iota
	branchFieldCNPJ
)

const (
	vehicleFieldModel = iota
	vehicleFieldColor
	vehicleFieldChassis
)

const (
	preparerFieldName = iota
	preparerFieldEmployeeID
	preparerFieldEmail
)

const (
	userFieldUsername = iota
	userFieldEmail
	userFieldFirstName
	userFieldLastName
	userFieldPassword
	userFieldEmployeeID
	userFieldSupervisor
)

const (
	apptFieldDate = iota
	apptFieldTime
	apptFieldClient
	apptFieldPhone
	apptFieldSeller
	apptFieldVehicleID
	apptFieldPriority
	apptFieldNotes
)

const (
	profileFieldFirstName = iota
	profileFieldLastName
	profileFieldEmail
	profileFieldPassword
)

func (m *Model) openBranchForm() {
	m.formReturn = m.viewMode
	m.form = newEntityForm("New Branch",
		newFormField("Name", "", true),
		newFormField("CNPJ", "digits only", true),
	)
	m.viewMode = ViewBranchForm
}

func (m *Model) openVehicleForm() {
	m.formReturn = m.viewMode
	m.form = newEntityForm("New Vehicle",
		newFormField("Model", "", true),
		newFormField("Color", "#RRGGBB", true),
		newFormField("Chassis", "", true),
	)
	m.viewMode = ViewVehicleForm
}

func (m *Model) openPreparerForm() {
	m.formReturn = m.viewMode
	m.form = newEntityForm("New Preparer",
		newFormField("Name", "", true),
		newFormField("Employee ID", "", true),
		newFormField("Email", "", true),
	)
	m.viewMode = ViewPreparerForm
}

// openUserForm opens the user form; a non-nil user pre-fills the
// draft for editing.
func (m *Model) openUserForm(u *model.User) {
	m.formReturn = m.viewMode
	title := "New User"
	passwordRequired := true
	if u != nil {
		title = "Edit User"
		passwordRequired = false
	}

	m.form = newEntityForm(title,
		newFormField("Username", "", true),
		newFormField("Email", "", true),
		newFormField("First name", "", true),
		newFormField("Last name", "", true),
		newPasswordField("Password", passwordRequired),
		newFormField("Employee ID", "", true),
		newFormField("Supervisor", "y/n", false),
	)

	if u != nil {
		m.editingUserID = u.ID
		m.form.SetValue(userFieldUsername, u.Username)
		m.form.SetValue(userFieldEmail, u.Email)
		m.form.SetValue(userFieldFirstName, u.FirstName)
		m.form.SetValue(userFieldLastName, u.LastName)
		m.form.SetValue(userFieldEmployeeID, u.EmployeeID)
		if u.IsSupervisor {
			m.form.SetValue(userFieldSupervisor, "y")
		}
	} else {
		m.editingUserID = 0
	}

	m.viewMode = ViewUserForm
}

func (m *Model) openAppointmentForm() {
	m.formReturn = m.viewMode
	m.form = newEntityForm("New Appointment",
		newFormField("Date", "YYYY-MM-DD", true),
		newFormField("Time", "HH:MM", true),
		newFormField("Client", "", true),
		newFormField("Client phone", "", false),
		newFormField("Seller", "", true),
		newFormField("Vehicle ID", "numeric id", true),
		newFormField("Priority", "high / medium / low", false),
		newFormField("Notes", "", false),
	)
	m.viewMode = ViewAppointmentForm
}

func (m *Model) openProfileForm() {
	m.formReturn = m.viewMode
	m.form = newEntityForm("Edit Profile",
		newFormField("First name", "", false),
		newFormField("Last name", "", false),
		newFormField("Email", "", false),
		newPasswordField("New password", false),
	)

	if u := m.session.User(); u != nil {
		m.form.SetValue(profileFieldFirstName, u.FirstName)
		m.form.SetValue(profileFieldLastName, u.LastName)
		m.form.SetValue(profileFieldEmail, u.Email)
	}

	m.viewMode = ViewProfile
}

// submitForm validates the draft locally (presence only) and issues
// the matching create/update request.
func (m *Model) submitForm() tea.Cmd {
	if missing := m.form.MissingField(); missing != "" {
		return m.showNotice(missing+" is required", noticeError)
	}

	switch m.viewMode {
	case ViewBranchForm:
		return m.submitBranchCmd()
	case ViewVehicleForm:
		return m.submitVehicleCmd()
	case ViewPreparerForm:
		return m.submitPreparerCmd()
	case ViewUserForm:
		return m.submitUserCmd()
	case ViewAppointmentForm:
		return m.submitAppointmentCmd()
	case ViewProfile:
		return m.submitProfileCmd()
	}
	return nil
}

// userBranchID returns the logged-in user's branch, the default scope
// for created records.
func (m Model) userBranchID() int {
	u := m.session.User()
	if u == nil || u.Branch == nil {
		return 0
	}
	return u.Branch.ID
}

func (m Model) submitBranchCmd() tea.Cmd {
	client := m.client
	input := api.BranchInput{
		Name: m.form.Value(branchFieldName),
		CNPJ: m.form.Value(branchFieldCNPJ),
	}
	return func() tea.Msg {
		_, err := client.CreateBranch(context.Background(), input)
		return formSubmittedMsg{entity: "Branch", err: err}
	}
}

func (m Model) submitVehicleCmd() tea.Cmd {
	client := m.client
	input := api.VehicleInput{
		Model:   m.form.Value(vehicleFieldModel),
		Color:   m.form.Value(vehicleFieldColor),
		Chassis: m.form.Value(vehicleFieldChassis),
	}
	return func() tea.Msg {
		_, err := client.CreateVehicle(context.Background(), input)
		return formSubmittedMsg{entity: "Vehicle", err: err}
	}
}

func (m Model) submitPreparerCmd() tea.Cmd {
	client := m.client
	input := api.PreparerInput{
		Name:       m.form.Value(preparerFieldName),
		EmployeeID: m.form.Value(preparerFieldEmployeeID),
		Email:      m.form.Value(preparerFieldEmail),
		Branch:     m.userBranchID(),
	}
	return func() tea.Msg {
		_, err := client.CreatePreparer(context.Background(), input)
		return formSubmittedMsg{entity: "Preparer", err: err}
	}
}

func (m Model) submitUserCmd() tea.Cmd {
	client := m.client
	input := api.UserInput{
		Username:     m.form.Value(userFieldUsername),
		Email:        m.form.Value(userFieldEmail),
		FirstName:    m.form.Value(userFieldFirstName),
		LastName:     m.form.Value(userFieldLastName),
		Password:     m.form.Value(userFieldPassword),
		EmployeeID:   m.form.Value(userFieldEmployeeID),
		Branch:       m.userBranchID(),
		IsSupervisor: parseYes(m.form.Value(userFieldSupervisor)),
	}
	id := m.editingUserID

	return func() tea.Msg {
		var err error
		if id != 0 {
			_, err = client.UpdateUser(context.Background(), id, input)
		} else {
			_, err = client.CreateUser(context.Background(), input)
		}
		return formSubmittedMsg{entity: "User", err: err}
	}
}

func (m *Model) submitAppointmentCmd() tea.Cmd {
	vehicleID, err := strconv.Atoi(m.form.Value(apptFieldVehicleID))
	if err != nil {
		return m.showNotice("Vehicle ID must be a number", noticeError)
	}

	client := m.client
	input := api.AppointmentInput{
		AppointmentDate: m.form.Value(apptFieldDate),
		Time:            m.form.Value(apptFieldTime),
		Client:          m.form.Value(apptFieldClient),
		ClientPhone:     m.form.Value(apptFieldPhone),
		Seller:          m.form.Value(apptFieldSeller),
		VehicleID:       vehicleID,
		BranchID:        m.userBranchID(),
		Priority:        parsePriority(m.form.Value(apptFieldPriority)),
		Notes:           m.form.Value(apptFieldNotes),
	}
	return func() tea.Msg {
		_, err := client.CreateAppointment(context.Background(), input)
		return formSubmittedMsg{entity: "Appointment", err: err}
	}
}

func (m Model) submitProfileCmd() tea.Cmd {
	sess := m.session
	update := api.ProfileUpdate{
		FirstName: m.form.Value(profileFieldFirstName),
		LastName:  m.form.Value(profileFieldLastName),
		Email:     m.form.Value(profileFieldEmail),
		Password:  m.form.Value(profileFieldPassword),
	}
	return func() tea.Msg {
		err := sess.UpdateProfile(context.Background(), update)
		return profileSavedMsg{err: err}
	}
}

// parseYes interprets a yes/no draft field.
func parseYes(v string) bool {
	switch strings.ToLower(v) {
	case "y", "yes", "true", "1":
		return true
	default:
		return false
	}
}

// parsePriority maps a priority draft onto the wire value, defaulting
// to medium.
func parsePriority(v string) model.AppointmentPriority {
	switch strings.ToLower(v) {
	case "high", "h":
		return model.PriorityHigh
	case "low", "l":
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}
