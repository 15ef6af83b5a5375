package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prepdesk/prepdesk/internal/model"
)

// handleKey routes key presses to the active view's handler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewHelp:
		return m.handleHelpKey(msg)
	case ViewProfile, ViewAppointmentForm, ViewVehicleForm,
		ViewPreparerForm, ViewUserForm, ViewBranchForm:
		return m.handleFormKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// handleLoginKey drives the login view: branch picker, email and
// password fields, submit on enter.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Tab):
		m.loginFocus = (m.loginFocus + 1) % 3
		m.syncLoginFocus()
		return m, nil

	case msg.String() == "shift+tab":
		m.loginFocus = (m.loginFocus + 2) % 3
		m.syncLoginFocus()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.loggingIn {
			return m, nil
		}
		branchID := 0
		if branches := m.session.Branches(); len(branches) > 0 {
			branchID = branches[m.branchIdx].ID
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		m.loggingIn = true
		return m, m.loginCmd(email, password, branchID)
	}

	// Branch picker owns up/down while focused.
	if m.loginFocus == 0 {
		branches := m.session.Branches()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.branchIdx > 0 {
				m.branchIdx--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.branchIdx < len(branches)-1 {
				m.branchIdx++
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadBranchesCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.loginFocus == 1 {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) syncLoginFocus() {
	m.emailInput.Blur()
	m.passwordInput.Blur()
	switch m.loginFocus {
	case 1:
		m.emailInput.Focus()
	case 2:
		m.passwordInput.Focus()
	}
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.viewMode = m.formReturn
		return m, nil
	}
	return m, nil
}

// handleFormKey drives the active entity form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.editingUserID = 0
		return m, m.switchView(m.formReturn)

	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Down):
		m.form.Next()
		return m, nil

	case msg.String() == "shift+tab", key.Matches(msg, m.keys.Up):
		m.form.Prev()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		return m, m.submitForm()
	}

	return m, m.form.Update(msg)
}

// handleListKey drives all list views.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.formReturn = m.viewMode
		m.viewMode = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Logout):
		m.session.Logout()
		m.pollGen++
		m.viewMode = ViewLogin
		notice := m.showNotice("Logged out", noticeInfo)
		return m, tea.Batch(notice, m.loadBranchesCmd())

	case key.Matches(msg, m.keys.Board):
		return m, m.switchView(ViewBoard)

	case key.Matches(msg, m.keys.Dashboard):
		return m, m.switchView(ViewDashboard)

	case key.Matches(msg, m.keys.Deliveries):
		return m, m.switchView(ViewDeliveries)

	case key.Matches(msg, m.keys.Vehicles):
		return m, m.switchView(ViewVehicles)

	case key.Matches(msg, m.keys.Preparers):
		return m, m.switchView(ViewPreparers)

	case key.Matches(msg, m.keys.Users):
		if !m.supervisor() {
			return m, m.showNotice("User management requires supervisor access", noticeError)
		}
		return m, m.switchView(ViewUsers)

	case key.Matches(msg, m.keys.Branches):
		if !m.supervisor() {
			return m, m.showNotice("Branch management requires supervisor access", noticeError)
		}
		return m, m.switchView(ViewBranches)

	case key.Matches(msg, m.keys.Profile):
		m.openProfileForm()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCurrent()

	case key.Matches(msg, m.keys.Filter):
		if m.viewMode != ViewBoard {
			return m, nil
		}
		// A filter change orphans the running poll cycle and starts
		// a fresh one immediately.
		m.filter = (m.filter + 1) % 3
		m.pollGen++
		m.loadingBoard = true
		m.boardIdx = 0
		return m, tea.Batch(m.fetchAppointmentsCmd(m.pollGen), m.pollTickCmd(m.pollGen))

	case key.Matches(msg, m.keys.New):
		return m, m.openFormForCurrent()

	case key.Matches(msg, m.keys.Edit):
		if m.viewMode == ViewUsers && m.userIdx < len(m.users) {
			m.openUserForm(&m.users[m.userIdx])
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.viewMode == ViewUsers && m.userIdx < len(m.users) {
			return m, m.deleteUserCmd(m.users[m.userIdx].ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Advance):
		return m, m.advanceSelected()

	case key.Matches(msg, m.keys.Cancel):
		return m, m.cancelSelected()

	case key.Matches(msg, m.keys.Escape):
		if m.viewMode != ViewBoard {
			return m, m.switchView(ViewBoard)
		}
		return m, nil
	}

	return m, nil
}

// moveSelection moves the cursor of the current list view.
func (m *Model) moveSelection(delta int) {
	move := func(idx *int, n int) {
		*idx += delta
		if *idx < 0 {
			*idx = 0
		}
		if *idx >= n && n > 0 {
			*idx = n - 1
		}
		if n == 0 {
			*idx = 0
		}
	}

	switch m.viewMode {
	case ViewBoard:
		move(&m.boardIdx, len(m.appointments))
	case ViewDeliveries:
		move(&m.deliveryIdx, len(m.deliveries))
	case ViewVehicles:
		move(&m.vehicleIdx, len(m.vehicles))
	case ViewPreparers:
		move(&m.preparerIdx, len(m.preparers))
	case ViewUsers:
		move(&m.userIdx, len(m.users))
	case ViewBranches:
		move(&m.branchIdx2, len(m.session.Branches()))
	}
}

// refreshCurrent re-issues the current view's fetch without touching
// the poll cycle.
func (m *Model) refreshCurrent() tea.Cmd {
	switch m.viewMode {
	case ViewBoard:
		m.loadingBoard = true
		return m.fetchAppointmentsCmd(m.pollGen)
	case ViewDashboard:
		m.loadingList = true
		return m.fetchDashboardCmd(m.pollGen)
	case ViewDeliveries:
		m.loadingList = true
		return m.fetchDeliveriesCmd(m.pollGen)
	case ViewVehicles:
		m.loadingList = true
		return m.fetchVehiclesCmd()
	case ViewPreparers:
		m.loadingList = true
		return m.fetchPreparersCmd()
	case ViewUsers:
		m.loadingList = true
		return m.fetchUsersCmd()
	case ViewBranches:
		m.loadingList = true
		return m.loadBranchesCmd()
	}
	return nil
}

// openFormForCurrent opens the create form matching the active list.
func (m *Model) openFormForCurrent() tea.Cmd {
	switch m.viewMode {
	case ViewBoard:
		m.openAppointmentForm()
	case ViewVehicles:
		m.openVehicleForm()
	case ViewPreparers:
		m.openPreparerForm()
	case ViewUsers:
		m.openUserForm(nil)
	case ViewBranches:
		m.openBranchForm()
	}
	return nil
}

// advanceSelected moves the selected record to its next status.
func (m *Model) advanceSelected() tea.Cmd {
	switch m.viewMode {
	case ViewBoard:
		if m.boardIdx >= len(m.appointments) {
			return nil
		}
		a := m.appointments[m.boardIdx]
		next := a.NextStatus()
		if next == a.Status {
			return m.showNotice("Appointment is already "+a.StatusLabel(), noticeInfo)
		}
		return m.advanceAppointmentCmd(a.ID, next)

	case ViewDeliveries:
		if m.deliveryIdx >= len(m.deliveries) {
			return nil
		}
		d := m.deliveries[m.deliveryIdx]
		if d.Status != model.DeliveryPending {
			return m.showNotice("Delivery is already "+d.StatusLabel(), noticeInfo)
		}
		return m.updateDeliveryCmd(d.ID, model.DeliveryDelivered)
	}
	return nil
}

// cancelSelected cancels the selected appointment or delivery.
func (m *Model) cancelSelected() tea.Cmd {
	switch m.viewMode {
	case ViewBoard:
		if m.boardIdx >= len(m.appointments) {
			return nil
		}
		a := m.appointments[m.boardIdx]
		if a.Status == model.StatusCancelled || a.Status == model.StatusCompleted {
			return m.showNotice("Appointment is already "+a.StatusLabel(), noticeInfo)
		}
		return m.advanceAppointmentCmd(a.ID, model.StatusCancelled)

	case ViewDeliveries:
		if m.deliveryIdx >= len(m.deliveries) {
			return nil
		}
		d := m.deliveries[m.deliveryIdx]
		if d.Status != model.DeliveryPending {
			return m.showNotice("Delivery is already "+d.StatusLabel(), noticeInfo)
		}
		return m.updateDeliveryCmd(d.ID, model.DeliveryCancelled)
	}
	return nil
}
