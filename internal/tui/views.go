package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prepdesk/prepdesk/internal/model"
)

// View renders the current view mode
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.viewMode {
	case ViewLogin:
		return m.loginView()
	case ViewHelp:
		return m.helpView()
	case ViewProfile, ViewAppointmentForm, ViewVehicleForm,
		ViewPreparerForm, ViewUserForm, ViewBranchForm:
		return m.formView()
	default:
		return m.listView()
	}
}

// loginView renders the centered unauthenticated entry view.
func (m Model) loginView() string {
	title := HeaderTitleStyle.Render("PREPDESK")
	subtitle := HintStyle.Render(" · Sign In")

	var content strings.Builder
	content.WriteString(title + subtitle)
	content.WriteString("\n\n")

	// Branch picker
	branchLabel := FormLabelStyle
	if m.loginFocus == 0 {
		branchLabel = FormLabelFocusedStyle
	}
	content.WriteString(branchLabel.Render("Branch"))
	content.WriteString("\n")

	branches := m.session.Branches()
	if len(branches) == 0 {
		content.WriteString(ListEmptyStyle.Render("  no branches loaded · press r to retry"))
		content.WriteString("\n")
	}
	for i, b := range branches {
		if i == m.branchIdx {
			content.WriteString(ListSelectedStyle.Render("▸ " + b.Name))
		} else {
			content.WriteString(ListRowStyle.Render("  " + b.Name))
		}
		content.WriteString("\n")
	}
	content.WriteString("\n")

	emailLabel := FormLabelStyle
	if m.loginFocus == 1 {
		emailLabel = FormLabelFocusedStyle
	}
	content.WriteString(emailLabel.Render("Email"))
	content.WriteString("\n")
	content.WriteString(m.emailInput.View())
	content.WriteString("\n\n")

	passwordLabel := FormLabelStyle
	if m.loginFocus == 2 {
		passwordLabel = FormLabelFocusedStyle
	}
	content.WriteString(passwordLabel.Render("Password"))
	content.WriteString("\n")
	content.WriteString(m.passwordInput.View())
	content.WriteString("\n\n")

	if m.loggingIn {
		spinner := spinnerFrames[m.spinnerIndex%len(spinnerFrames)]
		content.WriteString(NoticeInfoStyle.Render(spinner + " Signing in..."))
		content.WriteString("\n")
	} else if m.notice != "" {
		content.WriteString(m.noticeStyle().Render(m.notice))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(HintStyle.Render("tab switch field • ↑/↓ pick branch • enter sign in • ctrl+c quit"))

	box := CenterBoxStyle.Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// formView renders the active entity form centered.
func (m Model) formView() string {
	box := FormBoxStyle.Render(m.form.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.Place(m.width, m.height-3, lipgloss.Center, lipgloss.Center, box),
		m.renderStatusBar(),
	)
}

// listView renders the active list with header and status bar.
func (m Model) listView() string {
	var body string
	switch m.viewMode {
	case ViewBoard:
		body = m.renderBoard()
	case ViewDashboard:
		body = m.renderDashboard()
	case ViewDeliveries:
		body = m.renderDeliveries()
	case ViewVehicles:
		body = m.renderVehicles()
	case ViewPreparers:
		body = m.renderPreparers()
	case ViewUsers:
		body = m.renderUsers()
	case ViewBranches:
		body = m.renderBranches()
	}

	bodyHeight := m.height - 3
	bodyBox := lipgloss.NewStyle().
		Height(bodyHeight).
		Width(m.width).
		PaddingLeft(1).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		bodyBox,
		m.renderStatusBar(),
	)
}

// viewTitle returns the display name of the active view.
func (m Model) viewTitle() string {
	switch m.viewMode {
	case ViewBoard:
		return "Appointments"
	case ViewDashboard:
		return "Dashboard"
	case ViewDeliveries:
		return "Deliveries"
	case ViewVehicles:
		return "Vehicles"
	case ViewPreparers:
		return "Preparers"
	case ViewUsers:
		return "Users"
	case ViewBranches:
		return "Branches"
	case ViewProfile:
		return "Profile"
	default:
		return ""
	}
}

// renderHeader renders the header bar
func (m Model) renderHeader() string {
	title := HeaderTitleStyle.Render("PREPDESK")

	var parts []string
	parts = append(parts, title)
	if t := m.viewTitle(); t != "" {
		parts = append(parts, HeaderInfoStyle.Render("· "+t))
	}
	if u := m.session.User(); u != nil {
		who := u.DisplayName()
		if b := u.BranchName(); b != "" {
			who += " @ " + b
		}
		parts = append(parts, HeaderInfoStyle.Render("· "+who))
	}

	return lipgloss.NewStyle().
		PaddingLeft(1).
		Width(m.width).
		Render(strings.Join(parts, " ")) + "\n"
}

// renderStatusBar renders the bottom bar: active notice, otherwise
// key hints.
func (m Model) renderStatusBar() string {
	if m.notice != "" {
		return StatusBarStyle.Render(m.noticeStyle().Render(m.notice))
	}

	var hints []string
	switch m.viewMode {
	case ViewBoard:
		hints = append(hints, "f filter:"+m.filter.label())
		hints = append(hints, "n new", "a advance", "c cancel", "r refresh")
	case ViewDashboard:
		hints = append(hints, "r refresh")
	case ViewDeliveries:
		hints = append(hints, "a delivered", "c cancel", "r refresh")
	case ViewUsers:
		hints = append(hints, "n new", "e edit", "x delete")
	case ViewVehicles, ViewPreparers, ViewBranches:
		hints = append(hints, "n new", "r refresh")
	}
	hints = append(hints, "1-6 views", "? help", "q quit")

	line := strings.Join(hints, " • ")
	if m.loading() {
		spinner := spinnerFrames[m.spinnerIndex%len(spinnerFrames)]
		line = spinner + " " + line
	}
	return StatusBarStyle.Render(line)
}

func (m Model) loading() bool {
	if m.viewMode == ViewBoard {
		return m.loadingBoard
	}
	return m.loadingList
}

func (m Model) noticeStyle() lipgloss.Style {
	switch m.noticeLevel {
	case noticeSuccess:
		return NoticeSuccessStyle
	case noticeError:
		return NoticeErrorStyle
	default:
		return NoticeInfoStyle
	}
}

// renderBoard renders the appointment board rows.
func (m Model) renderBoard() string {
	var b strings.Builder
	b.WriteString(ListTitleStyle.Render("APPOINTMENTS · " + strings.ToUpper(m.filter.label())))
	b.WriteString("\n\n")

	if len(m.appointments) == 0 {
		b.WriteString(ListEmptyStyle.Render(m.emptyText("No appointments for this filter.")))
		return b.String()
	}

	for i, a := range m.appointments {
		prio := fmt.Sprintf("%-8s", a.PriorityLabel())
		if i != m.boardIdx {
			prio = priorityStyle(a.Priority).Render(prio)
		}
		row := fmt.Sprintf("%s %-10s %-5s  %-20s %-24s %s %s",
			a.StatusIcon(),
			a.AppointmentDate,
			shortTime(a.Time),
			truncate(a.Client, 20),
			truncate(a.VehicleLabel(), 24),
			prio,
			a.StatusLabel(),
		)
		b.WriteString(m.renderRow(row, i == m.boardIdx, statusStyle(a.Status)))
	}
	return b.String()
}

// renderDashboard renders today's branch summary: counts per status
// plus the scheduled work, refreshed on the poll cycle.
func (m Model) renderDashboard() string {
	var b strings.Builder
	title := "DASHBOARD"
	if u := m.session.User(); u != nil && u.BranchName() != "" {
		title += " · " + strings.ToUpper(u.BranchName())
	}
	b.WriteString(ListTitleStyle.Render(title))
	b.WriteString("\n\n")

	if len(m.dashboard) == 0 {
		b.WriteString(ListEmptyStyle.Render(m.emptyText("No appointments today.")))
		return b.String()
	}

	var scheduled, inProgress, completed, cancelled int
	for _, a := range m.dashboard {
		switch a.Status {
		case model.StatusScheduled:
			scheduled++
		case model.StatusInProgress:
			inProgress++
		case model.StatusCompleted:
			completed++
		case model.StatusCancelled:
			cancelled++
		}
	}

	counts := []string{
		StatusScheduledStyle.Render(fmt.Sprintf("○ %d scheduled", scheduled)),
		StatusInProgressStyle.Render(fmt.Sprintf("● %d in progress", inProgress)),
		StatusCompletedStyle.Render(fmt.Sprintf("✓ %d completed", completed)),
		StatusCancelledStyle.Render(fmt.Sprintf("⊘ %d cancelled", cancelled)),
	}
	b.WriteString("  " + strings.Join(counts, "   "))
	b.WriteString("\n\n")

	for _, a := range m.dashboard {
		row := fmt.Sprintf("%s %-5s  %-20s %-24s %s",
			a.StatusIcon(),
			shortTime(a.Time),
			truncate(a.Client, 20),
			truncate(a.VehicleLabel(), 24),
			a.StatusLabel(),
		)
		b.WriteString(statusStyle(a.Status).Render("  "+row) + "\n")
	}
	return b.String()
}

// renderDeliveries renders the delivery board rows.
func (m Model) renderDeliveries() string {
	var b strings.Builder
	b.WriteString(ListTitleStyle.Render("DELIVERIES"))
	b.WriteString("\n\n")

	if len(m.deliveries) == 0 {
		b.WriteString(ListEmptyStyle.Render(m.emptyText("No deliveries.")))
		return b.String()
	}

	for i, d := range m.deliveries {
		client, vehicle := "", ""
		if d.Appointment != nil {
			client = d.Appointment.Client
			vehicle = d.Appointment.VehicleLabel()
		}
		row := fmt.Sprintf("%s %-20s %-24s %s",
			d.StatusIcon(),
			truncate(client, 20),
			truncate(vehicle, 24),
			d.StatusLabel(),
		)
		b.WriteString(m.renderRow(row, i == m.deliveryIdx, deliveryStatusStyle(d.Status)))
	}
	return b.String()
}

func (m Model) renderVehicles() string {
	var b strings.Builder
	b.WriteString(ListTitleStyle.Render("VEHICLES"))
	b.WriteString("\n\n")

	if len(m.vehicles) == 0 {
		b.WriteString(ListEmptyStyle.Render(m.emptyText("No vehicles registered.")))
		return b.String()
	}

	for i, v := range m.vehicles {
		row := fmt.Sprintf("%-24s %-9s %s",
			truncate(v.Model, 24), v.Color, v.Chassis)
		b.WriteString(m.renderRow(row, i == m.vehicleIdx, ListRowStyle))
	}
	return b.String()
}

func (m Model) renderPreparers() string {
	var b strings.Builder
	b.WriteString(ListTitleStyle.Render("PREPARERS"))
	b.WriteString("\n\n")

	if len(m.preparers) == 0 {
		b.WriteString(ListEmptyStyle.Render(m.emptyText("No preparers.")))
		return b.String()
	}

	for i, p := range m.preparers {
		row := fmt.Sprintf("%-24s %-12s %s",
			truncate(p.Name, 24), p.EmployeeID, truncate(p.Email, 30))
		b.WriteString(m.renderRow(row, i == m.preparerIdx, ListRowStyle))
	}
	return b.String()
}

func (m Model) renderUsers() string {
	var b strings.Builder
	b.WriteString(ListTitleStyle.Render("USERS"))
	b.WriteString("\n\n")

	if len(m.users) == 0 {
		b.WriteString(ListEmptyStyle.Render(m.emptyText("No users.")))
		return b.String()
	}

	for i, u := range m.users {
		role := ""
		if u.IsSupervisor {
			role = "supervisor"
		}
		row := fmt.Sprintf("%-16s %-24s %-28s %s",
			truncate(u.Username, 16),
			truncate(u.DisplayName(), 24),
			truncate(u.Email, 28),
			role,
		)
		b.WriteString(m.renderRow(row, i == m.userIdx, ListRowStyle))
	}
	return b.String()
}

func (m Model) renderBranches() string {
	var b strings.Builder
	b.WriteString(ListTitleStyle.Render("BRANCHES"))
	b.WriteString("\n\n")

	branches := m.session.Branches()
	if len(branches) == 0 {
		b.WriteString(ListEmptyStyle.Render(m.emptyText("No branches.")))
		return b.String()
	}

	for i, branch := range branches {
		row := fmt.Sprintf("%-28s %s", truncate(branch.Name, 28), branch.CNPJ)
		b.WriteString(m.renderRow(row, i == m.branchIdx2, ListRowStyle))
	}
	return b.String()
}

func (m Model) renderRow(row string, selected bool, style lipgloss.Style) string {
	if selected {
		return ListSelectedStyle.Render("▸ "+row) + "\n"
	}
	return style.Render("  "+row) + "\n"
}

func (m Model) emptyText(fallback string) string {
	if m.loading() {
		spinner := spinnerFrames[m.spinnerIndex%len(spinnerFrames)]
		return spinner + " Loading..."
	}
	return fallback
}

// helpView renders the key binding overlay.
func (m Model) helpView() string {
	var content strings.Builder
	content.WriteString(HelpTitleStyle.Render("Key Bindings"))
	content.WriteString("\n\n")

	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			content.WriteString(fmt.Sprintf("%s  %s\n",
				HelpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)),
				HelpDescStyle.Render(h.Desc)))
		}
		content.WriteString("\n")
	}
	content.WriteString(HintStyle.Render("esc close"))

	box := HelpStyle.Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// truncate shortens s to max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

// shortTime trims seconds off an HH:MM:SS time value.
func shortTime(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}
