package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/prepdesk/prepdesk/internal/api"
	"github.com/prepdesk/prepdesk/internal/model"
	"github.com/prepdesk/prepdesk/internal/session"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewLogin ViewMode = iota
	ViewBoard
	ViewDashboard
	ViewDeliveries
	ViewVehicles
	ViewPreparers
	ViewUsers
	ViewBranches
	ViewProfile
	ViewAppointmentForm
	ViewVehicleForm
	ViewPreparerForm
	ViewUserForm
	ViewBranchForm
	ViewHelp
)

// boardFilter scopes the appointment board query
type boardFilter int

const (
	filterToday boardFilter = iota
	filterWeek
	filterAll
)

func (f boardFilter) label() string {
	switch f {
	case filterToday:
		return "today"
	case filterWeek:
		return "week"
	default:
		return "all"
	}
}

// apiFilter maps the board filter to query parameters.
func (f boardFilter) apiFilter(now time.Time) api.AppointmentFilter {
	switch f {
	case filterToday:
		return api.AppointmentFilter{Date: now.Format("2006-01-02")}
	case filterWeek:
		return api.AppointmentFilter{
			DateStart: now.Format("2006-01-02"),
			DateEnd:   now.AddDate(0, 0, 7).Format("2006-01-02"),
		}
	default:
		return api.AppointmentFilter{}
	}
}

// noticeLevel classifies a transient status-bar notice
type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

const noticeTTL = 4 * time.Second

// Messages
type authCheckedMsg struct{}

type loginResultMsg struct {
	err error
}

type branchesLoadedMsg struct {
	err error
}

// appointmentsLoadedMsg carries the poll generation that issued the
// fetch so stale results can be discarded.
type appointmentsLoadedMsg struct {
	gen          int
	appointments []model.Appointment
	err          error
}

type dashboardLoadedMsg struct {
	gen          int
	appointments []model.Appointment
	err          error
}

type deliveriesLoadedMsg struct {
	gen        int
	deliveries []model.Delivery
	err        error
}

type vehiclesLoadedMsg struct {
	vehicles []model.Vehicle
	err      error
}

type preparersLoadedMsg struct {
	preparers []model.Preparer
	err       error
}

type usersLoadedMsg struct {
	users []model.User
	err   error
}

type formSubmittedMsg struct {
	entity string
	err    error
}

type appointmentUpdatedMsg struct {
	err error
}

type deliveryUpdatedMsg struct {
	err error
}

type userDeletedMsg struct {
	err error
}

type profileSavedMsg struct {
	err error
}

// pollTickMsg fires the next poll for the generation that scheduled
// it; ticks from a cancelled generation are ignored.
type pollTickMsg struct {
	gen int
}

type noticeExpiredMsg struct {
	seq int
}

// sessionInvalidatedMsg is delivered when the API client saw a 401.
type sessionInvalidatedMsg struct{}

type spinnerTickMsg struct{}

// Spinner animation frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	// Dependencies
	client  *api.Client
	session *session.Store
	logger  *zap.Logger
	keys    KeyMap

	pollInterval time.Duration

	// View state
	viewMode ViewMode

	// Login view
	emailInput    textinput.Model
	passwordInput textinput.Model
	loginFocus    int // 0 branch picker, 1 email, 2 password
	branchIdx     int
	loggingIn     bool

	// Appointment board
	appointments []model.Appointment
	filter       boardFilter
	boardIdx     int
	loadingBoard bool

	// Poll ownership: bumping the generation cancels outstanding
	// ticks and orphans in-flight fetches.
	pollGen int

	// Dashboard summary (today's appointments for the user's branch)
	dashboard []model.Appointment

	// Deliveries
	deliveries  []model.Delivery
	deliveryIdx int

	// Management lists
	vehicles    []model.Vehicle
	preparers   []model.Preparer
	users       []model.User
	vehicleIdx  int
	preparerIdx int
	userIdx     int
	branchIdx2  int
	loadingList bool

	// Active entity form
	form          entityForm
	formReturn    ViewMode
	editingUserID int // 0 means create

	// Transient notice
	notice      string
	noticeLevel noticeLevel
	noticeSeq   int

	spinnerIndex int
}

// NewRootModel creates the root model. All collaborators are injected;
// the model owns no global state.
func NewRootModel(client *api.Client, sess *session.Store, pollInterval time.Duration, logger *zap.Logger) Model {
	email := textinput.New()
	email.Placeholder = "email@example.com"
	email.Prompt = "❯ "
	email.PromptStyle = InputPromptStyle
	email.CharLimit = 100
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "❯ "
	password.PromptStyle = InputPromptStyle
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100
	password.Width = 40

	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}

	return Model{
		client:        client,
		session:       sess,
		logger:        logger,
		keys:          DefaultKeyMap(),
		pollInterval:  pollInterval,
		viewMode:      ViewLogin,
		emailInput:    email,
		passwordInput: password,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		spinnerTickCmd(),
		m.checkAuthCmd(),
		m.waitForInvalidationCmd(),
	)
}

// checkAuthCmd attempts silent re-authentication from the persisted
// token before the first view renders.
func (m Model) checkAuthCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		sess.CheckAuth(context.Background())
		return authCheckedMsg{}
	}
}

// waitForInvalidationCmd subscribes to the API client's
// session-invalidated signal. The command re-arms itself after each
// delivery.
func (m Model) waitForInvalidationCmd() tea.Cmd {
	ch := m.client.SessionInvalidated()
	return func() tea.Msg {
		<-ch
		return sessionInvalidatedMsg{}
	}
}

func (m Model) loadBranchesCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		err := sess.FetchBranches(context.Background())
		return branchesLoadedMsg{err: err}
	}
}

func (m Model) loginCmd(email, password string, branchID int) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		err := sess.Login(context.Background(), email, password, branchID)
		return loginResultMsg{err: err}
	}
}

func (m Model) fetchAppointmentsCmd(gen int) tea.Cmd {
	client := m.client
	filter := m.filter.apiFilter(time.Now())
	return func() tea.Msg {
		appointments, err := client.ListAppointments(context.Background(), filter)
		return appointmentsLoadedMsg{gen: gen, appointments: appointments, err: err}
	}
}

// dashboardFilter scopes the summary query to today's appointments
// for one branch.
func dashboardFilter(branchID int, now time.Time) api.AppointmentFilter {
	return api.AppointmentFilter{
		Date:   now.Format("2006-01-02"),
		Branch: branchID,
	}
}

func (m Model) fetchDashboardCmd(gen int) tea.Cmd {
	client := m.client
	filter := dashboardFilter(m.userBranchID(), time.Now())
	return func() tea.Msg {
		appointments, err := client.ListAppointments(context.Background(), filter)
		return dashboardLoadedMsg{gen: gen, appointments: appointments, err: err}
	}
}

func (m Model) fetchDeliveriesCmd(gen int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		deliveries, err := client.ListDeliveries(context.Background())
		return deliveriesLoadedMsg{gen: gen, deliveries: deliveries, err: err}
	}
}

func (m Model) fetchVehiclesCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		vehicles, err := client.ListVehicles(context.Background())
		return vehiclesLoadedMsg{vehicles: vehicles, err: err}
	}
}

func (m Model) fetchPreparersCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		preparers, err := client.ListPreparers(context.Background())
		return preparersLoadedMsg{preparers: preparers, err: err}
	}
}

func (m Model) fetchUsersCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		users, err := client.ListUsers(context.Background())
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m Model) advanceAppointmentCmd(id int, status model.AppointmentStatus) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.UpdateAppointmentStatus(context.Background(), id, status)
		return appointmentUpdatedMsg{err: err}
	}
}

func (m Model) updateDeliveryCmd(id int, status model.DeliveryStatus) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.UpdateDeliveryStatus(context.Background(), id, status)
		return deliveryUpdatedMsg{err: err}
	}
}

func (m Model) deleteUserCmd(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteUser(context.Background(), id)
		return userDeletedMsg{err: err}
	}
}

// pollTickCmd schedules the next poll for the given generation.
func (m Model) pollTickCmd(gen int) tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

// spinnerTickCmd animates the loading spinner.
func spinnerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// showNotice sets the transient status-bar notice and schedules its
// expiry. A newer notice supersedes the pending expiry.
func (m *Model) showNotice(text string, level noticeLevel) tea.Cmd {
	m.notice = text
	m.noticeLevel = level
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(t time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// switchView navigates to a view, consulting the route guard first.
// Any transition cancels an active poll; polling views start a fresh
// poll cycle under a new generation.
func (m *Model) switchView(v ViewMode) tea.Cmd {
	if v != ViewLogin && !session.Allowed(m.session) {
		m.viewMode = ViewLogin
		return m.loadBranchesCmd()
	}

	m.pollGen++
	m.viewMode = v

	switch v {
	case ViewLogin:
		return m.loadBranchesCmd()
	case ViewBoard:
		m.loadingBoard = true
		m.boardIdx = 0
		return tea.Batch(m.fetchAppointmentsCmd(m.pollGen), m.pollTickCmd(m.pollGen))
	case ViewDashboard:
		m.loadingList = true
		return tea.Batch(m.fetchDashboardCmd(m.pollGen), m.pollTickCmd(m.pollGen))
	case ViewDeliveries:
		m.loadingList = true
		m.deliveryIdx = 0
		return tea.Batch(m.fetchDeliveriesCmd(m.pollGen), m.pollTickCmd(m.pollGen))
	case ViewVehicles:
		m.loadingList = true
		m.vehicleIdx = 0
		return m.fetchVehiclesCmd()
	case ViewPreparers:
		m.loadingList = true
		m.preparerIdx = 0
		return m.fetchPreparersCmd()
	case ViewUsers:
		m.loadingList = true
		m.userIdx = 0
		return m.fetchUsersCmd()
	case ViewBranches:
		m.loadingList = true
		m.branchIdx2 = 0
		return m.loadBranchesCmd()
	default:
		return nil
	}
}

// supervisor reports whether the current user holds the supervisor
// flag; users and branches management require it.
func (m Model) supervisor() bool {
	u := m.session.User()
	return u != nil && u.IsSupervisor
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinnerTickMsg:
		m.spinnerIndex++
		return m, spinnerTickCmd()

	case authCheckedMsg:
		if session.Allowed(m.session) {
			return m, m.switchView(ViewBoard)
		}
		m.viewMode = ViewLogin
		return m, m.loadBranchesCmd()

	case sessionInvalidatedMsg:
		// The credential is already gone; drop the profile, stop
		// polling and go back to the entry view.
		m.session.Invalidate()
		m.pollGen++
		m.viewMode = ViewLogin
		notice := m.showNotice("Session expired, please log in again", noticeError)
		return m, tea.Batch(notice, m.loadBranchesCmd(), m.waitForInvalidationCmd())

	case branchesLoadedMsg:
		m.loadingList = false
		if msg.err != nil {
			return m, m.showNotice(api.Message(msg.err, "Could not load branches"), noticeError)
		}
		if branches := m.session.Branches(); m.branchIdx >= len(branches) {
			m.branchIdx = 0
		}
		return m, nil

	case loginResultMsg:
		m.loggingIn = false
		if msg.err != nil {
			return m, m.showNotice(m.session.Err(), noticeError)
		}
		m.passwordInput.SetValue("")
		user := m.session.User()
		cmd := m.switchView(ViewBoard)
		return m, tea.Batch(cmd, m.showNotice("Welcome, "+user.DisplayName(), noticeSuccess))

	case appointmentsLoadedMsg:
		// A fetch from a cancelled generation (deactivated view or
		// superseded filter) must not overwrite newer data.
		if msg.gen != m.pollGen {
			return m, nil
		}
		m.loadingBoard = false
		if msg.err != nil {
			// Keep whatever was on screen; stale beats empty.
			return m, m.showNotice(api.Message(msg.err, "Could not load appointments"), noticeError)
		}
		m.appointments = msg.appointments
		if m.boardIdx >= len(m.appointments) {
			m.boardIdx = 0
		}
		return m, nil

	case dashboardLoadedMsg:
		if msg.gen != m.pollGen {
			return m, nil
		}
		m.loadingList = false
		if msg.err != nil {
			return m, m.showNotice(api.Message(msg.err, "Could not load dashboard"), noticeError)
		}
		m.dashboard = msg.appointments
		return m, nil

	case deliveriesLoadedMsg:
		if msg.gen != m.pollGen {
			return m, nil
		}
		m.loadingList = false
		if msg.err != nil {
			return m, m.showNotice(api.Message(msg.err, "Could not load deliveries"), noticeError)
		}
		m.deliveries = msg.deliveries
		if m.deliveryIdx >= len(m.deliveries) {
			m.deliveryIdx = 0
		}
		return m, nil

	case vehiclesLoadedMsg:
		m.loadingList = false
		if msg.err != nil {
			return m, m.showNotice(api.Message(msg.err, "Could not load vehicles"), noticeError)
		}
		m.vehicles = msg.vehicles
		if m.vehicleIdx >= len(m.vehicles) {
			m.vehicleIdx = 0
		}
		return m, nil

	case preparersLoadedMsg:
		m.loadingList = false
		if msg.err != nil {
			return m, m.showNotice(api.Message(msg.err, "Could not load preparers"), noticeError)
		}
		m.preparers = msg.preparers
		if m.preparerIdx >= len(m.preparers) {
			m.preparerIdx = 0
		}
		return m, nil

	case usersLoadedMsg:
		m.loadingList = false
		if msg.err != nil {
			return m, m.showNotice(api.Message(msg.err, "Could not load users"), noticeError)
		}
		m.users = msg.users
		if m.userIdx >= len(m.users) {
			m.userIdx = 0
		}
		return m, nil

	case pollTickMsg:
		// Ticks carry the generation that armed them; a bumped
		// generation means the owning view was deactivated or its
		// filter changed, so the timer dies here.
		if msg.gen != m.pollGen {
			return m, nil
		}
		switch m.viewMode {
		case ViewBoard:
			return m, tea.Batch(m.fetchAppointmentsCmd(msg.gen), m.pollTickCmd(msg.gen))
		case ViewDashboard:
			return m, tea.Batch(m.fetchDashboardCmd(msg.gen), m.pollTickCmd(msg.gen))
		case ViewDeliveries:
			return m, tea.Batch(m.fetchDeliveriesCmd(msg.gen), m.pollTickCmd(msg.gen))
		default:
			return m, nil
		}

	case formSubmittedMsg:
		if msg.err != nil {
			// Draft stays intact for correction.
			return m, m.showNotice(api.Message(msg.err, "Could not save "+msg.entity), noticeError)
		}
		m.editingUserID = 0
		notice := m.showNotice(msg.entity+" saved", noticeSuccess)
		return m, tea.Batch(notice, m.switchView(m.formReturn))

	case appointmentUpdatedMsg:
		if msg.err != nil {
			return m, m.showNotice(api.Message(msg.err, "Could not update appointment"), noticeError)
		}
		notice := m.showNotice("Appointment updated", noticeSuccess)
		return m, tea.Batch(notice, m.fetchAppointmentsCmd(m.pollGen))

	case deliveryUpdatedMsg:
		if msg.err != nil {
			return m, m.showNotice(api.Message(msg.err, "Could not update delivery"), noticeError)
		}
		notice := m.showNotice("Delivery updated", noticeSuccess)
		return m, tea.Batch(notice, m.fetchDeliveriesCmd(m.pollGen))

	case userDeletedMsg:
		if msg.err != nil {
			return m, m.showNotice(api.Message(msg.err, "Could not delete user"), noticeError)
		}
		notice := m.showNotice("User deleted", noticeSuccess)
		return m, tea.Batch(notice, m.fetchUsersCmd())

	case profileSavedMsg:
		if msg.err != nil {
			return m, m.showNotice(m.session.Err(), noticeError)
		}
		notice := m.showNotice("Profile updated", noticeSuccess)
		return m, tea.Batch(notice, m.switchView(ViewBoard))

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}
