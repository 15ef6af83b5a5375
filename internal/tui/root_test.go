package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/prepdesk/prepdesk/internal/api"
	"github.com/prepdesk/prepdesk/internal/config"
	"github.com/prepdesk/prepdesk/internal/model"
	"github.com/prepdesk/prepdesk/internal/session"
)

// newTestModel builds a root model against a stub server. When loggedIn
// is set, a token is persisted and the session restored before the
// model is created, the way Init's auth check would.
func newTestModel(t *testing.T, loggedIn, supervisor bool) Model {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/me/":
			json.NewEncoder(w).Encode(map[string]any{
				"id":            1,
				"username":      "ana",
				"is_supervisor": supervisor,
				"branch":        map[string]any{"id": 7, "name": "Matriz"},
			})
		case "/api/branches/":
			w.Write([]byte(`[{"id":1,"name":"Matriz"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(srv.Close)

	creds := config.NewCredentialStore(filepath.Join(t.TempDir(), "credentials.json"))
	client := api.NewClient(srv.URL, creds, 5*time.Second, zap.NewNop())
	sess := session.NewStore(client, creds, zap.NewNop())

	if loggedIn {
		if err := creds.Save("tok-test"); err != nil {
			t.Fatal(err)
		}
		sess.CheckAuth(context.Background())
		if sess.User() == nil {
			t.Fatal("test session not restored")
		}
	}

	m := NewRootModel(client, sess, 30*time.Second, zap.NewNop())
	m.ready = true
	return m
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next, cmd
}

func TestStalePollTickIgnored(t *testing.T) {
	m := newTestModel(t, true, false)
	m.viewMode = ViewBoard
	m.pollGen = 3

	_, cmd := update(t, m, pollTickMsg{gen: 2})
	if cmd != nil {
		t.Error("stale tick produced a command, want none")
	}

	_, cmd = update(t, m, pollTickMsg{gen: 3})
	if cmd == nil {
		t.Error("current tick produced no command, want fetch+reschedule")
	}
}

func TestStaleAppointmentsDiscarded(t *testing.T) {
	m := newTestModel(t, true, false)
	m.viewMode = ViewBoard
	m.pollGen = 5
	m.appointments = []model.Appointment{{ID: 1, Client: "Current"}}

	m, _ = update(t, m, appointmentsLoadedMsg{
		gen:          4,
		appointments: []model.Appointment{{ID: 9, Client: "Stale"}},
	})

	if len(m.appointments) != 1 || m.appointments[0].ID != 1 {
		t.Errorf("appointments = %+v, want result from generation 4 discarded", m.appointments)
	}
}

func TestAppointmentsErrorKeepsData(t *testing.T) {
	m := newTestModel(t, true, false)
	m.viewMode = ViewBoard
	m.pollGen = 1
	m.loadingBoard = true
	m.appointments = []model.Appointment{{ID: 1}, {ID: 2}}

	m, _ = update(t, m, appointmentsLoadedMsg{
		gen: 1,
		err: &api.NetworkError{Err: errors.New("dial tcp: refused")},
	})

	if len(m.appointments) != 2 {
		t.Errorf("appointments dropped on fetch failure, want kept")
	}
	if m.loadingBoard {
		t.Error("loadingBoard still set after failed fetch")
	}
	if m.notice == "" {
		t.Error("no notice shown for failed fetch")
	}
}

func TestFilterChangeStartsFreshPollCycle(t *testing.T) {
	m := newTestModel(t, true, false)
	m.viewMode = ViewBoard
	m.pollGen = 2
	m.boardIdx = 3

	m, cmd := update(t, m, keyPress('f'))

	if m.filter != filterWeek {
		t.Errorf("filter = %v, want week after one cycle from today", m.filter)
	}
	if m.pollGen != 3 {
		t.Errorf("pollGen = %d, want 3", m.pollGen)
	}
	if !m.loadingBoard {
		t.Error("loadingBoard not set")
	}
	if m.boardIdx != 0 {
		t.Errorf("boardIdx = %d, want reset to 0", m.boardIdx)
	}
	if cmd == nil {
		t.Error("no immediate fetch issued")
	}
}

func TestDashboardFilterScopesBranchAndDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	f := dashboardFilter(7, now)
	if f.Branch != 7 {
		t.Errorf("filter branch = %d, want 7", f.Branch)
	}
	if f.Date != "2026-08-31" {
		t.Errorf("filter date = %q, want 2026-08-31", f.Date)
	}
}

func TestDashboardPollCycle(t *testing.T) {
	m := newTestModel(t, true, false)
	m.viewMode = ViewBoard
	m.pollGen = 1

	cmd := m.switchView(ViewDashboard)
	if m.viewMode != ViewDashboard {
		t.Fatalf("viewMode = %v, want ViewDashboard", m.viewMode)
	}
	if m.pollGen != 2 {
		t.Errorf("pollGen = %d, want 2", m.pollGen)
	}
	if !m.loadingList {
		t.Error("loadingList not set")
	}
	if cmd == nil {
		t.Error("no fetch issued on activation")
	}

	// A result from the board's old generation must not land here.
	m, _ = update(t, m, dashboardLoadedMsg{
		gen:          1,
		appointments: []model.Appointment{{ID: 9}},
	})
	if len(m.dashboard) != 0 {
		t.Errorf("dashboard = %+v, want stale result discarded", m.dashboard)
	}

	m, _ = update(t, m, dashboardLoadedMsg{
		gen:          2,
		appointments: []model.Appointment{{ID: 1, Status: model.StatusScheduled}},
	})
	if len(m.dashboard) != 1 {
		t.Fatalf("dashboard = %+v, want one appointment", m.dashboard)
	}
	if m.loadingList {
		t.Error("loadingList still set after load")
	}

	_, cmd = update(t, m, pollTickMsg{gen: 2})
	if cmd == nil {
		t.Error("current tick produced no command, want fetch+reschedule")
	}

	m, _ = update(t, m, dashboardLoadedMsg{
		gen: 2,
		err: &api.NetworkError{Err: errors.New("dial tcp: refused")},
	})
	if len(m.dashboard) != 1 {
		t.Error("dashboard dropped on fetch failure, want kept")
	}
}

func TestSessionInvalidatedRedirectsToLogin(t *testing.T) {
	m := newTestModel(t, true, false)
	m.viewMode = ViewBoard
	m.pollGen = 4

	m, cmd := update(t, m, sessionInvalidatedMsg{})

	if m.viewMode != ViewLogin {
		t.Errorf("viewMode = %v, want ViewLogin", m.viewMode)
	}
	if m.session.User() != nil {
		t.Error("session user kept after invalidation")
	}
	if m.pollGen != 5 {
		t.Errorf("pollGen = %d, want bumped to 5", m.pollGen)
	}
	if m.notice == "" {
		t.Error("no notice shown")
	}
	if cmd == nil {
		t.Error("no command returned, want branches reload and re-armed subscription")
	}
}

func TestAuthCheckFallsBackToLogin(t *testing.T) {
	m := newTestModel(t, false, false)

	m, _ = update(t, m, authCheckedMsg{})

	if m.viewMode != ViewLogin {
		t.Errorf("viewMode = %v, want ViewLogin", m.viewMode)
	}
}

func TestAuthCheckRestoresBoard(t *testing.T) {
	m := newTestModel(t, true, false)

	m, _ = update(t, m, authCheckedMsg{})

	if m.viewMode != ViewBoard {
		t.Errorf("viewMode = %v, want ViewBoard", m.viewMode)
	}
}

func TestUserManagementRequiresSupervisor(t *testing.T) {
	m := newTestModel(t, true, false)
	m.viewMode = ViewBoard

	m, _ = update(t, m, keyPress('5'))
	if m.viewMode != ViewBoard {
		t.Errorf("viewMode = %v, want gated navigation to stay on board", m.viewMode)
	}
	if m.notice == "" {
		t.Error("no notice shown for gated navigation")
	}

	sup := newTestModel(t, true, true)
	sup.viewMode = ViewBoard
	sup, _ = update(t, sup, keyPress('5'))
	if sup.viewMode != ViewUsers {
		t.Errorf("viewMode = %v, want ViewUsers for supervisor", sup.viewMode)
	}
}

func TestSwitchViewGuardsUnauthenticated(t *testing.T) {
	m := newTestModel(t, false, false)

	cmd := m.switchView(ViewBoard)

	if m.viewMode != ViewLogin {
		t.Errorf("viewMode = %v, want ViewLogin for unauthenticated navigation", m.viewMode)
	}
	if cmd == nil {
		t.Error("no branch reload issued for login view")
	}
}

func TestNoticeExpiry(t *testing.T) {
	m := newTestModel(t, true, false)

	m.showNotice("first", noticeInfo)
	m.showNotice("second", noticeInfo)

	// Expiry from the superseded notice must not clear the newer one.
	m, _ = update(t, m, noticeExpiredMsg{seq: m.noticeSeq - 1})
	if m.notice != "second" {
		t.Errorf("notice = %q, want second kept", m.notice)
	}

	m, _ = update(t, m, noticeExpiredMsg{seq: m.noticeSeq})
	if m.notice != "" {
		t.Errorf("notice = %q, want cleared", m.notice)
	}
}

func TestMoveSelectionBounds(t *testing.T) {
	m := newTestModel(t, true, false)
	m.viewMode = ViewBoard
	m.appointments = []model.Appointment{{ID: 1}, {ID: 2}, {ID: 3}}

	m.moveSelection(-1)
	if m.boardIdx != 0 {
		t.Errorf("boardIdx = %d, want clamped at 0", m.boardIdx)
	}

	m.moveSelection(1)
	m.moveSelection(1)
	m.moveSelection(1)
	if m.boardIdx != 2 {
		t.Errorf("boardIdx = %d, want clamped at 2", m.boardIdx)
	}

	m.appointments = nil
	m.moveSelection(1)
	if m.boardIdx != 0 {
		t.Errorf("boardIdx = %d, want 0 for empty list", m.boardIdx)
	}
}

func TestEntityFormValidationAndFocus(t *testing.T) {
	form := newEntityForm("Test",
		newFormField("Name", "", true),
		newFormField("Notes", "", false),
		newFormField("Email", "", true),
	)

	if got := form.MissingField(); got != "Name" {
		t.Errorf("MissingField() = %q, want Name", got)
	}

	form.SetValue(0, "Fiat Argo")
	if got := form.MissingField(); got != "Email" {
		t.Errorf("MissingField() = %q, want Email", got)
	}

	form.SetValue(2, "ana@example.com")
	if got := form.MissingField(); got != "" {
		t.Errorf("MissingField() = %q, want empty", got)
	}

	if form.focus != 0 {
		t.Errorf("initial focus = %d, want 0", form.focus)
	}
	form.Next()
	form.Next()
	form.Next()
	if form.focus != 0 {
		t.Errorf("focus after wrap = %d, want 0", form.focus)
	}
	form.Prev()
	if form.focus != 2 {
		t.Errorf("focus after Prev from 0 = %d, want 2", form.focus)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want model.AppointmentPriority
	}{
		{"high", model.PriorityHigh},
		{"H", model.PriorityHigh},
		{"low", model.PriorityLow},
		{"l", model.PriorityLow},
		{"medium", model.PriorityMedium},
		{"", model.PriorityMedium},
		{"whatever", model.PriorityMedium},
	}

	for _, tt := range tests {
		if got := parsePriority(tt.in); got != tt.want {
			t.Errorf("parsePriority(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseYes(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y", true},
		{"Yes", true},
		{"true", true},
		{"1", true},
		{"", false},
		{"n", false},
		{"no", false},
	}

	for _, tt := range tests {
		if got := parseYes(tt.in); got != tt.want {
			t.Errorf("parseYes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer value", 8, "a longe…"},
		{"ação de entrega", 6, "ação …"},
		{"x", 1, "x"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestShortTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"14:30:00", "14:30"},
		{"09:05", "09:05"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := shortTime(tt.in); got != tt.want {
			t.Errorf("shortTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoardFilterQuery(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	today := filterToday.apiFilter(now)
	if today.Date != "2026-08-31" {
		t.Errorf("today filter date = %q", today.Date)
	}

	week := filterWeek.apiFilter(now)
	if week.DateStart != "2026-08-31" || week.DateEnd != "2026-09-07" {
		t.Errorf("week filter = %q..%q", week.DateStart, week.DateEnd)
	}

	all := filterAll.apiFilter(now)
	if all.Date != "" || all.DateStart != "" || all.DateEnd != "" {
		t.Errorf("all filter carries date scoping: %+v", all)
	}
}
