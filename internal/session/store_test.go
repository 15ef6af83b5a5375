package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/prepdesk/prepdesk/internal/api"
	"github.com/prepdesk/prepdesk/internal/config"
)

// newTestStore wires a store against a test server and reports how
// many requests reached it.
func newTestStore(t *testing.T, handler http.Handler) (*Store, *config.CredentialStore, *atomic.Int64) {
	t.Helper()
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	creds := config.NewCredentialStore(filepath.Join(t.TempDir(), "credentials.json"))
	client := api.NewClient(srv.URL, creds, 5*time.Second, zap.NewNop())
	return NewStore(client, creds, zap.NewNop()), creds, &requests
}

func loginHandler(token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user": map[string]any{
				"id":       1,
				"username": "ana",
				"email":    "ana@example.com",
			},
		})
	})
}

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		branchID  int
		wantField string
	}{
		{"missing email", "", "secret", 1, "email"},
		{"missing password", "ana@example.com", "", 1, "password"},
		{"missing branch", "ana@example.com", "secret", 0, "branch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, requests := newTestStore(t, loginHandler("tok"))

			err := store.Login(context.Background(), tt.email, tt.password, tt.branchID)
			var valErr *api.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", valErr.Field, tt.wantField)
			}
			if got := requests.Load(); got != 0 {
				t.Errorf("requests issued = %d, want 0", got)
			}
			if store.Err() == "" {
				t.Error("Err() empty after validation failure")
			}
		})
	}
}

func TestLoginPersistsTokenAndUser(t *testing.T) {
	store, creds, _ := newTestStore(t, loginHandler("tok-login"))

	if err := store.Login(context.Background(), "ana@example.com", "secret", 1); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if user := store.User(); user == nil || user.Username != "ana" {
		t.Errorf("User() = %+v, want username ana", user)
	}
	if got := creds.Token(); got != "tok-login" {
		t.Errorf("stored token = %q, want tok-login", got)
	}
	if store.Err() != "" {
		t.Errorf("Err() = %q, want empty", store.Err())
	}
	if store.Loading() {
		t.Error("Loading() = true after login completed")
	}
}

func TestLoginRejectsIncompleteReply(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing token", `{"user":{"id":1,"username":"ana"}}`},
		{"missing user", `{"token":"tok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, creds, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))

			err := store.Login(context.Background(), "ana@example.com", "secret", 1)
			var respErr *api.ServerResponseError
			if !errors.As(err, &respErr) {
				t.Fatalf("error = %v, want ServerResponseError", err)
			}
			if store.User() != nil {
				t.Error("User() set after rejected reply")
			}
			if creds.Token() != "" {
				t.Error("token stored after rejected reply")
			}
		})
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	store, creds, _ := newTestStore(t, loginHandler("tok"))
	if err := store.Login(context.Background(), "ana@example.com", "secret", 1); err != nil {
		t.Fatal(err)
	}

	store.Logout()
	if store.User() != nil {
		t.Error("User() set after logout")
	}
	if creds.Token() != "" {
		t.Error("token stored after logout")
	}

	// Already logged out.
	store.Logout()
	if store.User() != nil || creds.Token() != "" {
		t.Error("second logout changed state")
	}
}

func TestCheckAuthWithoutTokenDoesNothing(t *testing.T) {
	store, _, requests := newTestStore(t, loginHandler("tok"))

	store.CheckAuth(context.Background())

	if got := requests.Load(); got != 0 {
		t.Errorf("requests issued = %d, want 0", got)
	}
	if store.User() != nil {
		t.Error("User() set without a stored token")
	}
}

func TestCheckAuthRestoresSession(t *testing.T) {
	store, creds, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-stored" {
			t.Errorf("Authorization = %q, want Bearer tok-stored", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 4, "username": "restored"})
	}))
	if err := creds.Save("tok-stored"); err != nil {
		t.Fatal(err)
	}

	store.CheckAuth(context.Background())

	if user := store.User(); user == nil || user.Username != "restored" {
		t.Errorf("User() = %+v, want username restored", user)
	}
}

func TestCheckAuthRejectedTokenLogsOut(t *testing.T) {
	store, creds, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad token"}`, http.StatusUnauthorized)
	}))
	if err := creds.Save("tok-stale"); err != nil {
		t.Fatal(err)
	}

	store.CheckAuth(context.Background())

	if store.User() != nil {
		t.Error("User() set after rejected token")
	}
	if creds.Token() != "" {
		t.Error("token kept after rejected auth check")
	}
}

func TestFetchBranchesReplacesList(t *testing.T) {
	store, _, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Matriz"},{"id":2,"name":"Filial Sul"}]`))
	}))

	if err := store.FetchBranches(context.Background()); err != nil {
		t.Fatalf("FetchBranches() error: %v", err)
	}

	branches := store.Branches()
	if len(branches) != 2 {
		t.Fatalf("len(Branches()) = %d, want 2", len(branches))
	}
	if branches[1].Name != "Filial Sul" {
		t.Errorf("branch name = %q, want Filial Sul", branches[1].Name)
	}
}

func TestUpdateProfileReplacesUser(t *testing.T) {
	var step atomic.Int64
	store, _, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if step.Add(1) == 1 {
			loginHandler("tok").ServeHTTP(w, r)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":         1,
			"username":   "ana",
			"first_name": "Ana",
			"last_name":  "Souza",
		})
	}))
	if err := store.Login(context.Background(), "ana@example.com", "secret", 1); err != nil {
		t.Fatal(err)
	}

	err := store.UpdateProfile(context.Background(), api.ProfileUpdate{
		FirstName: "Ana",
		LastName:  "Souza",
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error: %v", err)
	}
	if user := store.User(); user == nil || user.LastName != "Souza" {
		t.Errorf("User() = %+v, want last name Souza", user)
	}
}

func TestAllowed(t *testing.T) {
	store, _, _ := newTestStore(t, loginHandler("tok"))

	if Allowed(store) {
		t.Error("Allowed() = true before login")
	}

	if err := store.Login(context.Background(), "ana@example.com", "secret", 1); err != nil {
		t.Fatal(err)
	}
	if !Allowed(store) {
		t.Error("Allowed() = false after login")
	}

	store.Logout()
	if Allowed(store) {
		t.Error("Allowed() = true after logout")
	}
}
