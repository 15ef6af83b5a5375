package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/prepdesk/prepdesk/internal/api"
	"github.com/prepdesk/prepdesk/internal/config"
	"github.com/prepdesk/prepdesk/internal/model"
)

// Store is the single source of truth for "who is logged in". It is
// constructed once in main and handed to every component that needs
// it. Mutations happen only through its operations; a user profile is
// never held without a stored credential.
//
// The mutex guards against the goroutines Bubble Tea commands run on;
// every mutation is a single locked replacement, so observers never
// see partial state.
type Store struct {
	mu     sync.RWMutex
	client *api.Client
	creds  *config.CredentialStore
	logger *zap.Logger

	user     *model.User
	branches []model.Branch
	loading  bool
	lastErr  string
}

// NewStore creates a session store backed by the given API client and
// credential store.
func NewStore(client *api.Client, creds *config.CredentialStore, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		creds:  creds,
		logger: logger,
	}
}

// User returns the current profile, or nil when unauthenticated.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Branches returns the branches loaded by FetchBranches.
func (s *Store) Branches() []model.Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branches
}

// Loading reports whether a session operation is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last operation's failure message, or empty.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Login exchanges credentials for a token and profile. Empty
// arguments fail with a ValidationError before any request is made.
// On success the token is persisted so every subsequent request
// carries it. Errors are recorded on the store and returned to the
// caller.
func (s *Store) Login(ctx context.Context, email, password string, branchID int) error {
	switch {
	case email == "":
		return s.fail(&api.ValidationError{Field: "email"}, "")
	case password == "":
		return s.fail(&api.ValidationError{Field: "password"}, "")
	case branchID == 0:
		return s.fail(&api.ValidationError{Field: "branch"}, "")
	}

	s.setLoading(true)
	resp, err := s.client.Login(ctx, api.LoginRequest{
		Email:    email,
		Password: password,
		Branch:   branchID,
	})
	if err != nil {
		return s.fail(err, "login failed")
	}
	if resp.Token == "" || resp.User == nil {
		return s.fail(&api.ServerResponseError{Reason: "login reply missing token or user"}, "")
	}

	if err := s.creds.Save(resp.Token); err != nil {
		return s.fail(err, "could not persist credentials")
	}

	s.mu.Lock()
	s.user = resp.User
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()

	s.logger.Info("logged in",
		zap.String("user", resp.User.Username),
		zap.String("branch", resp.User.BranchName()))
	return nil
}

// Logout clears the stored credential and profile. Always succeeds
// and is safe to call when already logged out.
func (s *Store) Logout() {
	if err := s.creds.Clear(); err != nil {
		s.logger.Error("clear credentials", zap.Error(err))
	}

	s.mu.Lock()
	s.user = nil
	s.lastErr = ""
	s.loading = false
	s.mu.Unlock()

	s.logger.Info("logged out")
}

// FetchBranches replaces the selectable branch list from the server.
func (s *Store) FetchBranches(ctx context.Context) error {
	s.setLoading(true)
	branches, err := s.client.ListBranches(ctx)
	if err != nil {
		return s.fail(err, "could not load branches")
	}

	s.mu.Lock()
	s.branches = branches
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// CheckAuth attempts silent re-authentication from the persisted
// token. With no stored token it does nothing. A stored token the
// server rejects results in a full logout. Never returns an error to
// the caller.
func (s *Store) CheckAuth(ctx context.Context) {
	if s.creds.Token() == "" {
		return
	}

	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Warn("auth check failed", zap.Error(err))
		s.Logout()
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.logger.Info("session restored", zap.String("user", user.Username))
}

// UpdateProfile submits a partial profile edit and replaces the held
// profile with the server's reply.
func (s *Store) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	s.setLoading(true)
	user, err := s.client.UpdateProfile(ctx, update)
	if err != nil {
		return s.fail(err, "could not update profile")
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// Invalidate discards the in-memory session after the API client
// reported a 401. The credential is already gone at that point; this
// drops the profile so the guard stops allowing protected views.
func (s *Store) Invalidate() {
	s.Logout()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// fail records a human-readable message for the error and re-raises
// it to the caller.
func (s *Store) fail(err error, generic string) error {
	s.mu.Lock()
	s.lastErr = api.Message(err, generic)
	s.loading = false
	s.mu.Unlock()
	return err
}
