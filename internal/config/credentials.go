package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// credentials is the on-disk shape of the stored bearer token.
type credentials struct {
	Token string `json:"token"`
}

// CredentialStore persists the bearer token between runs. It is read
// by the API client before every request and written only by the
// session store on login/logout.
type CredentialStore struct {
	path string
}

// NewCredentialStore creates a store backed by the given file path.
func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Token returns the stored token, or empty when none is stored.
func (s *CredentialStore) Token() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return ""
	}
	return creds.Token
}

// Save writes the token to disk, creating the parent directory if
// needed. The file is user-readable only.
func (s *CredentialStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(credentials{Token: token}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the stored token. Clearing an empty store is not an
// error.
func (s *CredentialStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
