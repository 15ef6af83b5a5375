package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearPrepdeskEnv unsets the config variables; t.Setenv first so the
// original values come back after the test.
func clearPrepdeskEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PREPDESK_API_URL",
		"PREPDESK_POLL_INTERVAL",
		"PREPDESK_REQUEST_TIMEOUT",
		"PREPDESK_CREDENTIALS",
		"PREPDESK_LOG",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearPrepdeskEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Errorf("APIBaseURL = %q, want http://localhost:8000", cfg.APIBaseURL)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}

	wantCreds := filepath.Join(home, ".prepdesk", "credentials.json")
	if cfg.CredentialsPath != wantCreds {
		t.Errorf("CredentialsPath = %q, want %q", cfg.CredentialsPath, wantCreds)
	}
	wantLog := filepath.Join(home, ".prepdesk", "prepdesk.log")
	if cfg.LogPath != wantLog {
		t.Errorf("LogPath = %q, want %q", cfg.LogPath, wantLog)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearPrepdeskEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PREPDESK_API_URL", "https://prepdesk.example.com")
	t.Setenv("PREPDESK_POLL_INTERVAL", "10s")
	t.Setenv("PREPDESK_REQUEST_TIMEOUT", "5s")
	t.Setenv("PREPDESK_CREDENTIALS", "/var/lib/prepdesk/creds.json")
	t.Setenv("PREPDESK_LOG", "/var/log/prepdesk.log")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.APIBaseURL != "https://prepdesk.example.com" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Errorf("PollInterval = %v, want 10s", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.CredentialsPath != "/var/lib/prepdesk/creds.json" {
		t.Errorf("CredentialsPath = %q, want env value untouched", cfg.CredentialsPath)
	}
	if cfg.LogPath != "/var/log/prepdesk.log" {
		t.Errorf("LogPath = %q, want env value untouched", cfg.LogPath)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	clearPrepdeskEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PREPDESK_POLL_INTERVAL", "soon")

	if _, err := Load(); err == nil {
		t.Error("Load() accepted an unparseable poll interval")
	}
}
