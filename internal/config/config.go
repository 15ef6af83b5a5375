package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the client.
type Config struct {
	APIBaseURL      string        `env:"PREPDESK_API_URL" envDefault:"http://localhost:8000"`
	PollInterval    time.Duration `env:"PREPDESK_POLL_INTERVAL" envDefault:"30s"`
	RequestTimeout  time.Duration `env:"PREPDESK_REQUEST_TIMEOUT" envDefault:"30s"`
	CredentialsPath string        `env:"PREPDESK_CREDENTIALS"`
	LogPath         string        `env:"PREPDESK_LOG"`
}

// Load reads configuration from environment variables and fills in
// the default file locations under ~/.prepdesk.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	dir, err := defaultDir()
	if err != nil {
		return nil, err
	}
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = filepath.Join(dir, "credentials.json")
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(dir, "prepdesk.log")
	}

	return &cfg, nil
}

// defaultDir returns the prepdesk state directory path (~/.prepdesk)
func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".prepdesk"), nil
}
