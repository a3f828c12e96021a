// Package config resolves client settings from the config file and the
// environment. Precedence: flags (handled by the CLI) > environment > config
// file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// DefaultBaseURL matches the backend's development default.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Config is the resolved client configuration. Env vars use the TASKDESK_
// prefix (TASKDESK_BASE_URL, TASKDESK_DEBUG_LOG).
type Config struct {
	BaseURL  string `envconfig:"BASE_URL" json:"baseUrl,omitempty"`
	DebugLog string `envconfig:"DEBUG_LOG" json:"debugLog,omitempty"`
}

// Dir resolves the config directory. TASKDESK_CONFIG_DIR keeps unit tests
// away from the real home dir.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TASKDESK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskdesk"), nil
}

func path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, overlays the environment and fills defaults.
func Load() (*Config, error) {
	cfg := &Config{}

	p, err := path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	switch {
	case err == nil:
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
		// First run; file is optional.
	default:
		return nil, err
	}

	if err := envconfig.Process("taskdesk", cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

// Save writes the config file atomically (unique temp file + rename).
func Save(cfg *Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, "config.json.*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, 0o600)
	return os.Rename(tmp, p)
}
