package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default freshness windows for cached server reads. The dashboard is the
// only resource with a shorter window; everything else tolerates five
// minutes of staleness on this internal tool.
const (
	DefaultStaleTime          = 5 * time.Minute
	DefaultDashboardStaleTime = 30 * time.Second
)

// DefaultBackendURL is used when neither flag, env, nor settings provide one
const DefaultBackendURL = "http://localhost:8000/api/v1"

// Settings represents the structure of ~/.studioops/settings.json
type Settings struct {
	BackendURL            string `json:"backend_url,omitempty"`
	DashboardStaleSeconds *int   `json:"dashboard_stale_seconds,omitempty"`
	Debug                 *bool  `json:"debug,omitempty"`
	DownloadDir           string `json:"download_dir,omitempty"`
	ErrorClearDelay       *int   `json:"error_clear_delay,omitempty"`
	MaxLogFiles           *int   `json:"max_log_files,omitempty"`
	RequestTimeoutSeconds *int   `json:"request_timeout_seconds,omitempty"`
	StaleSeconds          *int   `json:"stale_seconds,omitempty"`
}

// StaleTime resolves the general freshness window
func (s *Settings) StaleTime() time.Duration {
	if s != nil && s.StaleSeconds != nil && *s.StaleSeconds > 0 {
		return time.Duration(*s.StaleSeconds) * time.Second
	}
	return DefaultStaleTime
}

// DashboardStaleTime resolves the dashboard freshness window
func (s *Settings) DashboardStaleTime() time.Duration {
	if s != nil && s.DashboardStaleSeconds != nil && *s.DashboardStaleSeconds > 0 {
		return time.Duration(*s.DashboardStaleSeconds) * time.Second
	}
	return DefaultDashboardStaleTime
}

// RequestTimeout resolves the HTTP transport timeout
func (s *Settings) RequestTimeout() time.Duration {
	if s != nil && s.RequestTimeoutSeconds != nil && *s.RequestTimeoutSeconds > 0 {
		return time.Duration(*s.RequestTimeoutSeconds) * time.Second
	}
	return 30 * time.Second
}

// HomeDir returns the studioops configuration directory
func HomeDir() (string, error) {
	if custom := os.Getenv("STUDIOOPS_HOME"); custom != "" {
		return ExpandPath(custom), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".studioops"), nil
}

// SettingsPath returns the path of the settings file
func SettingsPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// DBPath returns the path of the local download-history database
func DBPath() string {
	dir, err := HomeDir()
	if err != nil {
		return filepath.Join(".", "studioops.db")
	}
	return filepath.Join(dir, "studioops.db")
}

// Load reads settings.json. A missing file is not an error; it yields nil
// settings and defaults apply everywhere.
func Load() (*Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return &settings, nil
}

// Save writes settings.json, creating the directory if needed
func Save(settings *Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return homeDir
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~/"))
}
