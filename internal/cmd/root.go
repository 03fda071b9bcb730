package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"studioops/internal/config"
	"studioops/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	BackendURL  string           `help:"Base URL of the studio backend API" default:"http://localhost:8000/api/v1"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"100"`

	Run      RunCmd      `cmd:"" help:"Start the studioops TUI (default)" default:"1"`
	Serve    ServeCmd    `cmd:"serve" help:"Serve the TUI over SSH"`
	Sessions SessionsCmd `cmd:"sessions" help:"Manage training sessions (list, add, del)"`
	Members  MembersCmd  `cmd:"members" help:"Browse and sync CRM members"`
	Tickets  TicketsCmd  `cmd:"tickets" help:"Browse and sync lesson tickets"`
	Exports  ExportsCmd  `cmd:"exports" help:"Manage salary exports (list, create, download)"`
	Status   StatusCmd   `cmd:"status" help:"Show today's session counts in one line" hidden:""`
	Settings SettingsCmd `cmd:"settings" help:"Manage settings (meta)"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// LoadSettings reads settings.json from the studioops home directory
func LoadSettings() (*config.Settings, error) {
	return config.Load()
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// Apply settings with proper precedence: CLI flags > env vars > settings.json > defaults
	// Only apply if flag is at default value and env var is not set

	if c.settings != nil {
		if c.MaxLogFiles == 100 {
			if _, hasEnv := os.LookupEnv("STUDIOOPS_MAX_LOG_FILES"); !hasEnv {
				if c.settings.MaxLogFiles != nil {
					c.MaxLogFiles = *c.settings.MaxLogFiles
				}
			}
		}

		if !c.Debug {
			if _, hasEnv := os.LookupEnv("STUDIOOPS_DEBUG"); !hasEnv {
				if c.settings.Debug != nil && *c.settings.Debug {
					c.Debug = true
				}
			}
		}

		if c.BackendURL == config.DefaultBackendURL {
			if _, hasEnv := os.LookupEnv("STUDIOOPS_BACKEND_URL"); !hasEnv {
				if c.settings.BackendURL != "" {
					c.BackendURL = c.settings.BackendURL
				}
			}
		}
	}
	if env := os.Getenv("STUDIOOPS_BACKEND_URL"); env != "" && c.BackendURL == config.DefaultBackendURL {
		c.BackendURL = env
	}

	// Initialize logging first and get the log file path
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Set environment variables AFTER initialization so child processes inherit
	// debug settings and append to the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("STUDIOOPS_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("STUDIOOPS_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 100 {
		os.Setenv("STUDIOOPS_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Create container AFTER logging is initialized so the GORM logger
	// never sees a nil logging.Logger
	container, err := NewContainer(c.BackendURL, c.settings)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
