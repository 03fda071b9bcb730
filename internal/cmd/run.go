package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studioops/internal/logging"
	"studioops/internal/ui"
)

// RunCmd starts the TUI application
type RunCmd struct {
	ErrorClearDelay int `help:"Seconds before error messages auto-clear" default:"10"`
}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	// Apply RunCmd-specific settings with proper precedence
	if cli.settings != nil {
		if r.ErrorClearDelay == 10 {
			if cli.settings.ErrorClearDelay != nil {
				r.ErrorClearDelay = *cli.settings.ErrorClearDelay
			}
		}
	}

	logging.Logger.Info("Starting studioops TUI", "backend_url", cli.BackendURL)

	errorClearDelay := time.Duration(r.ErrorClearDelay) * time.Second
	p := tea.NewProgram(
		ui.NewModel(cli.Container.DataService, cli.Container.DownloadService, errorClearDelay),
		tea.WithAltScreen(),
	)

	logging.Logger.Info("Starting TUI program")
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
