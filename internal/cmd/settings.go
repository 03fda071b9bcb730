package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"studioops/internal/config"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// settingsExample documents every supported settings.json key
var settingsExample = []struct {
	key, value, help string
}{
	{"backend_url", config.DefaultBackendURL, "Base URL of the studio backend API"},
	{"dashboard_stale_seconds", "30", "Dashboard freshness window"},
	{"debug", "false", "Enable debug logging to file"},
	{"download_dir", "~/.studioops/exports", "Directory for downloaded export files"},
	{"error_clear_delay", "10", "Seconds before TUI error messages auto-clear"},
	{"max_log_files", "100", "Maximum number of log files to keep (0 = unlimited)"},
	{"request_timeout_seconds", "30", "HTTP request timeout"},
	{"stale_seconds", "300", "General cache freshness window"},
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile, err := config.SettingsPath()
	if err != nil {
		return fmt.Errorf("failed to resolve settings path: %w", err)
	}

	if s.Format == "json" {
		example := make(map[string]string, len(settingsExample))
		for _, e := range settingsExample {
			example[e.key] = e.value
		}
		output := map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	fmt.Println("Available options:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tDEFAULT\tDESCRIPTION")
	for _, e := range settingsExample {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.key, e.value, e.help)
	}
	return w.Flush()
}
