package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studioops/internal/theme"
)

// ErrorManager owns the error bar: set on any failed operation, cleared
// automatically after a delay or explicitly by the next successful one.
type ErrorManager struct {
	clearDelay time.Duration
	err        error
}

// NewErrorManager creates an error manager with the given auto-clear delay
func NewErrorManager(clearDelay time.Duration) *ErrorManager {
	if clearDelay <= 0 {
		clearDelay = 10 * time.Second
	}
	return &ErrorManager{clearDelay: clearDelay}
}

// SetError records an error and returns the command that clears it later
func (m *ErrorManager) SetError(err error) tea.Cmd {
	m.err = err
	return tea.Tick(m.clearDelay, func(time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

// Clear drops the current error immediately
func (m *ErrorManager) Clear() {
	m.err = nil
}

// View renders the error bar, empty when there is nothing to show
func (m *ErrorManager) View() string {
	if m.err == nil {
		return ""
	}
	return theme.ErrorStyle.Render("Error: " + m.err.Error())
}
