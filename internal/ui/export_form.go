package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"studioops/internal/domain"
)

// ExportForm collects the date range for a new export run. It defaults to
// the first of the current month through today, like the paper workflow
// it replaced.
type ExportForm struct {
	endDate   string
	form      *huh.Form
	startDate string
}

// NewExportForm builds the range form with month-to-date defaults
func NewExportForm(now time.Time) *ExportForm {
	f := &ExportForm{
		endDate:   now.Format("2006-01-02"),
		startDate: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02"),
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				Value(&f.startDate).
				Validate(requiredField("start date")),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD").
				Value(&f.endDate).
				Validate(requiredField("end date")),
		),
	)
	return f
}

// Init starts the underlying huh form
func (f *ExportForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards messages to the form
func (f *ExportForm) Update(msg tea.Msg) tea.Cmd {
	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}
	return cmd
}

// Done reports whether the form was submitted or aborted
func (f *ExportForm) Done() bool {
	return f.form.State == huh.StateCompleted || f.form.State == huh.StateAborted
}

// Aborted reports whether the user cancelled
func (f *ExportForm) Aborted() bool {
	return f.form.State == huh.StateAborted
}

// Request builds the export request from the submitted fields
func (f *ExportForm) Request() domain.ExportRequest {
	return domain.ExportRequest{EndDate: f.endDate, StartDate: f.startDate}
}

// View renders the form
func (f *ExportForm) View() string {
	return f.form.View()
}
