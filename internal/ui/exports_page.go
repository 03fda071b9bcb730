package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"studioops/internal/domain"
	"studioops/internal/services"
	"studioops/internal/theme"
)

// ExportsPage shows the pending-export count and the export history, and
// drives new export runs and file downloads.
type ExportsPage struct {
	cursor    int
	data      *services.DataService
	downloads *services.DownloadService
	exports   []domain.ExportLogRecord
	keys      KeyMap
	lastSaved string
	loading   bool
	pending   *domain.PendingExports
}

// NewExportsPage creates the exports page
func NewExportsPage(data *services.DataService, downloads *services.DownloadService, keys KeyMap) *ExportsPage {
	return &ExportsPage{
		data:      data,
		downloads: downloads,
		keys:      keys,
		loading:   true,
	}
}

func (p *ExportsPage) init() tea.Cmd {
	return tea.Batch(loadExports(p.data), loadPending(p.data))
}

func (p *ExportsPage) refresh() tea.Cmd {
	return tea.Batch(loadExports(p.data), loadPending(p.data))
}

func (p *ExportsPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case exportsLoadedMsg:
		p.loading = false
		if msg.err == nil {
			p.exports = msg.exports
			if p.cursor >= len(p.exports) {
				p.cursor = 0
			}
		}
		return nil
	case pendingLoadedMsg:
		if msg.err == nil {
			p.pending = msg.pending
		}
		return nil
	case downloadDoneMsg:
		if msg.err == nil {
			p.lastSaved = msg.path
		}
		return nil
	}
	return nil
}

func (p *ExportsPage) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	switch {
	case keyMatches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, true
	case keyMatches(msg, p.keys.Down):
		if p.cursor < len(p.exports)-1 {
			p.cursor++
		}
		return nil, true
	case keyMatches(msg, p.keys.Download):
		if len(p.exports) == 0 || p.cursor >= len(p.exports) {
			return nil, true
		}
		return downloadExport(p.downloads, p.exports[p.cursor].ExportID), true
	}
	return nil, false
}

func (p *ExportsPage) view() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Exports"))
	b.WriteString("\n")

	if p.pending != nil {
		b.WriteString(fmt.Sprintf("%s %s sessions not yet exported\n\n",
			theme.HeaderStyle.Render("Pending:"),
			theme.WarningStyle.Render(fmt.Sprintf("%d", p.pending.PendingCount))))
	}

	switch {
	case p.loading:
		b.WriteString(theme.MutedStyle.Render("Loading export history..."))
	case len(p.exports) == 0:
		b.WriteString(theme.MutedStyle.Render("No exports yet."))
	default:
		b.WriteString(theme.HeaderStyle.Render(fmt.Sprintf("   %-22s %-24s %-8s %s",
			"EXPORT ID", "RANGE", "COUNT", "STATUS")))
		b.WriteString("\n")
		for i, exp := range p.exports {
			marker := "  "
			if i == p.cursor {
				marker = "> "
			}
			b.WriteString(fmt.Sprintf("%s %-22s %s ~ %s %6d   %s\n",
				marker, exp.ExportID, exp.StartDate, exp.EndDate,
				exp.SessionCount, exp.Status))
		}
	}

	if p.lastSaved != "" {
		b.WriteString("\n")
		b.WriteString(theme.MutedStyle.Render("Saved: " + p.lastSaved))
	}

	exportNote := ""
	if p.data.ExportInFlight() {
		exportNote = " • export running..."
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("x new export • enter download • r refresh" + exportNote))
	return b.String()
}
