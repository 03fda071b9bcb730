package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studioops/internal/domain"
	"studioops/internal/services"
	"studioops/internal/theme"
)

// dashboardRefreshInterval matches the dashboard's freshness window: each
// tick re-reads the key, and the cache decides whether to hit the network.
const dashboardRefreshInterval = 30 * time.Second

// DashboardPage shows the server-computed daily aggregate
type DashboardPage struct {
	data     *services.DataService
	loading  bool
	snapshot *domain.DashboardSnapshot
}

// NewDashboardPage creates the dashboard page
func NewDashboardPage(data *services.DataService) *DashboardPage {
	return &DashboardPage{data: data, loading: true}
}

func (p *DashboardPage) init() tea.Cmd {
	return tea.Batch(loadDashboard(p.data), dashboardTick())
}

func dashboardTick() tea.Cmd {
	return tea.Tick(dashboardRefreshInterval, func(time.Time) tea.Msg {
		return dashboardTickMsg{}
	})
}

func (p *DashboardPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		p.loading = false
		if msg.err == nil {
			// Full replacement; snapshots are never merged
			p.snapshot = msg.snapshot
		}
		return nil
	case dashboardTickMsg:
		return tea.Batch(loadDashboard(p.data), dashboardTick())
	}
	return nil
}

func (p *DashboardPage) refresh() tea.Cmd {
	return loadDashboard(p.data)
}

func (p *DashboardPage) view() string {
	if p.loading && p.snapshot == nil {
		return theme.MutedStyle.Render("Loading dashboard...")
	}
	if p.snapshot == nil {
		return theme.MutedStyle.Render("No dashboard data.")
	}

	snap := p.snapshot
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("Dashboard — %s", snap.Date)))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s %d (completed %d, cancelled %d, no-show %d)\n",
		theme.HeaderStyle.Render("Today's sessions:"),
		snap.Sessions.Total,
		snap.Sessions.Completed,
		snap.Sessions.Cancelled,
		snap.Sessions.NoShow))
	b.WriteString(fmt.Sprintf("%s %s\n",
		theme.HeaderStyle.Render("Pending export:"),
		theme.WarningStyle.Render(fmt.Sprintf("%d", snap.PendingExport))))
	b.WriteString(fmt.Sprintf("%s %d\n",
		theme.HeaderStyle.Render("Cached members:"),
		snap.MembersCached))

	b.WriteString("\n")
	b.WriteString(theme.HeaderStyle.Render("Recent sessions"))
	b.WriteString("\n")
	if len(snap.RecentSessions) == 0 {
		b.WriteString(theme.MutedStyle.Render("No sessions logged today.\n"))
	}
	for _, s := range snap.RecentSessions {
		b.WriteString(fmt.Sprintf("  %s  %-12s %-12s %s\n",
			s.Time,
			s.Trainer,
			s.Member,
			theme.StatusStyle(s.Status).Render(s.Status)))
	}

	return b.String()
}
