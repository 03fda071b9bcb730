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

// SessionsPage lists one day's sessions and drives create/edit/delete.
// The selected date is local ephemeral state; it resets on restart.
type SessionsPage struct {
	confirming bool
	cursor     int
	data       *services.DataService
	date       time.Time
	keys       KeyMap
	loading    bool
	sessions   []domain.SessionRecord
	trainers   []string
}

// NewSessionsPage creates the sessions page positioned on today
func NewSessionsPage(data *services.DataService, keys KeyMap) *SessionsPage {
	return &SessionsPage{
		data:    data,
		date:    time.Now(),
		keys:    keys,
		loading: true,
	}
}

func (p *SessionsPage) dateString() string {
	return p.date.Format("2006-01-02")
}

func (p *SessionsPage) init() tea.Cmd {
	return tea.Batch(loadSessions(p.data, p.dateString()), loadTrainers(p.data))
}

func (p *SessionsPage) refresh() tea.Cmd {
	return loadSessions(p.data, p.dateString())
}

// selected returns the session under the cursor, nil when the list is empty
func (p *SessionsPage) selected() *domain.SessionRecord {
	if len(p.sessions) == 0 || p.cursor >= len(p.sessions) {
		return nil
	}
	return &p.sessions[p.cursor]
}

func (p *SessionsPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case sessionsLoadedMsg:
		// A response for a date the user has already left is not applied
		if msg.date != p.dateString() {
			return nil
		}
		p.loading = false
		if msg.err == nil {
			p.sessions = msg.sessions
			if p.cursor >= len(p.sessions) {
				p.cursor = 0
			}
		}
		return nil
	case trainersLoadedMsg:
		if msg.err == nil {
			p.trainers = msg.trainers
		}
		return nil
	}
	return nil
}

// handleKey processes list navigation. Delete confirmation is an explicit
// two-step: d arms it, y fires the mutation, anything else disarms.
func (p *SessionsPage) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if p.confirming {
		p.confirming = false
		if keyMatches(msg, p.keys.Confirm) {
			if target := p.selected(); target != nil {
				return deleteSession(p.data, target.ID), true
			}
		}
		return nil, true
	}

	switch {
	case keyMatches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, true
	case keyMatches(msg, p.keys.Down):
		if p.cursor < len(p.sessions)-1 {
			p.cursor++
		}
		return nil, true
	case keyMatches(msg, p.keys.PrevDay):
		p.date = p.date.AddDate(0, 0, -1)
		p.cursor = 0
		p.loading = true
		return loadSessions(p.data, p.dateString()), true
	case keyMatches(msg, p.keys.NextDay):
		p.date = p.date.AddDate(0, 0, 1)
		p.cursor = 0
		p.loading = true
		return loadSessions(p.data, p.dateString()), true
	case keyMatches(msg, p.keys.Delete):
		if p.selected() != nil {
			p.confirming = true
		}
		return nil, true
	}
	return nil, false
}

func (p *SessionsPage) view() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("Sessions — %s", p.dateString())))
	b.WriteString("\n")

	switch {
	case p.loading:
		b.WriteString(theme.MutedStyle.Render("Loading sessions..."))
	case len(p.sessions) == 0:
		b.WriteString(theme.MutedStyle.Render("No sessions logged for this date."))
	default:
		header := fmt.Sprintf("   %-6s %-12s %-14s %-8s %-8s %-10s %s",
			"TIME", "TRAINER", "MEMBER", "TYPE", "INDEX", "STATUS", "EXPORTED")
		b.WriteString(theme.HeaderStyle.Render(header))
		b.WriteString("\n")
		for i, s := range p.sessions {
			marker := "  "
			if i == p.cursor {
				marker = "> "
			}
			sessionType := s.SessionType
			if s.IsEvent {
				sessionType += "*"
			}
			index := s.SessionIndex
			if index == "" {
				index = "-"
			}
			exported := ""
			if s.Exported {
				exported = "yes"
			}
			line := fmt.Sprintf("%s %-6s %-12s %-14s %-8s %-8s %-10s %s",
				marker, s.SessionTime, s.TrainerName, s.MemberName,
				sessionType, index,
				theme.StatusStyle(string(s.SessionStatus)).Render(string(s.SessionStatus)),
				theme.MutedStyle.Render(exported))
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if p.confirming {
		if target := p.selected(); target != nil {
			b.WriteString("\n")
			b.WriteString(theme.WarningStyle.Render(fmt.Sprintf(
				"Delete session %s %s / %s? (y/n)",
				target.SessionTime, target.TrainerName, target.MemberName)))
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("←/→ change day • n new • e edit • d delete • r refresh"))
	return b.String()
}
