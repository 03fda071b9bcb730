package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"studioops/internal/domain"
	"studioops/internal/services"
	"studioops/internal/theme"
)

type memberTab int

const (
	tabMembers memberTab = iota
	tabTickets
)

// MembersPage shows the synced member and lesson ticket caches behind one
// shared search box. Members use the server search once the query is long
// enough; tickets are always filtered client-side, because the backend has
// no ticket search endpoint.
type MembersPage struct {
	data           *services.DataService
	keys           KeyMap
	loadingMembers bool
	loadingTickets bool
	members        []domain.MemberRecord
	search         textinput.Model
	searchFocused  bool
	searchResult   *domain.MemberSearchResponse
	stats          *domain.MemberStats
	tab            memberTab
	tickets        []domain.LessonTicketRecord
}

// NewMembersPage creates the members page
func NewMembersPage(data *services.DataService, keys KeyMap) *MembersPage {
	search := textinput.New()
	search.Placeholder = "member or trainer name"
	search.CharLimit = 64
	search.Width = 32

	return &MembersPage{
		data:           data,
		keys:           keys,
		loadingMembers: true,
		loadingTickets: true,
		search:         search,
	}
}

func (p *MembersPage) init() tea.Cmd {
	return tea.Batch(
		loadMembers(p.data),
		loadMemberStats(p.data),
		loadTickets(p.data),
	)
}

func (p *MembersPage) refresh() tea.Cmd {
	return tea.Batch(loadMembers(p.data), loadMemberStats(p.data), loadTickets(p.data))
}

func (p *MembersPage) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case membersLoadedMsg:
		p.loadingMembers = false
		if msg.err == nil {
			p.members = msg.members
		}
		return nil
	case memberStatsLoadedMsg:
		if msg.err == nil {
			p.stats = msg.stats
		}
		return nil
	case memberSearchLoadedMsg:
		// A result for text the user has already changed is not applied
		if msg.query != p.search.Value() {
			return nil
		}
		if msg.err == nil {
			p.searchResult = msg.result
		}
		return nil
	case ticketsLoadedMsg:
		p.loadingTickets = false
		if msg.err == nil {
			p.tickets = msg.tickets
		}
		return nil
	}
	return nil
}

// handleKey routes keys. While the search box is focused every printable
// key belongs to it; escape or enter returns focus to the list.
func (p *MembersPage) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	if p.searchFocused {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			p.searchFocused = false
			p.search.Blur()
			return nil, true
		}
		var inputCmd tea.Cmd
		p.search, inputCmd = p.search.Update(msg)
		query := p.search.Value()
		if services.SearchActive(query) {
			return tea.Batch(inputCmd, loadMemberSearch(p.data, query)), true
		}
		p.searchResult = nil
		return inputCmd, true
	}

	switch {
	case keyMatches(msg, p.keys.Search):
		p.searchFocused = true
		return p.search.Focus(), true
	case keyMatches(msg, p.keys.SubTab):
		if p.tab == tabMembers {
			p.tab = tabTickets
		} else {
			p.tab = tabMembers
		}
		return nil, true
	case keyMatches(msg, p.keys.Sync):
		if p.data.MemberSyncInFlight() {
			return nil, true
		}
		return syncMembers(p.data), true
	case keyMatches(msg, p.keys.SyncOther):
		if p.data.TicketSyncInFlight() {
			return nil, true
		}
		return syncTickets(p.data), true
	}
	return nil, false
}

func (p *MembersPage) view() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render("Members / Lesson Tickets"))
	b.WriteString("\n")

	if p.stats != nil {
		syncedAt := "never"
		if p.stats.SyncedAt != nil {
			syncedAt = *p.stats.SyncedAt
		}
		b.WriteString(fmt.Sprintf("%s %d cached members, %d active tickets, last sync %s\n",
			theme.HeaderStyle.Render("CRM cache:"),
			p.stats.Total, len(p.tickets),
			theme.MutedStyle.Render(syncedAt)))
	}

	b.WriteString(fmt.Sprintf("Search: %s\n", p.search.View()))

	memberLabel := theme.TabStyle.Render("Members")
	ticketLabel := theme.TabStyle.Render("Tickets")
	if p.tab == tabMembers {
		memberLabel = theme.TabActiveStyle.Render("Members")
	} else {
		ticketLabel = theme.TabActiveStyle.Render("Tickets")
	}
	b.WriteString(memberLabel + "  " + ticketLabel + "\n\n")

	query := p.search.Value()
	if p.tab == tabMembers {
		b.WriteString(p.memberTable(query))
	} else {
		b.WriteString(p.ticketTable(query))
	}

	syncNote := ""
	if p.data.MemberSyncInFlight() {
		syncNote = " • member sync running..."
	}
	if p.data.TicketSyncInFlight() {
		syncNote += " • ticket sync running..."
	}
	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("/ search • t switch tab • s sync members • S sync tickets" + syncNote))
	return b.String()
}

func (p *MembersPage) memberTable(query string) string {
	if p.loadingMembers {
		return theme.MutedStyle.Render("Loading members...")
	}

	rows := services.CapRows(services.FilterMembers(query, p.members, p.searchResult))
	if len(rows) == 0 {
		if query != "" {
			return theme.MutedStyle.Render("No matching members.")
		}
		return theme.MutedStyle.Render("No member data. Run a sync first.")
	}

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render(fmt.Sprintf("%-16s %-14s %-12s %s",
		"NAME", "PHONE", "TRAINER", "PT LEFT")))
	b.WriteString("\n")
	for _, m := range rows {
		phone := m.Phone
		if phone == "" {
			phone = "-"
		}
		trainer := m.TrainerName
		if trainer == "" {
			trainer = "-"
		}
		ptLeft := "-"
		if m.PTRemaining != nil {
			ptLeft = fmt.Sprintf("%d", *m.PTRemaining)
		}
		b.WriteString(fmt.Sprintf("%-16s %-14s %-12s %s\n", m.Name, phone, trainer, ptLeft))
	}
	return b.String()
}

func (p *MembersPage) ticketTable(query string) string {
	if p.loadingTickets {
		return theme.MutedStyle.Render("Loading lesson tickets...")
	}

	rows := services.CapRows(services.FilterTickets(query, p.tickets))
	if len(rows) == 0 {
		if query != "" {
			return theme.MutedStyle.Render("No matching tickets.")
		}
		return theme.MutedStyle.Render("No ticket data. Run a sync first.")
	}

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render(fmt.Sprintf("%-16s %-12s %-9s %-12s %s",
		"MEMBER", "TICKET", "LEFT/TOT", "TRAINER", "END DATE")))
	b.WriteString("\n")
	for _, t := range rows {
		trainer := t.TrainerName
		if trainer == "" {
			trainer = "-"
		}
		endDate := t.EndDate
		if endDate == "" {
			endDate = "-"
		}
		b.WriteString(fmt.Sprintf("%-16s %-12s %4d/%-4d %-12s %s\n",
			t.MemberName, t.TicketType, t.RemainingCount, t.TotalCount, trainer, endDate))
	}
	return b.String()
}
