package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studioops/internal/cache"
	"studioops/internal/logging"
	"studioops/internal/services"
	"studioops/internal/theme"
)

type uiState int

const (
	statePages uiState = iota
	stateSessionForm
	stateExportForm
)

type page int

const (
	pageDashboard page = iota
	pageSessions
	pageMembers
	pageExports
	pageCount
)

var pageNames = [pageCount]string{"Dashboard", "Sessions", "Members", "Exports"}

// Model is the root Bubble Tea model. It owns only presentation state;
// all data flows through the injected DataService and its query cache.
type Model struct {
	active       page
	dashboard    *DashboardPage
	data         *services.DataService
	downloads    *services.DownloadService
	errorManager *ErrorManager
	exportForm   *ExportForm
	exports      *ExportsPage
	height       int
	keys         KeyMap
	members      *MembersPage
	refreshCh    <-chan cacheRefreshMsg
	sessionForm  *SessionForm
	sessions     *SessionsPage
	state        uiState
	unsubscribe  func()
	width        int
}

// NewModel wires the pages to the shared services
func NewModel(data *services.DataService, downloads *services.DownloadService, errorClearDelay time.Duration) *Model {
	keys := NewKeyMap()

	// The TUI holds a subscription on every key it renders; transitions
	// after an invalidation come back through this channel
	refreshCh, unsubscribe := subscribeKeys(data.Cache(), []string{
		cache.KeyDashboard,
		cache.KeyExportPending,
		cache.KeyExports,
		cache.KeyLessonTickets,
		cache.KeyMemberStats,
		cache.KeyMembers,
	})

	return &Model{
		dashboard:    NewDashboardPage(data),
		data:         data,
		downloads:    downloads,
		errorManager: NewErrorManager(errorClearDelay),
		exports:      NewExportsPage(data, downloads, keys),
		keys:         keys,
		members:      NewMembersPage(data, keys),
		refreshCh:    refreshCh,
		sessions:     NewSessionsPage(data, keys),
		state:        statePages,
		unsubscribe:  unsubscribe,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashboard.init(),
		m.sessions.init(),
		m.members.init(),
		m.exports.init(),
		waitForRefresh(m.refreshCh),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width
		return m, nil
	case clearErrorMsg:
		m.errorManager.Clear()
		return m, nil
	case cacheRefreshMsg:
		// A subscribed key resolved after an invalidation; re-read it so
		// the page state catches up, then re-arm the wait
		return m, tea.Batch(m.refreshForKey(msg.key), waitForRefresh(m.refreshCh))
	}

	switch m.state {
	case stateSessionForm:
		return m.updateSessionForm(msg)
	case stateExportForm:
		return m.updateExportForm(msg)
	}
	return m.updatePages(msg)
}

func (m *Model) updatePages(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionSavedMsg:
		if msg.err != nil {
			return m, m.errorManager.SetError(fmt.Errorf("save session: %w", msg.err))
		}
		// Dated session lists have no standing subscription, so the page
		// reloads explicitly after a write
		return m, m.sessions.refresh()
	case sessionDeletedMsg:
		if msg.err != nil {
			return m, m.errorManager.SetError(fmt.Errorf("delete session: %w", msg.err))
		}
		return m, m.sessions.refresh()
	case syncDoneMsg:
		if msg.err != nil {
			return m, m.errorManager.SetError(fmt.Errorf("sync %s: %w", msg.what, msg.err))
		}
		return m, nil
	case exportCreatedMsg:
		if msg.err != nil {
			return m, m.errorManager.SetError(fmt.Errorf("create export: %w", msg.err))
		}
		return m, nil
	case downloadDoneMsg:
		if msg.err != nil {
			return m, m.errorManager.SetError(fmt.Errorf("download export: %w", msg.err))
		}
		return m, m.exports.update(msg)

	case dashboardLoadedMsg, dashboardTickMsg:
		if loaded, ok := msg.(dashboardLoadedMsg); ok && loaded.err != nil {
			return m, tea.Batch(m.dashboard.update(msg), m.errorManager.SetError(loaded.err))
		}
		return m, m.dashboard.update(msg)
	case sessionsLoadedMsg:
		if msg.err != nil {
			return m, tea.Batch(m.sessions.update(msg), m.errorManager.SetError(msg.err))
		}
		return m, m.sessions.update(msg)
	case trainersLoadedMsg:
		return m, m.sessions.update(msg)
	case membersLoadedMsg, memberStatsLoadedMsg, memberSearchLoadedMsg, ticketsLoadedMsg:
		return m, m.members.update(msg)
	case exportsLoadedMsg, pendingLoadedMsg:
		return m, m.exports.update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The focused search box swallows everything except its exit keys
	if m.active == pageMembers {
		if cmd, handled := m.members.handleKey(msg); handled {
			return m, cmd
		}
	}

	switch {
	case keyMatches(msg, m.keys.Quit):
		m.unsubscribe()
		return m, tea.Quit
	case keyMatches(msg, m.keys.NextTab):
		m.active = (m.active + 1) % pageCount
		return m, nil
	case keyMatches(msg, m.keys.Refresh):
		return m, m.refreshActive()
	}

	switch m.active {
	case pageSessions:
		switch {
		case keyMatches(msg, m.keys.New):
			m.sessionForm = NewSessionForm(nil, m.sessions.dateString(), m.sessions.trainers)
			m.state = stateSessionForm
			return m, m.sessionForm.Init()
		case keyMatches(msg, m.keys.Edit):
			target := m.sessions.selected()
			if target == nil {
				return m, nil
			}
			m.sessionForm = NewSessionForm(target, m.sessions.dateString(), m.sessions.trainers)
			m.state = stateSessionForm
			return m, m.sessionForm.Init()
		}
		if cmd, handled := m.sessions.handleKey(msg); handled {
			return m, cmd
		}
	case pageExports:
		if keyMatches(msg, m.keys.Export) {
			m.exportForm = NewExportForm(time.Now())
			m.state = stateExportForm
			return m, m.exportForm.Init()
		}
		if cmd, handled := m.exports.handleKey(msg); handled {
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateSessionForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.sessionForm.Update(msg)
	if !m.sessionForm.Done() {
		return m, cmd
	}

	form := m.sessionForm
	m.sessionForm = nil
	m.state = statePages
	if form.Aborted() {
		return m, cmd
	}

	payload := form.Payload()
	if err := payload.Validate(); err != nil {
		// Validation failures never reach the network
		return m, tea.Batch(cmd, m.errorManager.SetError(err))
	}
	logging.Logger.Debug("Submitting session form", "editing", form.Editing() != nil)
	return m, tea.Batch(cmd, saveSession(m.data, form.Editing(), payload))
}

func (m *Model) updateExportForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.exportForm.Update(msg)
	if !m.exportForm.Done() {
		return m, cmd
	}

	form := m.exportForm
	m.exportForm = nil
	m.state = statePages
	if form.Aborted() {
		return m, cmd
	}

	req := form.Request()
	if err := req.Validate(); err != nil {
		return m, tea.Batch(cmd, m.errorManager.SetError(err))
	}
	return m, tea.Batch(cmd, createExport(m.data, req))
}

// refreshForKey re-issues the read command backing a cache key
func (m *Model) refreshForKey(key string) tea.Cmd {
	switch key {
	case cache.KeyDashboard:
		return loadDashboard(m.data)
	case cache.KeyExportPending:
		return loadPending(m.data)
	case cache.KeyExports:
		return loadExports(m.data)
	case cache.KeyLessonTickets:
		return loadTickets(m.data)
	case cache.KeyMemberStats:
		return loadMemberStats(m.data)
	case cache.KeyMembers:
		return loadMembers(m.data)
	}
	return nil
}

func (m *Model) refreshActive() tea.Cmd {
	switch m.active {
	case pageDashboard:
		return m.dashboard.refresh()
	case pageSessions:
		return m.sessions.refresh()
	case pageMembers:
		return m.members.refresh()
	case pageExports:
		return m.exports.refresh()
	}
	return nil
}

func (m *Model) View() string {
	switch m.state {
	case stateSessionForm:
		return m.sessionForm.View()
	case stateExportForm:
		return m.exportForm.View()
	}

	tabs := ""
	for i := page(0); i < pageCount; i++ {
		label := pageNames[i]
		if i == m.active {
			tabs += theme.TabActiveStyle.Render(label)
		} else {
			tabs += theme.TabStyle.Render(label)
		}
		if i < pageCount-1 {
			tabs += "  "
		}
	}

	var body string
	switch m.active {
	case pageDashboard:
		body = m.dashboard.view()
	case pageSessions:
		body = m.sessions.view()
	case pageMembers:
		body = m.members.view()
	case pageExports:
		body = m.exports.view()
	}

	out := tabs + "\n" + body
	if errView := m.errorManager.View(); errView != "" {
		out += "\n" + errView
	}
	out += "\n" + theme.HelpStyle.Render("tab switch page • q quit")
	return out
}
