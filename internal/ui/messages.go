package ui

import (
	"studioops/internal/domain"
)

// Data load messages. Each fetch command resolves to exactly one of these;
// the page that issued it applies the payload or the error, never both.

type dashboardLoadedMsg struct {
	err      error
	snapshot *domain.DashboardSnapshot
}

type sessionsLoadedMsg struct {
	date     string
	err      error
	sessions []domain.SessionRecord
}

type trainersLoadedMsg struct {
	err      error
	trainers []string
}

type membersLoadedMsg struct {
	err     error
	members []domain.MemberRecord
}

type memberStatsLoadedMsg struct {
	err   error
	stats *domain.MemberStats
}

type memberSearchLoadedMsg struct {
	err    error
	query  string
	result *domain.MemberSearchResponse
}

type ticketsLoadedMsg struct {
	err     error
	tickets []domain.LessonTicketRecord
}

type exportsLoadedMsg struct {
	err     error
	exports []domain.ExportLogRecord
}

type pendingLoadedMsg struct {
	err     error
	pending *domain.PendingExports
}

// Mutation outcome messages

type sessionSavedMsg struct {
	err error
}

type sessionDeletedMsg struct {
	err error
}

type syncDoneMsg struct {
	err  error
	what string // "members" or "tickets"
}

type exportCreatedMsg struct {
	err    error
	record *domain.ExportLogRecord
}

type downloadDoneMsg struct {
	err  error
	path string
}

// Timing and cache messages

// dashboardTickMsg fires the periodic dashboard refresh
type dashboardTickMsg struct{}

// cacheRefreshMsg reports that a subscribed cache key transitioned, so the
// active page should re-read it
type cacheRefreshMsg struct {
	key string
}

// clearErrorMsg clears the error bar after the configured delay
type clearErrorMsg struct{}
