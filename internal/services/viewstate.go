package services

import (
	"strings"
	"unicode/utf8"

	"studioops/internal/domain"
)

// DisplayLimit caps how many rows a list view renders. It is a display
// cap only; the cache may hold more.
const DisplayLimit = 50

// SearchMinLen is the minimum query length (in runes) before the
// server-side member search is used.
const SearchMinLen = 2

// SearchActive reports whether the query is long enough for server search
func SearchActive(query string) bool {
	return utf8.RuneCountInString(query) >= SearchMinLen
}

// FilterMembers resolves the member list for the current search query.
// With an active query the server search results win; otherwise the full
// cached list renders. The two inputs have different shapes, so both are
// normalized to tagged MemberRow values instead of being coerced.
func FilterMembers(query string, cached []domain.MemberRecord, search *domain.MemberSearchResponse) []domain.MemberRow {
	if SearchActive(query) {
		if search == nil {
			return nil
		}
		rows := make([]domain.MemberRow, 0, len(search.Members))
		for _, m := range search.Members {
			rows = append(rows, m.Row())
		}
		return rows
	}

	rows := make([]domain.MemberRow, 0, len(cached))
	for _, m := range cached {
		rows = append(rows, m.Row())
	}
	return rows
}

// FilterTickets filters cached lesson tickets client-side by substring
// match on member name or trainer name. Tickets have no server search
// endpoint, so this runs for any active query; below the minimum length
// the full cached list renders.
func FilterTickets(query string, tickets []domain.LessonTicketRecord) []domain.LessonTicketRecord {
	if !SearchActive(query) {
		return tickets
	}

	needle := strings.ToLower(query)
	var filtered []domain.LessonTicketRecord
	for _, t := range tickets {
		if strings.Contains(strings.ToLower(t.MemberName), needle) ||
			strings.Contains(strings.ToLower(t.TrainerName), needle) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// CapRows truncates a list to the display limit
func CapRows[T any](rows []T) []T {
	if len(rows) > DisplayLimit {
		return rows[:DisplayLimit]
	}
	return rows
}

// SeedSessionForm builds the initial form fields. An editing target seeds
// every field from the record; otherwise structural defaults apply. A
// target switch goes through here again, so no field survives from a
// previous edit.
func SeedSessionForm(editing *domain.SessionRecord, selectedDate string) domain.SessionCreate {
	if editing == nil {
		return domain.SessionCreate{
			SessionDate:   selectedDate,
			SessionStatus: domain.StatusCompleted,
			SessionType:   "PT",
		}
	}

	return domain.SessionCreate{
		IsEvent:          editing.IsEvent,
		MemberKey:        editing.MemberKey,
		MemberName:       editing.MemberName,
		Note:             editing.Note,
		RegistrationType: editing.RegistrationType,
		SessionDate:      editing.SessionDate,
		SessionIndex:     editing.SessionIndex,
		SessionStatus:    editing.SessionStatus,
		SessionTime:      editing.SessionTime,
		SessionType:      editing.SessionType,
	}
}
