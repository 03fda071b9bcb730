package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studioops/internal/domain"
)

func TestSearchActive(t *testing.T) {
	assert.False(t, SearchActive(""))
	assert.False(t, SearchActive("a"))
	assert.True(t, SearchActive("an"))
	assert.True(t, SearchActive("anna"))
	// Rune count, not byte count
	assert.False(t, SearchActive("김"))
	assert.True(t, SearchActive("김민"))
}

func TestFilterMembers_ShortQueryRendersCachedList(t *testing.T) {
	cached := []domain.MemberRecord{
		{JgjmKey: 1, Name: "Anna", TrainerName: "Kim"},
		{JgjmKey: 2, Name: "Bob"},
	}
	search := &domain.MemberSearchResponse{
		Members: []domain.MemberSearchResult{{JgjmKey: 9, Name: "Someone Else"}},
	}

	rows := FilterMembers("a", cached, search)
	require.Len(t, rows, 2)
	assert.Equal(t, "Anna", rows[0].Name)
	assert.Equal(t, domain.RowFromCache, rows[0].Source)
}

func TestFilterMembers_ActiveQueryUsesServerResults(t *testing.T) {
	cached := []domain.MemberRecord{{JgjmKey: 1, Name: "Anna"}}
	search := &domain.MemberSearchResponse{
		Members: []domain.MemberSearchResult{{JgjmKey: 3, Name: "Andy", Phone: "010-1234"}},
	}

	rows := FilterMembers("an", cached, search)
	require.Len(t, rows, 1)
	assert.Equal(t, "Andy", rows[0].Name)
	assert.Equal(t, domain.RowFromSearch, rows[0].Source)
}

func TestFilterMembers_ActiveQueryWithoutResultsRendersNothing(t *testing.T) {
	cached := []domain.MemberRecord{{JgjmKey: 1, Name: "Anna"}}

	// Search response not loaded yet: the cached list must not leak through
	rows := FilterMembers("an", cached, nil)
	assert.Empty(t, rows)
}

func TestFilterTickets_MatchesMemberAndTrainerName(t *testing.T) {
	tickets := []domain.LessonTicketRecord{
		{JglessonTicketKey: 1, MemberName: "Anna", TrainerName: "Kim"},
		{JglessonTicketKey: 2, MemberName: "Bob", TrainerName: "Andy"},
		{JglessonTicketKey: 3, MemberName: "Carol", TrainerName: "Kim"},
	}

	filtered := FilterTickets("an", tickets)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Anna", filtered[0].MemberName)
	assert.Equal(t, "Andy", filtered[1].TrainerName)
}

func TestFilterTickets_CaseInsensitive(t *testing.T) {
	tickets := []domain.LessonTicketRecord{
		{MemberName: "ANNA"},
		{MemberName: "bob"},
	}

	filtered := FilterTickets("anna", tickets)
	require.Len(t, filtered, 1)
	assert.Equal(t, "ANNA", filtered[0].MemberName)
}

func TestFilterTickets_ShortQueryReturnsAll(t *testing.T) {
	tickets := []domain.LessonTicketRecord{{MemberName: "Anna"}, {MemberName: "Bob"}}
	assert.Len(t, FilterTickets("a", tickets), 2)
}

func TestCapRows(t *testing.T) {
	rows := make([]domain.MemberRow, 0, DisplayLimit+10)
	for i := 0; i < DisplayLimit+10; i++ {
		rows = append(rows, domain.MemberRow{JgjmKey: i, Name: fmt.Sprintf("m%d", i)})
	}

	capped := CapRows(rows)
	require.Len(t, capped, DisplayLimit)
	assert.Equal(t, 0, capped[0].JgjmKey, "cap keeps list order")

	short := []domain.MemberRow{{JgjmKey: 1}}
	assert.Len(t, CapRows(short), 1)
}

func TestSeedSessionForm_DefaultsForNewSession(t *testing.T) {
	seeded := SeedSessionForm(nil, "2026-08-31")

	assert.Equal(t, "2026-08-31", seeded.SessionDate)
	assert.Equal(t, domain.StatusCompleted, seeded.SessionStatus)
	assert.Equal(t, "PT", seeded.SessionType)
	assert.Empty(t, seeded.MemberName)
	assert.Empty(t, seeded.TrainerName)
}

func TestSeedSessionForm_EditSeedsEveryField(t *testing.T) {
	memberKey := 77
	editing := &domain.SessionRecord{
		ID:               12,
		IsEvent:          true,
		MemberKey:        &memberKey,
		MemberName:       "Anna",
		Note:             "late arrival",
		RegistrationType: "regular",
		SessionDate:      "2026-08-15",
		SessionIndex:     "3/10",
		SessionStatus:    domain.StatusNoShow,
		SessionTime:      "18:00",
		SessionType:      "PT",
		TrainerName:      "Kim",
	}

	seeded := SeedSessionForm(editing, "2026-08-31")

	assert.Equal(t, "2026-08-15", seeded.SessionDate, "edit seeds from the record, not the selected date")
	assert.Equal(t, domain.StatusNoShow, seeded.SessionStatus)
	assert.Equal(t, "Anna", seeded.MemberName)
	assert.Equal(t, &memberKey, seeded.MemberKey)
	assert.Equal(t, "late arrival", seeded.Note)
	assert.Equal(t, "3/10", seeded.SessionIndex)
}

func TestSeedSessionForm_TargetSwitchLeavesNoResidue(t *testing.T) {
	first := &domain.SessionRecord{
		MemberName:    "Anna",
		Note:          "only on the first record",
		SessionDate:   "2026-08-15",
		SessionStatus: domain.StatusCancelled,
		SessionTime:   "10:00",
		TrainerName:   "Kim",
	}
	second := &domain.SessionRecord{
		MemberName:    "Bob",
		SessionDate:   "2026-08-16",
		SessionStatus: domain.StatusCompleted,
		SessionTime:   "11:00",
		TrainerName:   "Lee",
	}

	_ = SeedSessionForm(first, "2026-08-31")
	seeded := SeedSessionForm(second, "2026-08-31")

	assert.Equal(t, "Bob", seeded.MemberName)
	assert.Empty(t, seeded.Note, "no field survives from the previous target")
	assert.Equal(t, domain.StatusCompleted, seeded.SessionStatus)
}
