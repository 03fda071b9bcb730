package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStatus_Valid(t *testing.T) {
	tests := []struct {
		status   SessionStatus
		expected bool
	}{
		{StatusCompleted, true},
		{StatusCancelled, true},
		{StatusNoShow, true},
		{StatusPayment, true},
		{"", false},
		{"done", false},
		{"COMPLETED", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.Valid())
		})
	}
}

func TestSessionCreate_Validate(t *testing.T) {
	valid := SessionCreate{
		MemberName:  "Anna",
		SessionDate: "2026-08-31",
		SessionTime: "18:00",
		TrainerName: "Kim",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*SessionCreate)
		field  string
	}{
		{"missing date", func(c *SessionCreate) { c.SessionDate = "" }, "session_date"},
		{"missing time", func(c *SessionCreate) { c.SessionTime = "" }, "session_time"},
		{"missing trainer", func(c *SessionCreate) { c.TrainerName = "" }, "trainer_name"},
		{"missing member", func(c *SessionCreate) { c.MemberName = "" }, "member_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := valid
			tt.mutate(&payload)
			err := payload.Validate()
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestSessionCreate_ValidateRejectsUnknownStatus(t *testing.T) {
	payload := SessionCreate{
		MemberName:    "Anna",
		SessionDate:   "2026-08-31",
		SessionStatus: "archived",
		SessionTime:   "18:00",
		TrainerName:   "Kim",
	}
	assert.ErrorIs(t, payload.Validate(), ErrInvalidStatus)
}

func TestExportRequest_Validate(t *testing.T) {
	assert.NoError(t, ExportRequest{StartDate: "2026-08-01", EndDate: "2026-08-31"}.Validate())
	assert.Error(t, ExportRequest{EndDate: "2026-08-31"}.Validate())
	assert.Error(t, ExportRequest{StartDate: "2026-08-01"}.Validate())
}

func TestMemberRow_TaggedBySource(t *testing.T) {
	pt := 5
	cached := MemberRecord{
		JgjmKey:     10,
		Name:        "Anna",
		Phone:       "010-1234",
		PTRemaining: &pt,
		TrainerName: "Kim",
	}
	search := MemberSearchResult{
		JgjmKey:     10,
		Name:        "Anna",
		Phone:       "010-1234",
		PTRemaining: &pt,
		TrainerName: "Kim",
	}

	fromCache := cached.Row()
	fromSearch := search.Row()

	assert.Equal(t, RowFromCache, fromCache.Source)
	assert.Equal(t, RowFromSearch, fromSearch.Source)

	// Apart from the source tag, the shapes collapse identically
	fromSearch.Source = fromCache.Source
	assert.Equal(t, fromCache, fromSearch)
}

func TestSessionCreate_OmitsEmptyOptionalFields(t *testing.T) {
	payload := SessionCreate{
		MemberName:  "Anna",
		SessionDate: "2026-08-31",
		SessionTime: "18:00",
		TrainerName: "Kim",
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "note")
	assert.NotContains(t, fields, "member_key")
	assert.NotContains(t, fields, "session_status")
	assert.Contains(t, fields, "member_name")
}
