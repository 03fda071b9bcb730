package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"studioops/internal/domain"
)

// SessionService covers training session reads and writes
type SessionService struct {
	rest *restClient
}

// List fetches sessions with optional date and trainer filters
func (s *SessionService) List(ctx context.Context, date, trainer string) ([]domain.SessionRecord, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	if trainer != "" {
		query.Set("trainer", trainer)
	}

	var sessions []domain.SessionRecord
	if err := s.rest.do(ctx, "list sessions", http.MethodGet, "/sessions", query, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Daily fetches all sessions logged for one calendar date
func (s *SessionService) Daily(ctx context.Context, date string) ([]domain.SessionRecord, error) {
	var sessions []domain.SessionRecord
	path := fmt.Sprintf("/sessions/daily/%s", url.PathEscape(date))
	if err := s.rest.do(ctx, "daily sessions", http.MethodGet, path, nil, nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Trainers fetches the distinct trainer names known to the backend
func (s *SessionService) Trainers(ctx context.Context) (*domain.TrainerList, error) {
	var list domain.TrainerList
	if err := s.rest.do(ctx, "trainers", http.MethodGet, "/sessions/trainers", nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Create logs a new session. Validation runs before any request is issued.
func (s *SessionService) Create(ctx context.Context, payload domain.SessionCreate) (*domain.SessionRecord, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	var record domain.SessionRecord
	if err := s.rest.do(ctx, "create session", http.MethodPost, "/sessions", nil, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update applies a partial update to an existing session
func (s *SessionService) Update(ctx context.Context, id int, payload domain.SessionCreate) (*domain.SessionRecord, error) {
	var record domain.SessionRecord
	path := fmt.Sprintf("/sessions/%d", id)
	if err := s.rest.do(ctx, "update session", http.MethodPut, path, nil, payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a session by id
func (s *SessionService) Delete(ctx context.Context, id int) error {
	path := fmt.Sprintf("/sessions/%d", id)
	return s.rest.do(ctx, "delete session", http.MethodDelete, path, nil, nil, nil)
}

// TodayStats fetches today's session statistics. The shape is owned by the
// backend, so it stays an open map.
func (s *SessionService) TodayStats(ctx context.Context) (map[string]any, error) {
	var stats map[string]any
	if err := s.rest.do(ctx, "today stats", http.MethodGet, "/sessions/stats/today", nil, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
