package api

import (
	"context"
	"net/http"

	"studioops/internal/domain"
)

// LessonTicketService covers the read-only lesson ticket cache and its
// sync trigger. Tickets have no server-side search; filtering is client-side.
type LessonTicketService struct {
	rest *restClient
}

// List fetches all cached lesson tickets
func (s *LessonTicketService) List(ctx context.Context) ([]domain.LessonTicketRecord, error) {
	var tickets []domain.LessonTicketRecord
	if err := s.rest.do(ctx, "list lesson tickets", http.MethodGet, "/lesson-tickets", nil, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Sync triggers a CRM lesson ticket sync on the backend. The response shape
// is backend-defined.
func (s *LessonTicketService) Sync(ctx context.Context) (map[string]any, error) {
	var result map[string]any
	if err := s.rest.do(ctx, "lesson ticket sync", http.MethodPost, "/lesson-tickets/sync", nil, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}
