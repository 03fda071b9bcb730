package api

import (
	"context"
	"net/http"

	"studioops/internal/domain"
)

// DashboardService reads the server-computed dashboard aggregate
type DashboardService struct {
	rest *restClient
}

// Today fetches the dashboard snapshot. The caller replaces its previous
// value wholesale; nothing is merged client-side.
func (s *DashboardService) Today(ctx context.Context) (*domain.DashboardSnapshot, error) {
	var snapshot domain.DashboardSnapshot
	if err := s.rest.do(ctx, "dashboard", http.MethodGet, "/dashboard/today", nil, nil, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
