package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"studioops/internal/domain"
)

// MemberService covers the read-only member cache and its sync trigger
type MemberService struct {
	rest *restClient
}

// List fetches a page of cached members
func (s *MemberService) List(ctx context.Context, limit, offset int) ([]domain.MemberRecord, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	var members []domain.MemberRecord
	if err := s.rest.do(ctx, "list members", http.MethodGet, "/members", query, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Search runs the server-side member search. The two-character minimum is
// enforced by the composer before this is ever called.
func (s *MemberService) Search(ctx context.Context, q string) (*domain.MemberSearchResponse, error) {
	query := url.Values{}
	query.Set("q", q)

	var result domain.MemberSearchResponse
	if err := s.rest.do(ctx, "member search", http.MethodGet, "/members/search", query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Sync triggers a CRM member sync on the backend
func (s *MemberService) Sync(ctx context.Context) (*domain.SyncResult, error) {
	var result domain.SyncResult
	if err := s.rest.do(ctx, "member sync", http.MethodPost, "/members/sync", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats fetches the state of the backend member cache
func (s *MemberService) Stats(ctx context.Context) (*domain.MemberStats, error) {
	var stats domain.MemberStats
	if err := s.rest.do(ctx, "member stats", http.MethodGet, "/members/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
