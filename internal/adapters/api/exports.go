package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"studioops/internal/domain"
)

// ExportService covers export runs and their file downloads
type ExportService struct {
	rest *restClient
}

// List fetches the export history, newest first
func (s *ExportService) List(ctx context.Context, limit int) (*domain.ExportListResponse, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp domain.ExportListResponse
	if err := s.rest.do(ctx, "list exports", http.MethodGet, "/exports", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pending reports how many sessions have not been exported yet
func (s *ExportService) Pending(ctx context.Context) (*domain.PendingExports, error) {
	var pending domain.PendingExports
	if err := s.rest.do(ctx, "pending exports", http.MethodGet, "/exports/pending", nil, nil, &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

// Create runs a new export for the given date range. Validation runs before
// any request is issued.
func (s *ExportService) Create(ctx context.Context, req domain.ExportRequest) (*domain.ExportLogRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var record domain.ExportLogRecord
	if err := s.rest.do(ctx, "create export", http.MethodPost, "/exports", nil, req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Download streams the export file. The caller owns closing the reader.
func (s *ExportService) Download(ctx context.Context, exportID string) (io.ReadCloser, error) {
	path := fmt.Sprintf("/exports/%s/download", url.PathEscape(exportID))
	return s.rest.stream(ctx, "download export", path)
}
