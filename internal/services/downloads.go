package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"studioops/internal/domain"
	"studioops/internal/logging"
	"studioops/internal/ports"
)

// DownloadService saves export files locally and keeps a history of what
// was downloaded where.
type DownloadService struct {
	backend ports.ExportAPI
	dir     string
	repo    ports.DownloadRepository
}

// NewDownloadService creates the service; dir is where files land
func NewDownloadService(backend ports.ExportAPI, repo ports.DownloadRepository, dir string) *DownloadService {
	return &DownloadService{backend: backend, dir: dir, repo: repo}
}

// Download streams one export file to disk and records the download. It
// returns the written path.
func (s *DownloadService) Download(ctx context.Context, exportID string) (string, error) {
	if exportID == "" {
		return "", domain.ErrMissingField("export_id")
	}

	body, err := s.backend.Download(ctx, exportID)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s.json", exportID))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	written, err := io.Copy(file, body)
	if closeErr := file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	record := domain.DownloadRecord{
		DownloadedAt: time.Now().UTC(),
		ExportID:     exportID,
		Path:         path,
		SizeBytes:    written,
	}
	if err := s.repo.Record(ctx, record); err != nil {
		// The file is on disk either way; history is best effort
		logging.Logger.Warn("Failed to record download", "export_id", exportID, "error", err)
	}

	logging.Logger.Info("Export downloaded",
		"export_id", exportID,
		"path", path,
		"bytes", written)
	return path, nil
}

// History lists past downloads, newest first
func (s *DownloadService) History(ctx context.Context) ([]domain.DownloadRecord, error) {
	return s.repo.List(ctx)
}
