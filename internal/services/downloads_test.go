package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studioops/internal/domain"
)

type stubExportAPI struct {
	body        string
	downloadErr error
}

func (s stubExportAPI) List(ctx context.Context, limit int) (*domain.ExportListResponse, error) {
	return &domain.ExportListResponse{}, nil
}

func (s stubExportAPI) Pending(ctx context.Context) (*domain.PendingExports, error) {
	return &domain.PendingExports{}, nil
}

func (s stubExportAPI) Create(ctx context.Context, req domain.ExportRequest) (*domain.ExportLogRecord, error) {
	return nil, errors.New("not implemented")
}

func (s stubExportAPI) Download(ctx context.Context, exportID string) (io.ReadCloser, error) {
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

type memoryDownloadRepo struct {
	recordErr error
	records   []domain.DownloadRecord
}

func (m *memoryDownloadRepo) Record(ctx context.Context, dl domain.DownloadRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, dl)
	return nil
}

func (m *memoryDownloadRepo) List(ctx context.Context) ([]domain.DownloadRecord, error) {
	return m.records, nil
}

func (m *memoryDownloadRepo) Close() error { return nil }

func TestDownload_WritesFileAndRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	repo := &memoryDownloadRepo{}
	svc := NewDownloadService(stubExportAPI{body: `{"sessions":[]}`}, repo, dir)

	path, err := svc.Download(context.Background(), "exp-42")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exp-42.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"sessions":[]}`, string(data))

	require.Len(t, repo.records, 1)
	assert.Equal(t, "exp-42", repo.records[0].ExportID)
	assert.Equal(t, int64(len(`{"sessions":[]}`)), repo.records[0].SizeBytes)
}

func TestDownload_BackendErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	repo := &memoryDownloadRepo{}
	svc := NewDownloadService(stubExportAPI{downloadErr: errors.New("export not found")}, repo, dir)

	_, err := svc.Download(context.Background(), "missing")
	require.ErrorContains(t, err, "export not found")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, repo.records)
}

func TestDownload_EmptyExportIDRejected(t *testing.T) {
	svc := NewDownloadService(stubExportAPI{}, &memoryDownloadRepo{}, t.TempDir())

	_, err := svc.Download(context.Background(), "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestDownload_HistoryFailureIsBestEffort(t *testing.T) {
	dir := t.TempDir()
	repo := &memoryDownloadRepo{recordErr: errors.New("disk full")}
	svc := NewDownloadService(stubExportAPI{body: "x"}, repo, dir)

	path, err := svc.Download(context.Background(), "exp-1")
	require.NoError(t, err, "the file landing on disk is what matters")
	assert.FileExists(t, path)
}
