package ports

import (
	"context"

	"studioops/internal/domain"
)

// DownloadRepository persists the local history of export file downloads
type DownloadRepository interface {
	Record(ctx context.Context, dl domain.DownloadRecord) error
	List(ctx context.Context) ([]domain.DownloadRecord, error)
	Close() error
}
