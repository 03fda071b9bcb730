package ports

import (
	"context"
	"io"

	"studioops/internal/domain"
)

// DashboardAPI reads the server-computed dashboard aggregate
type DashboardAPI interface {
	Today(ctx context.Context) (*domain.DashboardSnapshot, error)
}

// SessionAPI covers training session reads and writes
type SessionAPI interface {
	List(ctx context.Context, date, trainer string) ([]domain.SessionRecord, error)
	Daily(ctx context.Context, date string) ([]domain.SessionRecord, error)
	Trainers(ctx context.Context) (*domain.TrainerList, error)
	Create(ctx context.Context, payload domain.SessionCreate) (*domain.SessionRecord, error)
	Update(ctx context.Context, id int, payload domain.SessionCreate) (*domain.SessionRecord, error)
	Delete(ctx context.Context, id int) error
	TodayStats(ctx context.Context) (map[string]any, error)
}

// MemberAPI covers the read-only member cache and its sync trigger
type MemberAPI interface {
	List(ctx context.Context, limit, offset int) ([]domain.MemberRecord, error)
	Search(ctx context.Context, query string) (*domain.MemberSearchResponse, error)
	Sync(ctx context.Context) (*domain.SyncResult, error)
	Stats(ctx context.Context) (*domain.MemberStats, error)
}

// LessonTicketAPI covers the read-only lesson ticket cache and its sync trigger
type LessonTicketAPI interface {
	List(ctx context.Context) ([]domain.LessonTicketRecord, error)
	Sync(ctx context.Context) (map[string]any, error)
}

// ExportAPI covers export runs and their downloads
type ExportAPI interface {
	List(ctx context.Context, limit int) (*domain.ExportListResponse, error)
	Pending(ctx context.Context) (*domain.PendingExports, error)
	Create(ctx context.Context, req domain.ExportRequest) (*domain.ExportLogRecord, error)
	Download(ctx context.Context, exportID string) (io.ReadCloser, error)
}

// Backend bundles one accessor per backend resource. Kept as a struct of
// interfaces because several resources share method names (List).
type Backend struct {
	Dashboard DashboardAPI
	Exports   ExportAPI
	Members   MemberAPI
	Sessions  SessionAPI
	Tickets   LessonTicketAPI
}
