package services

import (
	"context"
	"time"

	"studioops/internal/cache"
	"studioops/internal/domain"
	"studioops/internal/ports"
)

// Page sizes used by the views. Fetch limits, distinct from the display cap.
const (
	exportListLimit = 20
	memberListLimit = 100
)

// DataService is the single path between the views and the backend: every
// read goes through the query cache, every write through a mutation that
// invalidates the affected keys. One instance is constructed at startup
// and injected by reference everywhere.
type DataService struct {
	backend        ports.Backend
	cache          *cache.Cache
	createExport   *cache.Mutation
	createSession  *cache.Mutation
	dashboardStale time.Duration
	deleteSession  *cache.Mutation
	syncMembers    *cache.Mutation
	syncTickets    *cache.Mutation
	updateSession  *cache.Mutation
}

// NewDataService wires the cache and the resource accessors together. The
// invalidation sets per mutation mirror what each write affects: session
// writes touch every dated session list, syncs touch their cached list
// plus stats, exports touch history and the pending count.
func NewDataService(backend ports.Backend, c *cache.Cache, dashboardStale time.Duration) *DataService {
	if dashboardStale <= 0 {
		dashboardStale = 30 * time.Second
	}

	sessionWrite := cache.MutationConfig{
		InvalidateKeys:     []string{cache.KeyDashboard, cache.KeyExportPending},
		InvalidatePrefixes: []string{cache.KeySessions},
	}

	return &DataService{
		backend: backend,
		cache:   c,
		createExport: cache.NewMutation(c, cache.MutationConfig{
			InvalidateKeys: []string{cache.KeyExports, cache.KeyExportPending, cache.KeyDashboard},
		}),
		createSession:  cache.NewMutation(c, sessionWrite),
		dashboardStale: dashboardStale,
		deleteSession:  cache.NewMutation(c, sessionWrite),
		syncMembers: cache.NewMutation(c, cache.MutationConfig{
			InvalidateKeys: []string{cache.KeyMembers, cache.KeyMemberStats},
		}),
		syncTickets: cache.NewMutation(c, cache.MutationConfig{
			InvalidateKeys: []string{cache.KeyLessonTickets},
		}),
		updateSession: cache.NewMutation(c, sessionWrite),
	}
}

// Cache exposes the underlying cache for subscriptions
func (s *DataService) Cache() *cache.Cache { return s.cache }

// Dashboard reads the dashboard snapshot with its short freshness window
func (s *DataService) Dashboard(ctx context.Context) (*domain.DashboardSnapshot, error) {
	return cache.Get(ctx, s.cache, cache.KeyDashboard, s.backend.Dashboard.Today,
		cache.Options{StaleTime: s.dashboardStale})
}

// DailySessions reads the session list for one calendar date
func (s *DataService) DailySessions(ctx context.Context, date string) ([]domain.SessionRecord, error) {
	return cache.Get(ctx, s.cache, cache.KeySessionsDaily(date), func(ctx context.Context) ([]domain.SessionRecord, error) {
		return s.backend.Sessions.Daily(ctx, date)
	}, cache.Options{})
}

// Trainers reads the distinct trainer names
func (s *DataService) Trainers(ctx context.Context) (*domain.TrainerList, error) {
	return cache.Get(ctx, s.cache, cache.KeyTrainers, s.backend.Sessions.Trainers, cache.Options{})
}

// Members reads the first page of the cached member list
func (s *DataService) Members(ctx context.Context) ([]domain.MemberRecord, error) {
	return cache.Get(ctx, s.cache, cache.KeyMembers, func(ctx context.Context) ([]domain.MemberRecord, error) {
		return s.backend.Members.List(ctx, memberListLimit, 0)
	}, cache.Options{})
}

// MemberStats reads the backend member cache state
func (s *DataService) MemberStats(ctx context.Context) (*domain.MemberStats, error) {
	return cache.Get(ctx, s.cache, cache.KeyMemberStats, s.backend.Members.Stats, cache.Options{})
}

// MemberSearch runs the server-side member search, keyed per query text.
// Callers gate it on SearchActive; short queries never reach the network.
func (s *DataService) MemberSearch(ctx context.Context, query string) (*domain.MemberSearchResponse, error) {
	return cache.Get(ctx, s.cache, cache.KeyMemberSearch(query), func(ctx context.Context) (*domain.MemberSearchResponse, error) {
		return s.backend.Members.Search(ctx, query)
	}, cache.Options{})
}

// LessonTickets reads the cached lesson ticket list
func (s *DataService) LessonTickets(ctx context.Context) ([]domain.LessonTicketRecord, error) {
	return cache.Get(ctx, s.cache, cache.KeyLessonTickets, s.backend.Tickets.List, cache.Options{})
}

// Exports reads the export history
func (s *DataService) Exports(ctx context.Context) (*domain.ExportListResponse, error) {
	return cache.Get(ctx, s.cache, cache.KeyExports, func(ctx context.Context) (*domain.ExportListResponse, error) {
		return s.backend.Exports.List(ctx, exportListLimit)
	}, cache.Options{})
}

// PendingExports reads the not-yet-exported session count
func (s *DataService) PendingExports(ctx context.Context) (*domain.PendingExports, error) {
	return cache.Get(ctx, s.cache, cache.KeyExportPending, s.backend.Exports.Pending, cache.Options{})
}

// TodayStats reads today's session statistics (uncached; only the status
// command uses it)
func (s *DataService) TodayStats(ctx context.Context) (map[string]any, error) {
	return s.backend.Sessions.TodayStats(ctx)
}

// CreateSession logs a new session and invalidates the session lists.
// Validation failures never reach the network.
func (s *DataService) CreateSession(ctx context.Context, payload domain.SessionCreate) (*domain.SessionRecord, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	result, err := s.createSession.Run(ctx, func(ctx context.Context) (any, error) {
		return s.backend.Sessions.Create(ctx, payload)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.SessionRecord), nil
}

// UpdateSession applies a partial update to an existing session
func (s *DataService) UpdateSession(ctx context.Context, id int, payload domain.SessionCreate) (*domain.SessionRecord, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	result, err := s.updateSession.Run(ctx, func(ctx context.Context) (any, error) {
		return s.backend.Sessions.Update(ctx, id, payload)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.SessionRecord), nil
}

// DeleteSession removes a session. Callers confirm with the user first.
func (s *DataService) DeleteSession(ctx context.Context, id int) error {
	_, err := s.deleteSession.Run(ctx, func(ctx context.Context) (any, error) {
		return nil, s.backend.Sessions.Delete(ctx, id)
	})
	return err
}

// SyncMembers triggers a CRM member sync. A failure leaves the cached
// member list and stats untouched.
func (s *DataService) SyncMembers(ctx context.Context) (*domain.SyncResult, error) {
	result, err := s.syncMembers.Run(ctx, func(ctx context.Context) (any, error) {
		return s.backend.Members.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.SyncResult), nil
}

// SyncTickets triggers a CRM lesson ticket sync
func (s *DataService) SyncTickets(ctx context.Context) (map[string]any, error) {
	result, err := s.syncTickets.Run(ctx, func(ctx context.Context) (any, error) {
		return s.backend.Tickets.Sync(ctx)
	})
	if err != nil {
		return nil, err
	}
	out, _ := result.(map[string]any)
	return out, nil
}

// CreateExport runs a new export for the given date range
func (s *DataService) CreateExport(ctx context.Context, req domain.ExportRequest) (*domain.ExportLogRecord, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	result, err := s.createExport.Run(ctx, func(ctx context.Context) (any, error) {
		return s.backend.Exports.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.ExportLogRecord), nil
}

// SessionSaveInFlight reports whether a session create or update is running
func (s *DataService) SessionSaveInFlight() bool {
	return s.createSession.InFlight() || s.updateSession.InFlight()
}

// MemberSyncInFlight reports whether a member sync is running
func (s *DataService) MemberSyncInFlight() bool { return s.syncMembers.InFlight() }

// TicketSyncInFlight reports whether a ticket sync is running
func (s *DataService) TicketSyncInFlight() bool { return s.syncTickets.InFlight() }

// ExportInFlight reports whether an export run is in progress
func (s *DataService) ExportInFlight() bool { return s.createExport.InFlight() }
