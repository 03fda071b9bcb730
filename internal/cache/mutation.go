package cache

import (
	"context"
	"errors"
	"sync"

	"studioops/internal/logging"
)

// Mutation wraps a write operation against the backend. On success it
// invalidates the listed keys (and key prefixes), nothing more: no
// optimistic state is ever applied, so a failure needs no rollback and
// leaves every cached value untouched.
type Mutation struct {
	cache              *Cache
	inFlight           bool
	invalidateKeys     []string
	invalidatePrefixes []string
	mu                 sync.Mutex
	onError            func(error)
	onSuccess          func(any)
}

// MutationConfig declares what a mutation invalidates and its callbacks
type MutationConfig struct {
	InvalidateKeys     []string
	InvalidatePrefixes []string
	OnError            func(error)
	OnSuccess          func(any)
}

// NewMutation creates a mutation bound to the cache it invalidates
func NewMutation(c *Cache, cfg MutationConfig) *Mutation {
	return &Mutation{
		cache:              c,
		invalidateKeys:     cfg.InvalidateKeys,
		invalidatePrefixes: cfg.InvalidatePrefixes,
		onError:            cfg.OnError,
		onSuccess:          cfg.OnSuccess,
	}
}

// InFlight reports whether a run is in progress, for disabling UI controls
func (m *Mutation) InFlight() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inFlight
}

// ErrMutationInFlight reports a trigger dropped because a run is already
// in progress, mirroring disabled UI controls.
var ErrMutationInFlight = errors.New("mutation already in flight")

// Run executes the write and returns its result. Exactly one run is
// allowed at a time.
func (m *Mutation) Run(ctx context.Context, fn func(context.Context) (any, error)) (any, error) {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		logging.Logger.Debug("Mutation already in flight, dropping trigger")
		return nil, ErrMutationInFlight
	}
	m.inFlight = true
	m.mu.Unlock()

	result, err := fn(ctx)

	m.mu.Lock()
	m.inFlight = false
	m.mu.Unlock()

	if err != nil {
		logging.Logger.Warn("Mutation failed", "error", err)
		if m.onError != nil {
			m.onError(err)
		}
		return nil, err
	}

	for _, key := range m.invalidateKeys {
		m.cache.Invalidate(key)
	}
	for _, prefix := range m.invalidatePrefixes {
		m.cache.InvalidatePrefix(prefix)
	}
	if m.onSuccess != nil {
		m.onSuccess(result)
	}
	return result, nil
}
