package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"studioops/internal/logging"
)

// Status is the lifecycle state of a cache entry
type Status int

const (
	StatusPending Status = iota
	StatusResolved
	StatusFailed
)

// Result is what subscribers receive on every entry transition
type Result struct {
	Data   any
	Err    error
	Status Status
}

// Fetcher loads the value for one key from the backend
type Fetcher func(ctx context.Context) (any, error)

// Options tune a single read
type Options struct {
	// StaleTime overrides the cache-wide freshness window for this key.
	// Zero means the default applies.
	StaleTime time.Duration
}

// Cache deduplicates and caches backend reads per key. It is the only
// shared mutable state in the client: constructed once, injected by
// reference, closed at shutdown.
type Cache struct {
	cancel       context.CancelFunc
	closed       bool
	ctx          context.Context
	defaultStale time.Duration
	entries      map[string]*entry
	group        singleflight.Group
	mu           sync.Mutex
	nextSubID    int
}

type entry struct {
	data        any
	err         error
	fetchedAt   time.Time
	fetcher     Fetcher
	generation  uint64
	pendingSent bool
	staleTime   time.Duration
	status      Status
	subscribers map[int]func(Result)
}

// New creates a cache with the given default freshness window
func New(defaultStale time.Duration) *Cache {
	if defaultStale <= 0 {
		defaultStale = 5 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		cancel:       cancel,
		ctx:          ctx,
		defaultStale: defaultStale,
		entries:      make(map[string]*entry),
	}
}

// Close cancels all in-flight fetches and stops the cache. Reads after
// Close fail with the cancellation error.
func (c *Cache) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// Read returns the cached value for key, fetching it when the entry is
// absent or older than its freshness window. Concurrent reads for the same
// key share a single outbound request. A failed fetch is retried once
// before the error surfaces; the error never evicts other keys.
func (c *Cache) Read(ctx context.Context, key string, fetch Fetcher, opts Options) (any, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, context.Canceled
	}

	e := c.ensureEntry(key)
	e.fetcher = fetch
	if opts.StaleTime > 0 {
		e.staleTime = opts.StaleTime
	}

	if e.status == StatusResolved && time.Since(e.fetchedAt) < e.staleTime {
		data := e.data
		c.mu.Unlock()
		return data, nil
	}

	gen := e.generation
	c.mu.Unlock()

	return c.fetchGeneration(ctx, key, gen)
}

// Subscribe registers interest in a key. The callback fires on every
// transition between pending, resolved, and failed. The returned function
// cancels interest: after it runs no further results are delivered, even
// if a fetch is still in flight.
func (c *Cache) Subscribe(key string, fn func(Result)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensureEntry(key)
	c.nextSubID++
	id := c.nextSubID
	e.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if e, ok := c.entries[key]; ok {
			delete(e.subscribers, id)
		}
	}
}

// Invalidate marks the entry stale. With active subscribers it triggers
// exactly one background refetch; without, the next Read refetches. A
// response from a fetch issued before the invalidation can no longer be
// stored: newer invalidations win by issue order, not arrival order.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok || c.closed {
		c.mu.Unlock()
		return
	}

	e.generation++
	e.fetchedAt = time.Time{}
	gen := e.generation
	refetch := len(e.subscribers) > 0 && e.fetcher != nil
	c.mu.Unlock()

	logging.Logger.Debug("Cache invalidated", "key", key, "refetch", refetch)

	if refetch {
		go func() {
			if _, err := c.fetchGeneration(c.ctx, key, gen); err != nil {
				logging.Logger.Warn("Refetch after invalidation failed", "key", key, "error", err)
			}
		}()
	}
}

// InvalidatePrefix invalidates every key with the given prefix. Used for
// parameterized keys like sessions/{date}.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	var keys []string
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.Invalidate(key)
	}
}

// Peek returns the current resolved value without triggering a fetch
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.status != StatusResolved {
		return nil, false
	}
	return e.data, true
}

// ensureEntry must be called with mu held
func (c *Cache) ensureEntry(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{
			staleTime:   c.defaultStale,
			status:      StatusPending,
			subscribers: make(map[int]func(Result)),
		}
		c.entries[key] = e
	}
	return e
}

// fetchGeneration runs the fetch for one (key, generation) pair. The
// generation is part of the singleflight key, so concurrent reads of the
// same generation share one request while an invalidation opens a new slot
// immediately, never piggybacking on a stale in-flight response.
func (c *Cache) fetchGeneration(ctx context.Context, key string, gen uint64) (any, error) {
	flightKey := fmt.Sprintf("%s#%d", key, gen)

	// Subscribers see one pending transition per fetch episode, not one
	// per reader joining the flight
	c.mu.Lock()
	e, ok := c.entries[key]
	sendPending := ok && !e.pendingSent
	if sendPending {
		e.pendingSent = true
	}
	c.mu.Unlock()
	if sendPending {
		c.notify(key, Result{Status: StatusPending})
	}

	data, err, _ := c.group.Do(flightKey, func() (any, error) {
		c.mu.Lock()
		fetch := c.entries[key].fetcher
		c.mu.Unlock()

		value, err := fetch(ctx)
		if err != nil && ctx.Err() == nil {
			// One automatic retry before the error surfaces
			logging.Logger.Debug("Fetch failed, retrying once", "key", key, "error", err)
			value, err = fetch(ctx)
		}
		return value, err
	})

	c.store(key, gen, data, err)
	return data, err
}

// store applies a fetch outcome unless a newer invalidation superseded it
func (c *Cache) store(key string, gen uint64, data any, err error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	if e.generation != gen {
		// A newer invalidation was issued while this fetch was in flight;
		// its refetch owns the entry now
		c.mu.Unlock()
		logging.Logger.Debug("Discarding stale fetch result", "key", key, "generation", gen)
		return
	}

	e.pendingSent = false
	if err != nil {
		e.err = err
		e.status = StatusFailed
		// Prior resolved data stays in e.data untouched; a later successful
		// refetch replaces it
	} else {
		e.data = data
		e.err = nil
		e.fetchedAt = time.Now()
		e.status = StatusResolved
	}
	result := Result{Data: e.data, Err: e.err, Status: e.status}
	c.mu.Unlock()

	c.notify(key, result)
}

// notify delivers a transition to current subscribers, outside the lock
func (c *Cache) notify(key string, result Result) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	fns := make([]func(Result), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(result)
	}
}

// Get is the typed convenience wrapper around Read
func Get[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error), opts Options) (T, error) {
	data, err := c.Read(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}, opts)
	if err != nil {
		var zero T
		return zero, err
	}
	value, ok := data.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %s holds %T, not the requested type", key, data)
	}
	return value, nil
}
