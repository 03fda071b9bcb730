package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationRun_InvalidatesOnSuccess(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var fetches int32
	fetch := func(ctx context.Context) (any, error) {
		return int(atomic.AddInt32(&fetches, 1)), nil
	}
	for _, key := range []string{"dashboard", "sessions/2026-08-31"} {
		_, err := c.Read(context.Background(), key, fetch, Options{})
		require.NoError(t, err)
	}

	var succeeded any
	m := NewMutation(c, MutationConfig{
		InvalidateKeys:     []string{"dashboard"},
		InvalidatePrefixes: []string{"sessions"},
		OnSuccess:          func(result any) { succeeded = result },
	})

	result, err := m.Run(context.Background(), func(ctx context.Context) (any, error) {
		return "created", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "created", result)
	assert.Equal(t, "created", succeeded)

	// Both entries were invalidated; the next reads refetch
	_, err = c.Read(context.Background(), "dashboard", fetch, Options{})
	require.NoError(t, err)
	_, err = c.Read(context.Background(), "sessions/2026-08-31", fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&fetches))
}

func TestMutationRun_FailureLeavesCacheUntouched(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var fetches int32
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&fetches, 1)
		return "cached", nil
	}
	_, err := c.Read(context.Background(), "members", fetch, Options{})
	require.NoError(t, err)

	var failed error
	m := NewMutation(c, MutationConfig{
		InvalidateKeys: []string{"members"},
		OnError:        func(err error) { failed = err },
	})

	writeErr := errors.New("backend rejected")
	_, err = m.Run(context.Background(), func(ctx context.Context) (any, error) {
		return nil, writeErr
	})
	require.ErrorIs(t, err, writeErr)
	assert.ErrorIs(t, failed, writeErr)

	// No invalidation happened: the entry is still fresh
	value, err := c.Read(context.Background(), "members", fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, "cached", value)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))
}

func TestMutationRun_RejectsConcurrentRun(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	m := NewMutation(c, MutationConfig{})

	release := make(chan struct{})
	firstDone := make(chan error, 1)
	go func() {
		_, err := m.Run(context.Background(), func(ctx context.Context) (any, error) {
			<-release
			return nil, nil
		})
		firstDone <- err
	}()

	require.Eventually(t, m.InFlight, time.Second, time.Millisecond)

	_, err := m.Run(context.Background(), func(ctx context.Context) (any, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrMutationInFlight)

	close(release)
	require.NoError(t, <-firstDone)
	assert.False(t, m.InFlight())
}
