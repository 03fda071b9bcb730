package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_FetchesOnceAndServesFreshHits(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	}

	first, err := c.Read(context.Background(), "members", fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, "value", first)

	second, err := c.Read(context.Background(), "members", fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, "value", second)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "fresh hit should not refetch")
}

func TestRead_ConcurrentReadsShareOneFetch(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var calls int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 42, nil
	}

	const readers = 8
	results := make([]any, readers)
	errs := make([]error, readers)

	var started, done sync.WaitGroup
	started.Add(readers)
	done.Add(readers)
	for i := 0; i < readers; i++ {
		go func(i int) {
			started.Done()
			results[i], errs[i] = c.Read(context.Background(), "dashboard", fetch, Options{})
			done.Done()
		}(i)
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond) // let all readers reach the flight
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "all readers should share one request")
	for i := 0; i < readers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 42, results[i])
	}
}

func TestRead_ConcurrentReadersNotifyPendingOnce(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var pendingSeen, resolvedSeen int32
	unsubscribe := c.Subscribe("sessions", func(r Result) {
		switch r.Status {
		case StatusPending:
			atomic.AddInt32(&pendingSeen, 1)
		case StatusResolved:
			atomic.AddInt32(&resolvedSeen, 1)
		}
	})
	defer unsubscribe()

	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		<-release
		return "rows", nil
	}

	const readers = 8
	var started, done sync.WaitGroup
	started.Add(readers)
	done.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			started.Done()
			_, _ = c.Read(context.Background(), "sessions", fetch, Options{})
			done.Done()
		}()
	}

	started.Wait()
	time.Sleep(20 * time.Millisecond) // let all readers reach the flight
	close(release)
	done.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&pendingSeen), "one pending transition per fetch, not per reader")
	assert.Equal(t, int32(1), atomic.LoadInt32(&resolvedSeen))

	// The next fetch episode is a fresh transition
	c.Invalidate("sessions")
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&pendingSeen) == 2
	}, time.Second, 5*time.Millisecond, "refetch after invalidation announces pending again")
}

func TestRead_StaleEntryRefetches(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		return atomic.AddInt32(&calls, 1), nil
	}

	opts := Options{StaleTime: 10 * time.Millisecond}

	first, err := c.Read(context.Background(), "exports", fetch, opts)
	require.NoError(t, err)
	assert.Equal(t, int32(1), first)

	time.Sleep(20 * time.Millisecond)

	second, err := c.Read(context.Background(), "exports", fetch, opts)
	require.NoError(t, err)
	assert.Equal(t, int32(2), second, "entry past its freshness window should refetch")
}

func TestRead_RetriesOnceBeforeFailing(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var calls int32
	fetchErr := errors.New("backend down")
	fetch := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return nil, fetchErr
	}

	_, err := c.Read(context.Background(), "trainers", fetch, Options{})
	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "one automatic retry, then the error surfaces")
}

func TestRead_FailureKeepsPriorResolvedData(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	good := func(ctx context.Context) (any, error) { return "cached", nil }
	bad := func(ctx context.Context) (any, error) { return nil, errors.New("backend down") }
	opts := Options{StaleTime: 10 * time.Millisecond}

	_, err := c.Read(context.Background(), "members", good, opts)
	require.NoError(t, err)

	var failed Result
	unsubscribe := c.Subscribe("members", func(r Result) {
		if r.Status == StatusFailed {
			failed = r
		}
	})
	defer unsubscribe()

	// Let the entry age past its freshness window, then fail the refetch
	time.Sleep(20 * time.Millisecond)
	_, err = c.Read(context.Background(), "members", bad, opts)
	require.Error(t, err)

	assert.Equal(t, "cached", failed.Data, "failed refetch still carries the last good value")
	assert.Error(t, failed.Err)

	_, ok := c.Peek("members")
	assert.False(t, ok, "failed entry no longer counts as resolved")
}

func TestInvalidate_WithSubscriberTriggersOneRefetch(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	resolved := make(chan Result, 8)
	unsubscribe := c.Subscribe("dashboard", func(r Result) {
		if r.Status == StatusResolved {
			resolved <- r
		}
	})
	defer unsubscribe()

	_, err := c.Read(context.Background(), "dashboard", fetch, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, (<-resolved).Data)

	c.Invalidate("dashboard")

	select {
	case r := <-resolved:
		assert.Equal(t, 2, r.Data, "subscriber should receive the refetched value")
	case <-time.After(time.Second):
		t.Fatal("no refetch delivered after invalidation")
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "exactly one refetch")
}

func TestInvalidate_WithoutSubscribersDefersRefetch(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	_, err := c.Read(context.Background(), "members", fetch, Options{})
	require.NoError(t, err)

	c.Invalidate("members")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no subscribers, no background refetch")

	value, err := c.Read(context.Background(), "members", fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, value, "next read refetches the invalidated entry")
}

func TestInvalidate_DiscardsStaleInFlightResult(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	release := make(chan struct{})
	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			<-release
			return "old", nil
		}
		return "new", nil
	}

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		c.Read(context.Background(), "sessions/2026-08-31", fetch, Options{})
	}()

	// Wait for the first fetch to be in flight, then invalidate past it
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, time.Millisecond)
	c.Invalidate("sessions/2026-08-31")
	close(release)
	<-firstDone

	_, ok := c.Peek("sessions/2026-08-31")
	assert.False(t, ok, "response issued before the invalidation must not be stored")

	value, err := c.Read(context.Background(), "sessions/2026-08-31", fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, "new", value, "newer invalidation wins by issue order")
}

func TestSubscribe_UnsubscribeStopsDelivery(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var delivered int32
	unsubscribe := c.Subscribe("members", func(Result) {
		atomic.AddInt32(&delivered, 1)
	})

	fetch := func(ctx context.Context) (any, error) { return "x", nil }
	_, err := c.Read(context.Background(), "members", fetch, Options{})
	require.NoError(t, err)
	before := atomic.LoadInt32(&delivered)
	assert.Positive(t, before)

	unsubscribe()
	c.Invalidate("members")
	_, err = c.Read(context.Background(), "members", fetch, Options{})
	require.NoError(t, err)

	assert.Equal(t, before, atomic.LoadInt32(&delivered), "no delivery after unsubscribe")
}

func TestInvalidatePrefix_HitsAllParameterizedKeys(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	var calls int32
	fetch := func(ctx context.Context) (any, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	for _, key := range []string{"sessions/2026-08-30", "sessions/2026-08-31", "members"} {
		_, err := c.Read(context.Background(), key, fetch, Options{})
		require.NoError(t, err)
	}

	c.InvalidatePrefix("sessions")

	_, err := c.Read(context.Background(), "members", fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls), "members entry stays fresh")

	_, err = c.Read(context.Background(), "sessions/2026-08-30", fetch, Options{})
	require.NoError(t, err)
	_, err = c.Read(context.Background(), "sessions/2026-08-31", fetch, Options{})
	require.NoError(t, err)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls), "both dated entries refetch")
}

func TestClose_FailsSubsequentReads(t *testing.T) {
	c := New(5 * time.Minute)
	c.Close()

	_, err := c.Read(context.Background(), "members", func(ctx context.Context) (any, error) {
		return "x", nil
	}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGet_TypedWrapper(t *testing.T) {
	c := New(5 * time.Minute)
	defer c.Close()

	value, err := Get(context.Background(), c, "trainers", func(ctx context.Context) ([]string, error) {
		return []string{"Kim", "Lee"}, nil
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Kim", "Lee"}, value)
}
