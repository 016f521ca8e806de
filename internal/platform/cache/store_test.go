package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

type countingObserver struct {
	mu     sync.Mutex
	hits   int
	misses int
}

func (o *countingObserver) CacheHit(string) {
	o.mu.Lock()
	o.hits++
	o.mu.Unlock()
}

func (o *countingObserver) CacheMiss(string) {
	o.mu.Lock()
	o.misses++
	o.mu.Unlock()
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	observer := &countingObserver{}
	store := NewStore(time.Minute, WithName("team_events"), WithObserver(observer))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "team:Spain", 1)
	if _, ok := store.Get(context.Background(), "team:Spain"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "team:Spain"); ok {
		t.Fatalf("expected expired entry")
	}
	if store.Len() != 0 {
		t.Fatalf("expired entry should be evicted")
	}
	if observer.hits != 1 || observer.misses != 1 {
		t.Fatalf("unexpected observer counts hits=%d misses=%d", observer.hits, observer.misses)
	}
}

func TestTyped_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) ([]int, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("upstream down")
		}
		return []int{1, 2}, nil
	}

	if _, err := Typed(context.Background(), store, "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	got, err := Typed(context.Background(), store, "k", loader)
	if err != nil || len(got) != 2 {
		t.Fatalf("unexpected second load result=%v err=%v", got, err)
	}
	if calls.Load() != 2 {
		t.Fatalf("loader called %d times, want 2", calls.Load())
	}
}
