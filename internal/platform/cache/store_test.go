package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "leaderboard-page", nil
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
			v, err := store.GetOrLoad(context.Background(), "leaderboard:global:50", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "leaderboard-page" {
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

func TestStore_GetOrLoad_ServesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "match:m-001", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "match:m-001", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "match:m-001", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_DeletePrefix_EvictsMatchingKeysOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "leaderboard:global:50", "a")
	store.Set(ctx, "leaderboard:group:g-1", "b")
	store.Set(ctx, "match:m-001", "c")

	store.DeletePrefix(ctx, "leaderboard:")

	if _, ok := store.Get(ctx, "leaderboard:global:50"); ok {
		t.Fatal("global leaderboard key should be evicted")
	}
	if _, ok := store.Get(ctx, "leaderboard:group:g-1"); ok {
		t.Fatal("group leaderboard key should be evicted")
	}
	if _, ok := store.Get(ctx, "match:m-001"); !ok {
		t.Fatal("match key should survive a leaderboard eviction")
	}
}

func TestStore_Get_ExpiredEntryIsAMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Nanosecond)
	store.Set(ctx, "scoring-config:current", "v1")

	time.Sleep(2 * time.Millisecond)

	if _, ok := store.Get(ctx, "scoring-config:current"); ok {
		t.Fatal("expired entry must not be returned")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
