package reconciler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"boardsync/internal/api"
	"boardsync/internal/reconciler"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFetcher returns a snapshot whose title records the fetch number.
type countingFetcher struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (f *countingFetcher) Board(_ context.Context, id uuid.UUID) (*api.BoardSnapshot, error) {
	failing := f.fail.Load()
	n := f.calls.Add(1)
	if failing {
		return nil, errors.New("server unavailable")
	}
	return &api.BoardSnapshot{Board: api.Board{ID: id, Title: string(rune('0' + n))}}, nil
}

func runInBackground(t *testing.T, r *reconciler.Reconciler) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
}

func TestRefresh_StoresAndPublishesSnapshot(t *testing.T) {
	fetcher := &countingFetcher{}
	boardID := uuid.New()
	var got []*api.BoardSnapshot
	r := reconciler.New(fetcher, boardID, reconciler.WithOnSnapshot(func(s *api.BoardSnapshot) {
		got = append(got, s)
	}))

	assert.Nil(t, r.Snapshot())

	snap, err := r.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, boardID, snap.ID)
	assert.Same(t, snap, r.Snapshot())
	require.Len(t, got, 1)
	assert.Same(t, snap, got[0])
}

func TestRefresh_KeepsPreviousSnapshotOnError(t *testing.T) {
	fetcher := &countingFetcher{}
	r := reconciler.New(fetcher, uuid.New())
	first, err := r.Refresh(context.Background())
	require.NoError(t, err)

	fetcher.fail.Store(true)
	_, err = r.Refresh(context.Background())
	require.Error(t, err)
	assert.Same(t, first, r.Snapshot())
}

func TestRun_CollapsesBurst(t *testing.T) {
	fetcher := &countingFetcher{}
	fetched := make(chan struct{}, 10)
	r := reconciler.New(fetcher, uuid.New(),
		reconciler.WithDebounce(50*time.Millisecond),
		reconciler.WithOnSnapshot(func(*api.BoardSnapshot) { fetched <- struct{}{} }),
	)
	runInBackground(t, r)

	for n := 0; n < 20; n++ {
		r.Notify()
	}

	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("no refresh after notifications")
	}
	// Give a second fetch a chance to happen if the burst leaked through.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestRun_RefetchesForLaterNotifications(t *testing.T) {
	fetcher := &countingFetcher{}
	fetched := make(chan struct{}, 10)
	r := reconciler.New(fetcher, uuid.New(),
		reconciler.WithDebounce(time.Millisecond),
		reconciler.WithOnSnapshot(func(*api.BoardSnapshot) { fetched <- struct{}{} }),
	)
	runInBackground(t, r)

	for i := 0; i < 3; i++ {
		r.Notify()
		select {
		case <-fetched:
		case <-time.After(2 * time.Second):
			t.Fatalf("refresh %d did not happen", i+1)
		}
	}
	assert.Equal(t, int32(3), fetcher.calls.Load())
}

func TestRun_SurvivesFetchErrors(t *testing.T) {
	fetcher := &countingFetcher{}
	fetcher.fail.Store(true)

	var mu sync.Mutex
	var titles []string
	fetched := make(chan struct{}, 1)
	r := reconciler.New(fetcher, uuid.New(),
		reconciler.WithDebounce(time.Millisecond),
		reconciler.WithOnSnapshot(func(s *api.BoardSnapshot) {
			mu.Lock()
			titles = append(titles, s.Title)
			mu.Unlock()
			fetched <- struct{}{}
		}),
	)
	runInBackground(t, r)

	r.Notify()
	require.Eventually(t, func() bool { return fetcher.calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	fetcher.fail.Store(false)
	r.Notify()
	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("no refresh after recovery")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"2"}, titles)
}
