// Package reconciler keeps a client's copy of a board in line with the
// server. Realtime events only mark the copy stale; the board is always
// refetched whole, so the local view is never patched from event payloads.
package reconciler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"boardsync/internal/api"

	"github.com/google/uuid"
)

// DefaultDebounce is how long Run waits after the first notification before
// refetching, so a burst of events costs one fetch.
const DefaultDebounce = 150 * time.Millisecond

// Fetcher loads the authoritative board snapshot. *apiclient.Client implements it.
type Fetcher interface {
	Board(ctx context.Context, id uuid.UUID) (*api.BoardSnapshot, error)
}

type Reconciler struct {
	fetcher    Fetcher
	boardID    uuid.UUID
	debounce   time.Duration
	onSnapshot func(*api.BoardSnapshot)
	log        *slog.Logger

	dirty chan struct{}

	mu   sync.RWMutex
	snap *api.BoardSnapshot
}

type Option func(*Reconciler)

func WithDebounce(d time.Duration) Option {
	return func(r *Reconciler) { r.debounce = d }
}

// WithOnSnapshot registers fn to receive every freshly fetched snapshot.
// fn runs on the fetching goroutine.
func WithOnSnapshot(fn func(*api.BoardSnapshot)) Option {
	return func(r *Reconciler) { r.onSnapshot = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Reconciler) { r.log = l }
}

func New(fetcher Fetcher, boardID uuid.UUID, opts ...Option) *Reconciler {
	r := &Reconciler{
		fetcher:  fetcher,
		boardID:  boardID,
		debounce: DefaultDebounce,
		log:      slog.Default(),
		dirty:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reconciler) BoardID() uuid.UUID { return r.boardID }

// Notify marks the snapshot stale. It never blocks; notifications that
// arrive before Run picks up the previous one are merged.
func (r *Reconciler) Notify() {
	select {
	case r.dirty <- struct{}{}:
	default:
	}
}

// Snapshot returns the last fetched snapshot, or nil before the first fetch.
func (r *Reconciler) Snapshot() *api.BoardSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Refresh refetches the board now and replaces the local snapshot.
func (r *Reconciler) Refresh(ctx context.Context) (*api.BoardSnapshot, error) {
	snap, err := r.fetcher.Board(ctx, r.boardID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()

	if r.onSnapshot != nil {
		r.onSnapshot(snap)
	}
	return snap, nil
}

// Run refetches after each burst of notifications until ctx is done. A
// failed fetch is logged and retried on the next notification.
func (r *Reconciler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.dirty:
		}

		if r.debounce > 0 {
			timer := time.NewTimer(r.debounce)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		// Anything that arrived during the window is covered by this fetch.
		select {
		case <-r.dirty:
		default:
		}

		if _, err := r.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.log.Warn("board refresh failed", "board_id", r.boardID, "error", err)
		}
	}
}
