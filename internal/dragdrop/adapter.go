// Package dragdrop turns a finished drag gesture on a board into the
// matching ordering call, then refreshes the board and tells peers.
package dragdrop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"boardsync/internal/api"

	"github.com/google/uuid"
)

type Kind string

const (
	KindList Kind = "list"
	KindCard Kind = "card"
)

var (
	ErrUnknownKind = errors.New("unknown drag kind")
	// ErrStaleSnapshot means the dragged item is not where the snapshot
	// says it is. Nothing was sent; the board has been refreshed.
	ErrStaleSnapshot = errors.New("drag does not match the board snapshot")
)

// Location is a slot in a container. For list drags the container is the
// board itself and ListID is uuid.Nil.
type Location struct {
	ListID uuid.UUID
	Index  int
}

// DropResult describes a finished drag. Destination is nil when the item was
// dropped outside any container.
type DropResult struct {
	Kind        Kind
	DraggableID uuid.UUID
	Source      Location
	Destination *Location
}

// Mover performs the ordering mutations. *apiclient.Client implements it.
type Mover interface {
	ReorderLists(ctx context.Context, listIDs []uuid.UUID) error
	MoveCard(ctx context.Context, cardID, fromList, toList uuid.UUID, position int) (*api.Card, error)
}

// Refresher refetches the board. *reconciler.Reconciler implements it.
type Refresher interface {
	Refresh(ctx context.Context) (*api.BoardSnapshot, error)
}

// Signaler sends a change hint to the board's other viewers.
// *reconciler.Subscriber implements it.
type Signaler interface {
	Signal(ctx context.Context, event string) error
}

type Adapter struct {
	mover     Mover
	refresher Refresher
	signaler  Signaler
	log       *slog.Logger
}

// NewAdapter builds an adapter. signaler may be nil when there is no
// realtime connection.
func NewAdapter(mover Mover, refresher Refresher, signaler Signaler, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{mover: mover, refresher: refresher, signaler: signaler, log: log}
}

// HandleDrop applies drop against snap. It reports whether a mutation was
// sent. Drops with no destination or that end where they started send nothing.
func (a *Adapter) HandleDrop(ctx context.Context, snap *api.BoardSnapshot, drop DropResult) (bool, error) {
	if drop.Destination == nil {
		return false, nil
	}
	dst := *drop.Destination
	if dst.ListID == drop.Source.ListID && dst.Index == drop.Source.Index {
		return false, nil
	}

	var (
		event string
		err   error
	)
	switch drop.Kind {
	case KindList:
		event = "list:reordered"
		var order []uuid.UUID
		if order, err = ReorderedListIDs(snap, drop); err == nil {
			err = a.mover.ReorderLists(ctx, order)
		}
	case KindCard:
		event = "card:moved"
		if err = checkCardSource(snap, drop); err == nil {
			_, err = a.mover.MoveCard(ctx, drop.DraggableID, drop.Source.ListID, dst.ListID, dst.Index)
		}
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownKind, drop.Kind)
	}

	if err != nil {
		// The local view is likely behind; pull the server's version.
		if _, rerr := a.refresher.Refresh(ctx); rerr != nil {
			a.log.Warn("board refresh after failed drop", "error", rerr)
		}
		return !errors.Is(err, ErrStaleSnapshot), err
	}

	if _, err := a.refresher.Refresh(ctx); err != nil {
		a.log.Warn("board refresh after drop", "error", err)
	}
	if a.signaler != nil {
		if err := a.signaler.Signal(ctx, event); err != nil {
			a.log.Debug("could not signal peers", "event", event, "error", err)
		}
	}
	return true, nil
}

// checkCardSource confirms the dragged card sits at the drop's source slot.
func checkCardSource(snap *api.BoardSnapshot, drop DropResult) error {
	for _, l := range snap.Lists {
		if l.ID != drop.Source.ListID {
			continue
		}
		i := drop.Source.Index
		if i >= 0 && i < len(l.Cards) && l.Cards[i].ID == drop.DraggableID {
			return nil
		}
		break
	}
	return ErrStaleSnapshot
}

// ReorderedListIDs returns the board's list ids with the dragged list moved
// from the source index to the destination index.
func ReorderedListIDs(snap *api.BoardSnapshot, drop DropResult) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(snap.Lists))
	for i, l := range snap.Lists {
		ids[i] = l.ID
	}
	from := drop.Source.Index
	if from < 0 || from >= len(ids) || ids[from] != drop.DraggableID {
		return nil, ErrStaleSnapshot
	}
	to := drop.Destination.Index
	if to < 0 {
		to = 0
	}
	if to > len(ids)-1 {
		to = len(ids) - 1
	}

	moved := ids[from]
	out := make([]uuid.UUID, 0, len(ids))
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)
	out = append(out[:to], append([]uuid.UUID{moved}, out[to:]...)...)
	return out, nil
}
