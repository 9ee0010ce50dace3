package dragdrop_test

import (
	"context"
	"errors"
	"testing"

	"boardsync/internal/api"
	"boardsync/internal/dragdrop"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMover struct {
	mock.Mock
}

func (m *MockMover) ReorderLists(ctx context.Context, listIDs []uuid.UUID) error {
	return m.Called(ctx, listIDs).Error(0)
}

func (m *MockMover) MoveCard(ctx context.Context, cardID, fromList, toList uuid.UUID, position int) (*api.Card, error) {
	args := m.Called(ctx, cardID, fromList, toList, position)
	if c := args.Get(0); c != nil {
		return c.(*api.Card), args.Error(1)
	}
	return nil, args.Error(1)
}

type countingRefresher struct{ calls int }

func (r *countingRefresher) Refresh(context.Context) (*api.BoardSnapshot, error) {
	r.calls++
	return &api.BoardSnapshot{}, nil
}

type recordingSignaler struct{ events []string }

func (s *recordingSignaler) Signal(_ context.Context, event string) error {
	s.events = append(s.events, event)
	return nil
}

func board(n int) (*api.BoardSnapshot, []uuid.UUID) {
	snap := &api.BoardSnapshot{}
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
		snap.Lists = append(snap.Lists, api.List{ID: ids[i], Position: i})
	}
	return snap, ids
}

// withCards appends n cards to the list at index li and returns their ids.
func withCards(snap *api.BoardSnapshot, li, n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
		snap.Lists[li].Cards = append(snap.Lists[li].Cards, api.Card{ID: ids[i], ListID: snap.Lists[li].ID, Position: i})
	}
	return ids
}

func setup() (*dragdrop.Adapter, *MockMover, *countingRefresher, *recordingSignaler) {
	mover := new(MockMover)
	refresher := &countingRefresher{}
	signaler := &recordingSignaler{}
	return dragdrop.NewAdapter(mover, refresher, signaler, nil), mover, refresher, signaler
}

func TestHandleDrop_NoOps(t *testing.T) {
	snap, lists := board(2)
	cardID := uuid.New()

	tests := []struct {
		name string
		drop dragdrop.DropResult
	}{
		{"dropped outside", dragdrop.DropResult{
			Kind: dragdrop.KindCard, DraggableID: cardID,
			Source: dragdrop.Location{ListID: lists[0], Index: 0},
		}},
		{"card back in place", dragdrop.DropResult{
			Kind: dragdrop.KindCard, DraggableID: cardID,
			Source:      dragdrop.Location{ListID: lists[0], Index: 2},
			Destination: &dragdrop.Location{ListID: lists[0], Index: 2},
		}},
		{"list back in place", dragdrop.DropResult{
			Kind: dragdrop.KindList, DraggableID: lists[1],
			Source:      dragdrop.Location{Index: 1},
			Destination: &dragdrop.Location{Index: 1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, mover, refresher, signaler := setup()

			called, err := adapter.HandleDrop(context.Background(), snap, tt.drop)

			require.NoError(t, err)
			assert.False(t, called)
			mover.AssertNotCalled(t, "ReorderLists", mock.Anything, mock.Anything)
			mover.AssertNotCalled(t, "MoveCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			assert.Zero(t, refresher.calls)
			assert.Empty(t, signaler.events)
		})
	}
}

func TestHandleDrop_ListReorder(t *testing.T) {
	snap, ids := board(3)
	adapter, mover, refresher, signaler := setup()
	mover.On("ReorderLists", mock.Anything, []uuid.UUID{ids[1], ids[2], ids[0]}).Return(nil)

	called, err := adapter.HandleDrop(context.Background(), snap, dragdrop.DropResult{
		Kind:        dragdrop.KindList,
		DraggableID: ids[0],
		Source:      dragdrop.Location{Index: 0},
		Destination: &dragdrop.Location{Index: 2},
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, []string{"list:reordered"}, signaler.events)
	mover.AssertExpectations(t)
}

func TestHandleDrop_CardMove(t *testing.T) {
	snap, lists := board(2)
	cardID := withCards(snap, 0, 4)[3]
	adapter, mover, refresher, signaler := setup()
	mover.On("MoveCard", mock.Anything, cardID, lists[0], lists[1], 0).Return(&api.Card{ID: cardID}, nil)

	called, err := adapter.HandleDrop(context.Background(), snap, dragdrop.DropResult{
		Kind:        dragdrop.KindCard,
		DraggableID: cardID,
		Source:      dragdrop.Location{ListID: lists[0], Index: 3},
		Destination: &dragdrop.Location{ListID: lists[1], Index: 0},
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, []string{"card:moved"}, signaler.events)
	mover.AssertExpectations(t)
}

func TestHandleDrop_CardMoveSameIndexOtherList(t *testing.T) {
	snap, lists := board(2)
	cardID := withCards(snap, 0, 2)[1]
	adapter, mover, _, _ := setup()
	mover.On("MoveCard", mock.Anything, cardID, lists[0], lists[1], 1).Return(&api.Card{ID: cardID}, nil)

	called, err := adapter.HandleDrop(context.Background(), snap, dragdrop.DropResult{
		Kind:        dragdrop.KindCard,
		DraggableID: cardID,
		Source:      dragdrop.Location{ListID: lists[0], Index: 1},
		Destination: &dragdrop.Location{ListID: lists[1], Index: 1},
	})

	require.NoError(t, err)
	assert.True(t, called)
	mover.AssertExpectations(t)
}

func TestHandleDrop_FailureRefreshesWithoutSignal(t *testing.T) {
	snap, lists := board(2)
	cardID := withCards(snap, 0, 1)[0]
	adapter, mover, refresher, signaler := setup()
	conflict := errors.New("409 Conflict")
	mover.On("MoveCard", mock.Anything, cardID, lists[0], lists[1], 0).Return(nil, conflict)

	called, err := adapter.HandleDrop(context.Background(), snap, dragdrop.DropResult{
		Kind:        dragdrop.KindCard,
		DraggableID: cardID,
		Source:      dragdrop.Location{ListID: lists[0], Index: 0},
		Destination: &dragdrop.Location{ListID: lists[1], Index: 0},
	})

	assert.ErrorIs(t, err, conflict)
	assert.True(t, called)
	assert.Equal(t, 1, refresher.calls)
	assert.Empty(t, signaler.events)
}

func TestHandleDrop_StaleSnapshot(t *testing.T) {
	snap, ids := board(3)
	adapter, mover, refresher, _ := setup()

	called, err := adapter.HandleDrop(context.Background(), snap, dragdrop.DropResult{
		Kind:        dragdrop.KindList,
		DraggableID: ids[2],
		Source:      dragdrop.Location{Index: 0},
		Destination: &dragdrop.Location{Index: 1},
	})

	assert.ErrorIs(t, err, dragdrop.ErrStaleSnapshot)
	assert.False(t, called)
	assert.Equal(t, 1, refresher.calls)
	mover.AssertNotCalled(t, "ReorderLists", mock.Anything, mock.Anything)
}

func TestHandleDrop_StaleCardSource(t *testing.T) {
	snap, lists := board(2)
	cards := withCards(snap, 0, 2)
	dst := &dragdrop.Location{ListID: lists[1], Index: 0}

	tests := []struct {
		name   string
		cardID uuid.UUID
		source dragdrop.Location
	}{
		{"card not on board", uuid.New(), dragdrop.Location{ListID: lists[0], Index: 0}},
		{"wrong index", cards[1], dragdrop.Location{ListID: lists[0], Index: 0}},
		{"index past the end", cards[1], dragdrop.Location{ListID: lists[0], Index: 5}},
		{"wrong list", cards[0], dragdrop.Location{ListID: lists[1], Index: 0}},
		{"unknown list", cards[0], dragdrop.Location{ListID: uuid.New(), Index: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter, mover, refresher, signaler := setup()

			called, err := adapter.HandleDrop(context.Background(), snap, dragdrop.DropResult{
				Kind:        dragdrop.KindCard,
				DraggableID: tt.cardID,
				Source:      tt.source,
				Destination: dst,
			})

			assert.ErrorIs(t, err, dragdrop.ErrStaleSnapshot)
			assert.False(t, called)
			assert.Equal(t, 1, refresher.calls)
			assert.Empty(t, signaler.events)
			mover.AssertNotCalled(t, "MoveCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleDrop_UnknownKind(t *testing.T) {
	snap, _ := board(1)
	adapter, _, _, _ := setup()

	called, err := adapter.HandleDrop(context.Background(), snap, dragdrop.DropResult{
		Kind:        "connector",
		Source:      dragdrop.Location{Index: 0},
		Destination: &dragdrop.Location{Index: 1},
	})

	assert.ErrorIs(t, err, dragdrop.ErrUnknownKind)
	assert.False(t, called)
}

func TestReorderedListIDs(t *testing.T) {
	snap, ids := board(4)

	tests := []struct {
		name     string
		from, to int
		want     []uuid.UUID
	}{
		{"forward", 0, 2, []uuid.UUID{ids[1], ids[2], ids[0], ids[3]}},
		{"backward", 3, 1, []uuid.UUID{ids[0], ids[3], ids[1], ids[2]}},
		{"to end", 1, 3, []uuid.UUID{ids[0], ids[2], ids[3], ids[1]}},
		{"past end clamps", 0, 9, []uuid.UUID{ids[1], ids[2], ids[3], ids[0]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dragdrop.ReorderedListIDs(snap, dragdrop.DropResult{
				Kind:        dragdrop.KindList,
				DraggableID: ids[tt.from],
				Source:      dragdrop.Location{Index: tt.from},
				Destination: &dragdrop.Location{Index: tt.to},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.ElementsMatch(t, ids, got)
		})
	}
}
