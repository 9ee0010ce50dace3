package ordering

import (
	"context"
	"fmt"

	"boardsync/internal/model"

	"github.com/google/uuid"
)

// ReorderLists persists position = index for each id. The ids must be
// exactly the board's current lists; anything else means the caller's view
// is stale and nothing is written. Returns the board id.
func (e *Engine) ReorderLists(ctx context.Context, actor uuid.UUID, listIDs []uuid.UUID) (uuid.UUID, error) {
	if len(listIDs) == 0 {
		return uuid.Nil, fmt.Errorf("%w: lists must not be empty", ErrInvalid)
	}
	var boardID uuid.UUID
	err := e.run(ctx, "reorder_lists", func(s *stores) error {
		first, err := s.lists.GetByID(ctx, listIDs[0])
		if err != nil {
			return err
		}
		boardID = first.BoardID
		if err := authorize(ctx, s, boardID, actor); err != nil {
			return err
		}

		current, err := s.lists.GetByBoardID(ctx, boardID)
		if err != nil {
			return fmt.Errorf("failed to load lists: %w", err)
		}
		if !sameSet(current, listIDs) {
			return ErrStaleOrder
		}
		if err := s.lists.SetPositions(ctx, listIDs); err != nil {
			return fmt.Errorf("failed to reorder lists: %w", err)
		}
		return record(ctx, s, boardID, actor, "list:reordered", "reordered lists")
	})
	if err != nil {
		return uuid.Nil, err
	}
	return boardID, nil
}

// sameSet reports whether ids names every list exactly once.
func sameSet(lists []model.List, ids []uuid.UUID) bool {
	if len(lists) != len(ids) {
		return false
	}
	want := make(map[uuid.UUID]bool, len(lists))
	for _, l := range lists {
		want[l.ID] = true
	}
	for _, id := range ids {
		if !want[id] {
			return false
		}
		delete(want, id)
	}
	return len(want) == 0
}

// CreateList appends a list at the end of the board.
func (e *Engine) CreateList(ctx context.Context, actor, boardID uuid.UUID, title string) (*model.List, error) {
	title, err := requireText("title", title)
	if err != nil {
		return nil, err
	}
	var list *model.List
	err = e.run(ctx, "create_list", func(s *stores) error {
		if err := authorize(ctx, s, boardID, actor); err != nil {
			return err
		}
		board, err := s.boards.GetByID(ctx, boardID)
		if err != nil {
			return err
		}
		// After deletions the count can trail the highest position.
		top, err := s.lists.MaxPositionByBoardID(ctx, boardID)
		if err != nil {
			return fmt.Errorf("failed to read list positions: %w", err)
		}
		list = &model.List{Title: title, BoardID: boardID, Position: top + 1, CardIDs: model.IDList{}}
		if err := s.lists.Create(ctx, list); err != nil {
			return fmt.Errorf("failed to create list: %w", err)
		}
		if err := s.boards.SetListIDs(ctx, boardID, append(board.ListIDs.Without(list.ID), list.ID)); err != nil {
			return fmt.Errorf("failed to attach list: %w", err)
		}
		return record(ctx, s, boardID, actor, "list:created", fmt.Sprintf("created list %q", title))
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateList renames a list. Position only changes through ReorderLists.
func (e *Engine) UpdateList(ctx context.Context, actor, listID uuid.UUID, title string) (*model.List, error) {
	title, err := requireText("title", title)
	if err != nil {
		return nil, err
	}
	var list *model.List
	err = e.run(ctx, "update_list", func(s *stores) error {
		var err error
		if list, err = s.lists.GetByID(ctx, listID); err != nil {
			return err
		}
		if err := authorize(ctx, s, list.BoardID, actor); err != nil {
			return err
		}
		if err := s.lists.UpdateTitle(ctx, listID, title); err != nil {
			return fmt.Errorf("failed to update list: %w", err)
		}
		list.Title = title
		return record(ctx, s, list.BoardID, actor, "list:updated", fmt.Sprintf("renamed list to %q", title))
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteList deletes the list's cards, then the list, then detaches it from
// the board. Returns the deleted list.
func (e *Engine) DeleteList(ctx context.Context, actor, listID uuid.UUID) (*model.List, error) {
	var list *model.List
	err := e.run(ctx, "delete_list", func(s *stores) error {
		var err error
		if list, err = s.lists.GetByID(ctx, listID); err != nil {
			return err
		}
		if err := authorize(ctx, s, list.BoardID, actor); err != nil {
			return err
		}
		if err := s.cards.DeleteByList(ctx, listID); err != nil {
			return fmt.Errorf("failed to delete cards: %w", err)
		}
		if err := s.lists.Delete(ctx, listID); err != nil {
			return err
		}
		board, err := s.boards.GetByID(ctx, list.BoardID)
		if err != nil {
			return err
		}
		if err := s.boards.SetListIDs(ctx, board.ID, board.ListIDs.Without(listID)); err != nil {
			return fmt.Errorf("failed to detach list: %w", err)
		}
		return record(ctx, s, board.ID, actor, "list:deleted", fmt.Sprintf("deleted list %q", list.Title))
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
