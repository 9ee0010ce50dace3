package ordering

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"boardsync/internal/model"
	"boardsync/internal/repository"

	"github.com/google/uuid"
)

type BoardDraft struct {
	Title       string
	Description string
	Color       string
}

// BoardPatch holds optional board field updates; nil means unchanged.
type BoardPatch struct {
	Title       *string
	Description *string
	Color       *string
}

// CreateBoard creates a board owned by actor. The owner is also recorded as a member.
func (e *Engine) CreateBoard(ctx context.Context, actor uuid.UUID, draft BoardDraft) (*model.Board, error) {
	title, err := requireText("title", draft.Title)
	if err != nil {
		return nil, err
	}
	board := &model.Board{
		Title:       title,
		Description: draft.Description,
		Color:       strings.TrimSpace(draft.Color),
		OwnerID:     actor,
		ListIDs:     model.IDList{},
	}
	err = e.run(ctx, "create_board", func(s *stores) error {
		if err := s.boards.Create(ctx, board); err != nil {
			return fmt.Errorf("failed to create board: %w", err)
		}
		if err := s.members.AddMember(ctx, board.ID, actor, model.RoleOwner); err != nil {
			return fmt.Errorf("failed to add owner: %w", err)
		}
		return record(ctx, s, board.ID, actor, "board:created", fmt.Sprintf("created board %q", board.Title))
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// ListBoards returns boards the actor owns or belongs to.
func (e *Engine) ListBoards(ctx context.Context, actor uuid.UUID) ([]model.Board, error) {
	var boards []model.Board
	err := e.run(ctx, "list_boards", func(s *stores) error {
		var err error
		boards, err = s.boards.GetForUser(ctx, actor)
		return err
	})
	return boards, err
}

// Snapshot loads the board with members, ordered lists, ordered cards and
// recent activity in one read transaction.
func (e *Engine) Snapshot(ctx context.Context, actor, boardID uuid.UUID) (*Snapshot, error) {
	var snap *Snapshot
	err := e.run(ctx, "snapshot", func(s *stores) error {
		if err := authorize(ctx, s, boardID, actor); err != nil {
			return err
		}
		var err error
		snap, err = e.loadSnapshot(ctx, s, boardID)
		return err
	})
	return snap, err
}

func (e *Engine) loadSnapshot(ctx context.Context, s *stores, boardID uuid.UUID) (*Snapshot, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}

	memberRows, err := s.members.GetMembers(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	userIDs := make([]uuid.UUID, 0, len(memberRows))
	roles := make(map[uuid.UUID]string, len(memberRows))
	for _, m := range memberRows {
		userIDs = append(userIDs, m.UserID)
		roles[m.UserID] = m.Role
	}
	users, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load member users: %w", err)
	}
	members := make([]Member, 0, len(users))
	for _, u := range users {
		members = append(members, Member{User: u, Role: roles[u.ID]})
	}

	lists, err := s.lists.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}
	var cardIDs []uuid.UUID
	for _, l := range lists {
		cardIDs = append(cardIDs, l.CardIDs...)
	}
	cards, err := s.cards.GetByIDs(ctx, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load cards: %w", err)
	}
	commentRows, err := s.cards.GetComments(ctx, cardIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	comments := make(map[uuid.UUID][]model.CardComment)
	for _, c := range commentRows {
		comments[c.CardID] = append(comments[c.CardID], c)
	}

	views := make([]ListView, len(lists))
	for i, l := range lists {
		views[i] = ListView{List: l, Cards: orderedCards(l.CardIDs, cards, comments)}
	}

	activity, err := s.activity.Recent(ctx, boardID, e.activityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	return &Snapshot{Board: *board, Members: members, Lists: views, Activity: activity}, nil
}

func (e *Engine) UpdateBoard(ctx context.Context, actor, boardID uuid.UUID, patch BoardPatch) (*model.Board, error) {
	var board *model.Board
	err := e.run(ctx, "update_board", func(s *stores) error {
		if err := authorize(ctx, s, boardID, actor); err != nil {
			return err
		}
		var err error
		if board, err = s.boards.GetByID(ctx, boardID); err != nil {
			return err
		}
		if patch.Title != nil {
			if board.Title, err = requireText("title", *patch.Title); err != nil {
				return err
			}
		}
		if patch.Description != nil {
			board.Description = *patch.Description
		}
		if patch.Color != nil && strings.TrimSpace(*patch.Color) != "" {
			board.Color = strings.TrimSpace(*patch.Color)
		}
		if err := s.boards.Update(ctx, board); err != nil {
			return fmt.Errorf("failed to update board: %w", err)
		}
		return record(ctx, s, boardID, actor, "board:updated", fmt.Sprintf("updated board %q", board.Title))
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

// DeleteBoard removes the board and everything it owns. Only the owner may
// delete. Returns the ids of the users who were members, owner included.
func (e *Engine) DeleteBoard(ctx context.Context, actor, boardID uuid.UUID) ([]uuid.UUID, error) {
	var memberIDs []uuid.UUID
	err := e.run(ctx, "delete_board", func(s *stores) error {
		board, err := s.boards.GetByID(ctx, boardID)
		if err != nil {
			return err
		}
		if board.OwnerID != actor {
			return ErrForbidden
		}
		members, err := s.members.GetMembers(ctx, boardID)
		if err != nil {
			return fmt.Errorf("failed to load members: %w", err)
		}
		for _, m := range members {
			memberIDs = append(memberIDs, m.UserID)
		}
		if err := s.cards.DeleteByBoard(ctx, boardID); err != nil {
			return fmt.Errorf("failed to delete cards: %w", err)
		}
		if err := s.lists.DeleteByBoard(ctx, boardID); err != nil {
			return fmt.Errorf("failed to delete lists: %w", err)
		}
		if err := s.connectors.DeleteByBoard(ctx, boardID); err != nil {
			return fmt.Errorf("failed to delete connectors: %w", err)
		}
		if err := s.activity.DeleteByBoard(ctx, boardID); err != nil {
			return fmt.Errorf("failed to delete activity: %w", err)
		}
		if err := s.members.DeleteByBoard(ctx, boardID); err != nil {
			return fmt.Errorf("failed to delete members: %w", err)
		}
		return s.boards.Delete(ctx, boardID)
	})
	if err != nil {
		return nil, err
	}
	return memberIDs, nil
}

// AddMember adds the user registered under email to the board.
func (e *Engine) AddMember(ctx context.Context, actor, boardID uuid.UUID, email string) (*Snapshot, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var snap *Snapshot
	err := e.run(ctx, "add_member", func(s *stores) error {
		if err := authorize(ctx, s, boardID, actor); err != nil {
			return err
		}
		user, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to look up user: %w", err)
		}
		if user == nil {
			return repository.ErrUserNotFound
		}
		if err := s.members.AddMember(ctx, boardID, user.ID, model.RoleMember); err != nil {
			return fmt.Errorf("failed to add member: %w", err)
		}
		if err := record(ctx, s, boardID, actor, "member:added", fmt.Sprintf("added %s", user.Email)); err != nil {
			return err
		}
		snap, err = e.loadSnapshot(ctx, s, boardID)
		return err
	})
	return snap, err
}

// RemoveMember takes userID off the board. Only the owner may remove members,
// and the owner cannot be removed.
func (e *Engine) RemoveMember(ctx context.Context, actor, boardID, userID uuid.UUID) (*Snapshot, error) {
	var snap *Snapshot
	err := e.run(ctx, "remove_member", func(s *stores) error {
		board, err := s.boards.GetByID(ctx, boardID)
		if err != nil {
			return err
		}
		if board.OwnerID != actor {
			return ErrForbidden
		}
		if userID == board.OwnerID {
			return fmt.Errorf("%w: the owner cannot be removed", ErrInvalid)
		}
		members, err := s.members.GetMembers(ctx, boardID)
		if err != nil {
			return fmt.Errorf("failed to load members: %w", err)
		}
		if !slices.ContainsFunc(members, func(m model.BoardMember) bool { return m.UserID == userID }) {
			return repository.ErrUserNotFound
		}
		if err := s.members.RemoveMember(ctx, boardID, userID); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		if err := record(ctx, s, boardID, actor, "member:removed", "removed a member"); err != nil {
			return err
		}
		snap, err = e.loadSnapshot(ctx, s, boardID)
		return err
	})
	return snap, err
}

// Stats counts the boards the actor can see and the lists and cards on them.
func (e *Engine) Stats(ctx context.Context, actor uuid.UUID) (*Stats, error) {
	stats := &Stats{}
	err := e.run(ctx, "stats", func(s *stores) error {
		ids, err := s.members.BoardIDsForUser(ctx, actor)
		if err != nil {
			return err
		}
		stats.Boards = int64(len(ids))
		if stats.Lists, err = s.lists.CountByBoardIDs(ctx, ids); err != nil {
			return err
		}
		stats.Cards, err = s.cards.CountByBoardIDs(ctx, ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
