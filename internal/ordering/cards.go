package ordering

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"boardsync/internal/model"
	"boardsync/internal/repository"

	"github.com/google/uuid"
)

type CardDraft struct {
	Title       string
	Description string
	ListID      uuid.UUID
	// BoardID is optional; when set it must match the list's board.
	BoardID uuid.UUID
}

// CardPatch holds optional card field updates; nil means unchanged.
type CardPatch struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	Labels       []string
}

// MoveIntent places CardID at Position in ToListID, taking it out of FromListID.
type MoveIntent struct {
	CardID     uuid.UUID
	FromListID uuid.UUID
	ToListID   uuid.UUID
	Position   int
}

// CreateCard appends a card to the end of its list.
func (e *Engine) CreateCard(ctx context.Context, actor uuid.UUID, draft CardDraft) (*CardView, error) {
	title, err := requireText("title", draft.Title)
	if err != nil {
		return nil, err
	}
	var view *CardView
	err = e.run(ctx, "create_card", func(s *stores) error {
		list, err := s.lists.GetByID(ctx, draft.ListID)
		if err != nil {
			return err
		}
		if draft.BoardID != uuid.Nil && draft.BoardID != list.BoardID {
			return ErrBoardMismatch
		}
		if err := authorize(ctx, s, list.BoardID, actor); err != nil {
			return err
		}
		card := &model.Card{
			Title:       title,
			Description: draft.Description,
			ListID:      list.ID,
			BoardID:     list.BoardID,
		}
		if err := s.cards.Create(ctx, card); err != nil {
			return fmt.Errorf("failed to create card: %w", err)
		}
		list.CardIDs = append(list.CardIDs.Without(card.ID), card.ID)
		if err := s.lists.SetCardIDs(ctx, list.ID, list.CardIDs); err != nil {
			return fmt.Errorf("failed to attach card: %w", err)
		}
		view = cardView(list, card)
		return record(ctx, s, list.BoardID, actor, "card:created", fmt.Sprintf("created card %q", title))
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (e *Engine) UpdateCard(ctx context.Context, actor, cardID uuid.UUID, patch CardPatch) (*CardView, error) {
	return e.editCard(ctx, actor, cardID, "update_card", func(s *stores, card *model.Card) (string, error) {
		if patch.Title != nil {
			title, err := requireText("title", *patch.Title)
			if err != nil {
				return "", err
			}
			card.Title = title
		}
		if patch.Description != nil {
			card.Description = *patch.Description
		}
		switch {
		case patch.ClearDueDate:
			card.DueDate = nil
		case patch.DueDate != nil:
			due := patch.DueDate.UTC()
			card.DueDate = &due
		}
		if patch.Labels != nil {
			card.Labels = uniqueLabels(patch.Labels)
		}
		return fmt.Sprintf("updated card %q", card.Title), nil
	})
}

// AddAssignee adds userID to the card's assignees. Adding twice is a no-op.
func (e *Engine) AddAssignee(ctx context.Context, actor, cardID, userID uuid.UUID) (*CardView, error) {
	return e.editCard(ctx, actor, cardID, "add_assignee", func(s *stores, card *model.Card) (string, error) {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("failed to look up user: %w", err)
		}
		if user == nil {
			return "", repository.ErrUserNotFound
		}
		if !card.Assignees.Contains(userID) {
			card.Assignees = append(card.Assignees, userID)
		}
		return fmt.Sprintf("assigned %s to %q", user.Name, card.Title), nil
	})
}

func (e *Engine) RemoveAssignee(ctx context.Context, actor, cardID, userID uuid.UUID) (*CardView, error) {
	return e.editCard(ctx, actor, cardID, "remove_assignee", func(_ *stores, card *model.Card) (string, error) {
		card.Assignees = card.Assignees.Without(userID)
		return fmt.Sprintf("unassigned a user from %q", card.Title), nil
	})
}

// editCard loads the card, applies edit and writes the editable fields back.
func (e *Engine) editCard(ctx context.Context, actor, cardID uuid.UUID, operation string, edit func(*stores, *model.Card) (string, error)) (*CardView, error) {
	var view *CardView
	err := e.run(ctx, operation, func(s *stores) error {
		card, err := s.cards.GetByID(ctx, cardID)
		if err != nil {
			return err
		}
		if err := authorize(ctx, s, card.BoardID, actor); err != nil {
			return err
		}
		description, err := edit(s, card)
		if err != nil {
			return err
		}
		if err := s.cards.Update(ctx, card); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}
		view = &CardView{Card: *card, Position: -1}
		if list, err := s.lists.GetByID(ctx, card.ListID); err == nil {
			view = cardView(list, card)
		}
		return record(ctx, s, card.BoardID, actor, "card:updated", description)
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// AddComment appends a comment to the card and returns it with the card.
func (e *Engine) AddComment(ctx context.Context, actor, cardID uuid.UUID, text string) (*model.CardComment, *model.Card, error) {
	text, err := requireText("text", text)
	if err != nil {
		return nil, nil, err
	}
	var (
		comment *model.CardComment
		card    *model.Card
	)
	err = e.run(ctx, "add_comment", func(s *stores) error {
		var err error
		if card, err = s.cards.GetByID(ctx, cardID); err != nil {
			return err
		}
		if err := authorize(ctx, s, card.BoardID, actor); err != nil {
			return err
		}
		comment = &model.CardComment{CardID: cardID, UserID: actor, Text: text}
		if err := s.cards.AddComment(ctx, comment); err != nil {
			return fmt.Errorf("failed to add comment: %w", err)
		}
		return record(ctx, s, card.BoardID, actor, "card:commented", fmt.Sprintf("commented on %q", card.Title))
	})
	if err != nil {
		return nil, nil, err
	}
	return comment, card, nil
}

// DeleteCard pulls the card from its list and deletes it. Returns the deleted card.
func (e *Engine) DeleteCard(ctx context.Context, actor, cardID uuid.UUID) (*model.Card, error) {
	var card *model.Card
	err := e.run(ctx, "delete_card", func(s *stores) error {
		var err error
		if card, err = s.cards.GetByID(ctx, cardID); err != nil {
			return err
		}
		if err := authorize(ctx, s, card.BoardID, actor); err != nil {
			return err
		}
		list, err := s.lists.GetByID(ctx, card.ListID)
		switch {
		case err == nil:
			if err := s.lists.SetCardIDs(ctx, list.ID, list.CardIDs.Without(cardID)); err != nil {
				return fmt.Errorf("failed to detach card: %w", err)
			}
		case !errors.Is(err, repository.ErrListNotFound):
			return err
		}
		if err := s.cards.Delete(ctx, cardID); err != nil {
			return err
		}
		return record(ctx, s, card.BoardID, actor, "card:deleted", fmt.Sprintf("deleted card %q", card.Title))
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// MoveCard removes the card from the source list and inserts it into the
// destination list at Position, clamped to the shortened sequence. Every
// occurrence of the card is first removed from the source list, from the
// list its back-reference names and from the destination, so it ends up
// exactly once in exactly one list even after an earlier partial move.
func (e *Engine) MoveCard(ctx context.Context, actor uuid.UUID, intent MoveIntent) (*CardView, error) {
	if intent.Position < 0 {
		return nil, fmt.Errorf("%w: position must not be negative", ErrInvalid)
	}
	var view *CardView
	err := e.run(ctx, "move_card", func(s *stores) error {
		card, err := s.cards.GetByID(ctx, intent.CardID)
		if err != nil {
			return err
		}
		if err := authorize(ctx, s, card.BoardID, actor); err != nil {
			return err
		}
		from, err := s.lists.GetByID(ctx, intent.FromListID)
		if err != nil {
			return err
		}
		to := from
		if intent.ToListID != from.ID {
			if to, err = s.lists.GetByID(ctx, intent.ToListID); err != nil {
				return err
			}
		}
		if from.BoardID != card.BoardID || to.BoardID != card.BoardID {
			return ErrCrossBoardMove
		}

		touched := []*model.List{from}
		if to.ID != from.ID {
			touched = append(touched, to)
		}
		if card.ListID != from.ID && card.ListID != to.ID {
			owner, err := s.lists.GetByID(ctx, card.ListID)
			switch {
			case err == nil:
				if owner.BoardID == card.BoardID {
					touched = append(touched, owner)
				}
			case !errors.Is(err, repository.ErrListNotFound):
				return err
			}
		}

		for _, l := range touched {
			l.CardIDs = l.CardIDs.Without(card.ID)
		}
		to.CardIDs = to.CardIDs.InsertAt(intent.Position, card.ID)

		for _, l := range touched {
			if err := s.lists.SetCardIDs(ctx, l.ID, l.CardIDs); err != nil {
				return fmt.Errorf("failed to save list order: %w", err)
			}
		}
		if card.ListID != to.ID {
			if err := s.cards.SetList(ctx, card.ID, to.ID); err != nil {
				return fmt.Errorf("failed to update card list: %w", err)
			}
			card.ListID = to.ID
		}

		view = cardView(to, card)
		return record(ctx, s, card.BoardID, actor, "card:moved",
			fmt.Sprintf("moved card %q to %q", card.Title, to.Title))
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func uniqueLabels(labels []string) model.StringList {
	out := make(model.StringList, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
