package ordering

import (
	"boardsync/internal/model"

	"github.com/google/uuid"
)

// Snapshot is the full authoritative state of one board as clients render it.
type Snapshot struct {
	Board    model.Board
	Members  []Member
	Lists    []ListView
	Activity []model.BoardActivity
}

type Member struct {
	User model.User
	Role string
}

// ListView is a list with its cards in display order.
type ListView struct {
	List  model.List
	Cards []CardView
}

// CardView is a card with its position derived from the parent list.
type CardView struct {
	Card     model.Card
	Position int
	Comments []model.CardComment
}

type Stats struct {
	Boards int64
	Lists  int64
	Cards  int64
}

// ListIDs returns the snapshot's list ids in display order.
func (s *Snapshot) ListIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Lists))
	for i, l := range s.Lists {
		ids[i] = l.List.ID
	}
	return ids
}

// FindList returns the list view with the given id, or nil.
func (s *Snapshot) FindList(id uuid.UUID) *ListView {
	for i := range s.Lists {
		if s.Lists[i].List.ID == id {
			return &s.Lists[i]
		}
	}
	return nil
}

// CardIDs returns the list's card ids in display order.
func (l *ListView) CardIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(l.Cards))
	for i, c := range l.Cards {
		ids[i] = c.Card.ID
	}
	return ids
}

// orderedCards resolves a list's card id sequence against loaded cards.
// Ids with no card row, and repeated ids, are skipped.
func orderedCards(ids model.IDList, cards map[uuid.UUID]model.Card, comments map[uuid.UUID][]model.CardComment) []CardView {
	views := make([]CardView, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		card, ok := cards[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		views = append(views, CardView{Card: card, Position: len(views), Comments: comments[id]})
	}
	return views
}

func cardView(list *model.List, card *model.Card) *CardView {
	return &CardView{Card: *card, Position: list.CardIDs.IndexOf(card.ID)}
}
