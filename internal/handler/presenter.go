package handler

import (
	"boardsync/internal/api"
	"boardsync/internal/model"
	"boardsync/internal/ordering"

	"github.com/google/uuid"
)

func toUser(u *model.User) api.User {
	return api.User{ID: u.ID.String(), Email: u.Email, Name: u.Name}
}

func toBoard(b *model.Board) api.Board {
	return api.Board{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		OwnerID:     b.OwnerID,
		Color:       b.Color,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toSnapshot(s *ordering.Snapshot) api.BoardSnapshot {
	out := api.BoardSnapshot{
		Board:    toBoard(&s.Board),
		Members:  make([]api.Member, len(s.Members)),
		Lists:    make([]api.List, len(s.Lists)),
		Activity: make([]api.Activity, len(s.Activity)),
	}
	for i, m := range s.Members {
		out.Members[i] = api.Member{User: toUser(&m.User), Role: m.Role}
	}
	for i, lv := range s.Lists {
		l := toList(&lv.List)
		l.Cards = make([]api.Card, len(lv.Cards))
		for j := range lv.Cards {
			l.Cards[j] = toCard(&lv.Cards[j])
		}
		out.Lists[i] = l
	}
	for i, a := range s.Activity {
		out.Activity[i] = api.Activity{Action: a.Action, UserID: a.UserID, Description: a.Description, Timestamp: a.Timestamp}
	}
	return out
}

func toList(l *model.List) api.List {
	return api.List{
		ID:        l.ID,
		Title:     l.Title,
		BoardID:   l.BoardID,
		Position:  l.Position,
		Cards:     []api.Card{},
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toCard(v *ordering.CardView) api.Card {
	c := v.Card
	out := api.Card{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		ListID:      c.ListID,
		BoardID:     c.BoardID,
		Position:    v.Position,
		Assignees:   nonNilIDs(c.Assignees),
		Labels:      nonNilStrings(c.Labels),
		DueDate:     c.DueDate,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for i := range v.Comments {
		out.Comments = append(out.Comments, toComment(&v.Comments[i]))
	}
	return out
}

func toComment(c *model.CardComment) api.Comment {
	return api.Comment{ID: c.ID, CardID: c.CardID, UserID: c.UserID, Text: c.Text, Timestamp: c.Timestamp}
}

func toConnector(c *model.Connector) api.Connector {
	return api.Connector{
		ID:          c.ID,
		BoardID:     c.BoardID,
		FromElement: c.FromElement,
		ToElement:   c.ToElement,
		LineStyle:   c.LineStyle,
		ArrowStyle:  c.ArrowStyle,
		Color:       c.Color,
		Label:       c.Label,
		FromX:       c.FromX,
		FromY:       c.FromY,
		ToX:         c.ToX,
		ToY:         c.ToY,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
