package handler

import (
	"context"

	"boardsync/internal/model"
	"boardsync/internal/ordering"

	"github.com/google/uuid"
)

// The services below are implemented by *ordering.Engine.

type BoardService interface {
	Authorize(ctx context.Context, boardID, userID uuid.UUID) error
	CreateBoard(ctx context.Context, actor uuid.UUID, draft ordering.BoardDraft) (*model.Board, error)
	ListBoards(ctx context.Context, actor uuid.UUID) ([]model.Board, error)
	Snapshot(ctx context.Context, actor, boardID uuid.UUID) (*ordering.Snapshot, error)
	UpdateBoard(ctx context.Context, actor, boardID uuid.UUID, patch ordering.BoardPatch) (*model.Board, error)
	DeleteBoard(ctx context.Context, actor, boardID uuid.UUID) ([]uuid.UUID, error)
	AddMember(ctx context.Context, actor, boardID uuid.UUID, email string) (*ordering.Snapshot, error)
	RemoveMember(ctx context.Context, actor, boardID, userID uuid.UUID) (*ordering.Snapshot, error)
}

type ListService interface {
	ReorderLists(ctx context.Context, actor uuid.UUID, listIDs []uuid.UUID) (uuid.UUID, error)
	CreateList(ctx context.Context, actor, boardID uuid.UUID, title string) (*model.List, error)
	UpdateList(ctx context.Context, actor, listID uuid.UUID, title string) (*model.List, error)
	DeleteList(ctx context.Context, actor, listID uuid.UUID) (*model.List, error)
}

type CardService interface {
	CreateCard(ctx context.Context, actor uuid.UUID, draft ordering.CardDraft) (*ordering.CardView, error)
	UpdateCard(ctx context.Context, actor, cardID uuid.UUID, patch ordering.CardPatch) (*ordering.CardView, error)
	DeleteCard(ctx context.Context, actor, cardID uuid.UUID) (*model.Card, error)
	MoveCard(ctx context.Context, actor uuid.UUID, intent ordering.MoveIntent) (*ordering.CardView, error)
	AddAssignee(ctx context.Context, actor, cardID, userID uuid.UUID) (*ordering.CardView, error)
	RemoveAssignee(ctx context.Context, actor, cardID, userID uuid.UUID) (*ordering.CardView, error)
	AddComment(ctx context.Context, actor, cardID uuid.UUID, text string) (*model.CardComment, *model.Card, error)
}

type ConnectorService interface {
	CreateConnector(ctx context.Context, actor uuid.UUID, draft ordering.ConnectorDraft) (*model.Connector, error)
	ListConnectors(ctx context.Context, actor, boardID uuid.UUID) ([]model.Connector, error)
	UpdateConnector(ctx context.Context, actor, id uuid.UUID, patch ordering.ConnectorPatch) (*model.Connector, error)
	DeleteConnector(ctx context.Context, actor, id uuid.UUID) (*model.Connector, error)
}

type StatsService interface {
	Stats(ctx context.Context, actor uuid.UUID) (*ordering.Stats, error)
}

// PresenceSource reports which users are connected to a board.
type PresenceSource interface {
	Present(boardID uuid.UUID) []uuid.UUID
}

var (
	_ BoardService     = (*ordering.Engine)(nil)
	_ ListService      = (*ordering.Engine)(nil)
	_ CardService      = (*ordering.Engine)(nil)
	_ ConnectorService = (*ordering.Engine)(nil)
	_ StatsService     = (*ordering.Engine)(nil)
)
