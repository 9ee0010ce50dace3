package apiclient

import (
	"context"
	"net/http"

	"boardsync/internal/api"

	"github.com/google/uuid"
)

func (c *Client) CreateBoard(ctx context.Context, req api.CreateBoardRequest) (*api.Board, error) {
	var out api.Board
	if err := c.do(ctx, http.MethodPost, "/boards", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Boards(ctx context.Context) ([]api.Board, error) {
	var out []api.Board
	if err := c.do(ctx, http.MethodGet, "/boards", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Board fetches the full snapshot: ordered lists, ordered cards, members and
// recent activity.
func (c *Client) Board(ctx context.Context, id uuid.UUID) (*api.BoardSnapshot, error) {
	var out api.BoardSnapshot
	if err := c.do(ctx, http.MethodGet, "/boards/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBoard(ctx context.Context, id uuid.UUID, req api.UpdateBoardRequest) (*api.Board, error) {
	var out api.Board
	if err := c.do(ctx, http.MethodPut, "/boards/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBoard(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/boards/"+id.String(), nil, nil)
}

func (c *Client) AddMember(ctx context.Context, boardID uuid.UUID, email string) (*api.BoardSnapshot, error) {
	var out api.BoardSnapshot
	if err := c.do(ctx, http.MethodPost, "/boards/"+boardID.String()+"/members", api.AddMemberRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) (*api.BoardSnapshot, error) {
	var out api.BoardSnapshot
	if err := c.do(ctx, http.MethodDelete, "/boards/"+boardID.String()+"/members/"+userID.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Presence(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	var out api.Presence
	if err := c.do(ctx, http.MethodGet, "/boards/"+boardID.String()+"/presence", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// ReorderLists sends every list id of one board in the new order.
func (c *Client) ReorderLists(ctx context.Context, listIDs []uuid.UUID) error {
	return c.do(ctx, http.MethodPost, "/lists/reorder", api.ReorderListsRequest{Lists: listIDs}, nil)
}

func (c *Client) CreateList(ctx context.Context, boardID uuid.UUID, title string) (*api.List, error) {
	var out api.List
	if err := c.do(ctx, http.MethodPost, "/lists", api.CreateListRequest{Title: title, BoardID: boardID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateList(ctx context.Context, id uuid.UUID, title string) (*api.List, error) {
	var out api.List
	if err := c.do(ctx, http.MethodPut, "/lists/"+id.String(), api.UpdateListRequest{Title: title}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteList(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/lists/"+id.String(), nil, nil)
}

func (c *Client) CreateConnector(ctx context.Context, req api.CreateConnectorRequest) (*api.Connector, error) {
	var out api.Connector
	if err := c.do(ctx, http.MethodPost, "/connectors", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Connectors(ctx context.Context, boardID uuid.UUID) ([]api.Connector, error) {
	var out []api.Connector
	if err := c.do(ctx, http.MethodGet, "/connectors/board/"+boardID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateConnector(ctx context.Context, id uuid.UUID, req api.UpdateConnectorRequest) (*api.Connector, error) {
	var out api.Connector
	if err := c.do(ctx, http.MethodPut, "/connectors/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteConnector(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/connectors/"+id.String(), nil, nil)
}
