package apiclient

import (
	"context"
	"net/http"

	"boardsync/internal/api"

	"github.com/google/uuid"
)

func (c *Client) CreateCard(ctx context.Context, req api.CreateCardRequest) (*api.Card, error) {
	var out api.Card
	if err := c.do(ctx, http.MethodPost, "/cards", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCard(ctx context.Context, id uuid.UUID, req api.UpdateCardRequest) (*api.Card, error) {
	var out api.Card
	if err := c.do(ctx, http.MethodPut, "/cards/"+id.String(), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+id.String(), nil, nil)
}

// MoveCard places the card at position in toList, taking it out of fromList.
func (c *Client) MoveCard(ctx context.Context, cardID, fromList, toList uuid.UUID, position int) (*api.Card, error) {
	var out api.Card
	req := api.MoveCardRequest{FromListID: fromList, ToListID: toList, Position: &position}
	if err := c.do(ctx, http.MethodPost, "/cards/"+cardID.String()+"/move", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddAssignee(ctx context.Context, cardID, userID uuid.UUID) (*api.Card, error) {
	var out api.Card
	if err := c.do(ctx, http.MethodPost, "/cards/"+cardID.String()+"/assignees", api.AssigneeRequest{UserID: userID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveAssignee(ctx context.Context, cardID, userID uuid.UUID) (*api.Card, error) {
	var out api.Card
	if err := c.do(ctx, http.MethodDelete, "/cards/"+cardID.String()+"/assignees/"+userID.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Comment(ctx context.Context, cardID uuid.UUID, text string) (*api.Comment, error) {
	var out api.Comment
	if err := c.do(ctx, http.MethodPost, "/cards/"+cardID.String()+"/comments", api.CommentRequest{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
