// Package api holds the JSON request and response bodies shared by the HTTP
// handlers and the Go client.
package api

import (
	"time"

	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Stats struct {
	Boards int64 `json:"boards"`
	Lists  int64 `json:"lists"`
	Cards  int64 `json:"cards"`
}

type CreateBoardRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateBoardRequest fields left out of the body are unchanged.
type UpdateBoardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type Board struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Member struct {
	User
	Role string `json:"role"`
}

type Activity struct {
	Action      string    `json:"action"`
	UserID      uuid.UUID `json:"userId"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// BoardSnapshot is the full board as GET /boards/{id} returns it: lists in
// position order, each with its cards in list order.
type BoardSnapshot struct {
	Board
	Members  []Member   `json:"members"`
	Lists    []List     `json:"lists"`
	Activity []Activity `json:"activity"`
}

type Presence struct {
	BoardID uuid.UUID   `json:"boardId"`
	Users   []uuid.UUID `json:"users"`
}

type ReorderListsRequest struct {
	Lists []uuid.UUID `json:"lists" binding:"required,min=1"`
}

type CreateListRequest struct {
	Title   string    `json:"title" binding:"required"`
	BoardID uuid.UUID `json:"board" binding:"required"`
}

type UpdateListRequest struct {
	Title string `json:"title" binding:"required"`
}

type List struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	BoardID   uuid.UUID `json:"boardId"`
	Position  int       `json:"position"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateCardRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	ListID      uuid.UUID `json:"list" binding:"required"`
	BoardID     uuid.UUID `json:"board"`
}

// UpdateCardRequest fields left out of the body are unchanged. Send
// clearDueDate to remove a due date.
type UpdateCardRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	DueDate      *time.Time `json:"dueDate"`
	ClearDueDate bool       `json:"clearDueDate"`
	Labels       []string   `json:"labels"`
}

type MoveCardRequest struct {
	FromListID uuid.UUID `json:"fromList" binding:"required"`
	ToListID   uuid.UUID `json:"toList" binding:"required"`
	Position   *int      `json:"position" binding:"required,min=0"`
}

type AssigneeRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
}

type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type Card struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ListID      uuid.UUID   `json:"listId"`
	BoardID     uuid.UUID   `json:"boardId"`
	Position    int         `json:"position"`
	Assignees   []uuid.UUID `json:"assignees"`
	Labels      []string    `json:"labels"`
	DueDate     *time.Time  `json:"dueDate,omitempty"`
	Comments    []Comment   `json:"comments,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	CardID    uuid.UUID `json:"cardId"`
	UserID    uuid.UUID `json:"userId"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type CreateConnectorRequest struct {
	BoardID     uuid.UUID `json:"board" binding:"required"`
	FromElement string    `json:"fromElement" binding:"required"`
	ToElement   string    `json:"toElement" binding:"required"`
	LineStyle   string    `json:"lineStyle" binding:"omitempty,oneof=straight curved orthogonal"`
	ArrowStyle  string    `json:"arrowStyle" binding:"omitempty,oneof=arrow none"`
	Color       string    `json:"color"`
	Label       string    `json:"label"`
	FromX       float64   `json:"fromX"`
	FromY       float64   `json:"fromY"`
	ToX         float64   `json:"toX"`
	ToY         float64   `json:"toY"`
}

type UpdateConnectorRequest struct {
	FromElement *string  `json:"fromElement"`
	ToElement   *string  `json:"toElement"`
	LineStyle   *string  `json:"lineStyle" binding:"omitempty,oneof=straight curved orthogonal"`
	ArrowStyle  *string  `json:"arrowStyle" binding:"omitempty,oneof=arrow none"`
	Color       *string  `json:"color"`
	Label       *string  `json:"label"`
	FromX       *float64 `json:"fromX"`
	FromY       *float64 `json:"fromY"`
	ToX         *float64 `json:"toX"`
	ToY         *float64 `json:"toY"`
}

type Connector struct {
	ID          uuid.UUID `json:"id"`
	BoardID     uuid.UUID `json:"boardId"`
	FromElement string    `json:"fromElement"`
	ToElement   string    `json:"toElement"`
	LineStyle   string    `json:"lineStyle"`
	ArrowStyle  string    `json:"arrowStyle"`
	Color       string    `json:"color"`
	Label       string    `json:"label"`
	FromX       float64   `json:"fromX"`
	FromY       float64   `json:"fromY"`
	ToX         float64   `json:"toX"`
	ToY         float64   `json:"toY"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
