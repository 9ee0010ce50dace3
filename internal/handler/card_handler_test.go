package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"boardsync/internal/api"
	"boardsync/internal/handler"
	"boardsync/internal/middleware"
	"boardsync/internal/model"
	"boardsync/internal/ordering"
	"boardsync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) view(args mock.Arguments) (*ordering.CardView, error) {
	v := args.Get(0)
	if v == nil {
		return nil, args.Error(1)
	}
	return v.(*ordering.CardView), args.Error(1)
}

func (m *MockCardService) CreateCard(ctx context.Context, actor uuid.UUID, draft ordering.CardDraft) (*ordering.CardView, error) {
	return m.view(m.Called(ctx, actor, draft))
}

func (m *MockCardService) UpdateCard(ctx context.Context, actor, cardID uuid.UUID, patch ordering.CardPatch) (*ordering.CardView, error) {
	return m.view(m.Called(ctx, actor, cardID, patch))
}

func (m *MockCardService) DeleteCard(ctx context.Context, actor, cardID uuid.UUID) (*model.Card, error) {
	args := m.Called(ctx, actor, cardID)
	if c := args.Get(0); c != nil {
		return c.(*model.Card), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCardService) MoveCard(ctx context.Context, actor uuid.UUID, intent ordering.MoveIntent) (*ordering.CardView, error) {
	return m.view(m.Called(ctx, actor, intent))
}

func (m *MockCardService) AddAssignee(ctx context.Context, actor, cardID, userID uuid.UUID) (*ordering.CardView, error) {
	return m.view(m.Called(ctx, actor, cardID, userID))
}

func (m *MockCardService) RemoveAssignee(ctx context.Context, actor, cardID, userID uuid.UUID) (*ordering.CardView, error) {
	return m.view(m.Called(ctx, actor, cardID, userID))
}

func (m *MockCardService) AddComment(ctx context.Context, actor, cardID uuid.UUID, text string) (*model.CardComment, *model.Card, error) {
	args := m.Called(ctx, actor, cardID, text)
	return args.Get(0).(*model.CardComment), args.Get(1).(*model.Card), args.Error(2)
}

func setupCardTest() (*apiFixture, *MockCardService) {
	gin.SetMode(gin.TestMode)
	svc := new(MockCardService)
	events := &recorder{}
	cards := handler.NewCardHandler(svc, events)

	r := gin.New()
	g := r.Group("/", middleware.JWTAuthMiddleware(testSecret))
	g.POST("/cards/:id/move", cards.Move)
	g.POST("/cards/:id/assignees", cards.AddAssignee)
	g.DELETE("/cards/:id/assignees/:userId", cards.RemoveAssignee)
	return &apiFixture{router: r, events: events}, svc
}

func TestMove_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"card missing", repository.ErrCardNotFound, http.StatusNotFound, "Card not found"},
		{"not a member", ordering.ErrForbidden, http.StatusForbidden, "You don't have access to this board"},
		{"cross board", ordering.ErrCrossBoardMove, http.StatusBadRequest, ordering.ErrCrossBoardMove.Error()},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError, "Failed to move card"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, svc := setupCardTest()
			token := tokenFor(t, uuid.New())
			cardID := uuid.New()
			svc.On("MoveCard", mock.Anything, mock.Anything, mock.MatchedBy(func(in ordering.MoveIntent) bool {
				return in.CardID == cardID && in.Position == 3
			})).Return(nil, tt.err)

			position := 3
			resp := f.do(t, token, http.MethodPost, "/cards/"+cardID.String()+"/move", api.MoveCardRequest{
				FromListID: uuid.New(),
				ToListID:   uuid.New(),
				Position:   &position,
			})

			assert.Equal(t, tt.status, resp.Code)
			assert.Equal(t, tt.message, errorOf(t, resp))
			assert.Empty(t, f.events.all())
			svc.AssertExpectations(t)
		})
	}
}

func TestAssignees_EmitCardUpdated(t *testing.T) {
	f, svc := setupCardTest()
	actor, assignee := uuid.New(), uuid.New()
	token := tokenFor(t, actor)
	card := &ordering.CardView{Card: model.Card{ID: uuid.New(), BoardID: uuid.New(), ListID: uuid.New(), Assignees: model.IDList{assignee}}}

	svc.On("AddAssignee", mock.Anything, actor, card.Card.ID, assignee).Return(card, nil)
	svc.On("RemoveAssignee", mock.Anything, actor, card.Card.ID, assignee).Return(card, nil)

	resp := f.do(t, token, http.MethodPost, "/cards/"+card.Card.ID.String()+"/assignees", api.AssigneeRequest{UserID: assignee})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []uuid.UUID{assignee}, decode[api.Card](t, resp).Assignees)

	resp = f.do(t, token, http.MethodDelete, "/cards/"+card.Card.ID.String()+"/assignees/"+assignee.String(), nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = f.do(t, token, http.MethodDelete, "/cards/"+card.Card.ID.String()+"/assignees/nope", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Invalid userId format", errorOf(t, resp))

	assert.Len(t, f.events.all(), 2)
	svc.AssertExpectations(t)
}
