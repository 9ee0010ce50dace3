package handler

import (
	"net/http"

	"boardsync/internal/api"
	"boardsync/internal/ordering"
	"boardsync/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cards  CardService
	events realtime.Broadcaster
}

func NewCardHandler(cards CardService, events realtime.Broadcaster) *CardHandler {
	return &CardHandler{cards: cards, events: events}
}

// Create godoc
// @Summary   Append a card to a list
// @Tags      Cards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body api.CreateCardRequest true "Card"
// @Success   201 {object} api.Card
// @Router    /cards [post]
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req api.CreateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cards.CreateCard(c.Request.Context(), userID, ordering.CardDraft{
		Title:       req.Title,
		Description: req.Description,
		ListID:      req.ListID,
		BoardID:     req.BoardID,
	})
	if err != nil {
		respondError(c, err, "Failed to create card")
		return
	}

	h.events.ToBoard(c.Request.Context(), card.Card.BoardID, realtime.CardCreated{
		BoardID: card.Card.BoardID,
		CardID:  card.Card.ID,
		ListID:  card.Card.ListID,
	})
	c.JSON(http.StatusCreated, toCard(card))
}

// Update godoc
// @Summary   Edit card fields
// @Tags      Cards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path string                true "Card ID"
// @Param     body body api.UpdateCardRequest true "Fields to change"
// @Success   200 {object} api.Card
// @Router    /cards/{id} [put]
func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req api.UpdateCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cards.UpdateCard(c.Request.Context(), userID, cardID, ordering.CardPatch{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Labels:       req.Labels,
	})
	if err != nil {
		respondError(c, err, "Failed to update card")
		return
	}

	h.updated(c, userID, card)
	c.JSON(http.StatusOK, toCard(card))
}

// Delete godoc
// @Summary   Delete a card
// @Tags      Cards
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Card ID"
// @Success   200 {object} api.MessageResponse
// @Router    /cards/{id} [delete]
func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	card, err := h.cards.DeleteCard(c.Request.Context(), userID, cardID)
	if err != nil {
		respondError(c, err, "Failed to delete card")
		return
	}

	h.events.ToBoard(c.Request.Context(), card.BoardID, realtime.CardDeleted{
		BoardID: card.BoardID,
		CardID:  card.ID,
		ListID:  card.ListID,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted successfully"})
}

// Move godoc
// @Summary   Move a card within or between lists of the same board
// @Tags      Cards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path string              true "Card ID"
// @Param     body body api.MoveCardRequest true "Source list, target list and index"
// @Success   200 {object} api.Card
// @Failure   400 {object} api.ErrorResponse
// @Router    /cards/{id}/move [post]
func (h *CardHandler) Move(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req api.MoveCardRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cards.MoveCard(c.Request.Context(), userID, ordering.MoveIntent{
		CardID:     cardID,
		FromListID: req.FromListID,
		ToListID:   req.ToListID,
		Position:   *req.Position,
	})
	if err != nil {
		respondError(c, err, "Failed to move card")
		return
	}

	h.events.ToBoard(c.Request.Context(), card.Card.BoardID, realtime.CardMoved{
		BoardID:    card.Card.BoardID,
		CardID:     card.Card.ID,
		FromListID: req.FromListID,
		ToListID:   card.Card.ListID,
		Position:   card.Position,
		UserID:     userID,
	})
	c.JSON(http.StatusOK, toCard(card))
}

// AddAssignee godoc
// @Summary   Assign a user to a card
// @Tags      Cards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path string              true "Card ID"
// @Param     body body api.AssigneeRequest true "User"
// @Success   200 {object} api.Card
// @Router    /cards/{id}/assignees [post]
func (h *CardHandler) AddAssignee(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req api.AssigneeRequest
	if !bindJSON(c, &req) {
		return
	}

	card, err := h.cards.AddAssignee(c.Request.Context(), userID, cardID, req.UserID)
	if err != nil {
		respondError(c, err, "Failed to assign user")
		return
	}

	h.updated(c, userID, card)
	c.JSON(http.StatusOK, toCard(card))
}

// RemoveAssignee godoc
// @Summary   Unassign a user from a card
// @Tags      Cards
// @Produce   json
// @Security  BearerAuth
// @Param     id     path string true "Card ID"
// @Param     userId path string true "User ID"
// @Success   200 {object} api.Card
// @Router    /cards/{id}/assignees/{userId} [delete]
func (h *CardHandler) RemoveAssignee(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	assignee, ok := pathID(c, "userId")
	if !ok {
		return
	}

	card, err := h.cards.RemoveAssignee(c.Request.Context(), userID, cardID, assignee)
	if err != nil {
		respondError(c, err, "Failed to unassign user")
		return
	}

	h.updated(c, userID, card)
	c.JSON(http.StatusOK, toCard(card))
}

// Comment godoc
// @Summary   Comment on a card
// @Tags      Cards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path string             true "Card ID"
// @Param     body body api.CommentRequest true "Comment"
// @Success   201 {object} api.Comment
// @Router    /cards/{id}/comments [post]
func (h *CardHandler) Comment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	cardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req api.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, card, err := h.cards.AddComment(c.Request.Context(), userID, cardID, req.Text)
	if err != nil {
		respondError(c, err, "Failed to add comment")
		return
	}

	h.events.ToBoard(c.Request.Context(), card.BoardID, realtime.CardUpdated{
		BoardID: card.BoardID,
		CardID:  card.ID,
		UserID:  userID,
	})
	c.JSON(http.StatusCreated, toComment(comment))
}

func (h *CardHandler) updated(c *gin.Context, userID uuid.UUID, card *ordering.CardView) {
	h.events.ToBoard(c.Request.Context(), card.Card.BoardID, realtime.CardUpdated{
		BoardID: card.Card.BoardID,
		CardID:  card.Card.ID,
		UserID:  userID,
	})
}
