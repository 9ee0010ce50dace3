package handler

import (
	"net/http"

	"boardsync/internal/api"
	"boardsync/internal/ordering"
	"boardsync/internal/realtime"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boards   BoardService
	events   realtime.Broadcaster
	presence PresenceSource
}

func NewBoardHandler(boards BoardService, events realtime.Broadcaster, presence PresenceSource) *BoardHandler {
	return &BoardHandler{boards: boards, events: events, presence: presence}
}

// Create godoc
// @Summary   Create a board
// @Tags      Boards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body api.CreateBoardRequest true "Board"
// @Success   201 {object} api.Board
// @Router    /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req api.CreateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boards.CreateBoard(c.Request.Context(), userID, ordering.BoardDraft{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondError(c, err, "Failed to create board")
		return
	}

	h.events.ToUser(c.Request.Context(), userID, realtime.BoardCreated{BoardID: board.ID})
	c.JSON(http.StatusCreated, toBoard(board))
}

// GetAll godoc
// @Summary   Boards the caller owns or is a member of
// @Tags      Boards
// @Produce   json
// @Security  BearerAuth
// @Success   200 {array} api.Board
// @Router    /boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boards, err := h.boards.ListBoards(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to fetch boards")
		return
	}

	out := make([]api.Board, len(boards))
	for i := range boards {
		out[i] = toBoard(&boards[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetByID godoc
// @Summary   Board snapshot with ordered lists and cards
// @Tags      Boards
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Board ID"
// @Success   200 {object} api.BoardSnapshot
// @Failure   403 {object} api.ErrorResponse
// @Failure   404 {object} api.ErrorResponse
// @Router    /boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	snap, err := h.boards.Snapshot(c.Request.Context(), userID, boardID)
	if err != nil {
		respondError(c, err, "Failed to fetch board")
		return
	}
	c.JSON(http.StatusOK, toSnapshot(snap))
}

// Update godoc
// @Summary   Update board title, description or color
// @Tags      Boards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path string                 true "Board ID"
// @Param     body body api.UpdateBoardRequest true "Fields to change"
// @Success   200 {object} api.Board
// @Router    /boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req api.UpdateBoardRequest
	if !bindJSON(c, &req) {
		return
	}

	board, err := h.boards.UpdateBoard(c.Request.Context(), userID, boardID, ordering.BoardPatch{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		respondError(c, err, "Failed to update board")
		return
	}

	h.events.ToBoard(c.Request.Context(), board.ID, realtime.BoardUpdated{BoardID: board.ID})
	c.JSON(http.StatusOK, toBoard(board))
}

// Delete godoc
// @Summary   Delete a board and everything on it (owner only)
// @Tags      Boards
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Board ID"
// @Success   200 {object} api.MessageResponse
// @Router    /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	memberIDs, err := h.boards.DeleteBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		respondError(c, err, "Failed to delete board")
		return
	}

	// Dashboards listen on user groups, not on the board.
	ctx := c.Request.Context()
	h.events.ToBoard(ctx, boardID, realtime.BoardDeleted{BoardID: boardID})
	for _, id := range memberIDs {
		h.events.ToUser(ctx, id, realtime.BoardDeleted{BoardID: boardID})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Board deleted successfully"})
}

// AddMember godoc
// @Summary   Add a registered user to the board by email
// @Tags      Boards
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path string               true "Board ID"
// @Param     body body api.AddMemberRequest true "Member"
// @Success   200 {object} api.BoardSnapshot
// @Router    /boards/{id}/members [post]
func (h *BoardHandler) AddMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req api.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	snap, err := h.boards.AddMember(c.Request.Context(), userID, boardID, req.Email)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	ctx := c.Request.Context()
	h.events.ToBoard(ctx, boardID, realtime.BoardUpdated{BoardID: boardID})
	for _, m := range snap.Members {
		if m.User.ID != userID {
			h.events.ToUser(ctx, m.User.ID, realtime.BoardUpdated{BoardID: boardID})
		}
	}
	c.JSON(http.StatusOK, toSnapshot(snap))
}

// RemoveMember godoc
// @Summary   Remove a member from the board (owner only)
// @Tags      Boards
// @Produce   json
// @Security  BearerAuth
// @Param     id     path string true "Board ID"
// @Param     userId path string true "User ID"
// @Success   200 {object} api.BoardSnapshot
// @Router    /boards/{id}/members/{userId} [delete]
func (h *BoardHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	snap, err := h.boards.RemoveMember(c.Request.Context(), userID, boardID, memberID)
	if err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}

	ctx := c.Request.Context()
	h.events.ToBoard(ctx, boardID, realtime.BoardUpdated{BoardID: boardID})
	h.events.ToUser(ctx, memberID, realtime.BoardUpdated{BoardID: boardID})
	c.JSON(http.StatusOK, toSnapshot(snap))
}

// Presence godoc
// @Summary   Users currently connected to the board
// @Tags      Boards
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Board ID"
// @Success   200 {object} api.Presence
// @Router    /boards/{id}/presence [get]
func (h *BoardHandler) Presence(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.boards.Authorize(c.Request.Context(), boardID, userID); err != nil {
		respondError(c, err, "Failed to fetch presence")
		return
	}
	c.JSON(http.StatusOK, api.Presence{BoardID: boardID, Users: nonNilIDs(h.presence.Present(boardID))})
}
