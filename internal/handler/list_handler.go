package handler

import (
	"net/http"

	"boardsync/internal/api"
	"boardsync/internal/realtime"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	lists  ListService
	events realtime.Broadcaster
}

func NewListHandler(lists ListService, events realtime.Broadcaster) *ListHandler {
	return &ListHandler{lists: lists, events: events}
}

// Reorder godoc
// @Summary   Persist a new order for all lists of a board
// @Tags      Lists
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body api.ReorderListsRequest true "Every list id of the board, in the new order"
// @Success   200 {object} api.MessageResponse
// @Failure   409 {object} api.ErrorResponse
// @Router    /lists/reorder [post]
func (h *ListHandler) Reorder(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req api.ReorderListsRequest
	if !bindJSON(c, &req) {
		return
	}

	boardID, err := h.lists.ReorderLists(c.Request.Context(), userID, req.Lists)
	if err != nil {
		respondError(c, err, "Failed to reorder lists")
		return
	}

	h.events.ToBoard(c.Request.Context(), boardID, realtime.ListsReordered{
		BoardID: boardID,
		ListIDs: req.Lists,
		UserID:  userID,
	})
	c.JSON(http.StatusOK, gin.H{"message": "Lists reordered successfully"})
}

// Create godoc
// @Summary   Append a list to a board
// @Tags      Lists
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body api.CreateListRequest true "List"
// @Success   201 {object} api.List
// @Router    /lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req api.CreateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.lists.CreateList(c.Request.Context(), userID, req.BoardID, req.Title)
	if err != nil {
		respondError(c, err, "Failed to create list")
		return
	}

	h.events.ToBoard(c.Request.Context(), list.BoardID, realtime.ListCreated{BoardID: list.BoardID, ListID: list.ID})
	c.JSON(http.StatusCreated, toList(list))
}

// Update godoc
// @Summary   Rename a list
// @Tags      Lists
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path string                true "List ID"
// @Param     body body api.UpdateListRequest true "Title"
// @Success   200 {object} api.List
// @Router    /lists/{id} [put]
func (h *ListHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req api.UpdateListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := h.lists.UpdateList(c.Request.Context(), userID, listID, req.Title)
	if err != nil {
		respondError(c, err, "Failed to update list")
		return
	}

	h.events.ToBoard(c.Request.Context(), list.BoardID, realtime.ListUpdated{
		BoardID: list.BoardID,
		ListID:  list.ID,
		UserID:  userID,
	})
	c.JSON(http.StatusOK, toList(list))
}

// Delete godoc
// @Summary   Delete a list and its cards
// @Tags      Lists
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "List ID"
// @Success   200 {object} api.MessageResponse
// @Router    /lists/{id} [delete]
func (h *ListHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.lists.DeleteList(c.Request.Context(), userID, listID)
	if err != nil {
		respondError(c, err, "Failed to delete list")
		return
	}

	h.events.ToBoard(c.Request.Context(), list.BoardID, realtime.ListDeleted{BoardID: list.BoardID, ListID: list.ID})
	c.JSON(http.StatusOK, gin.H{"message": "List deleted successfully"})
}
