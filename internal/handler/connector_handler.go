package handler

import (
	"net/http"

	"boardsync/internal/api"
	"boardsync/internal/ordering"
	"boardsync/internal/realtime"

	"github.com/gin-gonic/gin"
)

type ConnectorHandler struct {
	connectors ConnectorService
	events     realtime.Broadcaster
}

func NewConnectorHandler(connectors ConnectorService, events realtime.Broadcaster) *ConnectorHandler {
	return &ConnectorHandler{connectors: connectors, events: events}
}

// Create godoc
// @Summary   Draw a connector between two board elements
// @Tags      Connectors
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body body api.CreateConnectorRequest true "Connector"
// @Success   201 {object} api.Connector
// @Router    /connectors [post]
func (h *ConnectorHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req api.CreateConnectorRequest
	if !bindJSON(c, &req) {
		return
	}

	conn, err := h.connectors.CreateConnector(c.Request.Context(), userID, ordering.ConnectorDraft{
		BoardID:     req.BoardID,
		FromElement: req.FromElement,
		ToElement:   req.ToElement,
		LineStyle:   req.LineStyle,
		ArrowStyle:  req.ArrowStyle,
		Color:       req.Color,
		Label:       req.Label,
		FromX:       req.FromX,
		FromY:       req.FromY,
		ToX:         req.ToX,
		ToY:         req.ToY,
	})
	if err != nil {
		respondError(c, err, "Failed to create connector")
		return
	}

	h.events.ToBoard(c.Request.Context(), conn.BoardID, realtime.ConnectorCreated{BoardID: conn.BoardID, ConnectorID: conn.ID})
	c.JSON(http.StatusCreated, toConnector(conn))
}

// GetByBoard godoc
// @Summary   Connectors drawn on a board
// @Tags      Connectors
// @Produce   json
// @Security  BearerAuth
// @Param     boardId path string true "Board ID"
// @Success   200 {array} api.Connector
// @Router    /connectors/board/{boardId} [get]
func (h *ConnectorHandler) GetByBoard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	boardID, ok := pathID(c, "boardId")
	if !ok {
		return
	}

	conns, err := h.connectors.ListConnectors(c.Request.Context(), userID, boardID)
	if err != nil {
		respondError(c, err, "Failed to fetch connectors")
		return
	}

	out := make([]api.Connector, len(conns))
	for i := range conns {
		out[i] = toConnector(&conns[i])
	}
	c.JSON(http.StatusOK, out)
}

// Update godoc
// @Summary   Change connector endpoints, styling or coordinates
// @Tags      Connectors
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id   path string                     true "Connector ID"
// @Param     body body api.UpdateConnectorRequest true "Fields to change"
// @Success   200 {object} api.Connector
// @Router    /connectors/{id} [put]
func (h *ConnectorHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req api.UpdateConnectorRequest
	if !bindJSON(c, &req) {
		return
	}

	conn, err := h.connectors.UpdateConnector(c.Request.Context(), userID, id, ordering.ConnectorPatch{
		FromElement: req.FromElement,
		ToElement:   req.ToElement,
		LineStyle:   req.LineStyle,
		ArrowStyle:  req.ArrowStyle,
		Color:       req.Color,
		Label:       req.Label,
		FromX:       req.FromX,
		FromY:       req.FromY,
		ToX:         req.ToX,
		ToY:         req.ToY,
	})
	if err != nil {
		respondError(c, err, "Failed to update connector")
		return
	}

	h.events.ToBoard(c.Request.Context(), conn.BoardID, realtime.ConnectorUpdated{BoardID: conn.BoardID, ConnectorID: conn.ID})
	c.JSON(http.StatusOK, toConnector(conn))
}

// Delete godoc
// @Summary   Remove a connector
// @Tags      Connectors
// @Produce   json
// @Security  BearerAuth
// @Param     id path string true "Connector ID"
// @Success   200 {object} api.MessageResponse
// @Router    /connectors/{id} [delete]
func (h *ConnectorHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	conn, err := h.connectors.DeleteConnector(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "Failed to delete connector")
		return
	}

	h.events.ToBoard(c.Request.Context(), conn.BoardID, realtime.ConnectorDeleted{BoardID: conn.BoardID, ConnectorID: conn.ID})
	c.JSON(http.StatusOK, gin.H{"message": "Connector deleted successfully"})
}
