package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"boardsync/internal/middleware"
	"boardsync/internal/ordering"
	"boardsync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUser returns the authenticated user id or writes a 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses a uuid path parameter or writes a 400.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}

// respondError maps engine and repository errors to a status and message.
// Anything unrecognised is logged and reported as failure.
func respondError(c *gin.Context, err error, failure string) {
	status, message := http.StatusInternalServerError, failure
	switch {
	case errors.Is(err, repository.ErrBoardNotFound):
		status, message = http.StatusNotFound, "Board not found"
	case errors.Is(err, repository.ErrListNotFound):
		status, message = http.StatusNotFound, "List not found"
	case errors.Is(err, repository.ErrCardNotFound):
		status, message = http.StatusNotFound, "Card not found"
	case errors.Is(err, repository.ErrConnectorNotFound):
		status, message = http.StatusNotFound, "Connector not found"
	case errors.Is(err, repository.ErrUserNotFound):
		status, message = http.StatusNotFound, "User not found"
	case errors.Is(err, ordering.ErrForbidden):
		status, message = http.StatusForbidden, "You don't have access to this board"
	case errors.Is(err, ordering.ErrStaleOrder):
		status, message = http.StatusConflict, "List order is out of date, refetch the board"
	case errors.Is(err, ordering.ErrCrossBoardMove),
		errors.Is(err, ordering.ErrBoardMismatch),
		errors.Is(err, ordering.ErrInvalid):
		status, message = http.StatusBadRequest, err.Error()
	default:
		slog.ErrorContext(c.Request.Context(), failure, "error", err, "path", c.FullPath())
	}
	c.JSON(status, gin.H{"error": message})
}
