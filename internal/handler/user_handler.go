package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"boardsync/internal/api"
	"boardsync/internal/auth"
	"boardsync/internal/model"
	"boardsync/internal/repository"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	repo      repository.UserRepositoryInterface
	stats     StatsService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserHandler(repo repository.UserRepositoryInterface, stats StatsService, jwtSecret string, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{repo: repo, stats: stats, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register godoc
// @Summary  Register a user
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    body body api.RegisterRequest true "New user"
// @Success  201 {object} api.AuthResponse
// @Failure  409 {object} api.ErrorResponse
// @Router   /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	user := &model.User{
		Email:          req.Email,
		Name:           strings.TrimSpace(req.Name),
		HashedPassword: hash,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		slog.Error("failed to create user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Login godoc
// @Summary  Log in
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    body body api.LoginRequest true "Credentials"
// @Success  200 {object} api.AuthResponse
// @Failure  401 {object} api.ErrorResponse
// @Router   /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *UserHandler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := auth.GenerateToken(h.jwtSecret, user.ID, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(status, api.AuthResponse{Token: token, User: toUser(user)})
}

// Stats godoc
// @Summary   Counts of boards, lists and cards visible to the caller
// @Tags      Users
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} api.Stats
// @Router    /users/stats [get]
func (h *UserHandler) Stats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.stats.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load stats")
		return
	}
	c.JSON(http.StatusOK, api.Stats{Boards: stats.Boards, Lists: stats.Lists, Cards: stats.Cards})
}
