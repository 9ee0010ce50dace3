package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boardsync/internal/api"
	"boardsync/internal/auth"
	"boardsync/internal/handler"
	"boardsync/internal/middleware"
	"boardsync/internal/model"
	"boardsync/internal/ordering"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

type stubStats struct {
	stats *ordering.Stats
	err   error
}

func (s stubStats) Stats(context.Context, uuid.UUID) (*ordering.Stats, error) {
	return s.stats, s.err
}

func setupUserTest(stats handler.StatsService) (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mockRepo := new(MockUserRepository)
	userHandler := handler.NewUserHandler(mockRepo, stats, testSecret, time.Hour)

	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/users/stats", middleware.JWTAuthMiddleware(testSecret), userHandler.Stats)
	return r, mockRepo
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func errorOf(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Error
}

func TestRegister_Success(t *testing.T) {
	router, mockRepo := setupUserTest(nil)

	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	reqBody := api.RegisterRequest{
		Name:     "Test User",
		Email:    "Test@Example.com",
		Password: "password123",
	}
	resp := postJSON(t, router, "/register", reqBody)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var response api.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, reqBody.Name, response.User.Name)
	assert.Equal(t, "test@example.com", response.User.Email)

	subject, err := auth.ParseToken(testSecret, response.Token)
	require.NoError(t, err)
	assert.Equal(t, response.User.ID, subject)

	created := mockRepo.Calls[1].Arguments.Get(1).(*model.User)
	assert.NotEqual(t, reqBody.Password, created.HashedPassword)
	assert.True(t, auth.CheckPassword(created.HashedPassword, reqBody.Password))

	mockRepo.AssertExpectations(t)
}

func TestRegister_UserAlreadyExists(t *testing.T) {
	router, mockRepo := setupUserTest(nil)

	existingUser := &model.User{
		ID:             uuid.New(),
		Email:          "existing@example.com",
		HashedPassword: "hashed_password",
		Name:           "Existing User",
	}
	mockRepo.On("FindByEmail", mock.Anything, "existing@example.com").Return(existingUser, nil)

	resp := postJSON(t, router, "/register", api.RegisterRequest{
		Name:     "Test User",
		Email:    "existing@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "User with this email already exists", errorOf(t, resp))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_InvalidInput(t *testing.T) {
	router, mockRepo := setupUserTest(nil)

	resp := postJSON(t, router, "/register", map[string]string{"email": "not-an-email", "password": "x"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestRegister_RepositoryFailure(t *testing.T) {
	router, mockRepo := setupUserTest(nil)

	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	resp := postJSON(t, router, "/register", api.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "Failed to register user", errorOf(t, resp))
}

func TestLogin_Success(t *testing.T) {
	router, mockRepo := setupUserTest(nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	testUser := &model.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: string(hashedPassword),
		Name:           "Test User",
	}
	mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(testUser, nil)

	resp := postJSON(t, router, "/login", api.LoginRequest{
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var response api.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, testUser.Name, response.User.Name)
	assert.Equal(t, testUser.Email, response.User.Email)
	assert.Equal(t, testUser.ID.String(), response.User.ID)

	mockRepo.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	known := &model.User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: string(hashedPassword),
		Name:           "Test User",
	}

	tests := []struct {
		name  string
		email string
		user  *model.User
	}{
		{"wrong password", "test@example.com", known},
		{"unknown email", "nonexistent@example.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockRepo := setupUserTest(nil)
			if tt.user == nil {
				mockRepo.On("FindByEmail", mock.Anything, tt.email).Return(nil, nil)
			} else {
				mockRepo.On("FindByEmail", mock.Anything, tt.email).Return(tt.user, nil)
			}

			resp := postJSON(t, router, "/login", api.LoginRequest{Email: tt.email, Password: "wrong_password"})

			assert.Equal(t, http.StatusUnauthorized, resp.Code)
			assert.Equal(t, "Invalid credentials", errorOf(t, resp))
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStats(t *testing.T) {
	router, _ := setupUserTest(stubStats{stats: &ordering.Stats{Boards: 2, Lists: 5, Cards: 11}})
	token, err := auth.GenerateToken(testSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var stats api.Stats
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
	assert.Equal(t, api.Stats{Boards: 2, Lists: 5, Cards: 11}, stats)
}

func TestStats_RequiresToken(t *testing.T) {
	router, _ := setupUserTest(stubStats{})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/users/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
