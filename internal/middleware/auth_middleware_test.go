package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"boardsync/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(testSecret))
	protected.GET("/resource", func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User ID not found in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Access granted", "user_id": userID})
	})

	return r
}

func signToken(claims jwt.MapClaims, secret string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, _ := token.SignedString([]byte(secret))
	return s
}

func validClaims(userID string) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": userID,
		"exp":     jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
}

func serve(router *gin.Engine, target, authorization string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	router := setupRouter()
	userID := uuid.New()

	resp := serve(router, "/protected/resource", "Bearer "+signToken(validClaims(userID.String()), testSecret))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), userID.String())
}

func TestJWTAuthMiddleware_QueryToken(t *testing.T) {
	router := setupRouter()
	userID := uuid.New()

	resp := serve(router, "/protected/resource?token="+signToken(validClaims(userID.String()), testSecret), "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), userID.String())
}

func TestJWTAuthMiddleware_Rejects(t *testing.T) {
	expired := jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}

	tests := []struct {
		name          string
		authorization string
		wantError     string
	}{
		{"no header", "", "Authorization header is required"},
		{"wrong scheme", "InvalidFormat token123", "Authorization header format must be Bearer {token}"},
		{"empty bearer", "Bearer ", "Authorization header format must be Bearer {token}"},
		{"garbage token", "Bearer invalid-token", "Invalid or expired token"},
		{"wrong secret", "Bearer " + signToken(validClaims(uuid.NewString()), "other-secret"), "Invalid or expired token"},
		{"expired", "Bearer " + signToken(expired, testSecret), "Invalid or expired token"},
		{"bad user id", "Bearer " + signToken(validClaims("not-a-valid-uuid"), testSecret), "Invalid user ID in token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(setupRouter(), "/protected/resource", tt.authorization)

			assert.Equal(t, http.StatusUnauthorized, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantError)
		})
	}
}
