package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/types"
)

type stubValidator map[string]uint

func (s stubValidator) ValidateToken(_ context.Context, key string) (*types.TokenClaims, error) {
	if key == "broken" {
		return nil, errors.New("database is down")
	}
	userID, ok := s[key]
	if !ok {
		return nil, service.ErrInvalidToken
	}
	return &types.TokenClaims{UserID: userID}, nil
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(stubValidator{"good": 7}))
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("user_id")})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Token good", http.StatusOK, `{"user_id":7}`},
		{"lowercase scheme", "token good", http.StatusOK, `{"user_id":7}`},
		{"missing header", "", http.StatusUnauthorized, `{"error":"Authentication credentials were not provided."}`},
		{"bearer scheme", "Bearer good", http.StatusUnauthorized, `{"error":"Invalid token header."}`},
		{"no key", "Token", http.StatusUnauthorized, `{"error":"Invalid token header."}`},
		{"unknown key", "Token nope", http.StatusUnauthorized, `{"error":"Invalid token."}`},
		{"lookup failure", "Token broken", http.StatusUnauthorized, `{"error":"Invalid token."}`},
	}

	router := newAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}
