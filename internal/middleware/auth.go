package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/types"
)

// AuthScheme is the keyword clients put before the token in the Authorization header
const AuthScheme = "Token"

const (
	msgNoCredentials = "Authentication credentials were not provided."
	msgBadHeader     = "Invalid token header."
	msgInvalidToken  = "Invalid token."
)

// TokenValidator is an interface for validating auth tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, key string) (*types.TokenClaims, error)
}

// AuthMiddleware creates a middleware that resolves "Authorization: Token <key>"
// to a user and stores the user id under "user_id".
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgNoCredentials})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], AuthScheme) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgBadHeader})
			return
		}

		claims, err := validator.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			if !errors.Is(err, service.ErrInvalidToken) {
				log.Printf("[AuthMiddleware] token lookup failed: %v", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgInvalidToken})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
