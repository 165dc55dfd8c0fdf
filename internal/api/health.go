package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/manzapp/manz/backend/internal/database"
	"github.com/manzapp/manz/backend/internal/middleware"
	"github.com/manzapp/manz/backend/internal/service"
)

// HealthHandler reports liveness and the caller's rate limit budget
type HealthHandler struct {
	db            *gorm.DB
	recipeLimiter *middleware.RateLimiter
	authService   service.IAuthService
}

// NewHealthHandler creates a new health handler. recipeLimiter may be nil.
func NewHealthHandler(db *gorm.DB, recipeLimiter *middleware.RateLimiter, authService service.IAuthService) *HealthHandler {
	return &HealthHandler{
		db:            db,
		recipeLimiter: recipeLimiter,
		authService:   authService,
	}
}

// RegisterRoutes registers the health routes
func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.HealthCheck)
	router.GET("/rate-limit/", middleware.AuthMiddleware(h.authService), h.RateLimitStatus)
}

// HealthCheck pings the database
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	if err := database.HealthCheck(ctx, h.db); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RateLimitStatus returns how many recipes the caller may still create in
// the current window
func (h *HealthHandler) RateLimitStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.recipeLimiter == nil {
		c.JSON(http.StatusOK, gin.H{"enabled": false})
		return
	}

	remaining, reset, err := h.recipeLimiter.GetRemainingRequests(c.Request.Context(), fmt.Sprintf("user:%d", userID))
	if err != nil {
		respondError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enabled":   true,
		"remaining": remaining,
		"reset_at":  reset.UTC().Format(time.RFC3339),
	})
}
