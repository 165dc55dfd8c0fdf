package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manzapp/manz/backend/internal/middleware"
	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/types"
)

// AuthHandler handles registration and token requests
type AuthHandler struct {
	authService  service.IAuthService
	loginLimiter *middleware.RateLimiter
}

// NewAuthHandler creates a new auth handler. loginLimiter may be nil.
func NewAuthHandler(authService service.IAuthService, loginLimiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register/", h.Register)

	if h.loginLimiter != nil {
		router.POST("/login/", h.loginLimiter.Middleware(middleware.ByClientIP), h.Login)
	} else {
		router.POST("/login/", h.Login)
	}

	router.POST("/logout/", middleware.AuthMiddleware(h.authService), h.Logout)
}

// Register creates an account. JSON and form bodies are both accepted.
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c)
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req); err != nil {
		respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "User registered successfully"})
}

// Login returns the caller's token, minting one on first use
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidBody(c)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// Logout revokes the caller's token
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Token not found")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Successfully logged out"})
}
