package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/manzapp/manz/backend/internal/service"
)

// MessageResponse is the body of successful operations without a resource
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of most failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse lists every field error of a rejected request body
type ValidationResponse struct {
	Message []string `json:"message"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token string `json:"token"`
}

// respondError maps service errors onto status codes. Unknown errors are
// logged and reported as a bare 500.
func respondError(c *gin.Context, err error, notFound string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ValidationResponse{Message: verr.Messages})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFound})
	case errors.Is(err, service.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password are required."})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Invalid email or password."})
	case errors.Is(err, service.ErrUnsupportedImage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Upload a PNG, JPEG, GIF or WebP image."})
	case errors.Is(err, service.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Image must be 5MB or smaller."})
	default:
		log.Printf("[%s %s] %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
	}
}

// invalidBody answers a body that could not be decoded at all
func invalidBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
}

// pathID parses a numeric path parameter. Anything else matches no resource.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryTimestamp reads an ISO-8601 query parameter. A "+" in an unescaped
// offset arrives as a space and is restored before parsing.
func queryTimestamp(c *gin.Context, name string) (string, bool) {
	value, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.ReplaceAll(strings.TrimSpace(value), " ", "+"), true
}
