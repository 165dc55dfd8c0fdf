package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// currentUserID returns the id stored by middleware.AuthMiddleware. Handlers
// behind the middleware can rely on it; the 401 covers misconfigured routes.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication credentials were not provided."})
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid token."})
		return 0, false
	}
	return userID, true
}
