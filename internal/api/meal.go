package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manzapp/manz/backend/internal/middleware"
	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/types"
)

const mealNotFound = "Meal not found"

// MealHandler handles meal scheduling requests
type MealHandler struct {
	mealService service.IMealService
	authService service.IAuthService
}

// NewMealHandler creates a new meal handler
func NewMealHandler(mealService service.IMealService, authService service.IAuthService) *MealHandler {
	return &MealHandler{
		mealService: mealService,
		authService: authService,
	}
}

// RegisterRoutes registers the meal routes
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.authService)
	router.POST("/schedule/", auth, h.ScheduleMeal)
	router.GET("/meal/", auth, h.ListMeals)
	router.GET("/meal/:id/", auth, h.GetMeal)
}

// ScheduleMeal places one of the caller's recipes in a time window
func (h *MealHandler) ScheduleMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.ScheduleMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	meal, err := h.mealService.ScheduleMeal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, mealNotFound)
		return
	}

	c.JSON(http.StatusCreated, meal)
}

// ListMeals returns the caller's meals starting inside [start_date, end_date)
func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	startValue, hasStart := queryTimestamp(c, "start_date")
	endValue, hasEnd := queryTimestamp(c, "end_date")
	if !hasStart || !hasEnd {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date and end_date are required"})
		return
	}

	start, err := service.ParseTimestamp(startValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date format"})
		return
	}
	end, err := service.ParseTimestamp(endValue)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date format"})
		return
	}

	meals, err := h.mealService.ListMeals(c.Request.Context(), userID, start, end)
	if err != nil {
		respondError(c, err, mealNotFound)
		return
	}

	c.JSON(http.StatusOK, meals)
}

// GetMeal returns one of the caller's meals
func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: mealNotFound})
		return
	}

	meal, err := h.mealService.GetMeal(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, mealNotFound)
		return
	}

	c.JSON(http.StatusOK, meal)
}
