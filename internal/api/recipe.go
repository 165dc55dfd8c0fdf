package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manzapp/manz/backend/internal/middleware"
	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/types"
)

const recipeNotFound = "Recipe not found"

// RecipeHandler handles recipe requests
type RecipeHandler struct {
	recipeService service.IRecipeService
	authService   service.IAuthService
	createLimiter *middleware.RateLimiter
}

// NewRecipeHandler creates a new recipe handler. createLimiter may be nil.
func NewRecipeHandler(recipeService service.IRecipeService, authService service.IAuthService, createLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		createLimiter: createLimiter,
	}
}

// RegisterRoutes registers the recipe routes
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipe")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		if h.createLimiter != nil {
			recipes.POST("/", h.createLimiter.Middleware(middleware.ByUser), h.CreateRecipe)
		} else {
			recipes.POST("/", h.CreateRecipe)
		}
		recipes.GET("/", h.ListRecipes)
		recipes.GET("/:id/", h.GetRecipe)
		recipes.DELETE("/:id/", h.DeleteRecipe)
	}
}

// CreateRecipe stores a recipe and its ingredient lines
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, recipeNotFound)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// ListRecipes returns the caller's recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, recipeNotFound)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one of the caller's recipes
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: recipeNotFound})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, recipeNotFound)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes a recipe together with its lines and meals
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: recipeNotFound})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, recipeNotFound)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Recipe deleted successfully"})
}
