package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/manzapp/manz/backend/internal/middleware"
	"github.com/manzapp/manz/backend/internal/service"
)

// Dependencies holds everything the handlers need. Redis and ImageService
// are optional.
type Dependencies struct {
	DB            *gorm.DB
	AuthService   service.IAuthService
	RecipeService service.IRecipeService
	MealService   service.IMealService
	ItemService   service.IItemService
	ImageService  service.IImageService
	Redis         *redis.Client
}

// NewDependencies wires the gorm backed services. redisClient and
// imageService may be nil.
func NewDependencies(db *gorm.DB, tokenSecret string, redisClient *redis.Client, imageService *service.ImageService) Dependencies {
	deps := Dependencies{
		DB:            db,
		AuthService:   service.NewAuthService(db, tokenSecret),
		RecipeService: service.NewRecipeService(db),
		MealService:   service.NewMealService(db),
		ItemService:   service.NewItemService(db),
		Redis:         redisClient,
	}
	if imageService != nil {
		deps.ImageService = imageService
	}
	return deps
}

// SetupAPI registers every route at the root and again under /api
func SetupAPI(router *gin.Engine, deps Dependencies) {
	var loginLimiter, recipeLimiter *middleware.RateLimiter
	if deps.Redis != nil {
		loginLimiter = middleware.NewLoginRateLimiter(deps.Redis)
		recipeLimiter = middleware.NewRecipeCreationRateLimiter(deps.Redis)
	}

	authHandler := NewAuthHandler(deps.AuthService, loginLimiter)
	recipeHandler := NewRecipeHandler(deps.RecipeService, deps.AuthService, recipeLimiter)
	mealHandler := NewMealHandler(deps.MealService, deps.AuthService)
	itemHandler := NewItemHandler(deps.ItemService, deps.ImageService, deps.AuthService)
	healthHandler := NewHealthHandler(deps.DB, recipeLimiter, deps.AuthService)

	for _, group := range []*gin.RouterGroup{router.Group(""), router.Group("/api")} {
		authHandler.RegisterRoutes(group)
		recipeHandler.RegisterRoutes(group)
		mealHandler.RegisterRoutes(group)
		itemHandler.RegisterRoutes(group)
		healthHandler.RegisterRoutes(group)
	}
}
