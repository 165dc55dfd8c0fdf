package service

import (
	"context"
	"time"

	"github.com/manzapp/manz/backend/internal/models"
	"github.com/manzapp/manz/backend/internal/types"
)

// IAuthService defines the interface for account and token operations
type IAuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, userID uint) error
	ValidateToken(ctx context.Context, key string) (*types.TokenClaims, error)
	GenerateToken(userID uint) (string, error)
	GetUserByID(ctx context.Context, userID uint) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, userID uint, req types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error)
	ListRecipes(ctx context.Context, userID uint) ([]models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id uint) error
}

// IMealService defines the interface for meal scheduling
type IMealService interface {
	ScheduleMeal(ctx context.Context, userID uint, req types.ScheduleMealRequest) (*models.Meal, error)
	GetMeal(ctx context.Context, userID, id uint) (*models.Meal, error)
	ListMeals(ctx context.Context, userID uint, start, end time.Time) ([]models.Meal, error)
}

// IItemService defines the interface for ingredient queries
type IItemService interface {
	IngredientsUntil(ctx context.Context, userID uint, cutoff time.Time) ([]types.IngredientEntry, error)
	GetItem(ctx context.Context, id uint) (*models.Item, error)
}

// IImageService defines the interface for item image storage
type IImageService interface {
	UploadItemImage(ctx context.Context, data []byte) (string, error)
}
