package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manzapp/manz/backend/internal/models"
	"github.com/manzapp/manz/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// withLines preloads the ingredient lines of a recipe in insertion order
func withLines(db *gorm.DB) *gorm.DB {
	return db.
		Preload("RecipeItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_items.id")
		}).
		Preload("RecipeItems.Item")
}

// withMealRecipe preloads the recipe of a meal and the recipe's lines
func withMealRecipe(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Recipe").
		Preload("Recipe.RecipeItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_items.id")
		}).
		Preload("Recipe.RecipeItems.Item")
}

// CreateRecipe stores a recipe and all of its ingredient lines, or nothing.
// Items are resolved by exact name and created only when missing.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uint, req types.CreateRecipeRequest) (*models.Recipe, error) {
	req.Title = strings.TrimSpace(req.Title)
	for i := range req.RecipeItems {
		req.RecipeItems[i].Item.Name = strings.TrimSpace(req.RecipeItems[i].Item.Name)
	}

	verr := &ValidationError{}
	if err := validateStruct(req, verr); err != nil {
		return nil, err
	}
	if !verr.empty() {
		return nil, verr
	}

	recipe := models.Recipe{
		Title:       req.Title,
		Description: req.Description,
		UserID:      userID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		for _, line := range req.RecipeItems {
			item, err := getOrCreateItem(tx, line.Item)
			if err != nil {
				return err
			}
			recipeItem := models.RecipeItem{
				RecipeID: recipe.ID,
				ItemID:   item.ID,
				Quantity: *line.Quantity,
			}
			if err := tx.Create(&recipeItem).Error; err != nil {
				return fmt.Errorf("failed to create recipe item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[RecipeService] User %d created recipe %d with %d items", userID, recipe.ID, len(req.RecipeItems))
	return s.GetRecipe(ctx, userID, recipe.ID)
}

// getOrCreateItem inserts the item unless one with the same name exists and
// then reads back whichever row won. Metadata of an existing item is kept.
func getOrCreateItem(tx *gorm.DB, in types.ItemInput) (*models.Item, error) {
	candidate := models.Item{
		Name:         in.Name,
		ImageURL:     in.ImageURL,
		QuantityType: in.QuantityType,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to create item %q: %w", in.Name, err)
	}

	var item models.Item
	if err := tx.Where("name = ?", in.Name).First(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to load item %q: %w", in.Name, err)
	}
	return &item, nil
}

// GetRecipe retrieves one of the user's recipes by ID
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := withLines(s.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// ListRecipes lists the user's recipes with their ingredient lines
func (s *RecipeService) ListRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if err := withLines(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id").
		Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// DeleteRecipe deletes one of the user's recipes together with its lines and
// meals. A recipe owned by someone else is reported as missing.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get recipe: %w", err)
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Meal{}).Error; err != nil {
			return fmt.Errorf("failed to delete meals: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe items: %w", err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}

		log.Printf("[RecipeService] User %d deleted recipe %d", userID, id)
		return nil
	})
}
