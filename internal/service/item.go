package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manzapp/manz/backend/internal/models"
	"github.com/manzapp/manz/backend/internal/types"
	"gorm.io/gorm"
)

type ItemService struct {
	db *gorm.DB
}

var _ IItemService = (*ItemService)(nil)

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

// IngredientsUntil lists the ingredient lines of every distinct recipe the
// user has a meal for ending at or before cutoff. Recipes appear in the order
// of their first meal and quantities are not summed across recipes.
func (s *ItemService) IngredientsUntil(ctx context.Context, userID uint, cutoff time.Time) ([]types.IngredientEntry, error) {
	var meals []models.Meal
	if err := withMealRecipe(s.db.WithContext(ctx)).
		Where("user_id = ? AND end_date <= ?", userID, cutoff.UTC()).
		Order("start_date, id").
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}

	entries := []types.IngredientEntry{}
	seen := make(map[uint]bool)
	for _, meal := range meals {
		if meal.Recipe == nil || seen[meal.RecipeID] {
			continue
		}
		seen[meal.RecipeID] = true
		for _, line := range meal.Recipe.RecipeItems {
			entries = append(entries, types.IngredientEntry{
				Item:     line.Item,
				Quantity: line.Quantity,
			})
		}
	}
	return entries, nil
}

// GetItem returns an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}
