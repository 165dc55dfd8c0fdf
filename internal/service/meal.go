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

const (
	msgInvalidDate    = "invalid date format."
	msgDateOrder      = "start date must be before end date."
	msgRecipeNotOwned = "recipe not found."
)

// timestampLayouts are tried in order. Values without a zone are UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp such as 2025-01-01T00:00:00Z.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

type MealService struct {
	db *gorm.DB
}

var _ IMealService = (*MealService)(nil)

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// ScheduleMeal creates a meal for one of the user's own recipes. Date order
// and recipe ownership are both checked before reporting.
func (s *MealService) ScheduleMeal(ctx context.Context, userID uint, req types.ScheduleMealRequest) (*models.Meal, error) {
	verr := &ValidationError{}
	if err := validateStruct(req, verr); err != nil {
		return nil, err
	}

	var start, end time.Time
	var startErr, endErr error
	if req.StartDate != "" {
		if start, startErr = ParseTimestamp(req.StartDate); startErr != nil {
			verr.add("start_date", msgInvalidDate)
		}
	}
	if req.EndDate != "" {
		if end, endErr = ParseTimestamp(req.EndDate); endErr != nil {
			verr.add("end_date", msgInvalidDate)
		}
	}
	if req.StartDate != "" && req.EndDate != "" && startErr == nil && endErr == nil && !start.Before(end) {
		verr.add("end_date", msgDateOrder)
	}

	meal := models.Meal{
		UserID:    userID,
		RecipeID:  req.RecipeID,
		StartDate: start,
		EndDate:   end,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.RecipeID != 0 {
			var count int64
			if err := tx.Model(&models.Recipe{}).
				Where("id = ? AND user_id = ?", req.RecipeID, userID).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check recipe: %w", err)
			}
			if count == 0 {
				verr.add("recipe_id", msgRecipeNotOwned)
			}
		}
		if !verr.empty() {
			return verr
		}

		if err := tx.Create(&meal).Error; err != nil {
			return fmt.Errorf("failed to create meal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetMeal(ctx, userID, meal.ID)
}

// GetMeal returns one of the user's meals with its recipe
func (s *MealService) GetMeal(ctx context.Context, userID, id uint) (*models.Meal, error) {
	var meal models.Meal
	err := withMealRecipe(s.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	return &meal, nil
}

// ListMeals returns the user's meals starting in [start, end), earliest first.
func (s *MealService) ListMeals(ctx context.Context, userID uint, start, end time.Time) ([]models.Meal, error) {
	meals := []models.Meal{}
	if err := withMealRecipe(s.db.WithContext(ctx)).
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, start.UTC(), end.UTC()).
		Order("start_date, id").
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}
