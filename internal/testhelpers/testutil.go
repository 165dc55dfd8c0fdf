package testhelpers

import (
	"context"
	"testing"

	"github.com/manzapp/manz/backend/internal/models"
	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestTokenSecret signs tokens in tests
const TestTokenSecret = "test-token-secret"

// CreateTestUser inserts a user with the given email and password
func CreateTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	// MinCost keeps the suite fast
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// LoginTestUser creates a user and returns it with a live token
func LoginTestUser(t *testing.T, db *gorm.DB, email string) (*models.User, string) {
	t.Helper()

	const password = "password123"
	user := CreateTestUser(t, db, email, password)
	token, err := service.NewAuthService(db, TestTokenSecret).Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("failed to log in test user: %v", err)
	}
	return user, token
}

// Line builds an ingredient line for recipe requests
func Line(name string, quantity float64, quantityType string) types.RecipeItemInput {
	in := types.RecipeItemInput{
		Item:     types.ItemInput{Name: name},
		Quantity: &quantity,
	}
	if quantityType != "" {
		in.Item.QuantityType = &quantityType
	}
	return in
}

// CreateTestRecipe creates a recipe owned by userID through the recipe service
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uint, title string, lines ...types.RecipeItemInput) *models.Recipe {
	t.Helper()

	if len(lines) == 0 {
		lines = []types.RecipeItemInput{Line("salt", 1, "pinch")}
	}
	recipe, err := service.NewRecipeService(db).CreateRecipe(context.Background(), userID, types.CreateRecipeRequest{
		Title:       title,
		RecipeItems: lines,
	})
	if err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}
