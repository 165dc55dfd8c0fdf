package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/testhelpers"
	"github.com/manzapp/manz/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientsUntil(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	user := testhelpers.CreateTestUser(t, db, "shop@example.com", "password123")
	other := testhelpers.CreateTestUser(t, db, "other@example.com", "password123")
	meals := service.NewMealService(db)
	items := service.NewItemService(db)
	ctx := context.Background()

	omelette := testhelpers.CreateTestRecipe(t, db, user.ID, "Omelette",
		testhelpers.Line("egg", 2, "units"), testhelpers.Line("butter", 10, "grams"))
	pancakes := testhelpers.CreateTestRecipe(t, db, user.ID, "Pancakes",
		testhelpers.Line("egg", 1, "units"), testhelpers.Line("flour", 200, "grams"))
	late := testhelpers.CreateTestRecipe(t, db, user.ID, "Late dinner", testhelpers.Line("rice", 100, "grams"))
	foreign := testhelpers.CreateTestRecipe(t, db, other.ID, "Foreign", testhelpers.Line("tofu", 1, "block"))

	schedule := func(userID, recipeID uint, start, end string) {
		t.Helper()
		_, err := meals.ScheduleMeal(ctx, userID, types.ScheduleMealRequest{RecipeID: recipeID, StartDate: start, EndDate: end})
		require.NoError(t, err)
	}
	schedule(user.ID, pancakes.ID, "2025-02-02T08:00:00Z", "2025-02-02T09:00:00Z")
	schedule(user.ID, omelette.ID, "2025-02-01T08:00:00Z", "2025-02-01T09:00:00Z")
	schedule(user.ID, omelette.ID, "2025-02-03T08:00:00Z", "2025-02-03T09:00:00Z")
	schedule(user.ID, late.ID, "2025-02-03T23:30:00Z", "2025-02-04T00:30:00Z")
	schedule(other.ID, foreign.ID, "2025-02-01T08:00:00Z", "2025-02-01T09:00:00Z")

	cutoff := time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC)
	entries, err := items.IngredientsUntil(ctx, user.ID, cutoff)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Item.Name)
	}
	assert.Equal(t, []string{"egg", "butter", "egg", "flour"}, names,
		"distinct recipes in order of their first meal, lines not summed")
	assert.Equal(t, 2.0, entries[0].Quantity)
	assert.Equal(t, 1.0, entries[2].Quantity)
	assert.Equal(t, entries[0].Item.ID, entries[2].Item.ID)
}

func TestIngredientsUntilBoundary(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	user := testhelpers.CreateTestUser(t, db, "edge@example.com", "password123")
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID, "Tea", testhelpers.Line("tea", 1, "bag"))
	items := service.NewItemService(db)
	ctx := context.Background()

	_, err := service.NewMealService(db).ScheduleMeal(ctx, user.ID, types.ScheduleMealRequest{
		RecipeID:  recipe.ID,
		StartDate: "2025-02-01T16:00:00Z",
		EndDate:   "2025-02-01T17:00:00Z",
	})
	require.NoError(t, err)

	atEnd, err := items.IngredientsUntil(ctx, user.ID, time.Date(2025, 2, 1, 17, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, atEnd, 1, "a meal ending exactly at the cutoff counts")

	midMeal, err := items.IngredientsUntil(ctx, user.ID, time.Date(2025, 2, 1, 16, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotNil(t, midMeal)
	assert.Empty(t, midMeal)
}

func TestGetItem(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	user := testhelpers.CreateTestUser(t, db, "item@example.com", "password123")
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID, "Salad", testhelpers.Line("lettuce", 1, "head"))
	items := service.NewItemService(db)

	item, err := items.GetItem(context.Background(), recipe.RecipeItems[0].Item.ID)
	require.NoError(t, err)
	assert.Equal(t, "lettuce", item.Name)

	_, err = items.GetItem(context.Background(), 9999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
