package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/manzapp/manz/backend/config"
	"github.com/manzapp/manz/backend/internal/database"
	"github.com/manzapp/manz/backend/internal/models"
	"github.com/manzapp/manz/backend/internal/service"
	"github.com/manzapp/manz/backend/internal/types"
)

type ingredient struct {
	name     string
	quantity float64
	unit     string
}

type recipeData struct {
	title       string
	description string
	ingredients []ingredient
}

var demoRecipes = []recipeData{
	{"Omelette", "Two egg omelette", []ingredient{{"egg", 2, "units"}, {"butter", 10, "grams"}}},
	{"Pancakes", "Fluffy breakfast pancakes", []ingredient{{"flour", 200, "grams"}, {"milk", 0.3, "litres"}, {"egg", 1, "units"}}},
	{"Tomato soup", "", []ingredient{{"tomato", 6, "units"}, {"onion", 1, "units"}, {"vegetable stock", 0.5, "litres"}}},
	{"Fried rice", "Use day-old rice", []ingredient{{"rice", 250, "grams"}, {"egg", 2, "units"}, {"soy sauce", 2, "tablespoons"}}},
	{"Greek salad", "", []ingredient{{"tomato", 2, "units"}, {"cucumber", 1, "units"}, {"feta", 100, "grams"}, {"olive oil", 2, "tablespoons"}}},
}

func main() {
	email := flag.String("email", "demo@example.com", "Email of the demo account")
	password := flag.String("password", "demo-password", "Password of the demo account")
	days := flag.Int("days", 5, "Schedule one meal per day for this many days")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	authService := service.NewAuthService(db, cfg.TokenSecret)
	recipeService := service.NewRecipeService(db)
	mealService := service.NewMealService(db)

	user, err := authService.Register(ctx, types.RegisterRequest{
		Email:     *email,
		Password1: *password,
		Password2: *password,
	})
	if errors.Is(err, service.ErrEmailTaken) {
		user = &models.User{}
		if err := db.Where("email = ?", *email).First(user).Error; err != nil {
			log.Fatalf("Failed to load existing demo user: %v", err)
		}
		log.Printf("Using existing user %s", *email)
	} else if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	var created []*models.Recipe
	for _, data := range demoRecipes {
		req := types.CreateRecipeRequest{Title: data.title}
		if data.description != "" {
			description := data.description
			req.Description = &description
		}
		for _, ing := range data.ingredients {
			unit, quantity := ing.unit, ing.quantity
			req.RecipeItems = append(req.RecipeItems, types.RecipeItemInput{
				Item:     types.ItemInput{Name: ing.name, QuantityType: &unit},
				Quantity: &quantity,
			})
		}

		recipe, err := recipeService.CreateRecipe(ctx, user.ID, req)
		if err != nil {
			log.Printf("Failed to create recipe %q: %v", data.title, err)
			continue
		}
		log.Printf("Created recipe %q with %d ingredients", recipe.Title, len(recipe.RecipeItems))
		created = append(created, recipe)
	}

	if len(created) == 0 {
		log.Fatal("No recipes were created")
	}

	dinner := time.Now().UTC().Truncate(24 * time.Hour).Add(18 * time.Hour)
	for day := 0; day < *days; day++ {
		start := dinner.AddDate(0, 0, day+1)
		recipe := created[day%len(created)]
		_, err := mealService.ScheduleMeal(ctx, user.ID, types.ScheduleMealRequest{
			RecipeID:  recipe.ID,
			StartDate: start.Format(time.RFC3339),
			EndDate:   start.Add(time.Hour).Format(time.RFC3339),
		})
		if err != nil {
			log.Printf("Failed to schedule %q: %v", recipe.Title, err)
			continue
		}
	}

	log.Printf("Seeded %d recipes and %d meals for %s", len(created), *days, *email)
}
