package types

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Username  string `json:"username" form:"username" validate:"omitempty,max=150"`
	Email     string `json:"email" form:"email" validate:"required,email,max=254"`
	Password1 string `json:"password1" form:"password1" validate:"required,min=8"`
	Password2 string `json:"password2" form:"password2" validate:"required,min=8"`
}

// LoginRequest represents the request body for exchanging credentials for a token
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ItemInput is the item half of an ingredient line. Only Name is used to
// resolve an existing item; the rest applies when the item is first created.
type ItemInput struct {
	Name         string  `json:"name" validate:"required,max=255"`
	ImageURL     *string `json:"image_url" validate:"omitempty,max=200"`
	QuantityType *string `json:"quantity_type" validate:"omitempty,max=50"`
}

// RecipeItemInput is one ingredient line. Quantity is a pointer so a missing
// value is told apart from zero.
type RecipeItemInput struct {
	Item     ItemInput `json:"item"`
	Quantity *float64  `json:"quantity" validate:"required"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title       string            `json:"title" validate:"required,max=255"`
	Description *string           `json:"description"`
	RecipeItems []RecipeItemInput `json:"recipe_items" validate:"required,min=1,dive"`
}

// ScheduleMealRequest represents the request body for scheduling a meal.
// Dates stay strings so malformed values surface as field errors.
type ScheduleMealRequest struct {
	RecipeID  uint   `json:"recipe_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}
