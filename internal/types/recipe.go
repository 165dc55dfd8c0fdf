package types

import (
	"github.com/manzapp/manz/backend/internal/models"
)

// IngredientEntry is one ingredient line needed for a scheduled meal
type IngredientEntry struct {
	Item     models.Item `json:"item"`
	Quantity float64     `json:"quantity"`
}

// ImageUploadResponse is returned after an item image is stored
type ImageUploadResponse struct {
	ImageURL string `json:"image_url"`
}
