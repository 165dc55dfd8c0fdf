package models

import (
	"time"
)

// Item is an ingredient shared by every user and recipe. Name is the natural
// key; image_url and quantity_type are only ever set by the first writer.
type Item struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	Name         string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	ImageURL     *string `gorm:"size:200" json:"image_url"`
	QuantityType *string `gorm:"size:50" json:"quantity_type"`
}

type Recipe struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description *string      `gorm:"type:text" json:"description"`
	UserID      uint         `gorm:"not null;index" json:"-"`
	User        User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RecipeItems []RecipeItem `gorm:"constraint:OnDelete:CASCADE" json:"recipe_items"`
}

// RecipeItem is the quantity of one Item used by one Recipe.
type RecipeItem struct {
	ID       uint    `gorm:"primarykey" json:"-"`
	RecipeID uint    `gorm:"not null;index" json:"-"`
	ItemID   uint    `gorm:"not null;index" json:"-"`
	Item     Item    `gorm:"constraint:OnDelete:CASCADE" json:"item"`
	Quantity float64 `gorm:"not null" json:"quantity"`
}
