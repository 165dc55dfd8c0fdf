package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal schedules one of the user's recipes inside [StartDate, EndDate).
type Meal struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	RecipeID  uint      `gorm:"not null;index" json:"recipe_id"`
	Recipe    *Recipe   `gorm:"constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	StartDate time.Time `gorm:"not null;index" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
}

// AllModels lists every table in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&AuthToken{},
		&Item{},
		&Recipe{},
		&RecipeItem{},
		&Meal{},
	}
}

// BeforeSave stores meal windows in UTC so range queries compare like for like
func (m *Meal) BeforeSave(tx *gorm.DB) error {
	m.StartDate = m.StartDate.UTC()
	m.EndDate = m.EndDate.UTC()
	return nil
}
