package models

import (
	"time"
)

// User is an account in the credential store. Username is optional; a blank
// username is stored as NULL so the unique index only applies to real names.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     *string   `gorm:"size:150;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
}

// AuthToken is the single live bearer token of a user.
type AuthToken struct {
	Key       string    `gorm:"column:token_key;primarykey;size:512" json:"key"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
