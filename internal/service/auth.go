package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/manzapp/manz/backend/internal/models"
	"github.com/manzapp/manz/backend/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	msgEmailTaken       = "a user is already registered with this e-mail address."
	msgUsernameTaken    = "a user with that username already exists."
	msgPasswordMismatch = "passwords do not match."
)

type AuthService struct {
	db          *gorm.DB
	tokenSecret []byte
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, tokenSecret string) *AuthService {
	return &AuthService{
		db:          db,
		tokenSecret: []byte(tokenSecret),
	}
}

// Register validates req in a single pass and creates the account. Passwords
// are only compared once every field validator has passed.
func (s *AuthService) Register(ctx context.Context, req types.RegisterRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	verr := &ValidationError{}
	if err := validateStruct(req, verr); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if req.Email != "" {
		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			verr.add("email", msgEmailTaken)
			verr.Cause = ErrEmailTaken
		}
	}
	if req.Username != "" {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if count > 0 {
			verr.add("username", msgUsernameTaken)
		}
	}
	if verr.empty() && req.Password1 != req.Password2 {
		verr.add("password", msgPasswordMismatch)
	}
	if !verr.empty() {
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if req.Username != "" {
		user.Username = &req.Username
	}

	if err := db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration of the same email or username
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr.add("email", msgEmailTaken)
			verr.Cause = ErrEmailTaken
			return nil, verr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AuthService] Registered user %d", user.ID)
	return &user, nil
}

// Login returns the user's live token, minting one on first login. Unknown
// email and wrong password report the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", ErrMissingCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokenFor(ctx, user.ID)
}

// tokenFor returns the existing token of userID or inserts a new one. Racing
// logins both insert-if-absent and then read back the single surviving row.
func (s *AuthService) tokenFor(ctx context.Context, userID uint) (string, error) {
	db := s.db.WithContext(ctx)

	var token models.AuthToken
	err := db.Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return token.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up token: %w", err)
	}

	key, err := s.GenerateToken(userID)
	if err != nil {
		return "", err
	}

	token = models.AuthToken{Key: key, UserID: userID}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&token).Error; err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	var stored models.AuthToken
	if err := db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return stored.Key, nil
}

// GenerateToken signs a new token key for userID. The key is only valid once
// it is stored as the user's live token.
func (s *AuthService) GenerateToken(userID uint) (string, error) {
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			Subject:  strconv.FormatUint(uint64(userID), 10),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.tokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks the signature of key and that it is still the live
// token of the user it names.
func (s *AuthService) ValidateToken(ctx context.Context, key string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(key, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.tokenSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.AuthToken{}).
		Where("token_key = ? AND user_id = ?", key, claims.UserID).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if count == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes the live token of userID. The next login mints a new one.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error; err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// GetUserByID returns the account with the given id.
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}
