package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims carried by an auth token. The ID claim
// (jti) is random so a freshly minted key never collides with a revoked one.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}
