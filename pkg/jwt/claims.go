package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the access-token claims for a dashboard user. Email and the
// dashboard role (professor or admin) ride along for log context and for
// clients that decode their own token; refresh tokens carry only
// registered claims.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}
