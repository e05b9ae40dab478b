package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shoplite/shoplite-api/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims represents the JWT claims for a Shoplite session.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Payload returns the identity data carried by the claims.
func (c *Claims) Payload() model.ClaimPayload {
	return model.ClaimPayload{
		UserID: c.UserID,
		Name:   c.Name,
		Email:  c.Email,
	}
}

// GenerateToken creates a signed session token for the given identity.
func GenerateToken(payload model.ClaimPayload, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shoplite",
			Audience:  jwt.ClaimStrings{"shoplite-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: payload.UserID,
		Name:   payload.Name,
		Email:  payload.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a session token, returning the
// claims if valid. Every failure mode — bad signature, malformed
// structure, expiry — collapses into ErrInvalidToken; callers must not
// distinguish them.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("shoplite"), jwt.WithAudience("shoplite-api"))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
