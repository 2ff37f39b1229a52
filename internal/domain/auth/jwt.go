package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
)

// Claims is the JWT payload.
type Claims struct {
	UserID  string `json:"uid"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses HS256 tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the user.
func (i *TokenIssuer) Issue(user *User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		UserID:  user.ID.String(),
		Email:   user.Email,
		Name:    user.Name,
		Role:    user.Role,
		IsAdmin: user.IsAdmin(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, apperror.NewInternal(err)
	}
	return signed, expiresAt, nil
}

// Parse validates a token string and returns its claims.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.NewUnauthorized("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired token").WithCause(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperror.NewUnauthorized("invalid token claims")
	}
	return claims, nil
}
