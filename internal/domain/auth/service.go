package auth

import (
	"context"
	"time"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/apperror"
	"github.com/Alejoxd70/sactpaper-stationery/pkg/logger"
)

// LoginResult is what a successful login returns.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// Service implements authentication.
type Service struct {
	repo   Repository
	issuer *TokenIssuer
}

// NewService creates an auth service.
func NewService(repo Repository, issuer *TokenIssuer) *Service {
	return &Service{repo: repo, issuer: issuer}
}

// Login verifies credentials and issues a token.
// Wrong email and wrong password return the same error so the endpoint
// does not leak which accounts exist.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	if !user.Active {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	if !user.CheckPassword(password) {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", "email", user.Email)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ParseToken validates a bearer token.
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	return s.issuer.Parse(tokenString)
}
