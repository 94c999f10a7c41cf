package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"freelanceflow/internal/auth"
	"freelanceflow/internal/models"
	"freelanceflow/internal/repository"
)

// ErrInvalidCredentials covers both unknown emails and wrong passwords so
// login failures never reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates users and manages token lifecycle.
type AuthService struct {
	users      *repository.UserRepository
	tokens     *auth.TokenIssuer
	revocation *auth.RevocationStore
	log        *zap.Logger
}

func NewAuthService(users *repository.UserRepository, tokens *auth.TokenIssuer, revocation *auth.RevocationStore, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, revocation: revocation, log: log}
}

// Login verifies credentials and returns a signed access token with the
// authenticated user. Inactive accounts are rejected.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errors.Wrap(err, "looking up user")
	}
	if err := auth.CheckPassword(password, user.Password); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("user logged in", zap.String("user_id", user.ID.String()))
	return token, user, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.revocation.Revoke(ctx, claims.ID, ttl)
}
