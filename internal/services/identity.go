package services

import (
	"context"

	"github.com/monocle-dev/storefront/internal/auth"
	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/store"
	"github.com/pkg/errors"
)

type TokenCodec interface {
	Sign(subject string) (string, error)
	Verify(token string) (string, error)
}

// IdentityService turns credentials into tokens and tokens into principals.
type IdentityService struct {
	users  store.UserRepository
	hasher auth.PasswordHasher
	tokens TokenCodec
}

func NewIdentityService(users store.UserRepository, hasher auth.PasswordHasher, tokens TokenCodec) *IdentityService {
	return &IdentityService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Authenticate matches email exactly as stored. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Sign(user.Email)
}

func (s *IdentityService) Resolve(ctx context.Context, token string) (*models.User, error) {
	email, err := s.tokens.Verify(token)

	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByEmail(ctx, email)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func RequireAdmin(user *models.User) error {
	if user == nil || !user.IsAdmin {
		return ErrForbidden
	}

	return nil
}

// ListUsers is restricted to administrators.
func (s *IdentityService) ListUsers(ctx context.Context, principal *models.User) ([]models.User, error) {
	if err := RequireAdmin(principal); err != nil {
		return nil, err
	}

	return s.users.List(ctx)
}
