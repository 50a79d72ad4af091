package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/monocle-dev/storefront/internal/auth"
	"github.com/monocle-dev/storefront/internal/models"
	"github.com/monocle-dev/storefront/internal/store"
	"github.com/pkg/errors"
)

const minPasswordLength = 8

type NewUser struct {
	Email     string
	Password  string
	Title     string
	FirstName string
	LastName  string
	Gender    string
	IsAdmin   bool
}

// ProfileUpdate is what a principal submits about themselves. Password is
// plaintext here and hashed before it reaches the patch. Email is the token
// subject and cannot be changed through it.
type ProfileUpdate struct {
	Title     *string
	FirstName *string
	LastName  *string
	Gender    *string
	Email     *string
	Password  *string
}

type UserService struct {
	users  store.UserRepository
	hasher auth.PasswordHasher
}

func NewUserService(users store.UserRepository, hasher auth.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

func (s *UserService) Create(ctx context.Context, in NewUser) (*models.User, error) {
	email, err := normalizeEmail(in.Email)

	if err != nil {
		return nil, err
	}

	if len(in.Password) < minPasswordLength {
		return nil, errors.Wrapf(ErrInvalidArgument, "password must be at least %d characters", minPasswordLength)
	}

	hash, err := s.hasher.Hash(in.Password)

	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Title:        strings.TrimSpace(in.Title),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Gender:       strings.TrimSpace(in.Gender),
		IsAdmin:      in.IsAdmin,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// UpdateProfile applies only the fields present in the update.
func (s *UserService) UpdateProfile(ctx context.Context, principal *models.User, update ProfileUpdate) (*models.User, error) {
	patch, err := s.buildPatch(update)

	if err != nil {
		return nil, err
	}

	if patch.Empty() {
		return nil, errors.Wrap(ErrInvalidArgument, "no valid fields to update")
	}

	user, err := s.users.FindByID(ctx, principal.ID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	patch.Apply(user)

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) buildPatch(update ProfileUpdate) (models.UserPatch, error) {
	patch := models.UserPatch{
		Title:     trimmed(update.Title),
		FirstName: trimmed(update.FirstName),
		LastName:  trimmed(update.LastName),
		Gender:    trimmed(update.Gender),
	}

	if update.Email != nil {
		return patch, errors.Wrap(ErrInvalidArgument, "email cannot be changed")
	}

	if update.Password != nil {
		if len(*update.Password) < minPasswordLength {
			return patch, errors.Wrapf(ErrInvalidArgument, "password must be at least %d characters", minPasswordLength)
		}

		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return patch, err
		}
		patch.PasswordHash = &hash
	}

	return patch, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))

	if _, err := mail.ParseAddress(email); err != nil {
		return "", errors.Wrap(ErrInvalidArgument, "invalid email")
	}

	return email, nil
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}

	t := strings.TrimSpace(*v)

	return &t
}
