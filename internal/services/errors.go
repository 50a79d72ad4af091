package services

import "github.com/pkg/errors"

// Authorization class.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access not allowed")
)

// Resource and request class. Cross-owner access is reported as ErrNotFound.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrCartInactive    = errors.New("cart is inactive")
	ErrEmailTaken      = errors.New("email already exists")
)
