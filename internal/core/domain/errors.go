package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrBikeUnavailable = errors.New("bike not available")
)

var (
	ErrBikeNotFound    = fmt.Errorf("bike %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)

	ErrInvalidStatus      = fmt.Errorf("invalid status: %w", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
	ErrNotBookingOwner    = fmt.Errorf("booking belongs to another user: %w", ErrForbidden)
	ErrAdminProtected     = fmt.Errorf("admin accounts cannot be deleted: %w", ErrForbidden)
	ErrEmailTaken         = fmt.Errorf("email already registered: %w", ErrConflict)
)
