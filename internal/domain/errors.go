package domain

import "errors"

// Domain-specific errors for business logic validation.
var (
	// Event errors
	ErrInvalidEventType  = errors.New("invalid event type")
	ErrInvalidTransition = errors.New("invalid attendance transition")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")

	// User errors
	ErrUserNotFound     = errors.New("user not found")
	ErrUserInactive     = errors.New("user is inactive")
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrInvalidRole      = errors.New("invalid user role")
	ErrPermissionDenied = errors.New("permission denied")
	ErrDuplicateToken   = errors.New("token already in use")

	// Validation errors
	ErrEmptyName = errors.New("name is required")
)
