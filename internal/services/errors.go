package services

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrComplaintNotFound   = errors.New("complaint not found")
	ErrFeeNotFound         = errors.New("fee not found")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")

	// ErrForbidden is returned when a caller tries to touch records scoped
	// to another user.
	ErrForbidden = errors.New("operation not permitted for this user")

	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
