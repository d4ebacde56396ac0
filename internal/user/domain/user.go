package domain

import (
	"time"

	"canopy/backend/internal/apperror"
)

// User is the local profile an external identity is exchanged for.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Picture   string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrCanNotAccessUser is returned when a session tries to read a user
// profile other than its own.
func ErrCanNotAccessUser() *apperror.Error {
	return apperror.Operational(
		"canopy.1.error.user.can_not_access_user",
		"can-not-access-user",
		403,
		"Can not access user",
	)
}

// ErrUserNotFound is returned when the requested user does not exist.
func ErrUserNotFound() *apperror.Error {
	return apperror.Operational(
		"canopy.1.error.user.user_not_found",
		"user-not-found",
		404,
		"User not found",
	)
}
