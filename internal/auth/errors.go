package auth

import "canopy/backend/internal/apperror"

// ErrUnauthenticated is the error authorize gates return when a use case
// requires a signed-in user and the session is anonymous.
func ErrUnauthenticated() *apperror.Error {
	return apperror.Operational(
		"canopy.1.error.authentication.unauthenticated",
		"unauthenticated",
		403,
		"Unauthenticated",
	)
}

// ErrInvalidCredentials is returned by the local sign-in path when the
// password does not match the stored hash. It deliberately does not say
// which of the two inputs was wrong.
func ErrInvalidCredentials() *apperror.Error {
	return apperror.Operational(
		"canopy.1.error.authentication.invalid_credentials",
		"invalid-credentials",
		403,
		"Invalid credentials",
	)
}
