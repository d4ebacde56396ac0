package session

import "canopy/backend/internal/apperror"

// AuthorizationStatus tracks whether a per-request authorization check has
// been satisfied. It is independent of authentication: an authenticated
// session still starts unauthorized.
type AuthorizationStatus string

const (
	StatusUnauthorized AuthorizationStatus = "unauthorized"
	StatusAuthorizing  AuthorizationStatus = "authorizing"
	StatusAuthorized   AuthorizationStatus = "authorized"
)

// ParseAuthorizationStatus validates raw against the fixed set of statuses.
func ParseAuthorizationStatus(raw string) (AuthorizationStatus, error) {
	switch AuthorizationStatus(raw) {
	case StatusUnauthorized, StatusAuthorizing, StatusAuthorized:
		return AuthorizationStatus(raw), nil
	}
	return "", apperror.Operational(
		"canopy.1.error.authentication.invalid_session_authorization_status",
		"invalid-session-authorization-status",
		400,
		raw+" - invalid session authorization status",
	)
}

func (s AuthorizationStatus) IsUnauthorized() bool { return s == StatusUnauthorized }
func (s AuthorizationStatus) IsAuthorizing() bool  { return s == StatusAuthorizing }
func (s AuthorizationStatus) IsAuthorized() bool   { return s == StatusAuthorized }

func (s AuthorizationStatus) String() string { return string(s) }
