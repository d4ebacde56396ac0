package session

import "canopy/backend/internal/apperror"

// Type classifies who a session represents.
type Type string

const (
	TypeUnauthenticated Type = "unauthenticated"
	TypeAuthenticated   Type = "authenticated"
	TypeAdmin           Type = "admin"
)

// ParseType validates raw against the fixed set of session types.
func ParseType(raw string) (Type, error) {
	switch Type(raw) {
	case TypeUnauthenticated, TypeAuthenticated, TypeAdmin:
		return Type(raw), nil
	}
	return "", apperror.Operational(
		"canopy.1.error.authentication.invalid_session_type",
		"invalid-session-type",
		400,
		raw+" - invalid session type",
	)
}

func (t Type) IsUnauthenticated() bool { return t == TypeUnauthenticated }
func (t Type) IsAuthenticated() bool   { return t == TypeAuthenticated }
func (t Type) IsAdmin() bool           { return t == TypeAdmin }

// IsUser reports whether the type resolves to a real user
// (authenticated or admin).
func (t Type) IsUser() bool { return t.IsAuthenticated() || t.IsAdmin() }

func (t Type) String() string { return string(t) }
