package domain

import (
	"time"

	"canopy/backend/internal/apperror"
)

// Provider identifies how an account's credentials are verified: an
// external OAuth identity or a locally stored password hash.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderLocal  Provider = "local"
)

// ParseProvider validates raw against the fixed provider set.
func ParseProvider(raw string) (Provider, error) {
	switch Provider(raw) {
	case ProviderGoogle, ProviderLocal:
		return Provider(raw), nil
	}
	return "", apperror.Operational(
		"canopy.1.error.account.invalid_provider",
		"invalid-provider",
		400,
		"Invalid account provider",
	).WithMeta("provider", raw)
}

func (p Provider) IsLocal() bool { return p == ProviderLocal }

func (p Provider) String() string { return string(p) }

// Account links a user to a credential source. For external providers the
// token fields mirror what the provider handed back on the last exchange;
// for the local provider only PasswordHash is set.
type Account struct {
	ID                string
	UserID            string
	Provider          Provider
	ProviderAccountID string
	RefreshToken      string
	AccessToken       string
	ExpiresAt         *time.Time
	TokenType         string
	PasswordHash      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
