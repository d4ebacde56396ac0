// Package password derives and checks the bcrypt hashes stored in
// accounts.password_hash for local (email/password) accounts. Provider
// accounts never touch this package.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher carries the bcrypt work factor used for new hashes. Existing
// hashes encode their own cost, so Compare works across cost changes.
type Hasher struct {
	Cost int
}

// NewHasher builds a Hasher at the requested cost. Non-positive values
// fall back to bcrypt.DefaultCost and anything outside bcrypt's
// supported range is clamped to it.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash returns the bcrypt hash of password as a string ready to persist.
// The plaintext is never stored or logged anywhere else.
func (h *Hasher) Hash(password []byte) (string, error) {
	b, err := bcrypt.GenerateFromPassword(password, h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare checks password against a stored hash, returning nil when they
// match. Sign-in maps any error here to an invalid-credentials response
// rather than surfacing bcrypt details.
func (h *Hasher) Compare(hash string, password []byte) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), password)
}
