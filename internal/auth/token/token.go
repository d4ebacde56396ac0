// Package token signs and verifies the compact session tokens. The service
// is configured once (secret, algorithm, expiry) and is safe for
// unsynchronized concurrent use.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token is malformed, expired,
	// signed with the wrong key, or signed with a disallowed algorithm.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the decoded payload of a signed session token.
type Claims struct {
	Type       string   `json:"type"`
	DistinctID string   `json:"distinctId"`
	Roles      []string `json:"roles"`
	jwt.RegisteredClaims
}

// Payload is the session data embedded at issuance.
type Payload struct {
	Type       string
	DistinctID string
	Roles      []string
}

var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Service issues and validates signed session tokens with a fixed secret,
// algorithm, and expiry.
type Service struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
}

// NewService returns a token service. algorithm must be one of the
// allow-listed HMAC algorithms (HS256, HS384, HS512).
func NewService(secret, algorithm string, expiry time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: secret must not be empty")
	}
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("token: unsupported algorithm %q", algorithm)
	}
	return &Service{secret: []byte(secret), method: method, expiry: expiry}, nil
}

// Expiry returns the configured token lifetime.
func (s *Service) Expiry() time.Duration { return s.expiry }

// Generate signs a token carrying the payload plus a fresh jti, sub, the
// configured expiry, and the kid header. Signing failures are returned to
// the caller; there is no fallback.
func (s *Service) Generate(p Payload, sub, kid string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Type:       p.Type,
		DistinctID: p.DistinctID,
		Roles:      p.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = kid
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string (signature, expiry,
// algorithm allow-list). Callers must treat any failure as "no valid
// session", never as fatal.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
