// Package auth orchestrates token issuance and verification, packaging
// results as cookie and header delivery instructions for the HTTP layer.
package auth

import (
	"errors"
	"fmt"
	"time"

	"canopy/backend/internal/auth/session"
	"canopy/backend/internal/auth/token"
)

// expirations is the fixed set of accepted token lifetimes.
var expirations = map[string]time.Duration{
	"1d":  24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"14d": 14 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
}

// ParseExpiration maps one of the accepted human-readable durations
// (1d, 7d, 14d, 30d) to a time.Duration.
func ParseExpiration(raw string) (time.Duration, error) {
	d, ok := expirations[raw]
	if !ok {
		return 0, fmt.Errorf("auth: expiration must be one of 1d, 7d, 14d, 30d; got %q", raw)
	}
	return d, nil
}

// Config is the fixed construction surface of the authentication service.
type Config struct {
	Secret       string
	Algorithm    string // HS256, HS384, or HS512
	Expiration   string // 1d, 7d, 14d, or 30d
	CookieName   string
	CookieDomain string // optional
	KeyID        string
}

// Cookie is a cookie-write instruction for the transport layer. A
// negative MaxAge with an empty Value clears the session cookie.
type Cookie struct {
	Name     string
	Value    string
	Domain   string
	MaxAge   int // seconds
	Secure   bool
	HTTPOnly bool
}

// Credentials packages a freshly issued token with its two delivery forms.
type Credentials struct {
	Token               string
	AuthorizationHeader string
	Cookie              Cookie
}

// Service issues, verifies, and revokes (cookie-wise) session tokens. It
// is stateless beyond its configuration and safe for concurrent use.
type Service struct {
	tokens       *token.Service
	cookieName   string
	cookieDomain string
	keyID        string
	expiry       time.Duration
}

// NewService validates cfg and builds the authentication service.
func NewService(cfg Config) (*Service, error) {
	if cfg.CookieName == "" {
		return nil, errors.New("auth: cookie name must not be empty")
	}
	expiry, err := ParseExpiration(cfg.Expiration)
	if err != nil {
		return nil, err
	}
	tokens, err := token.NewService(cfg.Secret, cfg.Algorithm, expiry)
	if err != nil {
		return nil, err
	}
	return &Service{
		tokens:       tokens,
		cookieName:   cfg.CookieName,
		cookieDomain: cfg.CookieDomain,
		keyID:        cfg.KeyID,
		expiry:       expiry,
	}, nil
}

// CookieName returns the configured session cookie name.
func (s *Service) CookieName() string { return s.cookieName }

// Authenticate issues a new signed token for the session and wraps it as
// both a Bearer header value and a cookie-write instruction.
func (s *Service) Authenticate(sess *session.Session) (*Credentials, error) {
	if sess == nil {
		return nil, errors.New("auth: authenticate requires a session")
	}
	signed, err := s.tokens.Generate(token.Payload{
		Type:       sess.Type().String(),
		DistinctID: sess.DistinctID(),
		Roles:      sess.Roles(),
	}, sess.DistinctID(), s.keyID)
	if err != nil {
		return nil, err
	}
	return &Credentials{
		Token:               signed,
		AuthorizationHeader: "Bearer " + signed,
		Cookie: Cookie{
			Name:     s.cookieName,
			Value:    signed,
			Domain:   s.cookieDomain,
			MaxAge:   int(s.expiry / time.Second),
			Secure:   true,
			HTTPOnly: true,
		},
	}, nil
}

// Verify validates a token string. An empty token returns (nil, nil):
// absence of a token is not an error. Any other failure surfaces the
// token service error unchanged.
func (s *Service) Verify(tokenString string) (*token.Claims, error) {
	if tokenString == "" {
		return nil, nil
	}
	return s.tokens.Verify(tokenString)
}

// Deauthenticate returns the cookie-write instruction that causes the
// client to drop the session cookie.
func (s *Service) Deauthenticate() Cookie {
	return Cookie{
		Name:     s.cookieName,
		Value:    "",
		Domain:   s.cookieDomain,
		MaxAge:   -1,
		Secure:   true,
		HTTPOnly: true,
	}
}
