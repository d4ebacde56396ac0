package auth

import (
	"testing"
	"time"

	"canopy/backend/internal/auth/session"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(Config{
		Secret:     "test-secret",
		Algorithm:  "HS256",
		Expiration: "7d",
		CookieName: "canopy-auth",
		KeyID:      "key-1",
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return s
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	sess, err := session.User(session.UserParams{DistinctID: "u1"})
	if err != nil {
		t.Fatalf("session.User: %v", err)
	}

	creds, err := svc.Authenticate(sess)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if creds.Token == "" {
		t.Fatal("token empty")
	}
	if creds.AuthorizationHeader != "Bearer "+creds.Token {
		t.Errorf("authorization header = %q", creds.AuthorizationHeader)
	}

	cookie := creds.Cookie
	if cookie.Name != "canopy-auth" || cookie.Value != creds.Token {
		t.Errorf("cookie = %+v", cookie)
	}
	if !cookie.Secure || !cookie.HTTPOnly {
		t.Error("cookie must be secure and http-only")
	}
	if want := int((7 * 24 * time.Hour) / time.Second); cookie.MaxAge != want {
		t.Errorf("cookie max age = %d, want %d", cookie.MaxAge, want)
	}

	claims, err := svc.Verify(creds.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Type != "authenticated" || claims.DistinctID != "u1" || claims.Subject != "u1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestAuthenticate_NilSession(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Authenticate(nil); err == nil {
		t.Error("nil session accepted")
	}
}

func TestVerify_EmptyTokenIsNotAnError(t *testing.T) {
	svc := newTestService(t)
	claims, err := svc.Verify("")
	if err != nil {
		t.Fatalf("Verify(\"\"): %v", err)
	}
	if claims != nil {
		t.Errorf("claims = %+v, want nil", claims)
	}
}

func TestVerify_InvalidTokenSurfacesError(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Verify("garbage"); err == nil {
		t.Error("invalid token accepted")
	}
}

func TestDeauthenticate(t *testing.T) {
	svc := newTestService(t)
	cookie := svc.Deauthenticate()
	if cookie.Name != "canopy-auth" || cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("cookie = %+v", cookie)
	}
	if !cookie.Secure || !cookie.HTTPOnly {
		t.Error("logout cookie must keep secure and http-only attributes")
	}
}

func TestNewService_Validation(t *testing.T) {
	base := Config{
		Secret:     "s",
		Algorithm:  "HS256",
		Expiration: "7d",
		CookieName: "c",
		KeyID:      "k",
	}

	bad := base
	bad.Expiration = "2d"
	if _, err := NewService(bad); err == nil {
		t.Error("expiration outside the allow-list accepted")
	}

	bad = base
	bad.Algorithm = "ES256"
	if _, err := NewService(bad); err == nil {
		t.Error("algorithm outside the allow-list accepted")
	}

	bad = base
	bad.CookieName = ""
	if _, err := NewService(bad); err == nil {
		t.Error("empty cookie name accepted")
	}
}

func TestParseExpiration(t *testing.T) {
	for raw, want := range map[string]time.Duration{
		"1d":  24 * time.Hour,
		"7d":  7 * 24 * time.Hour,
		"14d": 14 * 24 * time.Hour,
		"30d": 30 * 24 * time.Hour,
	} {
		got, err := ParseExpiration(raw)
		if err != nil {
			t.Errorf("ParseExpiration(%s): %v", raw, err)
		}
		if got != want {
			t.Errorf("ParseExpiration(%s) = %v, want %v", raw, got, want)
		}
	}
	if _, err := ParseExpiration("90d"); err == nil {
		t.Error("ParseExpiration(90d): want error")
	}
}
