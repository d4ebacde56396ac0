package token

import (
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService("test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return s
}

func TestService_RoundTrip(t *testing.T) {
	s := newTestService(t)

	signed, err := s.Generate(Payload{
		Type:       "authenticated",
		DistinctID: "u1",
		Roles:      []string{"user-u1"},
	}, "u1", "key-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := s.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Type != "authenticated" || claims.DistinctID != "u1" {
		t.Errorf("claims = %+v", claims)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "user-u1" {
		t.Errorf("roles = %v, want [user-u1]", claims.Roles)
	}
	if claims.Subject != "u1" {
		t.Errorf("sub = %q, want u1", claims.Subject)
	}
	if claims.ID == "" {
		t.Error("jti empty")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("exp or iat missing")
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("lifetime = %v, want 1h", got)
	}
}

func TestService_FreshJTIPerIssuance(t *testing.T) {
	s := newTestService(t)
	p := Payload{Type: "authenticated", DistinctID: "u1"}

	first, err := s.Generate(p, "u1", "key-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := s.Generate(p, "u1", "key-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	c1, _ := s.Verify(first)
	c2, _ := s.Verify(second)
	if c1.ID == c2.ID {
		t.Error("two issuances share a jti")
	}
}

func TestService_VerifyWrongSecret(t *testing.T) {
	s := newTestService(t)
	other, err := NewService("other-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	signed, err := other.Generate(Payload{Type: "authenticated", DistinctID: "u1"}, "u1", "key-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := s.Verify(signed); err != ErrInvalidToken {
		t.Errorf("Verify cross-secret: want ErrInvalidToken, got %v", err)
	}
}

func TestService_VerifyWrongAlgorithm(t *testing.T) {
	hs256 := newTestService(t)
	hs512, err := NewService("test-secret", "HS512", time.Hour)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	signed, err := hs512.Generate(Payload{Type: "authenticated", DistinctID: "u1"}, "u1", "key-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := hs256.Verify(signed); err != ErrInvalidToken {
		t.Errorf("Verify cross-algorithm: want ErrInvalidToken, got %v", err)
	}
}

func TestService_VerifyMalformedAndExpired(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Verify("not.a.token"); err != ErrInvalidToken {
		t.Errorf("malformed: want ErrInvalidToken, got %v", err)
	}

	expired, err := NewService("test-secret", "HS256", -time.Minute)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	signed, err := expired.Generate(Payload{Type: "authenticated", DistinctID: "u1"}, "u1", "key-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := s.Verify(signed); err != ErrInvalidToken {
		t.Errorf("expired: want ErrInvalidToken, got %v", err)
	}
}

func TestNewService_Validation(t *testing.T) {
	if _, err := NewService("", "HS256", time.Hour); err == nil {
		t.Error("empty secret accepted")
	}
	if _, err := NewService("secret", "RS256", time.Hour); err == nil {
		t.Error("non-allow-listed algorithm accepted")
	}
	if _, err := NewService("secret", "none", time.Hour); err == nil {
		t.Error("none algorithm accepted")
	}
}
