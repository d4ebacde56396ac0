package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.AuthJWTAlgorithm != "HS256" {
		t.Errorf("AuthJWTAlgorithm = %q, want HS256", cfg.AuthJWTAlgorithm)
	}
	if cfg.AuthJWTExpiration != "7d" {
		t.Errorf("AuthJWTExpiration = %q, want 7d", cfg.AuthJWTExpiration)
	}
	if cfg.AuthCookieName != "canopy-auth" {
		t.Errorf("AuthCookieName = %q, want canopy-auth", cfg.AuthCookieName)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.EventsKafkaTopic != "canopy-events" {
		t.Errorf("EventsKafkaTopic = %q, want canopy-events", cfg.EventsKafkaTopic)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("AUTH_JWT_SECRET", "test-secret")
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("AUTH_JWT_EXPIRATION", "30d")
	os.Setenv("AUTH_COOKIE_DOMAIN", "example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
	if cfg.AuthJWTExpiration != "30d" {
		t.Errorf("AuthJWTExpiration = %q, want 30d", cfg.AuthJWTExpiration)
	}
	if cfg.AuthCookieDomain != "example.com" {
		t.Errorf("AuthCookieDomain = %q, want example.com", cfg.AuthCookieDomain)
	}
}

func TestLoad_Validation(t *testing.T) {
	os.Clearenv()
	if _, err := Load(); err == nil {
		t.Error("Load without AUTH_JWT_SECRET: want error")
	}

	os.Clearenv()
	os.Setenv("AUTH_JWT_SECRET", "s")
	os.Setenv("AUTH_JWT_ALGORITHM", "RS256")
	if _, err := Load(); err == nil {
		t.Error("Load with RS256: want error")
	}

	os.Clearenv()
	os.Setenv("AUTH_JWT_SECRET", "s")
	os.Setenv("AUTH_JWT_EXPIRATION", "90d")
	if _, err := Load(); err == nil {
		t.Error("Load with 90d expiration: want error")
	}

	os.Clearenv()
	os.Setenv("AUTH_JWT_SECRET", "s")
	os.Setenv("BCRYPT_COST", "40")
	if _, err := Load(); err == nil {
		t.Error("Load with bcrypt cost 40: want error")
	}
}

func TestKafkaBrokersList(t *testing.T) {
	c := &Config{KafkaBrokers: "localhost:9092, broker2:9092 ,"}
	got := c.KafkaBrokersList()
	if len(got) != 2 || got[0] != "localhost:9092" || got[1] != "broker2:9092" {
		t.Errorf("KafkaBrokersList = %v", got)
	}

	empty := &Config{}
	if empty.KafkaBrokersList() != nil {
		t.Error("empty brokers should yield nil")
	}
}
