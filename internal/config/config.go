// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var (
	jwtAlgorithms  = map[string]bool{"HS256": true, "HS384": true, "HS512": true}
	jwtExpirations = map[string]bool{"1d": true, "7d": true, "14d": true, "30d": true}
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// Env is the application environment (development, test, production).
	Env string `mapstructure:"APP_ENV"`

	// AuthJWTSecret signs session tokens; required.
	AuthJWTSecret string `mapstructure:"AUTH_JWT_SECRET"`
	// AuthJWTAlgorithm is the signing algorithm; one of HS256, HS384, HS512.
	AuthJWTAlgorithm string `mapstructure:"AUTH_JWT_ALGORITHM"`
	// AuthJWTExpiration is the token lifetime; one of 1d, 7d, 14d, 30d.
	AuthJWTExpiration string `mapstructure:"AUTH_JWT_EXPIRATION"`
	// AuthCookieName is the session cookie name.
	AuthCookieName string `mapstructure:"AUTH_COOKIE_NAME"`
	// AuthCookieDomain is the optional cookie Domain attribute.
	AuthCookieDomain string `mapstructure:"AUTH_COOKIE_DOMAIN"`
	// AuthKeyID is the kid stamped into token headers.
	AuthKeyID string `mapstructure:"AUTH_KEY_ID"`
	// BcryptCost is the bcrypt cost factor (4-31) for local-credential accounts.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// CORSAllowOrigins is a comma-separated list of allowed CORS origins;
	// empty reflects the request origin.
	CORSAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`

	// KafkaBrokers is a comma-separated broker list; empty disables the
	// domain-event producer.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// EventsKafkaTopic is the topic domain events are written to.
	EventsKafkaTopic string `mapstructure:"EVENTS_KAFKA_TOPIC"`
	// KafkaGroupID is the consumer group ID for the event worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment via Viper. Missing .env is ignored (e.g. in CI). Env vars
// override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("AUTH_JWT_ALGORITHM", "HS256")
	v.SetDefault("AUTH_JWT_EXPIRATION", "7d")
	v.SetDefault("AUTH_COOKIE_NAME", "canopy-auth")
	v.SetDefault("AUTH_COOKIE_DOMAIN", "")
	v.SetDefault("AUTH_KEY_ID", "canopy-key-1")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("CORS_ALLOW_ORIGINS", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("EVENTS_KAFKA_TOPIC", "canopy-events")
	v.SetDefault("KAFKA_GROUP_ID", "canopy-event-worker")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.AuthJWTSecret == "" {
		return nil, errors.New("config: AUTH_JWT_SECRET must be set")
	}
	if !jwtAlgorithms[cfg.AuthJWTAlgorithm] {
		return nil, fmt.Errorf("config: AUTH_JWT_ALGORITHM must be one of HS256, HS384, HS512; got %q", cfg.AuthJWTAlgorithm)
	}
	if !jwtExpirations[cfg.AuthJWTExpiration] {
		return nil, fmt.Errorf("config: AUTH_JWT_EXPIRATION must be one of 1d, 7d, 14d, 30d; got %q", cfg.AuthJWTExpiration)
	}
	if cfg.AuthCookieName == "" {
		return nil, errors.New("config: AUTH_COOKIE_NAME must be set")
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated
// config. A non-empty list enables the domain-event producer.
func (c *Config) KafkaBrokersList() []string {
	return splitAndTrim(c.KafkaBrokers)
}

// CORSAllowOriginsList returns the allowed CORS origins.
func (c *Config) CORSAllowOriginsList() []string {
	return splitAndTrim(c.CORSAllowOrigins)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
