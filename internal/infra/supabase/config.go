package supabase

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"techup-blog/pkg/config"
)

// Config holds the provider endpoint and keys.
type Config struct {
	// URL is the project URL, e.g. https://xyz.supabase.co
	URL string

	// AnonKey is the public API key sent with every request
	AnonKey string

	// ServiceRoleKey enables admin calls (account deletion). Optional.
	ServiceRoleKey string

	// JWTSecret enables local HS256 verification of access tokens. Optional.
	JWTSecret string

	// Timeout bounds every HTTP call to the provider
	Timeout time.Duration
}

// ConfigFromEnv reads SUPABASE_URL, SUPABASE_ANON_KEY, SUPABASE_SERVICE_ROLE_KEY,
// SUPABASE_JWT_SECRET and PROVIDER_TIMEOUT.
func ConfigFromEnv() Config {
	return Config{
		URL:            strings.TrimRight(config.GetEnvString("SUPABASE_URL", ""), "/"),
		AnonKey:        config.GetEnvString("SUPABASE_ANON_KEY", ""),
		ServiceRoleKey: config.GetEnvString("SUPABASE_SERVICE_ROLE_KEY", ""),
		JWTSecret:      config.GetEnvString("SUPABASE_JWT_SECRET", ""),
		Timeout:        config.GetEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),
	}
}

// Validate checks that the required fields are present and well-formed.
func (c Config) Validate() error {
	if c.URL == "" {
		return errors.New("SUPABASE_URL is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("SUPABASE_URL must be an absolute http(s) URL")
	}
	if c.AnonKey == "" {
		return errors.New("SUPABASE_ANON_KEY is required")
	}
	if c.Timeout <= 0 {
		return errors.New("PROVIDER_TIMEOUT must be positive")
	}
	return nil
}
