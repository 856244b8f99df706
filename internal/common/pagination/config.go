package pagination

import (
	"techup-blog/pkg/config"
)

// Config holds the bounds applied to client-supplied page and limit values.
type Config struct {
	DefaultPage  int // Page used when the client sends none or garbage
	DefaultLimit int // Items per page when the client sends none or garbage
	MaxLimit     int // Hard upper bound on items per page
}

// DefaultConfig returns the bounds of the public post listing.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 6,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT.
// Nonsensical values fall back to DefaultConfig.
func LoadFromEnv() Config {
	def := DefaultConfig()
	cfg := Config{
		DefaultPage:  def.DefaultPage,
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
	}
	if cfg.MaxLimit < 1 {
		cfg.MaxLimit = def.MaxLimit
	}
	if cfg.DefaultLimit < 1 || cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = min(def.DefaultLimit, cfg.MaxLimit)
	}
	return cfg
}
