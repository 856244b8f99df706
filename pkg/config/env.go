// Package config reads typed settings from environment variables. Unset or
// blank variables yield the default silently; malformed values yield the
// default with a warning on the default slog logger.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup returns the trimmed value of key and whether it is non-blank.
func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func parseOr[T any](key string, def T, parse func(string) (T, error)) T {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	v, err := parse(raw)
	if err != nil {
		slog.Warn("invalid environment value, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", def),
			slog.String("error", err.Error()))
		return def
	}
	return v
}

// GetEnvString returns the value of key, or def when unset.
//
//	addr := GetEnvString("PORT", "4001")
func GetEnvString(key, def string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return def
}

// GetEnvInt parses key as a base-10 integer.
func GetEnvInt(key string, def int) int {
	return parseOr(key, def, strconv.Atoi)
}

// GetEnvFloat parses key as a float64.
func GetEnvFloat(key string, def float64) float64 {
	return parseOr(key, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// GetEnvBool parses key with strconv.ParseBool ("1", "true", "F", ...).
func GetEnvBool(key string, def bool) bool {
	return parseOr(key, def, strconv.ParseBool)
}

// GetEnvDuration parses key with time.ParseDuration ("30s", "1h30m").
func GetEnvDuration(key string, def time.Duration) time.Duration {
	return parseOr(key, def, time.ParseDuration)
}

// GetEnvStringList splits key on commas, trims each item and drops empty
// ones. An unset or all-empty value yields def.
//
//	TRUSTED_PROXIES="10.0.0.0/8, 192.168.0.0/16"
func GetEnvStringList(key string, def []string) []string {
	raw, ok := lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
