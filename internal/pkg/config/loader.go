// Package config loads validated settings from the environment. Invalid
// values never abort startup: the loader falls back to the default and
// reports what it replaced so the caller can log and count it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of loading one variable.
type Result[T any] struct {
	Value           T
	FallbackApplied bool
	Warnings        []string
}

// Load reads key, parses it and validates the parsed value. An unset or
// blank variable yields def without a warning. A parse or validation
// failure yields def with FallbackApplied set.
func Load[T any](key string, def T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return Result[T]{Value: def}
	}

	v, err := parse(raw)
	if err != nil {
		return fallback(key, def, fmt.Sprintf("%s=%q could not be parsed: %v", key, raw, err))
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return fallback(key, def, fmt.Sprintf("%s=%q is invalid: %v", key, raw, err))
		}
	}
	return Result[T]{Value: v}
}

func fallback[T any](key string, def T, warning string) Result[T] {
	return Result[T]{
		Value:           def,
		FallbackApplied: true,
		Warnings:        []string{warning, fmt.Sprintf("%s: using default %v", key, def)},
	}
}

// LoadString loads a string variable.
func LoadString(key, def string, validate func(string) error) Result[string] {
	return Load(key, def, func(s string) (string, error) { return s, nil }, validate)
}

// LoadInt loads a base-10 integer variable.
func LoadInt(key string, def int, validate func(int) error) Result[int] {
	return Load(key, def, strconv.Atoi, validate)
}

// LoadDuration loads a variable in time.ParseDuration syntax.
func LoadDuration(key string, def time.Duration, validate func(time.Duration) error) Result[time.Duration] {
	return Load(key, def, time.ParseDuration, validate)
}
