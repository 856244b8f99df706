package middleware

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const DefaultAllowedOrigin = "http://localhost:5173"

var (
	defaultCORSMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	validCORSMethods   = map[string]bool{
		"GET": true, "POST": true, "PUT": true, "DELETE": true, "PATCH": true, "OPTIONS": true,
	}
)

// LoadCORSConfig reads CORS_ALLOWED_ORIGINS, CORS_ALLOWED_METHODS,
// CORS_ALLOWED_HEADERS and CORS_MAX_AGE. Unset variables fall back to the
// local frontend origin and the methods the API serves.
func LoadCORSConfig() (CORSConfig, error) {
	origins, err := parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if err != nil {
		return CORSConfig{}, err
	}

	methods := defaultCORSMethods
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_METHODS")); raw != "" {
		methods = nil
		for _, m := range splitList(raw) {
			m = strings.ToUpper(m)
			if !validCORSMethods[m] {
				return CORSConfig{}, fmt.Errorf("invalid CORS method %q", m)
			}
			methods = append(methods, m)
		}
	}

	headers := defaultCORSHeaders
	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_HEADERS")); raw != "" {
		headers = splitList(raw)
	}

	maxAge := 86400
	if raw := strings.TrimSpace(os.Getenv("CORS_MAX_AGE")); raw != "" {
		maxAge, err = strconv.Atoi(raw)
		if err != nil || maxAge < 0 {
			return CORSConfig{}, fmt.Errorf("invalid CORS_MAX_AGE %q: must be a non-negative integer", raw)
		}
	}

	return CORSConfig{
		AllowedMethods: methods,
		AllowedHeaders: headers,
		MaxAge:         maxAge,
		Validator:      NewWhitelistValidator(origins),
	}, nil
}

func parseOrigins(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{DefaultAllowedOrigin}, nil
	}

	var origins []string
	for _, o := range splitList(raw) {
		if o == "*" {
			return nil, fmt.Errorf("wildcard origin is not allowed with credentials")
		}
		u, err := url.Parse(o)
		if err != nil {
			return nil, fmt.Errorf("invalid origin %q: %w", o, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("origin must use http or https: %s", o)
		}
		if u.Host == "" || (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
			return nil, fmt.Errorf("origin must be scheme://host[:port]: %s", o)
		}
		origins = append(origins, strings.TrimSuffix(o, "/"))
	}
	if len(origins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS has no usable origin")
	}
	return origins, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
