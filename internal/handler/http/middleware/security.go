package middleware

import (
	"net/http"
	"strings"
)

const (
	apiPolicy     = "default-src 'none'; frame-ancestors 'none'"
	swaggerPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"
)

// SecurityHeaders sets nosniff, frame denial and a Content-Security-Policy.
// The Swagger UI under /swagger/ gets a policy that lets its bundled assets load.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			h.Set("Content-Security-Policy", swaggerPolicy)
		} else {
			h.Set("Content-Security-Policy", apiPolicy)
		}
		next.ServeHTTP(w, r)
	})
}
