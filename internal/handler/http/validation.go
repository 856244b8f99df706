package http

import (
	"net/http"

	"techup-blog/internal/handler/http/respond"
)

// Request shape limits enforced before routing.
const (
	maxAuthorizationHeader = 8 << 10
	maxPathLength          = 2 << 10
	maxQueryLength         = 4 << 10
)

// InputValidation rejects oversized Authorization headers, paths and query
// strings before routing. Body size is capped separately by LimitRequestBody.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case len(r.Header.Get("Authorization")) > maxAuthorizationHeader:
				respond.Fail(w, http.StatusBadRequest, "authorization header too large")
			case len(r.URL.Path) > maxPathLength, len(r.URL.RawQuery) > maxQueryLength:
				respond.Fail(w, http.StatusRequestURITooLong, "URI too long")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
