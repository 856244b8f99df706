package pathutil

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ID parses the {name} wildcard of r's matched route as a positive int64.
//
// Example:
//
//	// route "GET /posts/{id}", request "/posts/42"
//	id, err := ID(r, "id")
//	// Returns: 42, nil
func ID(r *http.Request, name string) (int64, error) {
	return ParseID(r.PathValue(name))
}

// ParseID parses s as a positive int64. Anything else yields ErrInvalidID.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
