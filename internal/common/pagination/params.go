package pagination

import (
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Params are normalized page bounds. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return CalculateOffset(p.Page, p.Limit)
}

// FromRequest normalizes the page and limit query parameters of r.
func FromRequest(r *http.Request, cfg Config) Params {
	q := r.URL.Query()
	return Normalize(q.Get("page"), q.Get("limit"), cfg)
}

// Normalize turns raw client input into safe bounds. It never fails:
// a missing, non-numeric or non-positive page becomes cfg.DefaultPage,
// a missing, non-numeric or sub-1 limit becomes cfg.DefaultLimit,
// and a limit above cfg.MaxLimit is clamped to cfg.MaxLimit.
// Fractional values are floored.
func Normalize(rawPage, rawLimit string, cfg Config) Params {
	params := Params{Page: cfg.DefaultPage, Limit: cfg.DefaultLimit}

	if page, ok := parseFloor(rawPage); ok && page >= 1 {
		params.Page = page
	}
	if params.Page < 1 {
		params.Page = 1
	}

	if limit, ok := parseFloor(rawLimit); ok && limit >= 1 {
		params.Limit = min(limit, cfg.MaxLimit)
	}
	return params
}

// parseFloor parses s as a number and floors it. Values that do not fit an int
// are saturated so that huge limits still clamp and huge pages stay usable.
func parseFloor(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	f = math.Floor(f)
	switch {
	case f >= float64(maxPage):
		return maxPage, true
	case f <= 0:
		return int(max(f, -1)), true
	}
	return int(f), true
}

// maxPage keeps (page-1)*limit far away from integer overflow.
const maxPage = 1 << 31
