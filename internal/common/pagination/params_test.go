package pagination_test

import (
	"net/http/httptest"
	"testing"

	"techup-blog/internal/common/pagination"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cfg := pagination.DefaultConfig()

	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{name: "absent", page: "", limit: "", wantPage: 1, wantLimit: 6},
		{name: "explicit", page: "3", limit: "10", wantPage: 3, wantLimit: 10},
		{name: "page zero", page: "0", limit: "", wantPage: 1, wantLimit: 6},
		{name: "negative page", page: "-4", limit: "", wantPage: 1, wantLimit: 6},
		{name: "non-numeric page", page: "abc", limit: "", wantPage: 1, wantLimit: 6},
		{name: "NaN page", page: "NaN", limit: "", wantPage: 1, wantLimit: 6},
		{name: "fractional page floors", page: "2.7", limit: "", wantPage: 2, wantLimit: 6},
		{name: "fractional page below one", page: "0.5", limit: "", wantPage: 1, wantLimit: 6},
		{name: "limit above max", page: "1", limit: "500", wantPage: 1, wantLimit: 100},
		{name: "limit exactly max", page: "1", limit: "100", wantPage: 1, wantLimit: 100},
		{name: "limit zero", page: "1", limit: "0", wantPage: 1, wantLimit: 6},
		{name: "negative limit", page: "1", limit: "-5", wantPage: 1, wantLimit: 6},
		{name: "non-numeric limit", page: "1", limit: "lots", wantPage: 1, wantLimit: 6},
		{name: "fractional limit floors", page: "1", limit: "7.9", wantPage: 1, wantLimit: 7},
		{name: "infinite limit clamps", page: "1", limit: "Inf", wantPage: 1, wantLimit: 100},
		{name: "whitespace trimmed", page: " 2 ", limit: " 4 ", wantPage: 2, wantLimit: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pagination.Normalize(tt.page, tt.limit, cfg)
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("Normalize(%q, %q) = {%d %d}, want {%d %d}",
					tt.page, tt.limit, got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
			if got.Offset() != (got.Page-1)*got.Limit {
				t.Errorf("Offset() = %d, want %d", got.Offset(), (got.Page-1)*got.Limit)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/posts?page=3&limit=6&category=tech", nil)
	got := pagination.FromRequest(req, pagination.DefaultConfig())

	if got.Page != 3 || got.Limit != 6 || got.Offset() != 12 {
		t.Errorf("FromRequest() = %+v offset %d, want page 3 limit 6 offset 12", got, got.Offset())
	}
}
