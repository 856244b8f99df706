package pagination_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"techup-blog/internal/common/pagination"
)

func intPtr(v int) *int { return &v }

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		page  int
		limit int
		want  int
	}{
		{name: "first page", page: 1, limit: 6, want: 0},
		{name: "second page", page: 2, limit: 6, want: 6},
		{name: "third page", page: 3, limit: 6, want: 12},
		{name: "page 10 with limit 50", page: 10, limit: 50, want: 450},
		{name: "page 1 with limit 1", page: 1, limit: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pagination.CalculateOffset(tt.page, tt.limit); got != tt.want {
				t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "no rows", total: 0, limit: 6, want: 0},
		{name: "exact fit", total: 12, limit: 6, want: 2},
		{name: "remainder", total: 13, limit: 6, want: 3},
		{name: "fewer than a page", total: 5, limit: 6, want: 1},
		{name: "limit 1", total: 7, limit: 1, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := pagination.CalculateTotalPages(tt.total, tt.limit); got != tt.want {
				t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params pagination.Params
		total  int64
		want   pagination.Metadata
	}{
		{
			name:   "13 posts first page",
			params: pagination.Params{Page: 1, Limit: 6},
			total:  13,
			want:   pagination.Metadata{Total: 13, TotalPages: 3, CurrentPage: 1, Limit: 6, NextPage: intPtr(2)},
		},
		{
			name:   "13 posts middle page",
			params: pagination.Params{Page: 2, Limit: 6},
			total:  13,
			want: pagination.Metadata{
				Total: 13, TotalPages: 3, CurrentPage: 2, Limit: 6,
				NextPage: intPtr(3), PreviousPage: intPtr(1),
			},
		},
		{
			name:   "13 posts last page",
			params: pagination.Params{Page: 3, Limit: 6},
			total:  13,
			want:   pagination.Metadata{Total: 13, TotalPages: 3, CurrentPage: 3, Limit: 6, PreviousPage: intPtr(2)},
		},
		{
			name:   "exactly one full page",
			params: pagination.Params{Page: 1, Limit: 6},
			total:  6,
			want:   pagination.Metadata{Total: 6, TotalPages: 1, CurrentPage: 1, Limit: 6},
		},
		{
			name:   "empty listing",
			params: pagination.Params{Page: 1, Limit: 6},
			total:  0,
			want:   pagination.Metadata{Total: 0, TotalPages: 0, CurrentPage: 1, Limit: 6},
		},
		{
			name:   "page past the end still points back",
			params: pagination.Params{Page: 9, Limit: 6},
			total:  13,
			want:   pagination.Metadata{Total: 13, TotalPages: 3, CurrentPage: 9, Limit: 6, PreviousPage: intPtr(8)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pagination.Calculate(tt.params, tt.total)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Calculate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
