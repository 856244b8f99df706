// Package pagination turns untrusted page/limit input into bounded offsets
// and derives next/previous page indicators for listing responses.
package pagination

// CalculateOffset returns (page-1)*limit.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total/limit). Zero rows means zero pages.
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Metadata describes one page of a listing.
type Metadata struct {
	Total        int64
	TotalPages   int
	CurrentPage  int
	Limit        int
	NextPage     *int // set only when rows remain after this page
	PreviousPage *int // set only when rows precede this page
}

// Calculate derives page metadata from normalized params and the row count.
func Calculate(params Params, total int64) Metadata {
	offset := int64(params.Offset())
	meta := Metadata{
		Total:       total,
		TotalPages:  CalculateTotalPages(total, params.Limit),
		CurrentPage: params.Page,
		Limit:       params.Limit,
	}
	if offset+int64(params.Limit) < total {
		next := params.Page + 1
		meta.NextPage = &next
	}
	if offset > 0 {
		prev := params.Page - 1
		meta.PreviousPage = &prev
	}
	return meta
}
