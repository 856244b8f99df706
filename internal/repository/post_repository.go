package repository

import (
	"context"

	"techup-blog/internal/domain/entity"
)

// PostVisibility selects which statuses a read may return.
type PostVisibility int

const (
	// VisibilityPublished restricts reads to published posts (public endpoints).
	VisibilityPublished PostVisibility = iota
	// VisibilityAll returns posts of every status (admin endpoints).
	VisibilityAll
)

// PostFilter holds the optional listing filters. Empty strings mean "no filter".
type PostFilter struct {
	Category   string // case-insensitive substring of the category name
	Keyword    string // case-insensitive substring of title, description or content
	Visibility PostVisibility
}

type PostRepository interface {
	// ListPage returns one page of posts ordered by date DESC.
	ListPage(ctx context.Context, filter PostFilter, limit, offset int) ([]entity.PostView, error)
	// Count returns the number of posts matching filter, ignoring pagination.
	Count(ctx context.Context, filter PostFilter) (int64, error)
	// List returns every post matching filter, ordered by date DESC.
	List(ctx context.Context, filter PostFilter) ([]entity.PostView, error)
	// Get returns (nil, nil) when the post does not exist or is not visible.
	Get(ctx context.Context, id int64, visibility PostVisibility) (*entity.PostView, error)
	// Create inserts post and fills in its ID and Date.
	Create(ctx context.Context, post *entity.Post) error
	// Update rewrites every column and stamps the date. Missing rows yield entity.ErrNotFound.
	Update(ctx context.Context, post *entity.Post) error
	// Delete removes a post. Missing rows yield entity.ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
