// Package entity defines the core domain entities and validation logic for the blog.
// It contains posts, categories and users, the identity types handed over by the
// identity provider, and the domain-specific errors shared across layers.
package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// PostStatus references a row of the statuses table.
type PostStatus int64

const (
	// StatusDraft hides a post from the public listing.
	StatusDraft PostStatus = 1
	// StatusPublished is the only status visible on public endpoints.
	StatusPublished PostStatus = 2
)

// String returns the seeded label for known statuses.
func (s PostStatus) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusPublished:
		return "published"
	default:
		return fmt.Sprintf("status(%d)", int64(s))
	}
}

const maxTitleLength = 255

// Post represents a blog post row.
type Post struct {
	ID          int64
	Title       string
	Image       string
	CategoryID  int64
	Description string
	Content     string
	StatusID    PostStatus
	Date        time.Time
}

// PostView is a Post joined with its category name and status label.
type PostView struct {
	Post
	Category string
	Status   string
}

// Validate checks the fields a post write needs before touching storage.
func (p *Post) Validate() error {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", maxTitleLength),
		}
	}
	if p.CategoryID <= 0 {
		return &ValidationError{Field: "category_id", Message: "category_id must be a positive integer"}
	}
	if p.StatusID <= 0 {
		return &ValidationError{Field: "status_id", Message: "status_id must be a positive integer"}
	}
	return nil
}
