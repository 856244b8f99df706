// Package post provides use cases for blog posts: the paginated public
// listing, the unpaginated admin listing, single reads and admin writes.
package post

import "errors"

// Sentinel errors for post use case operations.
var (
	// ErrPostNotFound indicates that the requested post does not exist,
	// or is not published when read through a public endpoint.
	ErrPostNotFound = errors.New("post not found")

	// ErrInvalidPostID indicates that the provided post ID is not a positive integer.
	ErrInvalidPostID = errors.New("invalid post ID")

	// ErrInvalidReference indicates that the category or status of a write does not exist.
	ErrInvalidReference = errors.New("category or status does not exist")
)
