// Package category provides use cases for managing post categories.
package category

import "errors"

// Sentinel errors for category use case operations.
var (
	// ErrCategoryNotFound indicates that the requested category was not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrInvalidCategoryID indicates that the provided category ID is not a positive integer.
	ErrInvalidCategoryID = errors.New("invalid category ID")

	// ErrCategoryInUse indicates that posts still reference the category.
	ErrCategoryInUse = errors.New("category is referenced by posts")
)
