package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxCategoryNameLength = 100

// Category groups posts. Names are unique by convention only.
type Category struct {
	ID   int64
	Name string
}

// Validate checks the category name.
func (c *Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name must not exceed %d characters", maxCategoryNameLength),
		}
	}
	return nil
}
