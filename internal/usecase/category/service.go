package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/repository"
)

// Service provides category management use cases.
type Service struct {
	Repo repository.CategoryRepository
}

// List retrieves all categories ordered by ID.
func (s *Service) List(ctx context.Context) ([]*entity.Category, error) {
	categories, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get retrieves a single category by its ID.
// Returns ErrCategoryNotFound if the category does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Category, error) {
	if id <= 0 {
		return nil, ErrInvalidCategoryID
	}

	c, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// Create validates name and inserts a new category.
func (s *Service) Create(ctx context.Context, name string) (*entity.Category, error) {
	c := &entity.Category{Name: strings.TrimSpace(name)}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Update renames a category.
// Returns ErrCategoryNotFound if the category does not exist.
func (s *Service) Update(ctx context.Context, id int64, name string) (*entity.Category, error) {
	if id <= 0 {
		return nil, ErrInvalidCategoryID
	}
	c := &entity.Category{ID: id, Name: strings.TrimSpace(name)}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, c); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete removes a category.
// Returns ErrCategoryNotFound if it does not exist and ErrCategoryInUse
// while posts still reference it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidCategoryID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, entity.ErrReferenced):
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
