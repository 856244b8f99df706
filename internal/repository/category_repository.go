package repository

import (
	"context"

	"techup-blog/internal/domain/entity"
)

type CategoryRepository interface {
	// List returns all categories ordered by id.
	List(ctx context.Context) ([]*entity.Category, error)
	// Get returns (nil, nil) when the category does not exist.
	Get(ctx context.Context, id int64) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
	// Update yields entity.ErrNotFound when the row is missing.
	Update(ctx context.Context, category *entity.Category) error
	// Delete yields entity.ErrNotFound when the row is missing and
	// entity.ErrReferenced while posts still point at it.
	Delete(ctx context.Context, id int64) error
}
