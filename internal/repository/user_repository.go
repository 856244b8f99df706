package repository

import (
	"context"

	"github.com/google/uuid"

	"techup-blog/internal/domain/entity"
)

// ProfileUpdate lists the profile columns a caller may change. Nil means untouched.
// Role is deliberately absent.
type ProfileUpdate struct {
	Name       *string
	Username   *string
	ProfilePic *string
}

// IsEmpty reports whether no field is set.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Username == nil && u.ProfilePic == nil
}

type UserRepository interface {
	// Get returns (nil, nil) when no local row exists for id.
	Get(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// GetRole yields entity.ErrNotFound when no local row exists for id.
	GetRole(ctx context.Context, id uuid.UUID) (entity.Role, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	// Create inserts the local row. A duplicate username yields entity.ErrConflict.
	Create(ctx context.Context, user *entity.User) error
	// UpdateProfile writes only the set fields of update. Missing rows yield
	// entity.ErrNotFound, a duplicate username yields entity.ErrConflict.
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) error
}
