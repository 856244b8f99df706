package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/repository"
	"techup-blog/internal/usecase/upload"
)

// UpdateInput is a profile update. Nil or empty fields are left untouched.
type UpdateInput struct {
	Name     *string
	Username *string
	Picture  *upload.File
}

// Service provides the profile use case.
type Service struct {
	Users    repository.UserRepository
	Uploads  *upload.Service
	Pictures upload.Target
	// Now stamps uploaded object names. Defaults to time.Now.
	Now func() time.Time
}

// Update validates every provided field before any mutation, uploads a new
// picture when one is attached and writes only the provided columns.
// The role column is never touched.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, in UpdateInput) error {
	var upd repository.ProfileUpdate

	if in.Name != nil && *in.Name != "" {
		if err := entity.ValidateName(*in.Name); err != nil {
			return err
		}
		name := strings.TrimSpace(*in.Name)
		upd.Name = &name
	}
	if in.Username != nil && *in.Username != "" {
		if err := entity.ValidateUsername(*in.Username); err != nil {
			return err
		}
		username := strings.TrimSpace(*in.Username)
		upd.Username = &username
	}

	if upd.IsEmpty() && in.Picture == nil {
		return ErrNoFieldsToUpdate
	}

	var obj upload.Object
	if in.Picture != nil {
		if s.Uploads == nil {
			return errors.New("image uploads are not configured")
		}
		now := time.Now
		if s.Now != nil {
			now = s.Now
		}
		name := fmt.Sprintf("%s-%d", userID, now().UnixMilli())

		var err error
		obj, err = s.Uploads.Put(ctx, s.Pictures, name, *in.Picture)
		if err != nil {
			return fmt.Errorf("upload profile picture: %w", err)
		}
		upd.ProfilePic = &obj.URL
	}

	if err := s.Users.UpdateProfile(ctx, userID, upd); err != nil {
		if s.Uploads != nil {
			s.Uploads.Discard(ctx, obj)
		}
		switch {
		case errors.Is(err, entity.ErrConflict):
			return ErrUsernameTaken
		case errors.Is(err, entity.ErrNotFound):
			return ErrUserNotFound
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
