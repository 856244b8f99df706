// Package upload stores user-supplied images in object storage and
// hands back their public URLs.
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/observability/metrics"
)

// Store is the object storage collaborator.
type Store interface {
	Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) error
	Remove(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
}

// Target is a bucket and the object path prefix inside it.
type Target struct {
	Bucket string
	Prefix string
}

// File is an image received from a client.
type File struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Object is a stored file.
type Object struct {
	Bucket string
	Path   string
	URL    string
}

var (
	// ErrTooLarge rejects files above the configured size.
	ErrTooLarge = &entity.ValidationError{Field: "imageFile", Message: "image is too large"}

	// ErrUnsupportedType rejects files whose content type is not allowed.
	ErrUnsupportedType = &entity.ValidationError{Field: "imageFile", Message: "unsupported image type"}
)

// Service validates and uploads files.
type Service struct {
	Store    Store
	MaxBytes int64
	// Allowed reports whether a content type is accepted. Nil accepts everything.
	Allowed func(contentType string) bool
}

// Put validates f and uploads it as <target.Prefix>/<name>.
func (s *Service) Put(ctx context.Context, target Target, name string, f File) (Object, error) {
	if s.MaxBytes > 0 && f.Size > s.MaxBytes {
		return Object{}, ErrTooLarge
	}
	if s.Allowed != nil && !s.Allowed(f.ContentType) {
		return Object{}, ErrUnsupportedType
	}

	path := name
	if prefix := strings.Trim(target.Prefix, "/"); prefix != "" {
		path = prefix + "/" + name
	}

	body := f.Body
	if s.MaxBytes > 0 {
		// Size comes from the client; never send more than the limit.
		body = io.LimitReader(f.Body, s.MaxBytes+1)
	}

	if err := s.Store.Upload(ctx, target.Bucket, path, f.ContentType, body); err != nil {
		metrics.RecordUpload(target.Bucket, f.Size, false)
		return Object{}, fmt.Errorf("upload %s: %w", path, err)
	}
	metrics.RecordUpload(target.Bucket, f.Size, true)

	return Object{
		Bucket: target.Bucket,
		Path:   path,
		URL:    s.Store.PublicURL(target.Bucket, path),
	}, nil
}

// Discard removes an object whose owning write failed. Errors are logged only.
func (s *Service) Discard(ctx context.Context, obj Object) {
	if obj.Path == "" {
		return
	}
	if err := s.Store.Remove(context.WithoutCancel(ctx), obj.Bucket, obj.Path); err != nil {
		slog.Warn("failed to remove orphaned upload",
			slog.String("bucket", obj.Bucket),
			slog.String("path", obj.Path),
			slog.Any("error", err))
	}
}
