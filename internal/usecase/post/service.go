package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"techup-blog/internal/common/pagination"
	"techup-blog/internal/domain/entity"
	"techup-blog/internal/repository"
	"techup-blog/internal/usecase/upload"
)

// ListInput holds the public listing filters and page bounds.
type ListInput struct {
	Category string
	Keyword  string
	Params   pagination.Params
}

// ListResult is one page of published posts plus its metadata.
type ListResult struct {
	Posts      []entity.PostView
	Pagination pagination.Metadata
}

// WriteInput is the body of a create or update.
// Image, when set, replaces ImageURL.
type WriteInput struct {
	Title       string
	Description string
	Content     string
	CategoryID  int64
	StatusID    entity.PostStatus
	ImageURL    string
	Image       *upload.File
}

// Service provides post use cases.
type Service struct {
	Repo    repository.PostRepository
	Uploads *upload.Service
	Images  upload.Target
	// Now stamps uploaded object names. Defaults to time.Now.
	Now func() time.Time
}

// ListPublished returns one page of published posts matching in. The page and
// the total count are fetched concurrently; either failing fails the call.
func (s *Service) ListPublished(ctx context.Context, in ListInput) (*ListResult, error) {
	filter := repository.PostFilter{
		Category:   in.Category,
		Keyword:    in.Keyword,
		Visibility: repository.VisibilityPublished,
	}

	var (
		posts []entity.PostView
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		defer func() { pagination.RecordDuration("list", time.Since(start)) }()

		var err error
		posts, err = s.Repo.ListPage(gctx, filter, in.Params.Limit, in.Params.Offset())
		if err != nil {
			return fmt.Errorf("list posts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		defer func() { pagination.RecordDuration("count", time.Since(start)) }()

		var err error
		total, err = s.Repo.Count(gctx, filter)
		if err != nil {
			return fmt.Errorf("count posts: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			pagination.RecordError("timeout")
		} else {
			pagination.RecordError("database")
		}
		return nil, err
	}

	pagination.UpdateTotalCount(total)
	if posts == nil {
		posts = []entity.PostView{}
	}
	return &ListResult{
		Posts:      posts,
		Pagination: pagination.Calculate(in.Params, total),
	}, nil
}

// ListAll returns every post of every status, newest first.
func (s *Service) ListAll(ctx context.Context) ([]entity.PostView, error) {
	posts, err := s.Repo.List(ctx, repository.PostFilter{Visibility: repository.VisibilityAll})
	if err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	if posts == nil {
		posts = []entity.PostView{}
	}
	return posts, nil
}

// GetPublished returns a published post.
// Returns ErrPostNotFound for drafts and missing posts alike.
func (s *Service) GetPublished(ctx context.Context, id int64) (*entity.PostView, error) {
	return s.get(ctx, id, repository.VisibilityPublished)
}

// Get returns a post regardless of status.
func (s *Service) Get(ctx context.Context, id int64) (*entity.PostView, error) {
	return s.get(ctx, id, repository.VisibilityAll)
}

func (s *Service) get(ctx context.Context, id int64, visibility repository.PostVisibility) (*entity.PostView, error) {
	if id <= 0 {
		return nil, ErrInvalidPostID
	}

	post, err := s.Repo.Get(ctx, id, visibility)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Create validates in, uploads its image and inserts the post.
// A failed upload aborts before any database write; a failed insert
// removes the uploaded image again.
func (s *Service) Create(ctx context.Context, in WriteInput) (*entity.Post, error) {
	post := in.post()
	if err := post.Validate(); err != nil {
		return nil, err
	}

	obj, err := s.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	if obj.URL != "" {
		post.Image = obj.URL
	}

	if err := s.Repo.Create(ctx, post); err != nil {
		s.discard(ctx, obj)
		return nil, fmt.Errorf("create post: %w", translate(err))
	}
	return post, nil
}

// Update validates in, uploads a new image when one is attached and
// rewrites the post. Without a new image the post keeps in.ImageURL.
func (s *Service) Update(ctx context.Context, id int64, in WriteInput) (*entity.Post, error) {
	if id <= 0 {
		return nil, ErrInvalidPostID
	}
	post := in.post()
	post.ID = id
	if err := post.Validate(); err != nil {
		return nil, err
	}

	obj, err := s.uploadImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}
	if obj.URL != "" {
		post.Image = obj.URL
	}

	if err := s.Repo.Update(ctx, post); err != nil {
		s.discard(ctx, obj)
		return nil, fmt.Errorf("update post: %w", translate(err))
	}
	return post, nil
}

// Delete removes a post by its ID.
// Returns ErrPostNotFound if no such post exists.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidPostID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", translate(err))
	}
	return nil
}

func (in WriteInput) post() *entity.Post {
	return &entity.Post{
		Title:       in.Title,
		Image:       in.ImageURL,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Content:     in.Content,
		StatusID:    in.StatusID,
	}
}

func (s *Service) uploadImage(ctx context.Context, f *upload.File) (upload.Object, error) {
	if f == nil {
		return upload.Object{}, nil
	}
	if s.Uploads == nil {
		return upload.Object{}, errors.New("image uploads are not configured")
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	name := fmt.Sprintf("%d-%s", now().UnixMilli(), uuid.NewString())

	obj, err := s.Uploads.Put(ctx, s.Images, name, *f)
	if err != nil {
		return upload.Object{}, fmt.Errorf("upload post image: %w", err)
	}
	return obj, nil
}

func (s *Service) discard(ctx context.Context, obj upload.Object) {
	if s.Uploads != nil {
		s.Uploads.Discard(ctx, obj)
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrPostNotFound, err)
	case errors.Is(err, entity.ErrInvalidReference):
		return fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}
	return err
}
