package post_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"techup-blog/internal/common/pagination"
	"techup-blog/internal/domain/entity"
	"techup-blog/internal/handler/http/auth"
	"techup-blog/internal/handler/http/post"
	"techup-blog/internal/repository"
	postUC "techup-blog/internal/usecase/post"
	"techup-blog/internal/usecase/upload"
)

/* ───────── stubs ───────── */

const (
	adminToken  = "admin-token"
	readerToken = "reader-token"
)

var (
	adminID  = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	readerID = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000002")
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(_ context.Context, token string) (entity.Identity, error) {
	switch token {
	case adminToken:
		return entity.Identity{ID: adminID, Email: "admin@example.com"}, nil
	case readerToken:
		return entity.Identity{ID: readerID, Email: "reader@example.com"}, nil
	}
	return entity.Identity{}, entity.ErrInvalidToken
}

type stubRoles struct{}

func (stubRoles) GetRole(_ context.Context, id uuid.UUID) (entity.Role, error) {
	if id == adminID {
		return entity.RoleAdmin, nil
	}
	return entity.RoleUser, nil
}

// stubRepo is an in-memory PostRepository. Category 1 is "Tech", 2 is "Life";
// any other category id is rejected as an invalid reference.
type stubRepo struct {
	mu     sync.Mutex
	data   map[int64]*entity.Post
	nextID int64
	err    error
}

var categoryNames = map[int64]string{1: "Tech", 2: "Life"}

func newRepo() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Post{}, nextID: 1}
}

func (s *stubRepo) seed(n int, status entity.PostStatus, category int64) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := s.nextID
		s.nextID++
		s.data[id] = &entity.Post{
			ID: id, Title: fmt.Sprintf("post %d", id), CategoryID: category,
			StatusID: status, Date: base.Add(time.Duration(id) * time.Hour),
		}
	}
}

func (s *stubRepo) view(p *entity.Post) entity.PostView {
	return entity.PostView{Post: *p, Category: categoryNames[p.CategoryID], Status: p.StatusID.String()}
}

func (s *stubRepo) matching(f repository.PostFilter) []entity.PostView {
	var out []entity.PostView
	for _, p := range s.data {
		if f.Visibility == repository.VisibilityPublished && p.StatusID != entity.StatusPublished {
			continue
		}
		if f.Category != "" && categoryNames[p.CategoryID] != f.Category {
			continue
		}
		out = append(out, s.view(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (s *stubRepo) ListPage(_ context.Context, f repository.PostFilter, limit, offset int) ([]entity.PostView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	all := s.matching(f)
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (s *stubRepo) Count(_ context.Context, f repository.PostFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.matching(f))), nil
}

func (s *stubRepo) List(_ context.Context, f repository.PostFilter) ([]entity.PostView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.matching(f), nil
}

func (s *stubRepo) Get(_ context.Context, id int64, v repository.PostVisibility) (*entity.PostView, error) {
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.data[id]
	if !ok || (v == repository.VisibilityPublished && p.StatusID != entity.StatusPublished) {
		return nil, nil
	}
	view := s.view(p)
	return &view, nil
}

func (s *stubRepo) checkRefs(p *entity.Post) error {
	if _, ok := categoryNames[p.CategoryID]; !ok || p.StatusID > entity.StatusPublished {
		return fmt.Errorf("insert post: %w", entity.ErrInvalidReference)
	}
	return nil
}

func (s *stubRepo) Create(_ context.Context, p *entity.Post) error {
	if s.err != nil {
		return s.err
	}
	if err := s.checkRefs(p); err != nil {
		return err
	}
	p.ID = s.nextID
	s.nextID++
	p.Date = time.Now()
	cp := *p
	s.data[p.ID] = &cp
	return nil
}

func (s *stubRepo) Update(_ context.Context, p *entity.Post) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[p.ID]; !ok {
		return fmt.Errorf("update post %d: %w", p.ID, entity.ErrNotFound)
	}
	if err := s.checkRefs(p); err != nil {
		return err
	}
	cp := *p
	s.data[p.ID] = &cp
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.data[id]; !ok {
		return fmt.Errorf("delete post %d: %w", id, entity.ErrNotFound)
	}
	delete(s.data, id)
	return nil
}

type stubStore struct {
	paths   []string
	removed []string
	err     error
}

func (s *stubStore) Upload(_ context.Context, _, path, _ string, body io.Reader) error {
	if s.err != nil {
		return s.err
	}
	_, _ = io.ReadAll(body)
	s.paths = append(s.paths, path)
	return nil
}

func (s *stubStore) Remove(_ context.Context, _, path string) error {
	s.removed = append(s.removed, path)
	return nil
}

func (s *stubStore) PublicURL(bucket, path string) string {
	return "https://cdn.example/" + bucket + "/" + path
}

type server struct {
	mux   *http.ServeMux
	repo  *stubRepo
	store *stubStore
}

func newServer() *server {
	repo, store := newRepo(), &stubStore{}
	svc := &postUC.Service{
		Repo:    repo,
		Uploads: &upload.Service{Store: store, MaxBytes: 1 << 10},
		Images:  upload.Target{Bucket: "my-personal-blog", Prefix: "posts"},
		Now:     func() time.Time { return time.UnixMilli(1700000000000) },
	}
	guard := &auth.Guard{Verifier: stubVerifier{}, Roles: stubRoles{}}
	mux := http.NewServeMux()
	post.Register(mux, svc, guard, pagination.DefaultConfig(), nil)
	return &server{mux: mux, repo: repo, store: store}
}
