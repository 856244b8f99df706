package auth_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/repository"
)

/* ───────── stubs ───────── */

var (
	adminID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	readerID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	orphanID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

// stubProvider issues "token-<email>" and implements both the guard's
// verifier and the account provider.
type stubProvider struct {
	accounts  map[string]entity.Identity
	passwords map[string]string
	verifyErr error
	updated   map[string]string
}

func newProvider() *stubProvider {
	p := &stubProvider{
		accounts:  map[string]entity.Identity{},
		passwords: map[string]string{},
		updated:   map[string]string{},
	}
	p.add(adminID, "admin@example.com", "admin-pass")
	p.add(readerID, "reader@example.com", "reader-pass")
	p.add(orphanID, "orphan@example.com", "orphan-pass")
	return p
}

func (p *stubProvider) add(id uuid.UUID, email, password string) {
	p.accounts[email] = entity.Identity{ID: id, Email: email}
	p.passwords[email] = password
}

func tokenFor(email string) string { return "token-" + email }

func (p *stubProvider) VerifyToken(_ context.Context, token string) (entity.Identity, error) {
	if p.verifyErr != nil {
		return entity.Identity{}, p.verifyErr
	}
	for email, ident := range p.accounts {
		if token == tokenFor(email) {
			return ident, nil
		}
	}
	return entity.Identity{}, entity.ErrInvalidToken
}

func (p *stubProvider) GetUser(ctx context.Context, token string) (entity.Identity, error) {
	return p.VerifyToken(ctx, token)
}

func (p *stubProvider) SignUp(_ context.Context, email, password string) (entity.Identity, error) {
	if _, ok := p.accounts[email]; ok {
		return entity.Identity{}, entity.ErrEmailTaken
	}
	ident := entity.Identity{ID: uuid.New(), Email: email}
	p.accounts[email] = ident
	p.passwords[email] = password
	return ident, nil
}

func (p *stubProvider) SignIn(_ context.Context, email, password string) (entity.Session, error) {
	ident, ok := p.accounts[email]
	if !ok || p.passwords[email] != password {
		return entity.Session{}, fmt.Errorf("%w: Invalid login credentials", entity.ErrInvalidCredentials)
	}
	return entity.Session{AccessToken: tokenFor(email), User: ident}, nil
}

func (p *stubProvider) UpdatePassword(ctx context.Context, token, newPassword string) error {
	ident, err := p.VerifyToken(ctx, token)
	if err != nil {
		return err
	}
	p.passwords[ident.Email] = newPassword
	p.updated[ident.Email] = newPassword
	return nil
}

func (p *stubProvider) DeleteUser(_ context.Context, id uuid.UUID) error {
	for email, ident := range p.accounts {
		if ident.ID == id {
			delete(p.accounts, email)
		}
	}
	return nil
}

type stubUsers struct {
	rows   map[uuid.UUID]*entity.User
	err    error
	roleDB error
}

func newUsers() *stubUsers {
	return &stubUsers{rows: map[uuid.UUID]*entity.User{
		adminID:  {ID: adminID, Username: "admin", Name: "Admin", Role: entity.RoleAdmin},
		readerID: {ID: readerID, Username: "reader", Name: "Reader", Role: entity.RoleUser, ProfilePic: "https://cdn.example.com/r.png"},
	}}
}

func (s *stubUsers) Get(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.rows[id], s.err
}

func (s *stubUsers) GetRole(_ context.Context, id uuid.UUID) (entity.Role, error) {
	if s.roleDB != nil {
		return "", s.roleDB
	}
	u, ok := s.rows[id]
	if !ok {
		return "", fmt.Errorf("GetRole: %w", entity.ErrNotFound)
	}
	return u.Role, nil
}

func (s *stubUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, u := range s.rows {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubUsers) Create(_ context.Context, u *entity.User) error {
	if s.err != nil {
		return s.err
	}
	s.rows[u.ID] = u
	return nil
}

func (s *stubUsers) UpdateProfile(context.Context, uuid.UUID, repository.ProfileUpdate) error {
	return errors.New("not used")
}

type stubCleanups struct{}

func (stubCleanups) Enqueue(context.Context, uuid.UUID, string, string) error { return nil }
func (stubCleanups) ListPending(context.Context, int) ([]repository.IdentityCleanup, error) {
	return nil, nil
}
func (stubCleanups) CountPending(context.Context) (int, error)       { return 0, nil }
func (stubCleanups) MarkDone(context.Context, int64) error           { return nil }
func (stubCleanups) MarkFailed(context.Context, int64, string) error { return nil }
