package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/observability/metrics"
	"techup-blog/internal/repository"
)

// Provider is the identity provider as seen by account use cases.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (entity.Identity, error)
	SignIn(ctx context.Context, email, password string) (entity.Session, error)
	GetUser(ctx context.Context, accessToken string) (entity.Identity, error)
	UpdatePassword(ctx context.Context, accessToken, newPassword string) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// RegisterInput is the body of a registration.
type RegisterInput struct {
	Email    string
	Password string
	Username string
	Name     string
}

// Account is a provider identity joined with its local profile.
type Account struct {
	Identity entity.Identity
	User     *entity.User
}

// Service provides account use cases.
type Service struct {
	Users    repository.UserRepository
	Cleanups repository.IdentityCleanupRepository
	Provider Provider
	Logger   *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Register creates the provider account and then the local row.
//
// The username is checked before the provider is contacted, so a taken
// username never creates a provider account. When the local insert fails the
// provider account is deleted again; if that also fails the account is queued
// in identity_cleanups for the reconciliation worker.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	taken, err := s.Users.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		metrics.RecordAccountEvent("register", "username_taken")
		return nil, ErrUsernameTaken
	}

	ident, err := s.Provider.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrEmailTaken):
			metrics.RecordAccountEvent("register", "email_taken")
			return nil, ErrEmailTaken
		case errors.Is(err, entity.ErrProviderRejected):
			metrics.RecordAccountEvent("register", "rejected")
			return nil, fmt.Errorf("%w: %w", ErrSignUpRejected, err)
		}
		metrics.RecordAccountEvent("register", "error")
		return nil, fmt.Errorf("provider sign-up: %w", err)
	}

	user := &entity.User{
		ID:       ident.ID,
		Username: in.Username,
		Name:     in.Name,
		Role:     entity.RoleUser,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		s.compensate(ctx, ident, err)
		metrics.RecordAccountEvent("register", "error")
		if errors.Is(err, entity.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create local user: %w", err)
	}

	metrics.RecordAccountEvent("register", "success")
	return user, nil
}

// compensate removes a provider account whose local row could not be written.
func (s *Service) compensate(ctx context.Context, ident entity.Identity, cause error) {
	ctx = context.WithoutCancel(ctx)
	log := s.logger().With(
		slog.String("identity_id", ident.ID.String()),
		slog.Any("cause", cause))

	err := s.Provider.DeleteUser(ctx, ident.ID)
	if err == nil {
		metrics.RecordIdentityCleanup("compensated")
		log.Warn("registration rolled back: provider account deleted")
		return
	}

	if s.Cleanups != nil {
		qerr := s.Cleanups.Enqueue(ctx, ident.ID, ident.Email, cause.Error())
		if qerr == nil {
			metrics.RecordIdentityCleanup("queued")
			log.Warn("registration rollback deferred to reconciliation", slog.Any("error", err))
			return
		}
		err = errors.Join(err, qerr)
	}

	metrics.RecordIdentityCleanup("orphaned")
	log.Error("provider account orphaned: manual cleanup required", slog.Any("error", err))
}

func validateRegister(in RegisterInput) error {
	if err := entity.ValidateEmail(in.Email); err != nil {
		return err
	}
	if err := entity.ValidatePassword(in.Password); err != nil {
		return err
	}
	if err := entity.ValidateUsername(in.Username); err != nil {
		return err
	}
	return entity.ValidateName(in.Name)
}

// Login exchanges credentials for a provider session.
func (s *Service) Login(ctx context.Context, email, password string) (entity.Session, error) {
	email = strings.TrimSpace(email)
	if err := entity.ValidateEmail(email); err != nil {
		return entity.Session{}, err
	}
	if password == "" {
		return entity.Session{}, &entity.ValidationError{Field: "password", Message: "password cannot be empty"}
	}

	session, err := s.Provider.SignIn(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidCredentials):
			metrics.RecordAccountEvent("login", "invalid_credentials")
			return entity.Session{}, ErrInvalidCredentials
		case errors.Is(err, entity.ErrProviderRejected):
			metrics.RecordAccountEvent("login", "rejected")
			return entity.Session{}, fmt.Errorf("%w: %w", ErrSignInRejected, err)
		}
		metrics.RecordAccountEvent("login", "error")
		return entity.Session{}, fmt.Errorf("provider sign-in: %w", err)
	}

	metrics.RecordAccountEvent("login", "success")
	return session, nil
}

// CurrentUser joins ident with its local row.
// A missing row is reported as ErrProfileMissing.
func (s *Service) CurrentUser(ctx context.Context, ident entity.Identity) (*Account, error) {
	user, err := s.Users.Get(ctx, ident.ID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		s.logger().Error("provider identity has no local user row",
			slog.String("identity_id", ident.ID.String()))
		return nil, fmt.Errorf("%w: %s", ErrProfileMissing, ident.ID)
	}
	return &Account{Identity: ident, User: user}, nil
}

// ResetPassword re-verifies oldPassword and then rotates the password of the
// holder of accessToken.
func (s *Service) ResetPassword(ctx context.Context, ident entity.Identity, accessToken, oldPassword, newPassword string) error {
	if newPassword == "" {
		return ErrNewPasswordRequired
	}
	if err := entity.ValidatePassword(newPassword); err != nil {
		return err
	}

	email := ident.Email
	if email == "" {
		fresh, err := s.Provider.GetUser(ctx, accessToken)
		if err != nil {
			return fmt.Errorf("resolve email: %w", err)
		}
		email = fresh.Email
	}

	if _, err := s.Provider.SignIn(ctx, email, oldPassword); err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) || errors.Is(err, entity.ErrProviderRejected) {
			metrics.RecordAccountEvent("reset_password", "invalid_old_password")
			return ErrInvalidOldPassword
		}
		metrics.RecordAccountEvent("reset_password", "error")
		return fmt.Errorf("verify old password: %w", err)
	}

	if err := s.Provider.UpdatePassword(ctx, accessToken, newPassword); err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidToken):
			metrics.RecordAccountEvent("reset_password", "invalid_token")
			return err
		case errors.Is(err, entity.ErrProviderRejected):
			metrics.RecordAccountEvent("reset_password", "rejected")
			return fmt.Errorf("%w: %w", ErrPasswordRejected, err)
		}
		metrics.RecordAccountEvent("reset_password", "error")
		return fmt.Errorf("update password: %w", err)
	}

	metrics.RecordAccountEvent("reset_password", "success")
	return nil
}
