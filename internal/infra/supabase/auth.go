package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"techup-blog/internal/domain/entity"
)

// AuthClient is the identity provider: account creation, sign-in,
// token resolution and password changes.
type AuthClient struct {
	t          *transport
	anonKey    string
	serviceKey string
	verifier   *JWTVerifier
}

// NewAuthClient builds an auth client from cfg.
func NewAuthClient(cfg Config) *AuthClient {
	return &AuthClient{
		t:          newTransport(cfg, "supabase-auth"),
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceRoleKey,
		verifier:   NewJWTVerifier(cfg.JWTSecret),
	}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userBody struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u userBody) identity() (entity.Identity, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("supabase: invalid user id %q: %w", u.ID, err)
	}
	return entity.Identity{ID: id, Email: u.Email}, nil
}

type sessionBody struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	User         *userBody `json:"user"`
}

// SignUp creates a provider account. It is not retried: a lost response
// followed by a retry would report the address as taken.
func (c *AuthClient) SignUp(ctx context.Context, email, password string) (entity.Identity, error) {
	body, err := jsonBody(credentialsBody{Email: email, Password: password})
	if err != nil {
		return entity.Identity{}, err
	}
	out, err := c.t.do(ctx, "supabase.auth.signup", request{
		method:      http.MethodPost,
		path:        "/auth/v1/signup",
		apiKey:      c.anonKey,
		bearer:      c.anonKey,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return entity.Identity{}, classifySignUp(err)
	}

	// With email confirmation on, the user object comes back bare;
	// otherwise it is nested in a session.
	var payload struct {
		userBody
		User *userBody `json:"user"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return entity.Identity{}, fmt.Errorf("supabase signup: decode response: %w", err)
	}
	u := payload.userBody
	if payload.User != nil {
		u = *payload.User
	}
	return u.identity()
}

// SignIn exchanges email and password for a session.
func (c *AuthClient) SignIn(ctx context.Context, email, password string) (entity.Session, error) {
	body, err := jsonBody(credentialsBody{Email: email, Password: password})
	if err != nil {
		return entity.Session{}, err
	}
	out, err := c.t.do(ctx, "supabase.auth.signin", request{
		method:      http.MethodPost,
		path:        "/auth/v1/token?grant_type=password",
		apiKey:      c.anonKey,
		bearer:      c.anonKey,
		body:        body,
		contentType: "application/json",
		idempotent:  true,
	})
	if err != nil {
		return entity.Session{}, classifySignIn(err)
	}

	var sb sessionBody
	if err := json.Unmarshal(out, &sb); err != nil {
		return entity.Session{}, fmt.Errorf("supabase signin: decode response: %w", err)
	}
	if sb.AccessToken == "" || sb.User == nil {
		return entity.Session{}, errors.New("supabase signin: response has no session")
	}
	ident, err := sb.User.identity()
	if err != nil {
		return entity.Session{}, err
	}
	return entity.Session{
		AccessToken:  sb.AccessToken,
		RefreshToken: sb.RefreshToken,
		TokenType:    sb.TokenType,
		ExpiresIn:    sb.ExpiresIn,
		User:         ident,
	}, nil
}

// GetUser resolves an access token to its identity by asking the provider.
func (c *AuthClient) GetUser(ctx context.Context, accessToken string) (entity.Identity, error) {
	if accessToken == "" {
		return entity.Identity{}, fmt.Errorf("%w: empty token", entity.ErrInvalidToken)
	}
	out, err := c.t.do(ctx, "supabase.auth.get_user", request{
		method:     http.MethodGet,
		path:       "/auth/v1/user",
		apiKey:     c.anonKey,
		bearer:     accessToken,
		idempotent: true,
	})
	if err != nil {
		return entity.Identity{}, classifyToken(err)
	}
	var ub userBody
	if err := json.Unmarshal(out, &ub); err != nil {
		return entity.Identity{}, fmt.Errorf("supabase get user: decode response: %w", err)
	}
	ident, err := ub.identity()
	if err != nil {
		// A token the provider accepts without naming a subject is still unusable.
		return entity.Identity{}, fmt.Errorf("%w: %w", entity.ErrInvalidToken, err)
	}
	return ident, nil
}

// VerifyToken resolves an access token, locally when a JWT secret is configured.
func (c *AuthClient) VerifyToken(ctx context.Context, accessToken string) (entity.Identity, error) {
	if c.verifier != nil {
		return c.verifier.Verify(accessToken)
	}
	return c.GetUser(ctx, accessToken)
}

// UpdatePassword sets a new password for the holder of accessToken.
func (c *AuthClient) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	body, err := jsonBody(map[string]string{"password": newPassword})
	if err != nil {
		return err
	}
	_, err = c.t.do(ctx, "supabase.auth.update_password", request{
		method:      http.MethodPut,
		path:        "/auth/v1/user",
		apiKey:      c.anonKey,
		bearer:      accessToken,
		body:        body,
		contentType: "application/json",
		idempotent:  true,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
				return fmt.Errorf("%w: %s", entity.ErrInvalidToken, apiErr.Message)
			case apiErr.IsClientError():
				return fmt.Errorf("%w: %s", entity.ErrProviderRejected, apiErr.Message)
			}
		}
		return fmt.Errorf("supabase update password: %w", err)
	}
	return nil
}

// ErrNoServiceKey is returned by admin calls when no service role key is configured.
var ErrNoServiceKey = errors.New("supabase: service role key not configured")

// DeleteUser removes a provider account. A missing account counts as deleted.
func (c *AuthClient) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if c.serviceKey == "" {
		return ErrNoServiceKey
	}
	_, err := c.t.do(ctx, "supabase.auth.delete_user", request{
		method:     http.MethodDelete,
		path:       "/auth/v1/admin/users/" + id.String(),
		apiKey:     c.serviceKey,
		bearer:     c.serviceKey,
		idempotent: true,
	})
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("supabase delete user: %w", err)
	}
	return nil
}

var emailTakenCodes = map[string]bool{
	"user_already_exists": true,
	"email_exists":        true,
}

func classifySignUp(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("supabase signup: %w", err)
	}
	if emailTakenCodes[apiErr.Code] || strings.Contains(strings.ToLower(apiErr.Message), "already registered") {
		return fmt.Errorf("%w: %s", entity.ErrEmailTaken, apiErr.Message)
	}
	if apiErr.IsClientError() {
		return fmt.Errorf("%w: %s", entity.ErrProviderRejected, apiErr.Message)
	}
	return fmt.Errorf("supabase signup: %w", err)
}

func classifySignIn(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("supabase signin: %w", err)
	}
	if apiErr.Code == "invalid_grant" || apiErr.Code == "invalid_credentials" {
		return fmt.Errorf("%w: %s", entity.ErrInvalidCredentials, apiErr.Message)
	}
	if apiErr.IsClientError() {
		return fmt.Errorf("%w: %s", entity.ErrProviderRejected, apiErr.Message)
	}
	return fmt.Errorf("supabase signin: %w", err)
}

func classifyToken(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return fmt.Errorf("%w: %s", entity.ErrInvalidToken, apiErr.Message)
		}
	}
	return fmt.Errorf("supabase get user: %w", err)
}

// Check reports whether the provider is currently reachable as seen by the
// circuit breaker. It makes no network call.
func (c *AuthClient) Check(context.Context) error {
	return c.t.check()
}
