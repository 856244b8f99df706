// Package auth guards HTTP routes with provider-issued bearer credentials and
// serves the account endpoints (register, login, current user, password reset).
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"techup-blog/internal/domain/entity"
	"techup-blog/internal/handler/http/respond"
	"techup-blog/internal/observability/logging"
)

// Guard failure messages.
const (
	MsgTokenMissing = "Unauthorized: Token missing"
	MsgInvalidToken = "Unauthorized: Invalid token"
	MsgRoleNotFound = "User role not found"
	MsgNotAdmin     = "Forbidden: You do not have admin access"
)

// TokenVerifier resolves a bearer credential to the identity it was issued for.
// It returns entity.ErrInvalidToken for rejected credentials; any other error
// is treated as a fault.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, accessToken string) (entity.Identity, error)
}

// RoleLookup returns the stored role of a user, or entity.ErrNotFound.
type RoleLookup interface {
	GetRole(ctx context.Context, id uuid.UUID) (entity.Role, error)
}

// Principal is the authenticated caller attached to the request context.
// Role is only populated by RequireAdmin.
type Principal struct {
	Identity entity.Identity
	Role     entity.Role
	Token    string
}

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// PrincipalFromContext returns the principal stored by a guard.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok
}

// Guard builds the user and admin middlewares.
type Guard struct {
	Verifier TokenVerifier
	Roles    RoleLookup
}

// RequireUser admits any caller holding a valid credential.
func (g *Guard) RequireUser(next http.Handler) http.Handler {
	return g.wrap("user", next, false)
}

// RequireAdmin admits only callers whose stored role is admin.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return g.wrap("admin", next, true)
}

func (g *Guard) wrap(guard string, next http.Handler, admin bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		logger := logging.WithRequestID(ctx, slog.Default())

		p, code, msg, err := g.authorize(ctx, r.Header.Get("Authorization"), admin)
		RecordGuardDuration(guard, time.Since(start).Seconds())
		if code != 0 {
			RecordGuardResult(guard, resultLabel(code))
			if code == http.StatusForbidden {
				RecordForbiddenAttempt(r.Method)
			}
			if code >= 500 {
				logger.Error("authorization failed",
					slog.String("guard", guard),
					slog.String("path", r.URL.Path),
					slog.String("error", respond.SanitizeError(err)))
				respond.Fail(w, code, respond.InternalMessage)
				return
			}
			logger.Info("request rejected by guard",
				slog.String("guard", guard),
				slog.String("path", r.URL.Path),
				slog.Int("status", code),
				slog.String("reason", respond.SanitizeError(err)))
			respond.Fail(w, code, msg)
			return
		}

		RecordGuardResult(guard, "success")
		next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, p)))
	})
}

// authorize runs the guard steps. A zero code means the caller is admitted.
func (g *Guard) authorize(ctx context.Context, header string, admin bool) (Principal, int, string, error) {
	token, ok := BearerToken(header)
	if !ok {
		return Principal{}, http.StatusUnauthorized, MsgTokenMissing, fmt.Errorf("%w: no bearer credential", entity.ErrUnauthorized)
	}

	ident, err := g.Verifier.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidToken) {
			return Principal{}, http.StatusUnauthorized, MsgInvalidToken, fmt.Errorf("%w: %w", entity.ErrUnauthorized, err)
		}
		return Principal{}, http.StatusInternalServerError, "", err
	}
	if ident.ID == uuid.Nil {
		return Principal{}, http.StatusUnauthorized, MsgInvalidToken, fmt.Errorf("%w: no subject", entity.ErrUnauthorized)
	}

	p := Principal{Identity: ident, Token: token}
	if !admin {
		return p, 0, "", nil
	}

	role, err := g.Roles.GetRole(ctx, ident.ID)
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return Principal{}, http.StatusNotFound, MsgRoleNotFound, err
	case err != nil:
		return Principal{}, http.StatusInternalServerError, "", err
	case role != entity.RoleAdmin:
		return Principal{}, http.StatusForbidden, MsgNotAdmin, fmt.Errorf("%w: role %q", entity.ErrForbidden, role)
	}
	p.Role = role
	return p, 0, "", nil
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func resultLabel(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "role_missing"
	default:
		return "error"
	}
}
