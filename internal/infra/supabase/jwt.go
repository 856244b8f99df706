package supabase

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"techup-blog/internal/domain/entity"
)

// accessClaims is the subset of a Supabase access token we rely on.
type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier checks Supabase access tokens locally with the project's HS256 secret.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier returns nil when secret is empty; callers then fall back to the provider.
func NewJWTVerifier(secret string) *JWTVerifier {
	if secret == "" {
		return nil
	}
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify validates signature and expiry and returns the identity in the token.
func (v *JWTVerifier) Verify(tokenString string) (entity.Identity, error) {
	var claims accessClaims
	tok, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, errors.New("unexpected signing method")
			}
			return v.secret, nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return entity.Identity{}, fmt.Errorf("%w: %v", entity.ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("%w: invalid sub claim", entity.ErrInvalidToken)
	}
	return entity.Identity{ID: id, Email: claims.Email}, nil
}
