package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"techup-blog/internal/domain/entity"
)

// SQLSTATE codes the repositories translate into domain errors.
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

// pgCode returns the SQLSTATE of err, or "" when err is not a Postgres error.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classify maps constraint violations onto domain errors, keeping err in the chain.
func classify(op string, err error) error {
	switch pgCode(err) {
	case foreignKeyViolation:
		return fmt.Errorf("%s: %w: %w", op, entity.ErrInvalidReference, err)
	case uniqueViolation:
		return fmt.Errorf("%s: %w: %w", op, entity.ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
