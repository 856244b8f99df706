package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"techup-blog/internal/infra/db"
	"techup-blog/internal/repository"
)

// IdentityCleanupRepo stores provider accounts awaiting a compensating delete.
type IdentityCleanupRepo struct {
	conn *sqlx.DB
}

func NewIdentityCleanupRepo(conn *sqlx.DB) repository.IdentityCleanupRepository {
	return &IdentityCleanupRepo{conn: conn}
}

type cleanupRow struct {
	ID         int64     `db:"id"`
	IdentityID uuid.UUID `db:"identity_id"`
	Email      string    `db:"email"`
	Reason     string    `db:"reason"`
	Attempts   int       `db:"attempts"`
	LastError  string    `db:"last_error"`
	CreatedAt  time.Time `db:"created_at"`
}

func (repo *IdentityCleanupRepo) Enqueue(ctx context.Context, identityID uuid.UUID, email, reason string) error {
	query, args, err := psql.Insert("identity_cleanups").
		Columns("identity_id", "email", "reason").
		Values(identityID, email, reason).
		ToSql()
	if err != nil {
		return fmt.Errorf("Enqueue: build: %w", err)
	}
	if _, err := db.Conn(ctx, repo.conn).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("Enqueue: %w", err)
	}
	return nil
}

// ListPending locks the returned rows when called inside a transaction so
// concurrent workers skip them.
func (repo *IdentityCleanupRepo) ListPending(ctx context.Context, limit int) ([]repository.IdentityCleanup, error) {
	query, args, err := psql.
		Select("id", "identity_id", "email", "reason", "attempts", "last_error", "created_at").
		From("identity_cleanups").
		Where(sq.Eq{"resolved_at": nil}).
		OrderBy("created_at").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListPending: build: %w", err)
	}

	var rows []cleanupRow
	if err := sqlx.SelectContext(ctx, db.Conn(ctx, repo.conn), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("ListPending: %w", err)
	}

	pending := make([]repository.IdentityCleanup, 0, len(rows))
	for _, r := range rows {
		pending = append(pending, repository.IdentityCleanup(r))
	}
	return pending, nil
}

func (repo *IdentityCleanupRepo) CountPending(ctx context.Context) (int, error) {
	query, args, err := psql.Select("count(*)").
		From("identity_cleanups").
		Where(sq.Eq{"resolved_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("CountPending: build: %w", err)
	}

	var n int
	if err := sqlx.GetContext(ctx, db.Conn(ctx, repo.conn), &n, query, args...); err != nil {
		return 0, fmt.Errorf("CountPending: %w", err)
	}
	return n, nil
}

func (repo *IdentityCleanupRepo) MarkDone(ctx context.Context, id int64) error {
	query, args, err := psql.Update("identity_cleanups").
		Set("attempts", sq.Expr("attempts + 1")).
		Set("resolved_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("MarkDone: build: %w", err)
	}
	if _, err := db.Conn(ctx, repo.conn).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("MarkDone: %w", err)
	}
	return nil
}

func (repo *IdentityCleanupRepo) MarkFailed(ctx context.Context, id int64, lastErr string) error {
	query, args, err := psql.Update("identity_cleanups").
		Set("attempts", sq.Expr("attempts + 1")).
		Set("last_error", lastErr).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("MarkFailed: build: %w", err)
	}
	if _, err := db.Conn(ctx, repo.conn).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("MarkFailed: %w", err)
	}
	return nil
}
