package postgres_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	pg "techup-blog/internal/infra/adapter/persistence/postgres"
	"techup-blog/internal/repository"
)

func TestIdentityCleanupRepo_Enqueue(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO identity_cleanups (identity_id,email,reason) VALUES ($1,$2,$3)")).
		WithArgs(userID, "jane@example.com", "local insert failed").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := pg.NewIdentityCleanupRepo(conn).Enqueue(context.Background(), userID, "jane@example.com", "local insert failed")
	if err != nil {
		t.Fatalf("Enqueue err=%v", err)
	}
	verify(t, mock)
}

func TestIdentityCleanupRepo_ListPending(t *testing.T) {
	conn, mock := newMock(t)
	created := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE resolved_at IS NULL ORDER BY created_at LIMIT 10 FOR UPDATE SKIP LOCKED")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "identity_id", "email", "reason", "attempts", "last_error", "created_at"}).
			AddRow(int64(1), userID.String(), "jane@example.com", "local insert failed", 2, "timeout", created))

	got, err := pg.NewIdentityCleanupRepo(conn).ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListPending err=%v", err)
	}
	want := []repository.IdentityCleanup{{
		ID: 1, IdentityID: userID, Email: "jane@example.com", Reason: "local insert failed",
		Attempts: 2, LastError: "timeout", CreatedAt: created,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	verify(t, mock)
}

func TestIdentityCleanupRepo_CountPending(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM identity_cleanups WHERE resolved_at IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(120))

	got, err := pg.NewIdentityCleanupRepo(conn).CountPending(context.Background())
	if err != nil {
		t.Fatalf("CountPending err=%v", err)
	}
	if got != 120 {
		t.Fatalf("CountPending=%d want 120", got)
	}
	verify(t, mock)
}

func TestIdentityCleanupRepo_MarkDoneAndFailed(t *testing.T) {
	conn, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE identity_cleanups SET attempts = attempts + 1, resolved_at = now() WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE identity_cleanups SET attempts = attempts + 1, last_error = $1 WHERE id = $2")).
		WithArgs("provider unavailable", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewIdentityCleanupRepo(conn)
	if err := repo.MarkDone(context.Background(), 1); err != nil {
		t.Fatalf("MarkDone err=%v", err)
	}
	if err := repo.MarkFailed(context.Background(), 2, "provider unavailable"); err != nil {
		t.Fatalf("MarkFailed err=%v", err)
	}
	verify(t, mock)
}
