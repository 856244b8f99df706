package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// IdentityCleanup is a provider account whose local row could not be written
// and whose compensating delete failed at registration time.
type IdentityCleanup struct {
	ID         int64
	IdentityID uuid.UUID
	Email      string
	Reason     string
	Attempts   int
	LastError  string
	CreatedAt  time.Time
}

type IdentityCleanupRepository interface {
	Enqueue(ctx context.Context, identityID uuid.UUID, email, reason string) error
	// ListPending returns at most limit unresolved rows, oldest first.
	ListPending(ctx context.Context, limit int) ([]IdentityCleanup, error)
	// CountPending returns the number of unresolved rows.
	CountPending(ctx context.Context) (int, error)
	MarkDone(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, lastErr string) error
}
