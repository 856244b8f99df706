// Package reconcile removes provider accounts that registration left without
// a local users row.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"techup-blog/internal/observability/metrics"
	"techup-blog/internal/repository"
)

const defaultBatchSize = 50

// Deleter removes a provider account.
type Deleter interface {
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// Transactor runs fn in a transaction carried by ctx.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result summarises one run.
type Result struct {
	Pending  int
	Resolved int
	Failed   int
}

// Service drains the identity_cleanups queue.
type Service struct {
	Cleanups  repository.IdentityCleanupRepository
	Provider  Deleter
	Tx        Transactor
	BatchSize int
	Logger    *slog.Logger
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Service) batchSize() int {
	if s.BatchSize <= 0 {
		return defaultBatchSize
	}
	return s.BatchSize
}

// Run processes one batch of pending cleanups.
//
// Rows are claimed and updated inside a single transaction so concurrent
// workers never delete the same account twice. A provider failure marks the
// row failed and leaves it pending for the next run.
func (s *Service) Run(ctx context.Context) (Result, error) {
	var res Result
	err := s.Tx.RunInTx(ctx, func(ctx context.Context) error {
		pending, err := s.Cleanups.ListPending(ctx, s.batchSize())
		if err != nil {
			return fmt.Errorf("list pending cleanups: %w", err)
		}
		res.Pending = len(pending)

		for _, c := range pending {
			if err := ctx.Err(); err != nil {
				return err
			}
			if derr := s.Provider.DeleteUser(ctx, c.IdentityID); derr != nil {
				res.Failed++
				metrics.RecordIdentityCleanup("failed")
				s.logger().Warn("identity cleanup failed",
					slog.Int64("cleanup_id", c.ID),
					slog.String("identity_id", c.IdentityID.String()),
					slog.Int("attempts", c.Attempts+1),
					slog.Any("error", derr))
				if err := s.Cleanups.MarkFailed(ctx, c.ID, derr.Error()); err != nil {
					return fmt.Errorf("mark cleanup %d failed: %w", c.ID, err)
				}
				continue
			}
			if err := s.Cleanups.MarkDone(ctx, c.ID); err != nil {
				return fmt.Errorf("mark cleanup %d done: %w", c.ID, err)
			}
			res.Resolved++
			metrics.RecordIdentityCleanup("reconciled")
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if backlog, err := s.Cleanups.CountPending(ctx); err != nil {
		s.logger().Warn("count pending identity cleanups", slog.Any("error", err))
	} else {
		metrics.SetIdentityCleanupsPending(backlog)
	}
	s.logger().Info("identity cleanup run finished",
		slog.Int("pending", res.Pending),
		slog.Int("resolved", res.Resolved),
		slog.Int("failed", res.Failed))
	return res, nil
}
