package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"techup-blog/internal/handler/http/respond"
	pgRepo "techup-blog/internal/infra/adapter/persistence/postgres"
	"techup-blog/internal/infra/db"
	"techup-blog/internal/infra/supabase"
	workerPkg "techup-blog/internal/infra/worker"
	"techup-blog/internal/observability/logging"
	"techup-blog/internal/resilience/retry"
	reconcileUC "techup-blog/internal/usecase/reconcile"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := retry.Do(ctx, retry.DBConfig(), func() (*sqlx.DB, error) {
		return db.Open(ctx, db.DSNFromEnv())
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, _ := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("batch_size", workerConfig.BatchSize),
		slog.Duration("job_timeout", workerConfig.JobTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	sbConfig := supabase.ConfigFromEnv()
	if err := sbConfig.Validate(); err != nil {
		logger.Error("invalid supabase configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if sbConfig.ServiceRoleKey == "" {
		logger.Error("SUPABASE_SERVICE_ROLE_KEY is required for the reconcile worker")
		os.Exit(1)
	}

	svc := &reconcileUC.Service{
		Cleanups:  pgRepo.NewIdentityCleanupRepo(database),
		Provider:  supabase.NewAuthClient(sbConfig),
		Tx:        db.NewTransactor(database),
		BatchSize: workerConfig.BatchSize,
		Logger:    logger,
	}

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		_ = healthServer.Start(ctx)
	}()

	c := startCronWorker(logger, svc, workerConfig, workerMetrics, healthServer)

	<-ctx.Done()
	healthServer.SetReady(false)
	logger.Info("worker shutting down")
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// startCronWorker schedules the reconcile job and marks the worker ready.
func startCronWorker(logger *slog.Logger, svc *reconcileUC.Service, cfg *workerPkg.WorkerConfig, wm *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) *cron.Cron {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runReconcileJob(logger, svc, cfg, wm, healthServer)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	return c
}

// runReconcileJob executes one reconcile run with a timeout.
func runReconcileJob(logger *slog.Logger, svc *reconcileUC.Service, cfg *workerPkg.WorkerConfig, wm *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()

	res, err := svc.Run(ctx)
	wm.RecordDuration(time.Since(startTime).Seconds())
	healthServer.ReportRun(workerPkg.RunReport{
		FinishedAt: time.Now(),
		Succeeded:  err == nil,
		Pending:    res.Pending,
		Resolved:   res.Resolved,
		Failed:     res.Failed,
	})
	if err != nil {
		logger.Error("reconcile failed", slog.Any("error", respond.SanitizeError(err)))
		wm.RecordRun("failure")
		return
	}

	wm.RecordRun("success")
	wm.RecordResolved(res.Resolved)
	wm.RecordLastSuccess()
	if res.Pending > 0 {
		logger.Info("reconcile completed",
			slog.Int("pending", res.Pending),
			slog.Int("resolved", res.Resolved),
			slog.Int("failed", res.Failed),
			slog.Duration("duration", time.Since(startTime)))
	}
}
