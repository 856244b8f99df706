package worker

import (
	"fmt"
	"log/slog"
	"time"

	"techup-blog/internal/pkg/config"
)

// WorkerConfig holds the configuration for the reconciliation worker.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// Invalid environment values never stop the worker; they fall back to the
// defaults and are reported through WorkerMetrics.
type WorkerConfig struct {
	// CronSchedule is the cron expression for the reconcile job.
	// Default: "*/5 * * * *"
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC"
	Timezone string

	// BatchSize is the number of pending cleanups claimed per run.
	// Range: 1-500
	// Default: 50
	BatchSize int

	// JobTimeout bounds a single run.
	// Default: 2 minutes
	JobTimeout time.Duration

	// HealthPort is the port for the health and metrics server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with default values.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "*/5 * * * *",
		Timezone:     "UTC",
		BatchSize:    50,
		JobTimeout:   2 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks every field and returns all failures together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.BatchSize, 1, 500); err != nil {
		errs = append(errs, fmt.Errorf("batch size: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration from environment
// variables, falling back to defaults for invalid values.
//
// Environment variables:
//   - RECONCILE_CRON: Cron expression (default: "*/5 * * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - RECONCILE_BATCH_SIZE: Integer 1-500 (default: 50)
//   - RECONCILE_TIMEOUT: Duration 10s-30m (default: 2m)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//
// The returned error is always nil.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	note := func(field, label string, fellBack bool, warnings []string) {
		if !fellBack {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(label)
		metrics.RecordFallback(label, "default")
		for _, warning := range warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	cron := config.LoadString("RECONCILE_CRON", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = cron.Value
	note("CronSchedule", "cron_schedule", cron.FallbackApplied, cron.Warnings)

	tz := config.LoadString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = tz.Value
	note("Timezone", "timezone", tz.FallbackApplied, tz.Warnings)

	batch := config.LoadInt("RECONCILE_BATCH_SIZE", cfg.BatchSize, func(v int) error {
		return config.ValidateIntRange(v, 1, 500)
	})
	cfg.BatchSize = batch.Value
	note("BatchSize", "batch_size", batch.FallbackApplied, batch.Warnings)

	timeout := config.LoadDuration("RECONCILE_TIMEOUT", cfg.JobTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 10*time.Second, 30*time.Minute)
	})
	cfg.JobTimeout = timeout.Value
	note("JobTimeout", "job_timeout", timeout.FallbackApplied, timeout.Warnings)

	port := config.LoadInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = port.Value
	note("HealthPort", "health_port", port.FallbackApplied, port.Warnings)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
