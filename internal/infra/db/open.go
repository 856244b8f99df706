package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"techup-blog/internal/pkg/config"
	envcfg "techup-blog/pkg/config"
)

// ErrMissingDSN is returned when neither DATABASE_URL nor CONNECTION_STRING is set.
var ErrMissingDSN = errors.New("DATABASE_URL not set")

const pingTimeout = 5 * time.Second

// PoolConfig sizes the database/sql connection pool.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

func (c PoolConfig) apply(db *sqlx.DB) {
	db.SetMaxOpenConns(c.MaxOpenConns)
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(c.ConnMaxLifetime)
	db.SetConnMaxIdleTime(c.ConnMaxIdleTime)
}

func (c PoolConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("max_open_conns", c.MaxOpenConns),
		slog.Int("max_idle_conns", c.MaxIdleConns),
		slog.Duration("conn_max_lifetime", c.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", c.ConnMaxIdleTime),
	)
}

// PoolConfigFromEnv reads DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS,
// DB_CONN_MAX_LIFETIME and DB_CONN_MAX_IDLE_TIME. Unparsable or
// non-positive values keep the default and are logged.
func PoolConfigFromEnv() PoolConfig {
	def := DefaultPoolConfig()
	positive := func(n int) error { return config.ValidateIntRange(n, 1, 10_000) }

	openConns := config.LoadInt("DB_MAX_OPEN_CONNS", def.MaxOpenConns, positive)
	idleConns := config.LoadInt("DB_MAX_IDLE_CONNS", def.MaxIdleConns, positive)
	lifetime := config.LoadDuration("DB_CONN_MAX_LIFETIME", def.ConnMaxLifetime, config.ValidatePositiveDuration)
	idleTime := config.LoadDuration("DB_CONN_MAX_IDLE_TIME", def.ConnMaxIdleTime, config.ValidatePositiveDuration)

	for _, warnings := range [][]string{openConns.Warnings, idleConns.Warnings, lifetime.Warnings, idleTime.Warnings} {
		for _, w := range warnings {
			slog.Warn("database pool setting ignored", slog.String("detail", w))
		}
	}

	return PoolConfig{
		MaxOpenConns:    openConns.Value,
		MaxIdleConns:    idleConns.Value,
		ConnMaxLifetime: lifetime.Value,
		ConnMaxIdleTime: idleTime.Value,
	}
}

// DSNFromEnv returns DATABASE_URL, falling back to CONNECTION_STRING.
func DSNFromEnv() string {
	if dsn := envcfg.GetEnvString("DATABASE_URL", ""); dsn != "" {
		return dsn
	}
	return envcfg.GetEnvString("CONNECTION_STRING", "")
}

// Open connects through the pgx stdlib driver, sizes the pool and pings
// within pingTimeout.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, ErrMissingDSN
	}

	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	pool := PoolConfigFromEnv()
	pool.apply(db)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connected", slog.Any("pool", pool))
	return db, nil
}
