package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"techup-blog/internal/common/pagination"
	"techup-blog/internal/config"
	pgRepo "techup-blog/internal/infra/adapter/persistence/postgres"
	"techup-blog/internal/infra/db"
	"techup-blog/internal/infra/supabase"
	"techup-blog/internal/observability/logging"
	"techup-blog/internal/observability/metrics"
	"techup-blog/internal/observability/tracing"
	"techup-blog/internal/resilience/retry"
	envcfg "techup-blog/pkg/config"

	acctUC "techup-blog/internal/usecase/account"
	catUC "techup-blog/internal/usecase/category"
	postUC "techup-blog/internal/usecase/post"
	profileUC "techup-blog/internal/usecase/profile"
	"techup-blog/internal/usecase/upload"

	hhttp "techup-blog/internal/handler/http"
	hauth "techup-blog/internal/handler/http/auth"
	hcategory "techup-blog/internal/handler/http/category"
	"techup-blog/internal/handler/http/middleware"
	hpost "techup-blog/internal/handler/http/post"
	hprofile "techup-blog/internal/handler/http/profile"
	"techup-blog/internal/handler/http/requestid"

	_ "techup-blog/docs" // swagger docs
)

// @title           TechUp Blog API
// @version         1.0
// @description     Blog backend: posts, categories, accounts and profiles.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:4001
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Supabase access token as "Bearer {token}".

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	shutdownTracing := tracing.Setup()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database := initDatabase(ctx, logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components := setupServer(ctx, logger, database, getVersion())
	runServer(ctx, logger, components)
}

// initDatabase connects with retry and applies the schema.
func initDatabase(ctx context.Context, logger *slog.Logger) *sqlx.DB {
	database, err := retry.Do(ctx, retry.DBConfig(), func() (*sqlx.DB, error) {
		return db.Open(ctx, db.DSNFromEnv())
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.MigrateUp(database.DB); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

func getVersion() string {
	return envcfg.GetEnvString("VERSION", "dev")
}

// serverComponents holds what runServer needs besides the handler.
type serverComponents struct {
	Handler     http.Handler
	AuthLimiter *middleware.IPRateLimiter
}

// setupServer builds services, routes and the middleware chain.
func setupServer(ctx context.Context, logger *slog.Logger, database *sqlx.DB, version string) *serverComponents {
	sbConfig := supabase.ConfigFromEnv()
	if err := sbConfig.Validate(); err != nil {
		logger.Error("invalid supabase configuration", slog.Any("error", err))
		os.Exit(1)
	}
	authClient := supabase.NewAuthClient(sbConfig)
	storageClient := supabase.NewStorageClient(sbConfig)

	storageCfg, err := config.LoadStorageConfig(os.Getenv("STORAGE_CONFIG_PATH"))
	if err != nil {
		logger.Error("failed to load storage configuration", slog.Any("error", err))
		os.Exit(1)
	}
	uploads := &upload.Service{
		Store:    storageClient,
		MaxBytes: storageCfg.Storage.MaxUploadBytes,
		Allowed:  storageCfg.IsAllowedContentType,
	}

	users := pgRepo.NewUserRepo(database)
	postSvc := &postUC.Service{
		Repo:    pgRepo.NewPostRepo(database),
		Uploads: uploads,
		Images: upload.Target{
			Bucket: storageCfg.Storage.PostImages.Bucket,
			Prefix: storageCfg.Storage.PostImages.Prefix,
		},
	}
	catSvc := &catUC.Service{Repo: pgRepo.NewCategoryRepo(database)}
	acctSvc := &acctUC.Service{
		Users:    users,
		Cleanups: pgRepo.NewIdentityCleanupRepo(database),
		Provider: authClient,
		Logger:   logger,
	}
	profileSvc := &profileUC.Service{
		Users:   users,
		Uploads: uploads,
		Pictures: upload.Target{
			Bucket: storageCfg.Storage.ProfilePictures.Bucket,
			Prefix: storageCfg.Storage.ProfilePictures.Prefix,
		},
	}
	guard := &hauth.Guard{Verifier: authClient, Roles: users}

	extractor, err := middleware.NewIPExtractorFromEnv()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}
	rlConfig := middleware.LoadRateLimitConfig()
	authLimiter := middleware.NewIPRateLimiter(rlConfig, extractor)
	logger.Info("auth rate limiting enabled",
		slog.Float64("rps", rlConfig.RPS),
		slog.Int("burst", rlConfig.Burst))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", hhttp.Root)
	mux.Handle("/health", &hhttp.HealthHandler{
		DB:      database.DB,
		Version: version,
		Checks: map[string]hhttp.Checker{
			"identity": authClient,
			"storage":  storageClient,
		},
	})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database.DB})
	mux.Handle("/live", hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	hpost.Register(mux, postSvc, guard, pagination.LoadFromEnv(), logger)
	hcategory.Register(mux, catSvc, guard)
	hauth.Register(mux, acctSvc, guard, authLimiter.Middleware)
	hprofile.Register(mux, profileSvc, guard)

	handler, err := applyMiddleware(logger, mux)
	if err != nil {
		logger.Error("failed to configure middleware", slog.Any("error", err))
		os.Exit(1)
	}

	go reportPoolStats(ctx, database, envcfg.GetEnvDuration("DB_STATS_INTERVAL", 15*time.Second))

	return &serverComponents{Handler: handler, AuthLimiter: authLimiter}
}

// applyMiddleware wraps the router. The first middleware is outermost:
// CORS answers preflights before anything else runs.
func applyMiddleware(logger *slog.Logger, handler http.Handler) (http.Handler, error) {
	corsConfig, err := middleware.LoadCORSConfig()
	if err != nil {
		return nil, err
	}
	corsConfig.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Any("allowed_headers", corsConfig.AllowedHeaders),
		slog.Int("max_age", corsConfig.MaxAge))

	return hhttp.Chain(handler,
		middleware.CORS(corsConfig),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		middleware.SecurityHeaders,
		hhttp.InputValidation(),
		hhttp.Timeout(envcfg.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)),
		hhttp.LimitRequestBody(int64(envcfg.GetEnvInt("MAX_BODY_BYTES", 10<<20))),
	), nil
}

// reportPoolStats publishes connection pool gauges until ctx ends.
func reportPoolStats(ctx context.Context, database *sqlx.DB, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := database.Stats()
			metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
		}
	}
}

// runServer serves until ctx is cancelled, then drains connections.
func runServer(ctx context.Context, logger *slog.Logger, components *serverComponents) {
	bgCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweepInterval := envcfg.GetEnvDuration("AUTH_RATE_LIMIT_SWEEP_INTERVAL", time.Minute)
	go components.AuthLimiter.RunSweeper(bgCtx, sweepInterval)

	addr := ":" + envcfg.GetEnvString("PORT", "4001")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return bgCtx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
	}
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
