// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/teamcomm/internal/access"
	"github.com/carterperez-dev/teamcomm/internal/admin"
	"github.com/carterperez-dev/teamcomm/internal/announcement"
	"github.com/carterperez-dev/teamcomm/internal/auth"
	"github.com/carterperez-dev/teamcomm/internal/catalog"
	"github.com/carterperez-dev/teamcomm/internal/core"
	"github.com/carterperez-dev/teamcomm/internal/deployment"
	"github.com/carterperez-dev/teamcomm/internal/health"
	"github.com/carterperez-dev/teamcomm/internal/middleware"
	"github.com/carterperez-dev/teamcomm/internal/server"
	"github.com/carterperez-dev/teamcomm/internal/targetdate"
	"github.com/carterperez-dev/teamcomm/internal/user"
	"github.com/carterperez-dev/teamcomm/internal/workspace"
)

const (
	drainDelay = 5 * time.Second
)

type ServeCmd struct {
	SkipReconcile bool `help:"Start without reconciling the schema." env:"TEAMCOMM_SKIP_RECONCILE"`
}

//nolint:funlen // bootstrap code is inherently verbose
func (c *ServeCmd) Run(ctx context.Context, g *Globals) error {
	cfg, logger, db, err := bootstrap(ctx, g)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", g.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	var metrics *core.Metrics
	if cfg.Metrics.Enabled {
		metrics = core.NewMetrics()
	}

	reconciler := newReconciler(db, logger, metrics)
	if c.SkipReconcile {
		logger.Warn("schema reconciliation skipped")
	} else {
		report := reconciler.Reconcile(ctx)
		if report.Failed() > 0 {
			logger.Warn("schema reconciled with failures, continuing",
				"failed", report.Failed(),
			)
		}
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}()
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	userRepo := user.NewRepository(db.DB)
	accounts := user.NewAccountProvider(userRepo)

	authSvc := auth.NewService(
		auth.NewRepository(db.DB),
		accounts,
		auth.NewRedisRevocations(redis.Client),
		cfg.Session,
		metrics,
	)

	workspaceRepo := workspace.NewRepository(db.DB)
	policy := access.NewPolicy(authSvc, workspaceRepo, metrics)

	authHandler := auth.NewHandler(authSvc)
	userHandler := user.NewHandler(user.NewService(userRepo, policy, authSvc))
	workspaceHandler := workspace.NewHandler(workspace.NewService(workspaceRepo, policy))
	announcementHandler := announcement.NewHandler(
		announcement.NewService(announcement.NewRepository(db.DB), policy),
	)
	targetDateHandler := targetdate.NewHandler(
		targetdate.NewService(targetdate.NewRepository(db.DB), policy, accounts),
	)
	deploymentHandler := deployment.NewHandler(
		deployment.NewService(deployment.NewRepository(db.DB), policy),
	)
	catalogHandler := catalog.NewHandler(cfg.Application.RefreshInterval)

	healthHandler := health.NewHandler(db, redis, reconciler)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Policy:     policy,
		Reconciler: reconciler,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	proxies, err := cfg.Server.ProxyPrefixes()
	if err != nil {
		return err
	}

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP(proxies))
	router.Use(middleware.Logger(logger))
	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
	}
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Name:    "api",
			Limit:   middleware.LimitFromConfig(cfg.RateLimit),
			KeyFunc: middleware.KeyByCaller,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	if metrics != nil {
		router.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	authenticator := middleware.Authenticator
	loginLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Name:    "login",
		Limit:   middleware.PerMinute(10, 5),
		KeyFunc: middleware.KeyByIP,
	}).Handler

	router.Route("/v1", func(r chi.Router) {
		catalogHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r, authenticator, loginLimiter)

		workspaceHandler.RegisterRoutes(r, authenticator)
		userHandler.RegisterRoutes(r, authenticator)
		announcementHandler.RegisterRoutes(r, authenticator)
		targetDateHandler.RegisterRoutes(r, authenticator)
		deploymentHandler.RegisterRoutes(r, authenticator)
		adminHandler.RegisterRoutes(r, authenticator)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	slog.Info("application stopped")
	return nil
}
