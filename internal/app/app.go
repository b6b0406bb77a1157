package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/use-of-force/internal/adapter/cache"
	"github.com/heartmarshall/use-of-force/internal/adapter/postgres"
	"github.com/heartmarshall/use-of-force/internal/adapter/postgres/report"
	"github.com/heartmarshall/use-of-force/internal/adapter/postgres/reportedit"
	"github.com/heartmarshall/use-of-force/internal/adapter/provider/hmppsauth"
	"github.com/heartmarshall/use-of-force/internal/adapter/provider/prison"
	"github.com/heartmarshall/use-of-force/internal/auth"
	"github.com/heartmarshall/use-of-force/internal/config"
	"github.com/heartmarshall/use-of-force/internal/lookup"
	"github.com/heartmarshall/use-of-force/internal/metrics"
	"github.com/heartmarshall/use-of-force/internal/service/edit"
	"github.com/heartmarshall/use-of-force/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// Postgres and Redis, wires the edit service and serves HTTP until ctx is
// cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	redisClient, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	health := rest.NewHealthHandler(pool, BuildVersion())
	var names *cache.NameCache
	if redisClient != nil {
		names = cache.NewNameCache(redisClient, cfg.Redis.NameTTL)
		health.AddCheck("name_cache", names.Health)
	}

	svc := NewEditService(logger, cfg, pool, names, m)

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	handler := NewRouter(logger, RouterDeps{
		Reports:          rest.NewReportHandler(svc, logger),
		Health:           health,
		Metrics:          metrics.Handler(reg),
		Tokens:           jwt,
		CoordinatorRoles: cfg.Auth.Roles(),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// NewEditService wires the edit service and its adapters from cfg.
// Name lookups are disabled unless HMPPS Auth and the Prison API are
// configured; names may be nil.
func NewEditService(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool, names *cache.NameCache, m *metrics.Metrics) *edit.Service {
	registry := edit.NewRegistry(
		edit.WithLocation(cfg.Edit.Location),
		edit.WithNoneMessage(cfg.Edit.NoneMessage),
	)

	var (
		tokens    edit.TokenSource
		resolvers edit.ResolverFactory
	)
	if cfg.HMPPSAuth.Enabled() && cfg.PrisonAPI.BaseURL != "" {
		tokens = hmppsauth.NewClient(cfg.HMPPSAuth, logger)
		upstream := prison.NewClient(cfg.PrisonAPI, cfg.LocationAPI, logger)
		if names != nil {
			resolvers = lookup.NewFactory(logger, upstream, names, m, cfg.Edit.LookupConcurrency)
		} else {
			resolvers = lookup.NewFactory(logger, upstream, nil, m, cfg.Edit.LookupConcurrency)
		}
	} else {
		logger.Warn("hmpps auth or prison api not configured, prison and location names will not be resolved")
	}

	return edit.NewService(
		logger,
		registry,
		report.New(pool),
		reportedit.New(pool),
		postgres.NewTxManager(pool),
		tokens,
		resolvers,
		m,
		edit.Config{LookupConcurrency: cfg.Edit.LookupConcurrency},
	)
}
