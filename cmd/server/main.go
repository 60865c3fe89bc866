package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"paymediator/internal/app"
	"paymediator/internal/audit"
	permission "paymediator/internal/permission/service"
	"paymediator/internal/platform/config"
	"paymediator/internal/platform/httpserver"
	"paymediator/internal/platform/logger"
	"paymediator/internal/platform/metrics"
	"paymediator/internal/platform/redis"
	"paymediator/internal/remote"
	"paymediator/internal/storage"
	httptransport "paymediator/internal/transport/http"
	"paymediator/pkg/platform/circuit"
)

// main wires configuration, storage, audit and the HTTP API, then serves
// until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	backend, health, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeBackend)

	auditStore, closeAudit, err := openAuditStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	closers = append(closers, closeAudit)
	publisher := audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(cfg.Audit.BufferSize),
		audit.WithPublisherLogger(log),
	)
	closers = append(closers, publisher.Close)

	loader := remote.WithLoadTimeout(remote.NewHTTPLoader(), cfg.Mediator.LoadTimeout)
	services := app.NewServices(backend, loader,
		app.WithHooks(app.Hooks{
			RequestPermission: permission.AllowOrigins(cfg.Mediator.PermissionAllowlist...),
		}),
		app.WithLogger(log),
		app.WithAuditPublisher(publisher),
		app.WithAbortTimeout(cfg.Mediator.AbortTimeout),
		app.WithMetricsRegisterer(reg),
	)

	router := httptransport.NewRouter(
		httptransport.New(services, services.Permissions(), log),
		httptransport.RouterConfig{
			Logger:   log,
			Metrics:  metrics.New(reg),
			Gatherer: reg,
			Health:   health,
		},
	)
	srv := httpserver.New(cfg.Server, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting payment mediator",
			"addr", cfg.Server.Addr,
			"storage", cfg.Storage.Backend,
			"audit_sink", cfg.Audit.Sink,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openBackend(ctx context.Context, cfg config.Config) (storage.Backend, []httptransport.HealthCheck, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		if client == nil {
			return nil, nil, nil, errors.New("redis storage requires REDIS_URL")
		}
		checks := []httptransport.HealthCheck{client.Health}
		return storage.NewRedisBackend(client.Client), checks, func() { _ = client.Close() }, nil

	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		backend := storage.NewPostgresBackend(db, storage.WithPostgresTable(cfg.Postgres.Table))
		if err := backend.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		checks := []httptransport.HealthCheck{db.PingContext}
		return backend, checks, func() { _ = db.Close() }, nil

	default:
		return storage.NewMemoryBackend(), nil, func() {}, nil
	}
}

// openAuditStore returns the configured sink. Kafka falls back to process
// memory while the broker is failing.
func openAuditStore(ctx context.Context, cfg config.Config, log *slog.Logger) (audit.Store, func(), error) {
	if cfg.Audit.Sink != config.AuditKafka {
		return audit.NewMemoryStore(), func() {}, nil
	}
	store, err := audit.NewKafkaStore(cfg.Audit.Brokers, cfg.Audit.Topic)
	if err != nil {
		return nil, nil, err
	}
	if err := store.EnsureTopic(ctx, 1, 1); err != nil {
		store.Close()
		return nil, nil, err
	}
	breaker := circuit.New("audit-kafka", circuit.WithFailureThreshold(5))
	return audit.NewFallbackStore(store, audit.NewMemoryStore(), breaker, log), store.Close, nil
}
