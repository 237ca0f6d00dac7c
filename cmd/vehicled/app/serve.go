package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"vehicle-status-backend/internal/adapter"
	"vehicle-status-backend/internal/api"
	"vehicle-status-backend/internal/db"
	"vehicle-status-backend/internal/logging"
	"vehicle-status-backend/internal/notification"
	"vehicle-status-backend/internal/store"
)

const (
	initialRetryDelay = 2 * time.Second
	maxRetryDelay     = time.Minute
)

func runServe(ctx context.Context, opts *Options) error {
	cfg, err := opts.Config()
	if err != nil {
		return fmt.Errorf("load configuration from %s: %w", opts.ConfigPath, err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("configuration loaded", zap.String("path", opts.ConfigPath), zap.String("backend", cfg.Backend))

	if cfg.Server.APIKey == "" {
		logger.Warn("no api key configured, /api is served without authentication")
	}

	vehicles, err := newAdapter(cfg, logger)
	if err != nil {
		return err
	}

	appStore := store.Store(store.Noop{})
	if cfg.Database.DSN != "" {
		gormDB, err := db.Init(&cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		appStore = store.NewGormStore(gormDB)
		logger.Info("database initialized")
	} else {
		logger.Warn("no database configured, command journal and push subscriptions are disabled")
	}

	var (
		pool           *notification.WorkerPool
		webpushOptions *webpush.Options
	)
	if cfg.Push.Enabled() && cfg.Database.DSN != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions, logger)
		pool.Start(ctx)
		logger.Info("notification worker pool started", zap.Int("workers", cfg.WorkerPool.Size))
	}

	gate := adapter.NewGate()
	go openWhenReady(ctx, gate, vehicles, logger)

	handler := api.NewHandler(gate, appStore, pool, webpushOptions, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: api.NewRouter(handler, cfg.Server, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutdown signal received, stopping services")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSecs)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	logger.Info("server gracefully stopped")
	return nil
}

// openWhenReady loads the fleet once and opens the gate, retrying with
// backoff until it succeeds or ctx ends.
func openWhenReady(ctx context.Context, gate *adapter.Gate, a *adapter.VehicleAdapter, logger *zap.Logger) {
	delay := initialRetryDelay
	for {
		start := time.Now()
		vehicles, err := a.ListVehicles(ctx)
		if err == nil {
			gate.Open(a)
			logger.Info("vehicle backend ready", zap.Int("vehicles", len(vehicles)), zap.Duration("duration", time.Since(start)))
			return
		}

		gate.Fail(err)
		logger.Warn("vehicle backend not available, retrying", zap.Error(err), zap.Duration("retry_in", delay))
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay = min(delay*2, maxRetryDelay)
	}
}

