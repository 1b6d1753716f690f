package http

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"pushrelay/internal/config"
	"pushrelay/internal/handler"
	"pushrelay/internal/logging"
	"pushrelay/internal/metrics"
	"pushrelay/internal/queue"
	"pushrelay/internal/redis"
	"pushrelay/internal/service"
	"pushrelay/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// Run wires the relay and serves until SIGINT/SIGTERM.
// Any startup failure is returned to the caller.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Logging and tracing
	logger, err := logging.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := telemetry.Init(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(c)
	}()

	// 3. Delivery providers
	fcm, err := service.NewFCMClient(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentials, logger)
	if err != nil {
		return fmt.Errorf("failed to init cloud messaging: %w", err)
	}
	expo := service.NewExpoPushClient(cfg.ExpoPushURL, cfg.ProviderTimeout)

	// 4. Optional dispatch event stream
	var publisher queue.Publisher = queue.NoopPublisher{}
	if cfg.RedisURL != "" {
		rdb, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		publisher = queue.NewPublisher(rdb.Client, logger)
		logger.Info("dispatch events enabled", zap.String("stream", queue.StreamDispatch))
	}

	// 5. Service, handlers, router
	m := metrics.New()
	notifService := service.NewNotificationService(expo, fcm, publisher, m, logger)
	router := NewRouter(RouterConfig{
		NotificationHandler: handler.NewNotificationHandler(notifService),
		Metrics:             m,
		Logger:              logger,
	})

	srv := &stdhttp.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(router, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", zap.Error(err))
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
