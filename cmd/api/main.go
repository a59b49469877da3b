// @title           Insurance Premium API
// @version         1.0
// @description     Accepts insurance applications and calculates their premium.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrKriegler/insurance-premium/docs"
	"github.com/MrKriegler/insurance-premium/internal/core"
	transporthttp "github.com/MrKriegler/insurance-premium/internal/http"
	"github.com/MrKriegler/insurance-premium/internal/http/handlers"
	"github.com/MrKriegler/insurance-premium/internal/http/health"
	"github.com/MrKriegler/insurance-premium/internal/jobs"
	"github.com/MrKriegler/insurance-premium/internal/platform/config"
	"github.com/MrKriegler/insurance-premium/internal/platform/logging"
	"github.com/MrKriegler/insurance-premium/internal/platform/metrics"
	"github.com/MrKriegler/insurance-premium/internal/store/backend"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("api exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.DBType, err)
	}
	defer store.Shutdown(log)

	if err := store.Provision(ctx); err != nil {
		return fmt.Errorf("provision %s store: %w", store.Name, err)
	}
	log.Info("store ready", "db_type", store.Name)

	opTimeout := time.Duration(cfg.StoreOpTimeoutMs) * time.Millisecond
	m := metrics.New()
	svc := core.NewApplicationService(store.Repo, nil, nil)

	stats := jobs.NewStatsWorker(store.Repo, m, time.Duration(cfg.StatsIntervalSec)*time.Second, opTimeout, log)
	go stats.Start(ctx)

	router := transporthttp.NewRouter(transporthttp.Deps{
		Mounts: []handlers.Mountable{
			handlers.NewApplicationHandler(svc, log, m),
			handlers.NewQuoteHandler(svc, log),
			handlers.NewDocsHandler(docs.SwaggerInfo.InstanceName()),
		},
		Health:         health.New(log, store.Repo, opTimeout),
		Metrics:        m,
		RequestTimeout: time.Duration(cfg.HTTPRequestTimeoutSec) * time.Second,
		MaxBodyBytes:   int64(cfg.MaxBodyBytes),
		AllowedOrigins: cfg.AllowedOrigins,
		RequestLog:     cfg.Env == "dev",
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
	log.Info("server stopped")
	return serveErr
}
