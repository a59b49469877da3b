package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/MrKriegler/insurance-premium/internal/platform/config"
	"github.com/MrKriegler/insurance-premium/internal/platform/logging"
	"github.com/MrKriegler/insurance-premium/internal/store/backend"
)

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)

	if err := run(cfg, log); err != nil {
		log.Error("provisioning failed", "db_type", cfg.DBType, "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Shutdown(log)

	log.Info("provisioning schema", "db_type", store.Name)
	if err := store.Provision(ctx); err != nil {
		return err
	}
	log.Info("done provisioning")
	return nil
}
