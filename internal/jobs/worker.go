package jobs

import (
	"context"
	"log/slog"
	"time"
)

// Worker defines a background job that runs on an interval.
type Worker interface {
	Start(ctx context.Context)
	Name() string
}

// DefaultInterval is used when a worker is given a non-positive interval.
const DefaultInterval = 30 * time.Second

// BaseWorker provides common polling infrastructure.
type BaseWorker struct {
	name     string
	interval time.Duration
	log      *slog.Logger
}

// NewBaseWorker creates a new base worker.
func NewBaseWorker(name string, interval time.Duration, log *slog.Logger) BaseWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return BaseWorker{
		name:     name,
		interval: interval,
		log:      log.With("worker", name),
	}
}

func (w *BaseWorker) Name() string { return w.name }

// Poll runs work once immediately, then at every interval until ctx is cancelled.
func (w *BaseWorker) Poll(ctx context.Context, work func(context.Context) error) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("worker started", "interval", w.interval)

	w.run(ctx, work)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopping")
			return
		case <-ticker.C:
			w.run(ctx, work)
		}
	}
}

func (w *BaseWorker) run(ctx context.Context, work func(context.Context) error) {
	if err := work(ctx); err != nil && ctx.Err() == nil {
		w.log.Error("worker error", "err", err)
	}
}
