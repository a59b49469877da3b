package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrKriegler/insurance-premium/internal/core"
)

// CountSink receives per-type application totals.
type CountSink interface {
	SetStored(counts map[core.InsuranceType]int64)
}

// StatsWorker periodically publishes how many applications are stored per type.
type StatsWorker struct {
	BaseWorker
	apps      core.ApplicationRepo
	sink      CountSink
	opTimeout time.Duration
}

var _ Worker = (*StatsWorker)(nil)

func NewStatsWorker(apps core.ApplicationRepo, sink CountSink, interval, opTimeout time.Duration, log *slog.Logger) *StatsWorker {
	return &StatsWorker{
		BaseWorker: NewBaseWorker("stats", interval, log),
		apps:       apps,
		sink:       sink,
		opTimeout:  opTimeout,
	}
}

func (w *StatsWorker) Start(ctx context.Context) {
	w.Poll(ctx, w.refresh)
}

func (w *StatsWorker) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.opTimeout)
	defer cancel()

	counts, err := w.apps.CountByType(ctx)
	if err != nil {
		return fmt.Errorf("count applications: %w", err)
	}
	w.sink.SetStored(counts)
	w.log.Debug("stored application counts refreshed", "counts", counts)
	return nil
}
