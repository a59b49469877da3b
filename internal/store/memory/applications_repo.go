package memory

import (
	"context"
	"sync"

	"github.com/MrKriegler/insurance-premium/internal/core"
)

// ApplicationRepo keeps applications in process memory. Data does not
// survive a restart.
type ApplicationRepo struct {
	mu   sync.RWMutex
	apps map[string]core.Application
}

func NewApplicationRepo() *ApplicationRepo {
	return &ApplicationRepo{apps: make(map[string]core.Application)}
}

func (r *ApplicationRepo) Create(ctx context.Context, app core.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.apps[app.ID]; exists {
		return core.ErrApplicationExists
	}
	r.apps[app.ID] = app
	return nil
}

func (r *ApplicationRepo) Get(ctx context.Context, id string) (core.Application, error) {
	if err := ctx.Err(); err != nil {
		return core.Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return core.Application{}, core.ErrApplicationNotFound
	}
	return app, nil
}

func (r *ApplicationRepo) CountByType(ctx context.Context) (map[core.InsuranceType]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[core.InsuranceType]int64)
	for _, app := range r.apps {
		counts[app.InsuranceType]++
	}
	return counts, nil
}

func (r *ApplicationRepo) Ping(context.Context) error { return nil }
