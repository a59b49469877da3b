package core

import (
	"context"
	"fmt"
	"strings"
)

type ApplicationService interface {
	Apply(ctx context.Context, req ApplicationRequest) (Application, error)
	Get(ctx context.Context, id string) (Application, error)
	Quote(ctx context.Context, req ApplicationRequest) (Breakdown, error)
}

type applicationService struct {
	apps    ApplicationRepo
	pricing *PremiumCalculator
	records *RecordBuilder
}

// NewApplicationService wires the pipeline. apps may be nil, in which case
// records are built and returned but not stored.
func NewApplicationService(apps ApplicationRepo, pricing *PremiumCalculator, records *RecordBuilder) ApplicationService {
	if pricing == nil {
		pricing = NewPremiumCalculator()
	}
	if records == nil {
		records = NewRecordBuilder(nil, nil)
	}
	return &applicationService{
		apps:    apps,
		pricing: pricing,
		records: records,
	}
}

func (s *applicationService) Apply(ctx context.Context, req ApplicationRequest) (Application, error) {
	// 1) Validate input
	v, err := req.Validate()
	if err != nil {
		return Application{}, err
	}

	// 2) Price
	premium := s.pricing.Calculate(v)

	// 3) Build record
	app := s.records.Build(v, premium)

	// 4) Persist
	if s.apps != nil {
		if err := s.apps.Create(ctx, app); err != nil {
			return Application{}, fmt.Errorf("store application %s: %w", app.ID, err)
		}
	}
	return app, nil
}

func (s *applicationService) Get(ctx context.Context, id string) (Application, error) {
	if strings.TrimSpace(id) == "" {
		return Application{}, fmt.Errorf("%w: missing application ID", ErrValidation)
	}
	if s.apps == nil {
		return Application{}, ErrApplicationNotFound
	}
	return s.apps.Get(ctx, id)
}

// Quote prices a request without building or storing a record.
func (s *applicationService) Quote(_ context.Context, req ApplicationRequest) (Breakdown, error) {
	v, err := req.Validate()
	if err != nil {
		return Breakdown{}, err
	}
	return s.pricing.Quote(v), nil
}
