package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu        sync.Mutex
	apps      map[string]Application
	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{apps: make(map[string]Application)}
}

func (r *fakeRepo) Create(_ context.Context, app Application) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = app
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id string) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return Application{}, ErrApplicationNotFound
	}
	return app, nil
}

func (r *fakeRepo) CountByType(context.Context) (map[InsuranceType]int64, error) {
	return nil, nil
}

func (r *fakeRepo) Ping(context.Context) error { return nil }

func TestApply_PersistsRecord(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewApplicationService(repo, nil, NewRecordBuilder(func() string { return "fixed-id" }, func() time.Time { return now }))

	req := validRequest()
	req.CustomerName = strPtr("JohnDoeSmith")
	req.CustomerAddress = strPtr("123 Metro Street")

	app, err := svc.Apply(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", app.ID)
	assert.Equal(t, int64(5225), app.CalculatedPremium)
	assert.Equal(t, now, app.CreatedAt)

	stored, err := svc.Get(context.Background(), "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, app, stored)
}

func TestApply_ValidationErrorSkipsRepo(t *testing.T) {
	repo := newFakeRepo()
	svc := NewApplicationService(repo, nil, nil)

	req := validRequest()
	req.InsuranceType = strPtr("INVALID")

	_, err := svc.Apply(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Empty(t, repo.apps)
}

func TestApply_RepoFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("disk on fire")
	svc := NewApplicationService(repo, nil, nil)

	_, err := svc.Apply(context.Background(), validRequest())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestApply_IdenticalRequestsGetDistinctIDs(t *testing.T) {
	svc := NewApplicationService(newFakeRepo(), nil, nil)

	a, err := svc.Apply(context.Background(), validRequest())
	require.NoError(t, err)
	b, err := svc.Apply(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.CalculatedPremium, b.CalculatedPremium)
}

func TestApply_WithoutRepo(t *testing.T) {
	svc := NewApplicationService(nil, nil, nil)

	app, err := svc.Apply(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)

	_, err = svc.Get(context.Background(), app.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGet_Errors(t *testing.T) {
	svc := NewApplicationService(newFakeRepo(), nil, nil)

	_, err := svc.Get(context.Background(), " ")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestQuote_DoesNotPersist(t *testing.T) {
	repo := newFakeRepo()
	svc := NewApplicationService(repo, nil, nil)

	req := validRequest()
	req.CustomerName = strPtr("JohnDoeSmith")
	req.CustomerAddress = strPtr("123 Metro Street")
	req.InsuranceType = strPtr("AUTO")

	b, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), b.Base)
	assert.Equal(t, int64(5225), b.Premium)
	require.Len(t, b.Modifiers, 2)
	assert.Empty(t, repo.apps)

	_, err = svc.Quote(context.Background(), ApplicationRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}
