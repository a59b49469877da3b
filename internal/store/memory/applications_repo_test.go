package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrKriegler/insurance-premium/internal/core"
)

func newApp(id string, it core.InsuranceType) core.Application {
	return core.Application{
		ID:                id,
		CustomerName:      "John",
		CustomerAddress:   "123 Main St",
		InsuranceType:     it,
		CalculatedPremium: core.BasePremiums[it],
		CreatedAt:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewApplicationRepo()
	ctx := context.Background()

	app := newApp("a1", core.InsuranceTypeAuto)
	require.NoError(t, repo.Create(ctx, app))

	got, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, app, got)
}

func TestCreate_DuplicateID(t *testing.T) {
	repo := NewApplicationRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newApp("a1", core.InsuranceTypeAuto)))
	err := repo.Create(ctx, newApp("a1", core.InsuranceTypeHouse))
	assert.True(t, errors.Is(err, core.ErrConflict))
}

func TestGet_NotFound(t *testing.T) {
	_, err := NewApplicationRepo().Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewApplicationRepo().Create(ctx, newApp("a1", core.InsuranceTypeAuto))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCountByType_Concurrent(t *testing.T) {
	repo := NewApplicationRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			it := core.InsuranceTypes[i%len(core.InsuranceTypes)]
			assert.NoError(t, repo.Create(ctx, newApp(fmt.Sprintf("a%d", i), it)))
		}(i)
	}
	wg.Wait()

	counts, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[core.InsuranceType]int64{
		core.InsuranceTypeAuto:    10,
		core.InsuranceTypeMedical: 10,
		core.InsuranceTypeHouse:   10,
	}, counts)
}
