package memory

import (
	"context"
	"sync"
	"testing"

	"toolrental-charges/internal/domain"
	"toolrental-charges/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_GetByCode(t *testing.T) {
	catalog, err := NewCatalog(DefaultPolicies())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		p, err := catalog.GetByCode(ctx, "CHNS")
		assert.NoError(t, err)
		assert.Equal(t, "Chainsaw", p.ToolType)
		assert.Equal(t, "Stihl", p.Brand)
		assert.Equal(t, "1.49", p.DailyCharge.StringFixed(2))
		assert.True(t, p.WeekdayCharge)
		assert.False(t, p.WeekendCharge)
		assert.True(t, p.HolidayCharge)
	})

	t.Run("Unknown code", func(t *testing.T) {
		p, err := catalog.GetByCode(ctx, "DRLL")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, repository.ErrToolNotFound)
	})

	t.Run("Exact match only", func(t *testing.T) {
		_, err := catalog.GetByCode(ctx, "ladw")
		assert.ErrorIs(t, err, repository.ErrToolNotFound)
		_, err = catalog.GetByCode(ctx, " LADW")
		assert.ErrorIs(t, err, repository.ErrToolNotFound)
	})

	t.Run("Returned policy is a copy", func(t *testing.T) {
		p, err := catalog.GetByCode(ctx, "LADW")
		require.NoError(t, err)
		p.DailyCharge = decimal.NewFromInt(100)

		again, err := catalog.GetByCode(ctx, "LADW")
		require.NoError(t, err)
		assert.Equal(t, "1.99", again.DailyCharge.StringFixed(2))
	})
}

func TestCatalog_List(t *testing.T) {
	catalog, err := NewCatalog(DefaultPolicies())
	require.NoError(t, err)

	policies, err := catalog.List(context.Background())
	assert.NoError(t, err)
	require.Len(t, policies, 4)

	codes := make([]string, 0, len(policies))
	for _, p := range policies {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{"LADW", "CHNS", "JAKD", "JAKR"}, codes)
}

func TestNewCatalog(t *testing.T) {
	t.Run("Duplicate code", func(t *testing.T) {
		policies := append(DefaultPolicies(), domain.ToolRatePolicy{Code: "LADW"})
		_, err := NewCatalog(policies)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate tool code")
	})

	t.Run("Missing code", func(t *testing.T) {
		_, err := NewCatalog([]domain.ToolRatePolicy{{ToolType: "Ladder"}})
		assert.Error(t, err)
	})

	t.Run("Negative daily charge", func(t *testing.T) {
		_, err := NewCatalog([]domain.ToolRatePolicy{{Code: "X", DailyCharge: decimal.NewFromInt(-1)}})
		assert.Error(t, err)
	})

	t.Run("Empty catalog", func(t *testing.T) {
		catalog, err := NewCatalog(nil)
		require.NoError(t, err)
		policies, err := catalog.List(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, policies)
	})
}

func TestCatalog_ConcurrentReaders(t *testing.T) {
	catalog, err := NewCatalog(DefaultPolicies())
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = catalog.GetByCode(ctx, "JAKR")
				_, _ = catalog.List(ctx)
			}
		}()
	}
	wg.Wait()
}
