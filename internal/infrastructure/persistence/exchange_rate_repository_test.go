package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateRepository(t *testing.T) {
	db := newTestDB(t, &slip.ExchangeRate{})
	repo := NewGormExchangeRateRepository(db)
	ctx := context.Background()

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	mustRate := func(rateType slip.RateType, value float64) *slip.ExchangeRate {
		rate, err := slip.NewExchangeRate(day, "USD", "KRW", rateType, decimal.NewFromFloat(value), slip.RateSourceManual)
		require.NoError(t, err)
		return rate
	}

	t.Run("insert and find by date", func(t *testing.T) {
		require.NoError(t, repo.Insert(ctx, mustRate(slip.RateTypeBasic, 1450.5)))

		found, err := repo.FindByDate(ctx, day, "USD", "KRW", slip.RateTypeBasic)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.Rate.Equal(decimal.NewFromFloat(1450.5)))
	})

	t.Run("lookup ignores time of day", func(t *testing.T) {
		noon := day.Add(12 * time.Hour)
		found, err := repo.FindByDate(ctx, noon, "USD", "KRW", slip.RateTypeBasic)
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("duplicate insert is rejected", func(t *testing.T) {
		err := repo.Insert(ctx, mustRate(slip.RateTypeBasic, 1451))
		assert.ErrorIs(t, err, shared.ErrDuplicateRate)
	})

	t.Run("same date different type coexists", func(t *testing.T) {
		require.NoError(t, repo.Insert(ctx, mustRate(slip.RateTypeSend, 1460)))

		found, err := repo.FindByDate(ctx, day, "USD", "KRW", slip.RateTypeSend)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.Rate.Equal(decimal.NewFromInt(1460)))
	})

	t.Run("upsert overwrites rate and source", func(t *testing.T) {
		update := mustRate(slip.RateTypeBasic, 1455)
		update.Source = slip.RateSourceHB
		require.NoError(t, repo.Upsert(ctx, update))

		found, err := repo.FindByDate(ctx, day, "USD", "KRW", slip.RateTypeBasic)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.Rate.Equal(decimal.NewFromInt(1455)))
		assert.Equal(t, slip.RateSourceHB, found.Source)
	})

	t.Run("recent rates come newest first", func(t *testing.T) {
		older, err := slip.NewExchangeRate(day.AddDate(0, 0, -1), "USD", "KRW", slip.RateTypeBasic, decimal.NewFromInt(1440), slip.RateSourceManual)
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, older))

		rates, err := repo.FindRecent(ctx, "USD", "KRW", 10)
		require.NoError(t, err)
		require.NotEmpty(t, rates)
		assert.Equal(t, day, rates[0].RateDate)
	})

	t.Run("missing rate yields nil", func(t *testing.T) {
		found, err := repo.FindByDate(ctx, day.AddDate(0, 1, 0), "USD", "KRW", slip.RateTypeBasic)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}
