package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingRateRepo tracks how often the underlying repository is hit
type countingRateRepo struct {
	rates map[string]*slip.ExchangeRate
	finds int
}

func repoKey(rateDate time.Time, from, to string, rateType slip.RateType) string {
	return rateDate.Format("20060102") + from + to + string(rateType)
}

func (r *countingRateRepo) FindByDate(ctx context.Context, rateDate time.Time, from, to string, rateType slip.RateType) (*slip.ExchangeRate, error) {
	r.finds++
	return r.rates[repoKey(rateDate, from, to, rateType)], nil
}

func (r *countingRateRepo) FindRecent(ctx context.Context, from, to string, limit int) ([]slip.ExchangeRate, error) {
	return nil, nil
}

func (r *countingRateRepo) Insert(ctx context.Context, rate *slip.ExchangeRate) error {
	r.rates[repoKey(rate.RateDate, rate.CurrencyFrom, rate.CurrencyTo, rate.RateType)] = rate
	return nil
}

func (r *countingRateRepo) Upsert(ctx context.Context, rate *slip.ExchangeRate) error {
	return r.Insert(ctx, rate)
}

func newCacheUnderTest(t *testing.T) (*RateCache, *countingRateRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := &countingRateRepo{rates: map[string]*slip.ExchangeRate{}}
	return NewRateCache(repo, client, time.Hour, zap.NewNop()), repo
}

func TestRateCache(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("second lookup is served from cache", func(t *testing.T) {
		cache, repo := newCacheUnderTest(t)
		rate, err := slip.NewExchangeRate(day, "USD", "KRW", slip.RateTypeBasic, decimal.NewFromFloat(1450.5), slip.RateSourceManual)
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, rate))

		first, err := cache.FindByDate(ctx, day, "USD", "KRW", slip.RateTypeBasic)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := cache.FindByDate(ctx, day, "USD", "KRW", slip.RateTypeBasic)
		require.NoError(t, err)
		require.NotNil(t, second)
		assert.True(t, second.Rate.Equal(first.Rate))
		assert.Equal(t, 1, repo.finds)
	})

	t.Run("misses are not cached", func(t *testing.T) {
		cache, repo := newCacheUnderTest(t)

		found, err := cache.FindByDate(ctx, day, "USD", "KRW", slip.RateTypeSend)
		require.NoError(t, err)
		assert.Nil(t, found)

		rate, err := slip.NewExchangeRate(day, "USD", "KRW", slip.RateTypeSend, decimal.NewFromInt(1460), slip.RateSourceHB)
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, rate))

		found, err = cache.FindByDate(ctx, day, "USD", "KRW", slip.RateTypeSend)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 2, repo.finds)
	})

	t.Run("upsert invalidates the cached entry", func(t *testing.T) {
		cache, _ := newCacheUnderTest(t)
		rate, err := slip.NewExchangeRate(day, "USD", "KRW", slip.RateTypeBasic, decimal.NewFromInt(1450), slip.RateSourceManual)
		require.NoError(t, err)
		require.NoError(t, cache.Insert(ctx, rate))

		first, err := cache.FindByDate(ctx, day, "USD", "KRW", slip.RateTypeBasic)
		require.NoError(t, err)
		require.NotNil(t, first)

		updated, err := slip.NewExchangeRate(day, "USD", "KRW", slip.RateTypeBasic, decimal.NewFromInt(1455), slip.RateSourceHB)
		require.NoError(t, err)
		require.NoError(t, cache.Upsert(ctx, updated))

		found, err := cache.FindByDate(ctx, day, "USD", "KRW", slip.RateTypeBasic)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.Rate.Equal(decimal.NewFromInt(1455)))
	})
}
