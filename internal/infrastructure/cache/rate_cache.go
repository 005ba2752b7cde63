package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRateTTL = 12 * time.Hour

// RateCache decorates an ExchangeRateRepository with a redis lookup cache.
// Rate rows are immutable per (date, pair, type) except through Upsert, so
// cache entries only need invalidation on writes. Every redis failure
// degrades to the underlying repository; the cache can never make a lookup
// fail.
type RateCache struct {
	inner  slip.ExchangeRateRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRateCache creates a RateCache in front of the given repository
func NewRateCache(inner slip.ExchangeRateRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RateCache {
	if ttl <= 0 {
		ttl = defaultRateTTL
	}
	return &RateCache{inner: inner, client: client, ttl: ttl, logger: logger}
}

func rateKey(rateDate time.Time, from, to string, rateType slip.RateType) string {
	return fmt.Sprintf("rate:%s:%s:%s:%s", rateDate.Format("20060102"), from, to, rateType)
}

// FindByDate serves the rate from redis when cached, falling back to the
// repository and populating the cache on a hit. Misses are not cached so a
// later sync becomes visible immediately.
func (c *RateCache) FindByDate(ctx context.Context, rateDate time.Time, from, to string, rateType slip.RateType) (*slip.ExchangeRate, error) {
	key := rateKey(rateDate, from, to, rateType)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var rate slip.ExchangeRate
		if err := json.Unmarshal(raw, &rate); err == nil {
			return &rate, nil
		}
		// Corrupt entry; drop it and fall through to the repository.
		c.client.Del(ctx, key)
	} else if err != redis.Nil {
		c.logger.Warn("rate cache read failed, falling back to database",
			zap.String("key", key), zap.Error(err))
	}

	rate, err := c.inner.FindByDate(ctx, rateDate, from, to, rateType)
	if err != nil || rate == nil {
		return rate, err
	}

	if raw, err := json.Marshal(rate); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.logger.Warn("rate cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return rate, nil
}

// FindRecent always hits the repository; the listing is an admin view and
// not on the generation path.
func (c *RateCache) FindRecent(ctx context.Context, from, to string, limit int) ([]slip.ExchangeRate, error) {
	return c.inner.FindRecent(ctx, from, to, limit)
}

// Insert writes through and invalidates the key
func (c *RateCache) Insert(ctx context.Context, rate *slip.ExchangeRate) error {
	if err := c.inner.Insert(ctx, rate); err != nil {
		return err
	}
	c.invalidate(ctx, rate)
	return nil
}

// Upsert writes through and invalidates the key
func (c *RateCache) Upsert(ctx context.Context, rate *slip.ExchangeRate) error {
	if err := c.inner.Upsert(ctx, rate); err != nil {
		return err
	}
	c.invalidate(ctx, rate)
	return nil
}

func (c *RateCache) invalidate(ctx context.Context, rate *slip.ExchangeRate) {
	key := rateKey(rate.RateDate, rate.CurrencyFrom, rate.CurrencyTo, rate.RateType)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("rate cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

var _ slip.ExchangeRateRepository = (*RateCache)(nil)
