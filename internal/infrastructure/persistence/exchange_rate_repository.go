package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/slip"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExchangeRateRepository implements ExchangeRateRepository using GORM
type GormExchangeRateRepository struct {
	db *gorm.DB
}

// NewGormExchangeRateRepository creates a new GormExchangeRateRepository
func NewGormExchangeRateRepository(db *gorm.DB) *GormExchangeRateRepository {
	return &GormExchangeRateRepository{db: db}
}

// FindByDate finds the rate for one (date, pair, type), returning nil when
// missing
func (r *GormExchangeRateRepository) FindByDate(ctx context.Context, rateDate time.Time, from, to string, rateType slip.RateType) (*slip.ExchangeRate, error) {
	var rate slip.ExchangeRate
	if err := r.db.WithContext(ctx).
		First(&rate, "rate_date = ? AND currency_from = ? AND currency_to = ? AND rate_type = ?",
			dateOnly(rateDate), from, to, rateType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

// FindRecent returns the newest rates for a currency pair, newest date
// first
func (r *GormExchangeRateRepository) FindRecent(ctx context.Context, from, to string, limit int) ([]slip.ExchangeRate, error) {
	var rates []slip.ExchangeRate
	if err := r.db.WithContext(ctx).
		Where("currency_from = ? AND currency_to = ?", from, to).
		Order("rate_date DESC, rate_type ASC").
		Limit(limit).
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// Insert stores a new rate and rejects a duplicate (date, pair, type)
func (r *GormExchangeRateRepository) Insert(ctx context.Context, rate *slip.ExchangeRate) error {
	rate.RateDate = dateOnly(rate.RateDate)
	existing, err := r.FindByDate(ctx, rate.RateDate, rate.CurrencyFrom, rate.CurrencyTo, rate.RateType)
	if err != nil {
		return err
	}
	if existing != nil {
		return shared.ErrDuplicateRate
	}
	return r.db.WithContext(ctx).Create(rate).Error
}

// Upsert stores a rate, overwriting the value and source of an existing
// (date, pair, type) row. Used by remote sync and manual corrections.
func (r *GormExchangeRateRepository) Upsert(ctx context.Context, rate *slip.ExchangeRate) error {
	rate.RateDate = dateOnly(rate.RateDate)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "rate_date"}, {Name: "currency_from"},
			{Name: "currency_to"}, {Name: "rate_type"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "source", "updated_at"}),
	}).Create(rate).Error
}

// dateOnly strips the time-of-day so rate lookups compare on calendar date
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var _ slip.ExchangeRateRepository = (*GormExchangeRateRepository)(nil)
