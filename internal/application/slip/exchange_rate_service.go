package slip

import (
	"context"
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ExchangeRateService manages the local rate table: manual entry, listing
// and remote synchronization.
type ExchangeRateService struct {
	rateRepo slip.ExchangeRateRepository
	syncer   RateSyncer
	logger   *zap.Logger
}

// NewExchangeRateService creates a new ExchangeRateService
func NewExchangeRateService(rateRepo slip.ExchangeRateRepository, syncer RateSyncer, logger *zap.Logger) *ExchangeRateService {
	return &ExchangeRateService{rateRepo: rateRepo, syncer: syncer, logger: logger}
}

// CreateRateRequest enters one rate manually
type CreateRateRequest struct {
	RateDate     time.Time       `json:"rate_date" binding:"required"`
	CurrencyFrom string          `json:"currency_from"`
	CurrencyTo   string          `json:"currency_to"`
	RateType     string          `json:"rate_type"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	// Overwrite updates an existing row for the same key instead of
	// rejecting the entry.
	Overwrite bool `json:"overwrite"`
}

// CreateRate enters a manual rate. A duplicate (date, pair, type) is
// rejected unless the caller asked to overwrite.
func (s *ExchangeRateService) CreateRate(ctx context.Context, req CreateRateRequest) (*slip.ExchangeRate, error) {
	from := req.CurrencyFrom
	if from == "" {
		from = "USD"
	}
	to := req.CurrencyTo
	if to == "" {
		to = "KRW"
	}
	rateType := slip.RateType(req.RateType)
	if req.RateType == "" {
		rateType = slip.RateTypeBasic
	}

	rate, err := slip.NewExchangeRate(req.RateDate, from, to, rateType, req.Rate, slip.RateSourceManual)
	if err != nil {
		return nil, err
	}

	if req.Overwrite {
		if err := s.rateRepo.Upsert(ctx, rate); err != nil {
			return nil, err
		}
		return rate, nil
	}

	existing, err := s.rateRepo.FindByDate(ctx, rate.RateDate, from, to, rateType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrDuplicateRate
	}
	if err := s.rateRepo.Insert(ctx, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// ListRecent returns the most recent rates for a currency pair
func (s *ExchangeRateService) ListRecent(ctx context.Context, from, to string, limit int) ([]slip.ExchangeRate, error) {
	if from == "" {
		from = "USD"
	}
	if to == "" {
		to = "KRW"
	}
	if limit <= 0 || limit > 500 {
		limit = 60
	}
	return s.rateRepo.FindRecent(ctx, from, to, limit)
}

// SyncResult reports one remote synchronization run
type SyncResult struct {
	Synced int `json:"synced"`
	Days   int `json:"days"`
}

// Sync pulls the recent rate history from the remote source into the local
// table.
func (s *ExchangeRateService) Sync(ctx context.Context, days int) (*SyncResult, error) {
	if s.syncer == nil {
		return nil, shared.NewDomainError("SYNC_UNAVAILABLE", "No remote rate source is configured")
	}
	if days <= 0 || days > 90 {
		days = 7
	}
	count, err := s.syncer.SyncRecent(ctx, days)
	if err != nil {
		return nil, err
	}
	s.logger.Info("exchange rates synced", zap.Int("records", count), zap.Int("days", days))
	return &SyncResult{Synced: count, Days: days}, nil
}
