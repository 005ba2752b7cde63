package slip

import (
	"context"
	"time"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/slip"
	"go.uber.org/zap"
)

// RateSyncer pulls recent exchange rates from the remote rate source into
// the local rate table. Implemented by the HB sync client.
type RateSyncer interface {
	SyncRecent(ctx context.Context, days int) (int, error)
}

// RateResolver looks up the exchange rate for a slip line. On a miss it
// triggers one bounded remote sync and retries the lookup exactly once;
// a second miss is surfaced to the caller as a missing rate, never as a
// run-aborting failure.
type RateResolver struct {
	rateRepo slip.ExchangeRateRepository
	syncer   RateSyncer
	syncDays int
	logger   *zap.Logger

	syncedOnce bool
}

// NewRateResolver creates a new RateResolver. syncer may be nil when no
// remote source is configured; lookups then fail fast on a miss.
func NewRateResolver(rateRepo slip.ExchangeRateRepository, syncer RateSyncer, syncDays int, logger *zap.Logger) *RateResolver {
	if syncDays <= 0 {
		syncDays = 7
	}
	return &RateResolver{
		rateRepo: rateRepo,
		syncer:   syncer,
		syncDays: syncDays,
		logger:   logger,
	}
}

// RateDateFor resolves the lookup date from the vendor rule, the billing
// cycle and the slip document date.
func RateDateFor(rule slip.RateDateRule, cycle billing.Cycle, docDate time.Time) time.Time {
	switch rule {
	case slip.RateDateFirstOfDocMonth:
		return time.Date(docDate.Year(), docDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	case slip.RateDateFirstOfBilling:
		return cycle.Start()
	case slip.RateDateLastOfPrevMonth:
		return cycle.PrevMonthEnd()
	default:
		return docDate
	}
}

// RateDateForProfile applies a contract profile's exchange-rate date mode on
// top of the vendor rule. A custom-date profile pins the stored date; the
// other modes map onto the billing-month end or the document date.
func RateDateForProfile(profile *billing.ContractBillingProfile, rule slip.RateDateRule, cycle billing.Cycle, docDate time.Time) time.Time {
	if profile == nil || profile.ExchangeRateDateMode == nil {
		return RateDateFor(rule, cycle, docDate)
	}
	switch *profile.ExchangeRateDateMode {
	case billing.RateDateModeCustomDate:
		if profile.CustomExchangeRateDate != nil {
			return *profile.CustomExchangeRateDate
		}
	case billing.RateDateModeBillingDate:
		return cycle.End()
	case billing.RateDateModeDocumentDate:
		return docDate
	}
	return RateDateFor(rule, cycle, docDate)
}

// Resolve looks up the rate for a date, currency pair and rate type. A nil
// result with no error means the rate is missing even after the sync retry.
func (r *RateResolver) Resolve(ctx context.Context, rateDate time.Time, from, to string, rateType slip.RateType) (*slip.ResolvedRate, error) {
	found, err := r.rateRepo.FindByDate(ctx, rateDate, from, to, rateType)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return resolved(found), nil
	}

	if r.syncer == nil || r.syncedOnce {
		return nil, nil
	}
	r.syncedOnce = true

	count, err := r.syncer.SyncRecent(ctx, r.syncDays)
	if err != nil {
		r.logger.Warn("remote rate sync failed, continuing without rate",
			zap.Time("rate_date", rateDate),
			zap.String("rate_type", string(rateType)),
			zap.Error(err))
		return nil, nil
	}
	r.logger.Info("synced exchange rates after lookup miss",
		zap.Int("records", count),
		zap.Time("rate_date", rateDate))

	found, err = r.rateRepo.FindByDate(ctx, rateDate, from, to, rateType)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, nil
	}
	return resolved(found), nil
}

func resolved(rate *slip.ExchangeRate) *slip.ResolvedRate {
	return &slip.ResolvedRate{
		Rate:     rate.Rate,
		RateDate: rate.RateDate,
		RateType: rate.RateType,
		Source:   rate.Source,
	}
}
