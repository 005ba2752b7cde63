package slip

import (
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RateType distinguishes the quoted rate kinds published per day
type RateType string

const (
	RateTypeBasic RateType = "basic_rate"
	RateTypeSend  RateType = "send_rate"
	RateTypeBuy   RateType = "buy_rate"
	RateTypeSell  RateType = "sell_rate"
)

// IsValid reports whether the rate type is known
func (t RateType) IsValid() bool {
	switch t {
	case RateTypeBasic, RateTypeSend, RateTypeBuy, RateTypeSell:
		return true
	}
	return false
}

// Rate sources
const (
	RateSourceManual = "manual"
	RateSourceHB     = "hb"
)

// ExchangeRate is one quoted rate. At most one row exists per
// (rate_date, currency pair, rate_type).
type ExchangeRate struct {
	shared.BaseEntity
	RateDate     time.Time       `gorm:"type:date;not null;uniqueIndex:uq_rate_date_pair_type,priority:1"`
	CurrencyFrom string          `gorm:"type:varchar(10);not null;default:'USD';uniqueIndex:uq_rate_date_pair_type,priority:2"`
	CurrencyTo   string          `gorm:"type:varchar(10);not null;default:'KRW';uniqueIndex:uq_rate_date_pair_type,priority:3"`
	RateType     RateType        `gorm:"type:varchar(20);not null;default:'basic_rate';uniqueIndex:uq_rate_date_pair_type,priority:4"`
	Rate         decimal.Decimal `gorm:"type:decimal(12,4);not null"`
	Source       string          `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ExchangeRate) TableName() string {
	return "exchange_rates"
}

// NewExchangeRate creates a rate row
func NewExchangeRate(rateDate time.Time, from, to string, rateType RateType, rate decimal.Decimal, source string) (*ExchangeRate, error) {
	if rateDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_RATE_DATE", "Rate date is required")
	}
	if from == "" || to == "" || from == to {
		return nil, shared.NewDomainError("INVALID_CURRENCY_PAIR", "Currency pair must name two distinct currencies")
	}
	if !rateType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RATE_TYPE", "Rate type is not valid")
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate must be positive")
	}
	return &ExchangeRate{
		BaseEntity:   shared.NewBaseEntity(),
		RateDate:     rateDate,
		CurrencyFrom: from,
		CurrencyTo:   to,
		RateType:     rateType,
		Rate:         rate,
		Source:       source,
	}, nil
}

// ResolvedRate is the outcome of a successful rate lookup, carrying the
// inputs that selected it for audit reproducibility.
type ResolvedRate struct {
	Rate     decimal.Decimal
	RateDate time.Time
	RateType RateType
	Source   string
}
