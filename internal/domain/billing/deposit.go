package billing

import (
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deposit is one prepaid charge on a billing profile. Deposits are consumed
// FIFO by deposit date; RemainingAmount is monotonically non-increasing.
type Deposit struct {
	shared.BaseEntity
	// Exactly one of the two profile references is set.
	CompanyProfileID  *uuid.UUID `gorm:"type:uuid;index"`
	ContractProfileID *uuid.UUID `gorm:"type:uuid;index"`

	DepositDate  time.Time        `gorm:"type:date;not null;index"`
	Amount       decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Currency     string           `gorm:"type:varchar(10);not null;default:'KRW'"`
	ExchangeRate *decimal.Decimal `gorm:"type:decimal(12,4)"` // rate locked at charge time for non-KRW deposits

	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IsExhausted     bool            `gorm:"not null;default:false"`

	Reference   *string `gorm:"type:varchar(100)"`
	Description *string `gorm:"type:text"`

	Usages []DepositUsage `gorm:"foreignKey:DepositID;references:ID"`
}

// TableName returns the table name for GORM
func (Deposit) TableName() string {
	return "deposits"
}

// NewDeposit creates a new deposit charge against a billing profile
func NewDeposit(companyProfileID, contractProfileID *uuid.UUID, depositDate time.Time, amount decimal.Decimal, currency string) (*Deposit, error) {
	if companyProfileID == nil && contractProfileID == nil {
		return nil, shared.NewDomainError("INVALID_PROFILE", "Deposit must reference a billing profile")
	}
	if companyProfileID != nil && contractProfileID != nil {
		return nil, shared.NewDomainError("INVALID_PROFILE", "Deposit cannot reference both profile levels")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Deposit amount must be positive")
	}
	if currency == "" {
		currency = "KRW"
	}
	return &Deposit{
		BaseEntity:        shared.NewBaseEntity(),
		CompanyProfileID:  companyProfileID,
		ContractProfileID: contractProfileID,
		DepositDate:       depositDate,
		Amount:            amount,
		Currency:          currency,
		RemainingAmount:   amount,
	}, nil
}

// Consume takes up to the requested amount from this deposit and returns
// how much was actually taken. The balance never goes below zero.
func (d *Deposit) Consume(requested decimal.Decimal) decimal.Decimal {
	if d.IsExhausted || requested.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	taken := decimal.Min(requested, d.RemainingAmount)
	d.RemainingAmount = d.RemainingAmount.Sub(taken)
	if d.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		d.RemainingAmount = decimal.Zero
		d.IsExhausted = true
	}
	return taken
}

// Adjust rewrites the charged amount, moving the remaining balance by the
// same delta. The balance is floored at zero.
func (d *Deposit) Adjust(newAmount decimal.Decimal) error {
	if newAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Deposit amount must be positive")
	}
	diff := newAmount.Sub(d.Amount)
	d.Amount = newAmount
	d.RemainingAmount = d.RemainingAmount.Add(diff)
	if d.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		d.RemainingAmount = decimal.Zero
		d.IsExhausted = true
	} else {
		d.IsExhausted = false
	}
	return nil
}

// KRWValue converts a consumed amount to KRW using the deposit's locked
// exchange rate. Returns nil for KRW deposits or deposits without a rate.
func (d *Deposit) KRWValue(consumed decimal.Decimal) *decimal.Decimal {
	if d.Currency == "KRW" || d.ExchangeRate == nil {
		return nil
	}
	krw := consumed.Mul(*d.ExchangeRate).Round(0)
	return &krw
}

// DepositUsage records one FIFO consumption event against a deposit
type DepositUsage struct {
	shared.BaseEntity
	DepositID uuid.UUID `gorm:"type:uuid;not null;index"`

	UsageDate time.Time        `gorm:"type:date;not null;index"`
	Amount    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	AmountKRW *decimal.Decimal `gorm:"type:decimal(18,4)"`

	BillingCycle *string `gorm:"type:varchar(10)"`
	SlipBatchID  *string `gorm:"type:varchar(50)"`
	UID          *string `gorm:"type:varchar(50)"`
	Description  *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DepositUsage) TableName() string {
	return "deposit_usages"
}
