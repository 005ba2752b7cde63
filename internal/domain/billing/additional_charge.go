package billing

import (
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChargeType classifies an additional charge. Credits carry negative
// amounts and deduct from the slip total.
type ChargeType string

const (
	ChargeTypeCredit     ChargeType = "credit"
	ChargeTypeSupportFee ChargeType = "support_fee"
	ChargeTypeSetupFee   ChargeType = "setup_fee"
	ChargeTypeOther      ChargeType = "other"
)

// RecurrenceType controls which billing cycles a charge applies to
type RecurrenceType string

const (
	RecurrenceRecurring RecurrenceType = "recurring" // every cycle in range
	RecurrenceOneTime   RecurrenceType = "one_time"  // first applied cycle only
	RecurrencePeriod    RecurrenceType = "period"    // cycles within [start, end]
)

// AdditionalCharge is a manual charge attached to a contract, injected as
// an extra slip line during generation.
type AdditionalCharge struct {
	shared.BaseEntity
	ContractID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name        string  `gorm:"type:varchar(200);not null"`
	Description *string `gorm:"type:text"`

	ChargeType ChargeType      `gorm:"type:varchar(20);not null;default:'other'"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency   string          `gorm:"type:varchar(10);not null;default:'USD'"`

	RecurrenceType RecurrenceType `gorm:"type:varchar(20);not null;default:'one_time'"`
	StartDate      *time.Time     `gorm:"type:date"`
	EndDate        *time.Time     `gorm:"type:date"`

	AppliesToSales    bool `gorm:"not null;default:true"`
	AppliesToPurchase bool `gorm:"not null;default:false"`
	IsActive          bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AdditionalCharge) TableName() string {
	return "additional_charges"
}

// NewAdditionalCharge creates a charge attached to a contract
func NewAdditionalCharge(contractID uuid.UUID, name string, chargeType ChargeType, amount decimal.Decimal, currency string) (*AdditionalCharge, error) {
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Charge contract cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CHARGE_NAME", "Charge name cannot be empty")
	}
	if amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Charge amount cannot be zero")
	}
	if chargeType != ChargeTypeCredit && amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Only credit charges may carry a negative amount")
	}
	if currency == "" {
		currency = "USD"
	}
	return &AdditionalCharge{
		BaseEntity:     shared.NewBaseEntity(),
		ContractID:     contractID,
		Name:           name,
		ChargeType:     chargeType,
		Amount:         amount,
		Currency:       currency,
		RecurrenceType: RecurrenceOneTime,
		AppliesToSales: true,
		IsActive:       true,
	}, nil
}

// AppliesTo reports whether the charge targets the given slip side
func (c *AdditionalCharge) AppliesTo(sales bool) bool {
	if sales {
		return c.AppliesToSales
	}
	return c.AppliesToPurchase
}

// AppliesInCycle reports whether the charge should be injected into the
// given cycle. hasPriorApplication is true when a slip line for this charge
// exists in any earlier batch, which exhausts one_time charges.
func (c *AdditionalCharge) AppliesInCycle(cycle Cycle, hasPriorApplication bool) bool {
	if !c.IsActive {
		return false
	}
	switch c.RecurrenceType {
	case RecurrenceRecurring:
		return c.inRange(cycle)
	case RecurrenceOneTime:
		return !hasPriorApplication
	case RecurrencePeriod:
		return c.inRange(cycle)
	default:
		return false
	}
}

func (c *AdditionalCharge) inRange(cycle Cycle) bool {
	if c.StartDate != nil && c.StartDate.After(cycle.End()) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(cycle.Start()) {
		return false
	}
	return true
}
