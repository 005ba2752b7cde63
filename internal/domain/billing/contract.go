package billing

import (
	"strings"
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Corporation classifies the contracting entity
type Corporation string

const (
	CorporationDomestic      Corporation = "domestic"
	CorporationInternational Corporation = "international"
)

// DefaultSalesContractCode is used when a contract carries no explicit code.
// The purchase code is derived by swapping the sales prefix.
const (
	DefaultSalesContractCode    = "매출ALI999"
	DefaultPurchaseContractCode = "매입ALI999"

	salesContractPrefix    = "매출"
	purchaseContractPrefix = "매입"
)

// Contract is an HB contract owned by exactly one company. Contracts that
// start or end mid-month drive automatic pro-rata derivation.
type Contract struct {
	shared.BaseEntity
	Seq         int64       `gorm:"not null;uniqueIndex"` // HB contract seq
	CompanyID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	Name        string      `gorm:"type:varchar(200)"`
	Corporation Corporation `gorm:"type:varchar(50)"`

	DiscountRate      decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	SalesContractCode *string         `gorm:"type:varchar(30)"`
	SalesPerson       *string         `gorm:"type:varchar(50)"`

	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`
	Enabled   bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Contract) TableName() string {
	return "contracts"
}

// NewContract creates a new contract synced from HB master data
func NewContract(seq int64, companyID uuid.UUID, name string) (*Contract, error) {
	if seq <= 0 {
		return nil, shared.NewDomainError("INVALID_CONTRACT_SEQ", "Contract seq must be positive")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Contract must belong to a company")
	}
	return &Contract{
		BaseEntity:   shared.NewBaseEntity(),
		Seq:          seq,
		CompanyID:    companyID,
		Name:         name,
		Enabled:      true,
		DiscountRate: decimal.Zero,
	}, nil
}

// EffectiveSalesCode returns the sales contract code, falling back to the
// vendor default pattern
func (c *Contract) EffectiveSalesCode() string {
	if c.SalesContractCode != nil && *c.SalesContractCode != "" {
		return *c.SalesContractCode
	}
	return DefaultSalesContractCode
}

// EffectivePurchaseCode derives the purchase contract code from the sales
// code by swapping the prefix
func (c *Contract) EffectivePurchaseCode() string {
	return DerivePurchaseCode(c.EffectiveSalesCode())
}

// DerivePurchaseCode converts a sales contract code to its purchase
// counterpart. Codes without the sales prefix fall back to the default.
func DerivePurchaseCode(salesCode string) string {
	if strings.Contains(salesCode, salesContractPrefix) {
		return strings.Replace(salesCode, salesContractPrefix, purchaseContractPrefix, 1)
	}
	return DefaultPurchaseContractCode
}

// ActiveDaysIn returns the contract's active day range within the cycle
// month as (startDay, endDay). ok is false when the contract is entirely
// outside the cycle.
func (c *Contract) ActiveDaysIn(cycle Cycle) (startDay, endDay int, ok bool) {
	startDay = 1
	endDay = cycle.Days()

	if c.StartDate != nil {
		if c.StartDate.After(cycle.End()) {
			return 0, 0, false
		}
		if c.StartDate.After(cycle.Start()) {
			startDay = c.StartDate.Day()
		}
	}
	if c.EndDate != nil {
		if c.EndDate.Before(cycle.Start()) {
			return 0, 0, false
		}
		if c.EndDate.Before(cycle.End()) {
			endDay = c.EndDate.Day()
		}
	}
	return startDay, endDay, true
}
