package billing

import (
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BillingType distinguishes the two vendor billing categories with
// different raw-amount formulas
type BillingType string

const (
	BillingTypeEnduser  BillingType = "enduser"  // sales side
	BillingTypeReseller BillingType = "reseller" // purchase side
)

// IsValid reports whether the billing type is known
func (t BillingType) IsValid() bool {
	return t == BillingTypeEnduser || t == BillingTypeReseller
}

// BillingRecord is one raw vendor billing row. Rows are immutable once
// uploaded; the engine only reads them.
type BillingRecord struct {
	shared.BaseEntity
	BillingType  BillingType `gorm:"type:varchar(20);not null;index"`
	BillingCycle string      `gorm:"type:varchar(10);not null;index"`

	UID         string  `gorm:"type:varchar(50);not null;index"`
	UserName    *string `gorm:"type:varchar(100)"`
	LinkedUID   *string `gorm:"type:varchar(50);index"` // reseller rows: the billed end customer
	ProductCode *string `gorm:"type:varchar(100)"`
	ProductName *string `gorm:"type:varchar(200)"`
	Region      *string `gorm:"type:varchar(100)"`

	OriginalCost     decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	Discount         decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	SPNDeductedPrice decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	PretaxCost       decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	Currency         string          `gorm:"type:varchar(10);not null;default:'USD'"`
}

// TableName returns the table name for GORM
func (BillingRecord) TableName() string {
	return "billing_records"
}

// GroupUID returns the UID billing amounts are grouped by: reseller rows
// aggregate under the linked end-customer UID, enduser rows under their own.
func (r *BillingRecord) GroupUID() string {
	if r.BillingType == BillingTypeReseller && r.LinkedUID != nil && *r.LinkedUID != "" {
		return *r.LinkedUID
	}
	return r.UID
}

// RawAmount returns the vendor-formula base amount in billing currency:
// enduser uses the pretax cost, reseller deducts discount and SPN price
// from the original cost.
func (r *BillingRecord) RawAmount() decimal.Decimal {
	if r.BillingType == BillingTypeReseller {
		return r.OriginalCost.Sub(r.Discount).Sub(r.SPNDeductedPrice)
	}
	return r.PretaxCost
}
