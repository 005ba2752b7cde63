package partner

import (
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/shared/valueobject"
)

// Company represents a customer corporation synced from the HB system.
// BPNumber stays nil until the company is manually mapped to an ERP business
// partner; slip batches referencing it cannot be confirmed until then.
type Company struct {
	shared.BaseEntity
	Seq             int64   `gorm:"not null;uniqueIndex"` // HB company seq
	Name            string  `gorm:"type:varchar(200);not null"`
	BPNumber        *string `gorm:"type:varchar(20);index"`
	IsOverseas      bool    `gorm:"not null;default:false"`
	IsInternalCost  bool    `gorm:"not null;default:false"`
	DefaultCurrency string  `gorm:"type:varchar(10);not null;default:'KRW'"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new company synced from HB master data
func NewCompany(seq int64, name string) (*Company, error) {
	if seq <= 0 {
		return nil, shared.NewDomainError("INVALID_COMPANY_SEQ", "Company seq must be positive")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	return &Company{
		BaseEntity:      shared.NewBaseEntity(),
		Seq:             seq,
		Name:            name,
		DefaultCurrency: string(valueobject.KRW),
	}, nil
}

// HasBP reports whether a business partner number has been mapped
func (c *Company) HasBP() bool {
	return c.BPNumber != nil && *c.BPNumber != ""
}

// AssignBP maps the company to an ERP business partner number
func (c *Company) AssignBP(bpNumber string) error {
	if bpNumber == "" {
		return shared.NewDomainError("INVALID_BP_NUMBER", "BP number cannot be empty")
	}
	c.BPNumber = &bpNumber
	return nil
}

// SlipCurrency returns the currency slips for this company are issued in.
// Overseas companies keep their own default currency instead of KRW.
func (c *Company) SlipCurrency() valueobject.Currency {
	if c.IsOverseas && c.DefaultCurrency != "" {
		return valueobject.Currency(c.DefaultCurrency)
	}
	return valueobject.KRW
}
