package billing

import (
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentType drives the VAT tax code written to the export
type PaymentType string

const (
	PaymentTypeDeposit         PaymentType = "deposit"
	PaymentTypeTaxInvoice      PaymentType = "tax_invoice"
	PaymentTypeCard            PaymentType = "card"
	PaymentTypeReverseIssue    PaymentType = "reverse_issue"
	PaymentTypeOverseasInvoice PaymentType = "overseas_invoice"
)

// TaxCode returns the VAT code for the payment type
func (p PaymentType) TaxCode() string {
	switch p {
	case PaymentTypeCard:
		return "A3"
	case PaymentTypeOverseasInvoice:
		return "B1"
	default:
		return "A1"
	}
}

// ExchangeRateDateMode selects which date an overseas-invoice contract
// resolves its exchange rate for
type ExchangeRateDateMode string

const (
	RateDateModeBillingDate  ExchangeRateDateMode = "billing_date"  // last day of the billing month
	RateDateModeDocumentDate ExchangeRateDateMode = "document_date" // slip document date
	RateDateModeCustomDate   ExchangeRateDateMode = "custom_date"   // manually pinned date
)

// ProRataMode forces or suppresses automatic pro-rata derivation for a
// contract; empty defers to the vendor default.
type ProRataMode string

const (
	ProRataEnabled  ProRataMode = "enabled"
	ProRataDisabled ProRataMode = "disabled"
)

// AccountOverrides are the GL/counterpart account fields a profile may pin.
// Nil fields fall back to the next layer (BP master, then vendor config).
type AccountOverrides struct {
	HkontSales    *string `gorm:"type:varchar(20)"`
	HkontPurchase *string `gorm:"type:varchar(20)"`
	ARAccount     *string `gorm:"type:varchar(20)"`
	APAccount     *string `gorm:"type:varchar(20)"`
}

// CompanyBillingProfile holds company+vendor billing settings
type CompanyBillingProfile struct {
	shared.BaseEntity
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_company_vendor,priority:1"`
	Vendor    string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_company_vendor,priority:2"`

	PaymentType          PaymentType `gorm:"type:varchar(20);not null;default:'tax_invoice'"`
	HasSalesAgreement    bool        `gorm:"not null;default:false"`
	HasPurchaseAgreement bool        `gorm:"not null;default:false"`
	Currency             string      `gorm:"type:varchar(10);not null;default:'KRW'"`
	AccountOverrides     `gorm:"embedded"`
	Note                 *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CompanyBillingProfile) TableName() string {
	return "company_billing_profiles"
}

// ContractBillingProfile holds contract+vendor billing settings. When
// present it fully shadows the company-level profile for that contract.
type ContractBillingProfile struct {
	shared.BaseEntity
	ContractID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_contract_vendor,priority:1"`
	Vendor     string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_contract_vendor,priority:2"`

	PaymentType          PaymentType `gorm:"type:varchar(20);not null;default:'tax_invoice'"`
	HasSalesAgreement    bool        `gorm:"not null;default:false"`
	HasPurchaseAgreement bool        `gorm:"not null;default:false"`
	Currency             string      `gorm:"type:varchar(10);not null;default:'KRW'"`

	ExchangeRateDateMode   *ExchangeRateDateMode `gorm:"type:varchar(20)"`
	CustomExchangeRateDate *time.Time            `gorm:"type:date"`

	AccountOverrides     `gorm:"embedded"`
	RoundingRuleOverride *string     `gorm:"type:varchar(20)"`
	ProRataOverride      ProRataMode `gorm:"type:varchar(20)"`
	Note                 *string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContractBillingProfile) TableName() string {
	return "contract_billing_profiles"
}

// NewContractBillingProfile creates a contract-level billing profile
func NewContractBillingProfile(contractID uuid.UUID, vendor string) (*ContractBillingProfile, error) {
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Profile contract cannot be empty")
	}
	if vendor == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Profile vendor cannot be empty")
	}
	return &ContractBillingProfile{
		BaseEntity:  shared.NewBaseEntity(),
		ContractID:  contractID,
		Vendor:      vendor,
		PaymentType: PaymentTypeTaxInvoice,
		Currency:    "KRW",
	}, nil
}

// NewCompanyBillingProfile creates a company-level billing profile
func NewCompanyBillingProfile(companyID uuid.UUID, vendor string) (*CompanyBillingProfile, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Profile company cannot be empty")
	}
	if vendor == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Profile vendor cannot be empty")
	}
	return &CompanyBillingProfile{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		Vendor:      vendor,
		PaymentType: PaymentTypeTaxInvoice,
		Currency:    "KRW",
	}, nil
}
