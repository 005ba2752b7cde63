package slip

import (
	"strings"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/shared/valueobject"
)

// RateDateRule selects which date a rate is looked up for
type RateDateRule string

const (
	RateDateDocumentDate    RateDateRule = "document_date"
	RateDateFirstOfDocMonth RateDateRule = "first_of_document_month"
	RateDateFirstOfBilling  RateDateRule = "first_of_billing_month"
	RateDateLastOfPrevMonth RateDateRule = "last_of_prev_month"
)

// IsValid reports whether the rule is known
func (r RateDateRule) IsValid() bool {
	switch r {
	case RateDateDocumentDate, RateDateFirstOfDocMonth, RateDateFirstOfBilling, RateDateLastOfPrevMonth:
		return true
	}
	return false
}

// RoundingRule is the local-amount rounding policy
type RoundingRule string

const (
	RoundingFloor   RoundingRule = "floor"
	RoundingHalfUp  RoundingRule = "round_half_up"
	RoundingCeiling RoundingRule = "ceiling"
)

// IsValid reports whether the rounding rule is known
func (r RoundingRule) IsValid() bool {
	switch r {
	case RoundingFloor, RoundingHalfUp, RoundingCeiling:
		return true
	}
	return false
}

// VendorConfig holds the per-vendor fixed slip fields and resolution rules.
// It is loaded once per generation call and passed explicitly into every
// resolver; there is no process-wide config singleton.
type VendorConfig struct {
	shared.BaseEntity
	Vendor  string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Version int    `gorm:"not null;default:1"`

	Bukrs            string `gorm:"type:varchar(10);not null;default:'1100'"`
	Prctr            string `gorm:"type:varchar(20);not null;default:'10000003'"`
	HkontSales       string `gorm:"type:varchar(20);not null;default:'41021010'"`
	HkontSalesExport string `gorm:"type:varchar(20);not null;default:'41021020'"`
	HkontPurchase    string `gorm:"type:varchar(20);not null;default:'42021010'"`
	ARAccountDefault string `gorm:"type:varchar(20);not null;default:'11060110'"`
	APAccountDefault string `gorm:"type:varchar(20);not null;default:'21120110'"`
	Zzref2           string `gorm:"type:varchar(50);not null;default:'IBABA001'"`
	SgtxtTemplate    string `gorm:"type:varchar(200);not null;default:'Alibaba_Cloud_{MM}월_{TYPE}'"`

	RateDateSales    RateDateRule `gorm:"type:varchar(30);not null;default:'document_date'"`
	RateDatePurchase RateDateRule `gorm:"type:varchar(30);not null;default:'document_date'"`
	RateDateOverseas RateDateRule `gorm:"type:varchar(30);not null;default:'last_of_prev_month'"`

	RateTypeSales    RateType `gorm:"type:varchar(20);not null;default:'send_rate'"`
	RateTypePurchase RateType `gorm:"type:varchar(20);not null;default:'basic_rate'"`
	RateTypeOverseas RateType `gorm:"type:varchar(20);not null;default:'basic_rate'"`

	RoundingRule   RoundingRule `gorm:"type:varchar(20);not null;default:'floor'"`
	ProRataEnabled bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (VendorConfig) TableName() string {
	return "vendor_configs"
}

// DefaultAlibabaConfig returns the Alibaba constants every deployment
// starts from
func DefaultAlibabaConfig() *VendorConfig {
	return &VendorConfig{
		BaseEntity:       shared.NewBaseEntity(),
		Vendor:           "alibaba",
		Version:          1,
		Bukrs:            "1100",
		Prctr:            "10000003",
		HkontSales:       "41021010",
		HkontSalesExport: "41021020",
		HkontPurchase:    "42021010",
		ARAccountDefault: "11060110",
		APAccountDefault: "21120110",
		Zzref2:           "IBABA001",
		SgtxtTemplate:    "Alibaba_Cloud_{MM}월_{TYPE}",
		RateDateSales:    RateDateDocumentDate,
		RateDatePurchase: RateDateDocumentDate,
		RateDateOverseas: RateDateLastOfPrevMonth,
		RateTypeSales:    RateTypeSend,
		RateTypePurchase: RateTypeBasic,
		RateTypeOverseas: RateTypeBasic,
		RoundingRule:     RoundingFloor,
		ProRataEnabled:   true,
	}
}

// Validate checks the fixed fields a generation run cannot proceed without
func (c *VendorConfig) Validate() error {
	if c.Vendor == "" || c.Bukrs == "" || c.Prctr == "" ||
		c.HkontSales == "" || c.HkontPurchase == "" ||
		c.ARAccountDefault == "" || c.APAccountDefault == "" {
		return shared.ErrMissingVendorConfig
	}
	if !c.RoundingRule.IsValid() {
		return shared.ErrMissingVendorConfig
	}
	return nil
}

// Sgtxt renders the line-text template for a cycle month and slip side
func (c *VendorConfig) Sgtxt(monthLabel string, slipType SlipType) string {
	typeText := "매출"
	if slipType == SlipTypePurchase {
		typeText = "매입"
	}
	out := strings.ReplaceAll(c.SgtxtTemplate, "{MM}", monthLabel)
	return strings.ReplaceAll(out, "{TYPE}", typeText)
}

// RateDateRuleFor returns the rate-date rule for a slip side; overseas
// lines use the overseas rule regardless of side.
func (c *VendorConfig) RateDateRuleFor(slipType SlipType, isOverseas bool) RateDateRule {
	if isOverseas {
		return c.RateDateOverseas
	}
	if slipType == SlipTypePurchase {
		return c.RateDatePurchase
	}
	return c.RateDateSales
}

// RateTypeFor returns the rate type for a slip side
func (c *VendorConfig) RateTypeFor(slipType SlipType, isOverseas bool) RateType {
	if isOverseas {
		return c.RateTypeOverseas
	}
	if slipType == SlipTypePurchase {
		return c.RateTypePurchase
	}
	return c.RateTypeSales
}

// AccountSet is the GL/counterpart account pair written to a slip line
type AccountSet struct {
	Hkont          string
	CounterAccount string
}

// CurrencyProfile is the per-company currency decision resolved once before
// amounts are computed: overseas companies bill in their own currency with
// the export account set and skip KRW conversion.
type CurrencyProfile struct {
	Currency     valueobject.Currency
	IsOverseas   bool
	ConvertToKRW bool
	Accounts     AccountSet
	RateDateRule RateDateRule
	RateType     RateType
}

// CurrencyProfileFor resolves the currency profile for a company flag and
// slip side from the vendor config defaults.
func (c *VendorConfig) CurrencyProfileFor(slipType SlipType, isOverseas bool, companyCurrency valueobject.Currency) CurrencyProfile {
	p := CurrencyProfile{
		Currency:     valueobject.KRW,
		IsOverseas:   isOverseas,
		ConvertToKRW: true,
		RateDateRule: c.RateDateRuleFor(slipType, isOverseas),
		RateType:     c.RateTypeFor(slipType, isOverseas),
	}
	if slipType == SlipTypePurchase {
		p.Accounts = AccountSet{Hkont: c.HkontPurchase, CounterAccount: c.APAccountDefault}
	} else {
		p.Accounts = AccountSet{Hkont: c.HkontSales, CounterAccount: c.ARAccountDefault}
	}
	if isOverseas {
		p.Currency = companyCurrency
		if p.Currency == "" {
			p.Currency = valueobject.USD
		}
		p.ConvertToKRW = false
		if slipType == SlipTypeSales {
			p.Accounts.Hkont = c.HkontSalesExport
		}
	}
	return p
}
