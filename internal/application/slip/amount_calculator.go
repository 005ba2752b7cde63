package slip

import (
	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/shared/valueobject"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/shopspring/decimal"
)

// AmountCalculator converts raw billing-currency amounts into slip-currency
// amounts under the vendor rounding policy. Amounts move through it as Money
// so a billing-currency value can never be written where a local-currency
// value belongs.
type AmountCalculator struct{}

// NewAmountCalculator creates a new AmountCalculator
func NewAmountCalculator() *AmountCalculator {
	return &AmountCalculator{}
}

// ApplyRounding rounds a local-currency amount to whole units under the
// given rule. Sales amounts always floor; the rule only varies purchases.
func ApplyRounding(amount valueobject.Money, rule slip.RoundingRule) valueobject.Money {
	switch rule {
	case slip.RoundingHalfUp:
		return amount.Round(0)
	case slip.RoundingCeiling:
		return amount.Ceil()
	default:
		return amount.Floor()
	}
}

// LocalAmount converts a raw amount through an exchange rate and rounds to
// whole local-currency units. Sales lines floor regardless of the configured
// rule; purchase lines follow it.
func (c *AmountCalculator) LocalAmount(raw valueobject.Money, rate decimal.Decimal, slipType slip.SlipType, rule slip.RoundingRule) valueobject.Money {
	converted := raw.Convert(rate, valueobject.DefaultCurrency)
	if slipType == slip.SlipTypeSales {
		return converted.Floor()
	}
	return ApplyRounding(converted, rule)
}

// ForeignAmount keeps an overseas line in its billing currency, truncated
// to cents. No exchange conversion is applied.
func (c *AmountCalculator) ForeignAmount(raw valueobject.Money) valueobject.Money {
	return raw.Truncate(2)
}

// ScaleProRata applies a day-count ratio to a raw amount before conversion
func (c *AmountCalculator) ScaleProRata(raw valueobject.Money, ratio decimal.Decimal) valueobject.Money {
	if ratio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return raw
	}
	return raw.Multiply(ratio)
}

// RoundingRuleFor resolves the effective rounding rule for a line: a
// contract-profile override wins over the vendor default.
func RoundingRuleFor(cfg *slip.VendorConfig, profile *billing.ContractBillingProfile) slip.RoundingRule {
	if profile != nil && profile.RoundingRuleOverride != nil {
		rule := slip.RoundingRule(*profile.RoundingRuleOverride)
		if rule.IsValid() {
			return rule
		}
	}
	return cfg.RoundingRule
}
