package slip

import (
	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitShare is one target's portion of a split source amount
type SplitShare struct {
	AllocationID    uuid.UUID
	TargetCompanyID uuid.UUID
	SplitType       billing.SplitType
	Amount          decimal.Decimal
}

// AllocateSplit distributes a source amount across a rule's allocations in
// priority order. Percentage shares are computed on the original source
// amount and rounded half-up to cents; fixed shares are capped at what
// remains. Whatever is left after the last allocation is folded into it so
// the shares always sum to the source amount exactly. Shares never go
// negative.
func AllocateSplit(source decimal.Decimal, rule *billing.SplitBillingRule) []SplitShare {
	ordered := rule.OrderedAllocations()
	shares := make([]SplitShare, 0, len(ordered))
	remaining := source
	hundred := decimal.NewFromInt(100)

	for _, a := range ordered {
		var amount decimal.Decimal
		switch a.SplitType {
		case billing.SplitTypeFixedAmount:
			amount = decimal.Min(a.SplitValue, remaining)
		default:
			amount = source.Mul(a.SplitValue).Div(hundred).Round(2)
			amount = decimal.Min(amount, remaining)
		}
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		remaining = remaining.Sub(amount)
		shares = append(shares, SplitShare{
			AllocationID:    a.ID,
			TargetCompanyID: a.TargetCompanyID,
			SplitType:       a.SplitType,
			Amount:          amount,
		})
	}

	if len(shares) > 0 && remaining.IsPositive() {
		last := &shares[len(shares)-1]
		last.Amount = last.Amount.Add(remaining)
	}
	return shares
}
