package slip

import (
	"context"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// ProRataResult is the resolved day-count scaling for one contract line
type ProRataResult struct {
	Ratio      decimal.Decimal
	ActiveDays int
	TotalDays  int
	IsManual   bool
	// OutOfRange flags a stored ratio outside [0,1] before clamping. The
	// clamped ratio is still applied; the caller reports the contract.
	OutOfRange bool
}

// ProRataCalculator resolves the billing ratio for a contract and cycle.
// A manually pinned period wins; otherwise the ratio is derived from the
// contract's start and end dates intersected with the cycle month.
type ProRataCalculator struct {
	proRataRepo billing.ProRataRepository
}

// NewProRataCalculator creates a new ProRataCalculator
func NewProRataCalculator(proRataRepo billing.ProRataRepository) *ProRataCalculator {
	return &ProRataCalculator{proRataRepo: proRataRepo}
}

// RatioFor resolves the pro-rata ratio for a contract in a cycle. The
// contract profile may force derivation on or off; an empty override defers
// to the vendor default.
func (c *ProRataCalculator) RatioFor(
	ctx context.Context,
	contract *billing.Contract,
	profile *billing.ContractBillingProfile,
	cycle billing.Cycle,
	vendorDefault bool,
) (ProRataResult, error) {
	full := ProRataResult{Ratio: decimal.NewFromInt(1), ActiveDays: cycle.Days(), TotalDays: cycle.Days()}

	enabled := vendorDefault
	if profile != nil {
		switch profile.ProRataOverride {
		case billing.ProRataEnabled:
			enabled = true
		case billing.ProRataDisabled:
			enabled = false
		}
	}

	manual, err := c.proRataRepo.FindByContractAndCycle(ctx, contract.ID, cycle)
	if err != nil {
		return full, err
	}
	if manual != nil {
		return clampResult(ProRataResult{
			Ratio:      manual.Ratio,
			ActiveDays: manual.ActiveDays,
			TotalDays:  manual.TotalDays,
			IsManual:   true,
		}), nil
	}

	if !enabled {
		return full, nil
	}

	startDay, endDay, ok := contract.ActiveDaysIn(cycle)
	if !ok {
		return clampResult(ProRataResult{Ratio: decimal.Zero, TotalDays: cycle.Days()}), nil
	}
	if startDay == 1 && endDay == cycle.Days() {
		return full, nil
	}

	totalDays, activeDays, ratio := billing.ProRataRatio(cycle, startDay, endDay)
	return clampResult(ProRataResult{
		Ratio:      ratio,
		ActiveDays: activeDays,
		TotalDays:  totalDays,
	}), nil
}

func clampResult(r ProRataResult) ProRataResult {
	one := decimal.NewFromInt(1)
	if r.Ratio.IsNegative() {
		r.OutOfRange = true
		r.Ratio = decimal.Zero
	} else if r.Ratio.GreaterThan(one) {
		r.OutOfRange = true
		r.Ratio = one
	}
	return r
}
