package slip

import (
	"context"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/google/uuid"
)

// ChargeInjector selects the additional charges to append to a generation
// batch. One-time charges are exhausted by any slip line referencing them
// in an earlier batch.
type ChargeInjector struct {
	chargeRepo billing.AdditionalChargeRepository
	slipRepo   slip.SlipRecordRepository
}

// NewChargeInjector creates a new ChargeInjector
func NewChargeInjector(chargeRepo billing.AdditionalChargeRepository, slipRepo slip.SlipRecordRepository) *ChargeInjector {
	return &ChargeInjector{chargeRepo: chargeRepo, slipRepo: slipRepo}
}

// ApplicableCharges returns the charges to inject for the contracts that
// produced billing lines in this batch, in repository order.
func (i *ChargeInjector) ApplicableCharges(
	ctx context.Context,
	cycle billing.Cycle,
	slipType slip.SlipType,
	batchID string,
	contractIDs []uuid.UUID,
) ([]billing.AdditionalCharge, error) {
	if len(contractIDs) == 0 {
		return nil, nil
	}
	charges, err := i.chargeRepo.FindActiveByContracts(ctx, contractIDs)
	if err != nil {
		return nil, err
	}

	applicable := make([]billing.AdditionalCharge, 0, len(charges))
	for _, charge := range charges {
		if !charge.AppliesTo(slipType == slip.SlipTypeSales) {
			continue
		}
		hasPrior := false
		if charge.RecurrenceType == billing.RecurrenceOneTime {
			hasPrior, err = i.slipRepo.HasChargeApplication(ctx, charge.ID, batchID)
			if err != nil {
				return nil, err
			}
		}
		if !charge.AppliesInCycle(cycle, hasPrior) {
			continue
		}
		applicable = append(applicable, charge)
	}
	return applicable, nil
}
