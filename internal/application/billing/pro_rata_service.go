package billing

import (
	"context"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProRataService manages manual pro-rata periods and previews the ratio a
// contract would get in a cycle.
type ProRataService struct {
	proRataRepo  billing.ProRataRepository
	contractRepo billing.ContractRepository
}

// NewProRataService creates a new ProRataService
func NewProRataService(proRataRepo billing.ProRataRepository, contractRepo billing.ContractRepository) *ProRataService {
	return &ProRataService{proRataRepo: proRataRepo, contractRepo: contractRepo}
}

// CreateProRataRequest pins a manual day range for a contract and cycle
type CreateProRataRequest struct {
	ContractID   uuid.UUID `json:"contract_id" binding:"required"`
	BillingCycle string    `json:"billing_cycle" binding:"required,cycle"`
	StartDay     int       `json:"start_day" binding:"required,min=1,max=31"`
	EndDay       int       `json:"end_day" binding:"required,min=1,max=31"`
	Note         *string   `json:"note"`
}

// CreatePeriod stores a manual pro-rata period. One period exists per
// (contract, cycle); a second create replaces the day range.
func (s *ProRataService) CreatePeriod(ctx context.Context, req CreateProRataRequest) (*billing.ProRataPeriod, error) {
	cycle, err := billing.ParseCycle(req.BillingCycle)
	if err != nil {
		return nil, err
	}
	contract, err := s.contractRepo.FindByID(ctx, req.ContractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, shared.ErrNotFound
	}

	period, err := billing.NewProRataPeriod(req.ContractID, cycle, req.StartDay, req.EndDay, req.Note)
	if err != nil {
		return nil, err
	}

	existing, err := s.proRataRepo.FindByContractAndCycle(ctx, req.ContractID, cycle)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.StartDay = period.StartDay
		existing.EndDay = period.EndDay
		existing.TotalDays = period.TotalDays
		existing.ActiveDays = period.ActiveDays
		existing.Ratio = period.Ratio
		existing.IsManual = true
		existing.Note = req.Note
		if err := s.proRataRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	if err := s.proRataRepo.Save(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// ListPeriods returns the manual periods of a cycle
func (s *ProRataService) ListPeriods(ctx context.Context, billingCycle string) ([]billing.ProRataPeriod, error) {
	cycle, err := billing.ParseCycle(billingCycle)
	if err != nil {
		return nil, err
	}
	return s.proRataRepo.FindByCycle(ctx, cycle)
}

// DeletePeriod removes a manual period; derivation from contract dates
// takes over again on the next run.
func (s *ProRataService) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	return s.proRataRepo.Delete(ctx, id)
}

// RatioPreview shows what ratio a contract would get in a cycle and where
// it came from
type RatioPreview struct {
	ContractID uuid.UUID       `json:"contract_id"`
	Cycle      string          `json:"cycle"`
	Ratio      decimal.Decimal `json:"ratio"`
	ActiveDays int             `json:"active_days"`
	TotalDays  int             `json:"total_days"`
	Source     string          `json:"source"` // manual, contract_dates, full
}

// Preview derives the effective ratio without writing anything
func (s *ProRataService) Preview(ctx context.Context, contractID uuid.UUID, billingCycle string) (*RatioPreview, error) {
	cycle, err := billing.ParseCycle(billingCycle)
	if err != nil {
		return nil, err
	}
	contract, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, shared.ErrNotFound
	}

	preview := &RatioPreview{ContractID: contractID, Cycle: cycle.String(), TotalDays: cycle.Days()}

	manual, err := s.proRataRepo.FindByContractAndCycle(ctx, contractID, cycle)
	if err != nil {
		return nil, err
	}
	if manual != nil {
		preview.Ratio = manual.Ratio
		preview.ActiveDays = manual.ActiveDays
		preview.Source = "manual"
		return preview, nil
	}

	startDay, endDay, ok := contract.ActiveDaysIn(cycle)
	if !ok {
		preview.Ratio = decimal.Zero
		preview.Source = "contract_dates"
		return preview, nil
	}
	if startDay == 1 && endDay == cycle.Days() {
		preview.Ratio = decimal.NewFromInt(1)
		preview.ActiveDays = cycle.Days()
		preview.Source = "full"
		return preview, nil
	}

	_, activeDays, ratio := billing.ProRataRatio(cycle, startDay, endDay)
	preview.Ratio = ratio
	preview.ActiveDays = activeDays
	preview.Source = "contract_dates"
	return preview, nil
}
