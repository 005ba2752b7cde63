package billing

import (
	"context"
	"time"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChargeService manages additional charges attached to contracts
type ChargeService struct {
	chargeRepo   billing.AdditionalChargeRepository
	contractRepo billing.ContractRepository
}

// NewChargeService creates a new ChargeService
func NewChargeService(chargeRepo billing.AdditionalChargeRepository, contractRepo billing.ContractRepository) *ChargeService {
	return &ChargeService{chargeRepo: chargeRepo, contractRepo: contractRepo}
}

// CreateChargeRequest attaches a charge to a contract
type CreateChargeRequest struct {
	ContractID        uuid.UUID       `json:"contract_id" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	Description       *string         `json:"description"`
	ChargeType        string          `json:"charge_type" binding:"required,oneof=credit support_fee setup_fee other"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Currency          string          `json:"currency"`
	RecurrenceType    string          `json:"recurrence_type" binding:"omitempty,oneof=recurring one_time period"`
	StartDate         *time.Time      `json:"start_date"`
	EndDate           *time.Time      `json:"end_date"`
	AppliesToSales    *bool           `json:"applies_to_sales"`
	AppliesToPurchase *bool           `json:"applies_to_purchase"`
}

// CreateCharge validates and stores an additional charge
func (s *ChargeService) CreateCharge(ctx context.Context, req CreateChargeRequest) (*billing.AdditionalCharge, error) {
	contract, err := s.contractRepo.FindByID(ctx, req.ContractID)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, shared.ErrNotFound
	}

	charge, err := billing.NewAdditionalCharge(req.ContractID, req.Name, billing.ChargeType(req.ChargeType), req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	charge.Description = req.Description
	if req.RecurrenceType != "" {
		charge.RecurrenceType = billing.RecurrenceType(req.RecurrenceType)
	}
	charge.StartDate = req.StartDate
	charge.EndDate = req.EndDate
	if req.AppliesToSales != nil {
		charge.AppliesToSales = *req.AppliesToSales
	}
	if req.AppliesToPurchase != nil {
		charge.AppliesToPurchase = *req.AppliesToPurchase
	}

	if err := s.chargeRepo.Save(ctx, charge); err != nil {
		return nil, err
	}
	return charge, nil
}

// ListByContract returns the active charges of one contract
func (s *ChargeService) ListByContract(ctx context.Context, contractID uuid.UUID) ([]billing.AdditionalCharge, error) {
	return s.chargeRepo.FindActiveByContracts(ctx, []uuid.UUID{contractID})
}

// DeactivateCharge turns a charge off without deleting its history
func (s *ChargeService) DeactivateCharge(ctx context.Context, id uuid.UUID) error {
	charge, err := s.chargeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if charge == nil {
		return shared.ErrNotFound
	}
	charge.IsActive = false
	return s.chargeRepo.Save(ctx, charge)
}

// DeleteCharge removes a charge entirely
func (s *ChargeService) DeleteCharge(ctx context.Context, id uuid.UUID) error {
	charge, err := s.chargeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if charge == nil {
		return shared.ErrNotFound
	}
	return s.chargeRepo.Delete(ctx, id)
}
