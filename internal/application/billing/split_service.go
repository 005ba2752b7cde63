package billing

import (
	"context"
	"time"

	appslip "github.com/gmu1026/billing/internal/application/slip"
	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/partner"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitRuleService manages split billing rules and previews their effect
// on a given amount before any batch is generated.
type SplitRuleService struct {
	splitRepo   billing.SplitRuleRepository
	companyRepo partner.CompanyRepository
}

// NewSplitRuleService creates a new SplitRuleService
func NewSplitRuleService(splitRepo billing.SplitRuleRepository, companyRepo partner.CompanyRepository) *SplitRuleService {
	return &SplitRuleService{splitRepo: splitRepo, companyRepo: companyRepo}
}

// AllocationRequest is one target share in a split rule request
type AllocationRequest struct {
	TargetCompanyID uuid.UUID       `json:"target_company_id" binding:"required"`
	SplitType       string          `json:"split_type" binding:"required,oneof=percentage fixed_amount"`
	SplitValue      decimal.Decimal `json:"split_value" binding:"required"`
	Priority        int             `json:"priority"`
	Note            *string         `json:"note"`
}

// CreateSplitRuleRequest creates a rule fanning one UID across companies
type CreateSplitRuleRequest struct {
	SourceAccountUID string              `json:"source_account_uid" binding:"required"`
	SourceContractID uuid.UUID           `json:"source_contract_id" binding:"required"`
	Name             string              `json:"name"`
	EffectiveFrom    *time.Time          `json:"effective_from"`
	EffectiveTo      *time.Time          `json:"effective_to"`
	Allocations      []AllocationRequest `json:"allocations" binding:"required,min=1"`
}

// CreateRule validates and stores a split rule. Every target company must
// exist; percentage shares must not sum above 100.
func (s *SplitRuleService) CreateRule(ctx context.Context, req CreateSplitRuleRequest) (*billing.SplitBillingRule, error) {
	allocations := make([]billing.SplitBillingAllocation, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		company, err := s.companyRepo.FindByID(ctx, a.TargetCompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, shared.NewDomainError("INVALID_ALLOCATIONS", "Allocation target company does not exist")
		}
		allocations = append(allocations, billing.SplitBillingAllocation{
			BaseEntity:      shared.NewBaseEntity(),
			TargetCompanyID: a.TargetCompanyID,
			SplitType:       billing.SplitType(a.SplitType),
			SplitValue:      a.SplitValue,
			Priority:        a.Priority,
			Note:            a.Note,
		})
	}

	rule, err := billing.NewSplitBillingRule(req.SourceAccountUID, req.SourceContractID, req.Name, allocations)
	if err != nil {
		return nil, err
	}
	rule.EffectiveFrom = req.EffectiveFrom
	rule.EffectiveTo = req.EffectiveTo

	existing, err := s.splitRepo.FindActiveBySourceUID(ctx, req.SourceAccountUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An active split rule already exists for this UID")
	}

	if err := s.splitRepo.Save(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// ListRules returns every split rule with allocations
func (s *SplitRuleService) ListRules(ctx context.Context) ([]billing.SplitBillingRule, error) {
	return s.splitRepo.FindAll(ctx)
}

// GetRule returns one rule by id
func (s *SplitRuleService) GetRule(ctx context.Context, id uuid.UUID) (*billing.SplitBillingRule, error) {
	rule, err := s.splitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, shared.ErrNotFound
	}
	return rule, nil
}

// DeactivateRule turns a rule off without deleting its history
func (s *SplitRuleService) DeactivateRule(ctx context.Context, id uuid.UUID) error {
	rule, err := s.GetRule(ctx, id)
	if err != nil {
		return err
	}
	rule.IsActive = false
	return s.splitRepo.Save(ctx, rule)
}

// DeleteRule removes a rule and its allocations
func (s *SplitRuleService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	rule, err := s.splitRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rule == nil {
		return shared.ErrNotFound
	}
	return s.splitRepo.Delete(ctx, id)
}

// SimulatedShare is one target's share in a split preview
type SimulatedShare struct {
	TargetCompanyID uuid.UUID       `json:"target_company_id"`
	CompanyName     string          `json:"company_name"`
	SplitType       string          `json:"split_type"`
	Amount          decimal.Decimal `json:"amount"`
}

// SimulationResult previews how a rule distributes an amount
type SimulationResult struct {
	SourceAmount decimal.Decimal  `json:"source_amount"`
	Shares       []SimulatedShare `json:"shares"`
	Allocated    decimal.Decimal  `json:"allocated"`
}

// Simulate runs the allocator against a hypothetical amount so operators
// can check a rule before the next generation run.
func (s *SplitRuleService) Simulate(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*SimulationResult, error) {
	rule, err := s.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}

	shares := appslip.AllocateSplit(amount, rule)
	result := &SimulationResult{SourceAmount: amount, Allocated: decimal.Zero}
	for _, share := range shares {
		name := ""
		company, err := s.companyRepo.FindByID(ctx, share.TargetCompanyID)
		if err != nil {
			return nil, err
		}
		if company != nil {
			name = company.Name
		}
		result.Shares = append(result.Shares, SimulatedShare{
			TargetCompanyID: share.TargetCompanyID,
			CompanyName:     name,
			SplitType:       string(share.SplitType),
			Amount:          share.Amount,
		})
		result.Allocated = result.Allocated.Add(share.Amount)
	}
	return result, nil
}
