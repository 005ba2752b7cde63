package billing

import (
	"sort"
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitType distinguishes percentage and fixed-amount allocations
type SplitType string

const (
	SplitTypePercentage  SplitType = "percentage"
	SplitTypeFixedAmount SplitType = "fixed_amount"
)

// SplitBillingRule fans one source UID's billing amount out to N target
// companies. At most one active rule applies per UID and cycle.
type SplitBillingRule struct {
	shared.BaseEntity
	SourceAccountUID string    `gorm:"type:varchar(50);not null;index"`
	SourceContractID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name          string     `gorm:"type:varchar(200)"`
	EffectiveFrom *time.Time `gorm:"type:date"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	IsActive      bool       `gorm:"not null;default:true"`

	Allocations []SplitBillingAllocation `gorm:"foreignKey:RuleID;references:ID"`
}

// TableName returns the table name for GORM
func (SplitBillingRule) TableName() string {
	return "split_billing_rules"
}

// SplitBillingAllocation is one target in a split rule, applied in
// ascending priority order.
type SplitBillingAllocation struct {
	shared.BaseEntity
	RuleID          uuid.UUID `gorm:"type:uuid;not null;index"`
	TargetCompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	SplitType  SplitType       `gorm:"type:varchar(20);not null;default:'percentage'"`
	SplitValue decimal.Decimal `gorm:"type:decimal(18,4);not null"` // percent or fixed amount
	Priority   int             `gorm:"not null;default:0"`
	Note       *string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SplitBillingAllocation) TableName() string {
	return "split_billing_allocations"
}

// NewSplitBillingRule creates a split rule with its allocations. Percentage
// allocations must not sum above 100.
func NewSplitBillingRule(sourceUID string, sourceContractID uuid.UUID, name string, allocations []SplitBillingAllocation) (*SplitBillingRule, error) {
	if sourceUID == "" {
		return nil, shared.NewDomainError("INVALID_UID", "Split rule source UID cannot be empty")
	}
	if sourceContractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Split rule source contract cannot be empty")
	}
	if len(allocations) == 0 {
		return nil, shared.NewDomainError("INVALID_ALLOCATIONS", "Split rule needs at least one allocation")
	}
	if err := ValidateAllocations(allocations); err != nil {
		return nil, err
	}
	rule := &SplitBillingRule{
		BaseEntity:       shared.NewBaseEntity(),
		SourceAccountUID: sourceUID,
		SourceContractID: sourceContractID,
		Name:             name,
		IsActive:         true,
	}
	if rule.Name == "" {
		rule.Name = "Split rule for " + sourceUID
	}
	for i := range allocations {
		allocations[i].RuleID = rule.ID
		if allocations[i].ID == uuid.Nil {
			allocations[i].BaseEntity = shared.NewBaseEntity()
			allocations[i].RuleID = rule.ID
		}
	}
	rule.Allocations = allocations
	return rule, nil
}

// ValidateAllocations enforces creation-time allocation invariants
func ValidateAllocations(allocations []SplitBillingAllocation) error {
	totalPct := decimal.Zero
	for _, a := range allocations {
		if a.TargetCompanyID == uuid.Nil {
			return shared.NewDomainError("INVALID_ALLOCATIONS", "Allocation target company cannot be empty")
		}
		if a.SplitValue.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_ALLOCATIONS", "Allocation split value must be positive")
		}
		if a.SplitType == SplitTypePercentage {
			totalPct = totalPct.Add(a.SplitValue)
		}
	}
	if totalPct.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_ALLOCATIONS", "Percentage allocations exceed 100%")
	}
	return nil
}

// IsEffectiveFor reports whether the rule applies to the given cycle
func (r *SplitBillingRule) IsEffectiveFor(cycle Cycle) bool {
	if !r.IsActive {
		return false
	}
	cycleDate := cycle.Start()
	if r.EffectiveFrom != nil && r.EffectiveFrom.After(cycleDate) {
		return false
	}
	if r.EffectiveTo != nil && r.EffectiveTo.Before(cycleDate) {
		return false
	}
	return true
}

// OrderedAllocations returns allocations sorted by (priority, id) so that
// repeated runs distribute identically.
func (r *SplitBillingRule) OrderedAllocations() []SplitBillingAllocation {
	out := make([]SplitBillingAllocation, len(r.Allocations))
	copy(out, r.Allocations)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
