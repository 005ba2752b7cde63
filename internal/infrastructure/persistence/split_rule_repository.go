package persistence

import (
	"context"
	"errors"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSplitRuleRepository implements SplitRuleRepository using GORM
type GormSplitRuleRepository struct {
	db *gorm.DB
}

// NewGormSplitRuleRepository creates a new GormSplitRuleRepository
func NewGormSplitRuleRepository(db *gorm.DB) *GormSplitRuleRepository {
	return &GormSplitRuleRepository{db: db}
}

// FindByID finds a rule with its allocations, returning nil when missing
func (r *GormSplitRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.SplitBillingRule, error) {
	var rule billing.SplitBillingRule
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// FindActiveBySourceUID returns the active rule for a source UID with its
// allocations preloaded, or nil when none exists. The newest rule wins when
// stale duplicates exist.
func (r *GormSplitRuleRepository) FindActiveBySourceUID(ctx context.Context, uid string) (*billing.SplitBillingRule, error) {
	var rule billing.SplitBillingRule
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("source_account_uid = ? AND is_active = ?", uid, true).
		Order("created_at DESC").
		First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

// FindAll returns every rule with allocations
func (r *GormSplitRuleRepository) FindAll(ctx context.Context) ([]billing.SplitBillingRule, error) {
	var rules []billing.SplitBillingRule
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Order("created_at DESC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// Save creates or updates a rule together with its allocations
func (r *GormSplitRuleRepository) Save(ctx context.Context, rule *billing.SplitBillingRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Allocations").Save(rule).Error; err != nil {
			return err
		}
		// Replace the allocation set wholesale; partial edits are not a
		// supported operation.
		if err := tx.Delete(&billing.SplitBillingAllocation{}, "rule_id = ?", rule.ID).Error; err != nil {
			return err
		}
		if len(rule.Allocations) == 0 {
			return nil
		}
		return tx.Create(&rule.Allocations).Error
	})
}

// Delete removes a rule and its allocations
func (r *GormSplitRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&billing.SplitBillingAllocation{}, "rule_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&billing.SplitBillingRule{}, "id = ?", id).Error
	})
}

var _ billing.SplitRuleRepository = (*GormSplitRuleRepository)(nil)
