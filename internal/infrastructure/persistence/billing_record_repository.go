package persistence

import (
	"context"

	"github.com/gmu1026/billing/internal/domain/billing"
	"gorm.io/gorm"
)

// GormBillingRecordRepository implements BillingRecordRepository using GORM
type GormBillingRecordRepository struct {
	db *gorm.DB
}

// NewGormBillingRecordRepository creates a new GormBillingRecordRepository
func NewGormBillingRecordRepository(db *gorm.DB) *GormBillingRecordRepository {
	return &GormBillingRecordRepository{db: db}
}

// SumByUID aggregates the vendor-formula raw amount per group UID. Reseller
// rows group under the linked end-customer UID and deduct discount and SPN
// price; enduser rows sum their pretax cost. Ordered by UID so generation
// runs are deterministic.
func (r *GormBillingRecordRepository) SumByUID(ctx context.Context, cycle billing.Cycle, billingType billing.BillingType) ([]billing.UIDAmount, error) {
	var rows []billing.UIDAmount
	query := r.db.WithContext(ctx).Model(&billing.BillingRecord{}).
		Where("billing_cycle = ? AND billing_type = ?", cycle.String(), billingType)

	if billingType == billing.BillingTypeReseller {
		query = query.Select(
			"COALESCE(NULLIF(linked_uid, ''), uid) AS uid, " +
				"SUM(original_cost - discount - spn_deducted_price) AS amount").
			Group("COALESCE(NULLIF(linked_uid, ''), uid)")
	} else {
		query = query.Select("uid, SUM(pretax_cost) AS amount").Group("uid")
	}

	if err := query.Order("uid ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByCycle returns the raw rows of a cycle and billing type
func (r *GormBillingRecordRepository) FindByCycle(ctx context.Context, cycle billing.Cycle, billingType billing.BillingType) ([]billing.BillingRecord, error) {
	var records []billing.BillingRecord
	if err := r.db.WithContext(ctx).
		Where("billing_cycle = ? AND billing_type = ?", cycle.String(), billingType).
		Order("uid ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save stores raw billing rows in batches
func (r *GormBillingRecordRepository) Save(ctx context.Context, records []billing.BillingRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(records, 500).Error
}

var _ billing.BillingRecordRepository = (*GormBillingRecordRepository)(nil)
