package persistence

import (
	"context"
	"errors"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProRataRepository implements ProRataRepository using GORM
type GormProRataRepository struct {
	db *gorm.DB
}

// NewGormProRataRepository creates a new GormProRataRepository
func NewGormProRataRepository(db *gorm.DB) *GormProRataRepository {
	return &GormProRataRepository{db: db}
}

// FindByContractAndCycle finds the manual period for one (contract, cycle),
// returning nil when missing
func (r *GormProRataRepository) FindByContractAndCycle(ctx context.Context, contractID uuid.UUID, cycle billing.Cycle) (*billing.ProRataPeriod, error) {
	var period billing.ProRataPeriod
	if err := r.db.WithContext(ctx).
		First(&period, "contract_id = ? AND billing_cycle = ?", contractID, cycle.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &period, nil
}

// FindByCycle returns every manual period of a cycle
func (r *GormProRataRepository) FindByCycle(ctx context.Context, cycle billing.Cycle) ([]billing.ProRataPeriod, error) {
	var periods []billing.ProRataPeriod
	if err := r.db.WithContext(ctx).
		Where("billing_cycle = ?", cycle.String()).
		Order("created_at ASC").
		Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

// Save creates or updates a manual period
func (r *GormProRataRepository) Save(ctx context.Context, period *billing.ProRataPeriod) error {
	return r.db.WithContext(ctx).Save(period).Error
}

// Delete removes a manual period
func (r *GormProRataRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&billing.ProRataPeriod{}, "id = ?", id).Error
}

var _ billing.ProRataRepository = (*GormProRataRepository)(nil)
