package persistence

import (
	"context"
	"errors"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAdditionalChargeRepository implements AdditionalChargeRepository
// using GORM
type GormAdditionalChargeRepository struct {
	db *gorm.DB
}

// NewGormAdditionalChargeRepository creates a new GormAdditionalChargeRepository
func NewGormAdditionalChargeRepository(db *gorm.DB) *GormAdditionalChargeRepository {
	return &GormAdditionalChargeRepository{db: db}
}

// FindByID finds a charge by its ID, returning nil when missing
func (r *GormAdditionalChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.AdditionalCharge, error) {
	var charge billing.AdditionalCharge
	if err := r.db.WithContext(ctx).First(&charge, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &charge, nil
}

// FindActiveByContracts returns the active charges of the given contracts,
// ordered by creation time so injection order is stable across runs.
func (r *GormAdditionalChargeRepository) FindActiveByContracts(ctx context.Context, contractIDs []uuid.UUID) ([]billing.AdditionalCharge, error) {
	if len(contractIDs) == 0 {
		return nil, nil
	}
	var charges []billing.AdditionalCharge
	if err := r.db.WithContext(ctx).
		Where("contract_id IN ? AND is_active = ?", contractIDs, true).
		Order("created_at ASC, id ASC").
		Find(&charges).Error; err != nil {
		return nil, err
	}
	return charges, nil
}

// Save creates or updates a charge
func (r *GormAdditionalChargeRepository) Save(ctx context.Context, charge *billing.AdditionalCharge) error {
	return r.db.WithContext(ctx).Save(charge).Error
}

// Delete removes a charge
func (r *GormAdditionalChargeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&billing.AdditionalCharge{}, "id = ?", id).Error
}

var _ billing.AdditionalChargeRepository = (*GormAdditionalChargeRepository)(nil)
