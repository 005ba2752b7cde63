package persistence

import (
	"context"
	"errors"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProfileRepository implements ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindCompanyProfile finds the company-level profile for a vendor,
// returning nil when missing
func (r *GormProfileRepository) FindCompanyProfile(ctx context.Context, companyID uuid.UUID, vendor string) (*billing.CompanyBillingProfile, error) {
	var profile billing.CompanyBillingProfile
	if err := r.db.WithContext(ctx).
		First(&profile, "company_id = ? AND vendor = ?", companyID, vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindContractProfile finds the contract-level profile for a vendor,
// returning nil when missing
func (r *GormProfileRepository) FindContractProfile(ctx context.Context, contractID uuid.UUID, vendor string) (*billing.ContractBillingProfile, error) {
	var profile billing.ContractBillingProfile
	if err := r.db.WithContext(ctx).
		First(&profile, "contract_id = ? AND vendor = ?", contractID, vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// SaveCompanyProfile creates or updates a company-level profile
func (r *GormProfileRepository) SaveCompanyProfile(ctx context.Context, profile *billing.CompanyBillingProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// SaveContractProfile creates or updates a contract-level profile
func (r *GormProfileRepository) SaveContractProfile(ctx context.Context, profile *billing.ContractBillingProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// DeleteContractProfile removes a contract-level profile
func (r *GormProfileRepository) DeleteContractProfile(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&billing.ContractBillingProfile{}, "id = ?", id).Error
}

var _ billing.ProfileRepository = (*GormProfileRepository)(nil)
