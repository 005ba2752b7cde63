package persistence

import (
	"context"

	"github.com/gmu1026/billing/internal/domain/billing"
	"gorm.io/gorm"
)

// GormAccountMappingRepository implements AccountMappingRepository using GORM
type GormAccountMappingRepository struct {
	db *gorm.DB
}

// NewGormAccountMappingRepository creates a new GormAccountMappingRepository
func NewGormAccountMappingRepository(db *gorm.DB) *GormAccountMappingRepository {
	return &GormAccountMappingRepository{db: db}
}

// FindByAccountUID returns every mapping edge for a vendor account UID
func (r *GormAccountMappingRepository) FindByAccountUID(ctx context.Context, uid string) ([]billing.AccountContractMapping, error) {
	var mappings []billing.AccountContractMapping
	if err := r.db.WithContext(ctx).
		Where("account_uid = ?", uid).
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// Save creates or updates a mapping edge
func (r *GormAccountMappingRepository) Save(ctx context.Context, mapping *billing.AccountContractMapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

var _ billing.AccountMappingRepository = (*GormAccountMappingRepository)(nil)
