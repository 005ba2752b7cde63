package persistence

import (
	"context"
	"errors"

	"github.com/gmu1026/billing/internal/domain/slip"
	"gorm.io/gorm"
)

// GormVendorConfigRepository implements VendorConfigRepository using GORM
type GormVendorConfigRepository struct {
	db *gorm.DB
}

// NewGormVendorConfigRepository creates a new GormVendorConfigRepository
func NewGormVendorConfigRepository(db *gorm.DB) *GormVendorConfigRepository {
	return &GormVendorConfigRepository{db: db}
}

// FindByVendor finds the stored config for a vendor, returning nil when
// missing
func (r *GormVendorConfigRepository) FindByVendor(ctx context.Context, vendor string) (*slip.VendorConfig, error) {
	var cfg slip.VendorConfig
	if err := r.db.WithContext(ctx).First(&cfg, "vendor = ?", vendor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Save creates or updates a vendor config
func (r *GormVendorConfigRepository) Save(ctx context.Context, cfg *slip.VendorConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

var _ slip.VendorConfigRepository = (*GormVendorConfigRepository)(nil)
