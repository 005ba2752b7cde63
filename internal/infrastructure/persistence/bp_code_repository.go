package persistence

import (
	"context"
	"errors"

	"github.com/gmu1026/billing/internal/domain/partner"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBPCodeRepository implements BPCodeRepository using GORM
type GormBPCodeRepository struct {
	db *gorm.DB
}

// NewGormBPCodeRepository creates a new GormBPCodeRepository
func NewGormBPCodeRepository(db *gorm.DB) *GormBPCodeRepository {
	return &GormBPCodeRepository{db: db}
}

// FindByBPNumber finds a BP master record, returning nil when missing
func (r *GormBPCodeRepository) FindByBPNumber(ctx context.Context, bpNumber string) (*partner.BPCode, error) {
	var bp partner.BPCode
	if err := r.db.WithContext(ctx).First(&bp, "bp_number = ?", bpNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bp, nil
}

// FindByBPNumbers loads multiple BP records keyed by BP number; unknown
// numbers are absent from the map.
func (r *GormBPCodeRepository) FindByBPNumbers(ctx context.Context, bpNumbers []string) (map[string]*partner.BPCode, error) {
	result := make(map[string]*partner.BPCode, len(bpNumbers))
	if len(bpNumbers) == 0 {
		return result, nil
	}
	var bps []partner.BPCode
	if err := r.db.WithContext(ctx).Where("bp_number IN ?", bpNumbers).Find(&bps).Error; err != nil {
		return nil, err
	}
	for i := range bps {
		result[bps[i].BPNumber] = &bps[i]
	}
	return result, nil
}

// Save creates or updates a BP master record, keyed by BP number so that
// repeated master uploads update in place.
func (r *GormBPCodeRepository) Save(ctx context.Context, bp *partner.BPCode) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "bp_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"company_code", "bp_group", "name_local", "name_english",
			"search_key", "tax_number", "ar_account", "ap_account", "updated_at",
		}),
	}).Create(bp).Error
}

var _ partner.BPCodeRepository = (*GormBPCodeRepository)(nil)
