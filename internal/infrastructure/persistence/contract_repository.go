package persistence

import (
	"context"
	"errors"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID, returning nil when missing
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Contract, error) {
	var contract billing.Contract
	if err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

// FindBySeq finds a contract by its HB seq, returning nil when missing
func (r *GormContractRepository) FindBySeq(ctx context.Context, seq int64) (*billing.Contract, error) {
	var contract billing.Contract
	if err := r.db.WithContext(ctx).First(&contract, "seq = ?", seq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

// FindByIDs loads multiple contracts keyed by ID; missing ids are absent
// from the map.
func (r *GormContractRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*billing.Contract, error) {
	result := make(map[uuid.UUID]*billing.Contract, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var contracts []billing.Contract
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&contracts).Error; err != nil {
		return nil, err
	}
	for i := range contracts {
		result[contracts[i].ID] = &contracts[i]
	}
	return result, nil
}

// Save creates or updates a contract
func (r *GormContractRepository) Save(ctx context.Context, contract *billing.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

var _ billing.ContractRepository = (*GormContractRepository)(nil)
