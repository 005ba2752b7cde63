package persistence

import (
	"context"
	"errors"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDepositRepository implements DepositRepository using GORM. InTx hands
// the callback a repository bound to one transaction so FIFO consumption
// reads balances and writes usages atomically.
type GormDepositRepository struct {
	db *gorm.DB
}

// NewGormDepositRepository creates a new GormDepositRepository
func NewGormDepositRepository(db *gorm.DB) *GormDepositRepository {
	return &GormDepositRepository{db: db}
}

// FindByID finds a deposit with its usages, returning nil when missing
func (r *GormDepositRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Deposit, error) {
	var deposit billing.Deposit
	if err := r.db.WithContext(ctx).
		Preload("Usages").
		First(&deposit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deposit, nil
}

// FindOpenByProfile returns unexhausted deposits for one billing profile,
// oldest deposit date first (FIFO consumption order).
func (r *GormDepositRepository) FindOpenByProfile(ctx context.Context, companyProfileID, contractProfileID *uuid.UUID) ([]billing.Deposit, error) {
	var deposits []billing.Deposit
	if err := r.profileScope(ctx, companyProfileID, contractProfileID).
		Where("is_exhausted = ?", false).
		Order("deposit_date ASC, created_at ASC").
		Find(&deposits).Error; err != nil {
		return nil, err
	}
	return deposits, nil
}

// CountByProfile counts every deposit referencing one billing profile
func (r *GormDepositRepository) CountByProfile(ctx context.Context, companyProfileID, contractProfileID *uuid.UUID) (int64, error) {
	var count int64
	if err := r.profileScope(ctx, companyProfileID, contractProfileID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDepositRepository) profileScope(ctx context.Context, companyProfileID, contractProfileID *uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&billing.Deposit{})
	if companyProfileID != nil {
		query = query.Where("company_profile_id = ?", *companyProfileID)
	}
	if contractProfileID != nil {
		query = query.Where("contract_profile_id = ?", *contractProfileID)
	}
	return query
}

// Save creates or updates a deposit
func (r *GormDepositRepository) Save(ctx context.Context, deposit *billing.Deposit) error {
	return r.db.WithContext(ctx).Omit("Usages").Save(deposit).Error
}

// SaveUsage appends one consumption event
func (r *GormDepositRepository) SaveUsage(ctx context.Context, usage *billing.DepositUsage) error {
	return r.db.WithContext(ctx).Create(usage).Error
}

// InTx runs fn inside one database transaction against a repository bound
// to that transaction
func (r *GormDepositRepository) InTx(ctx context.Context, fn func(ctx context.Context, repo billing.DepositRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &GormDepositRepository{db: tx})
	})
}

var _ billing.DepositRepository = (*GormDepositRepository)(nil)
