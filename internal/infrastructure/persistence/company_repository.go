package persistence

import (
	"context"
	"errors"

	"github.com/gmu1026/billing/internal/domain/partner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID, returning nil when missing
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Company, error) {
	var company partner.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// FindBySeq finds a company by its HB seq, returning nil when missing
func (r *GormCompanyRepository) FindBySeq(ctx context.Context, seq int64) (*partner.Company, error) {
	var company partner.Company
	if err := r.db.WithContext(ctx).First(&company, "seq = ?", seq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// FindAll returns every company ordered by name
func (r *GormCompanyRepository) FindAll(ctx context.Context) ([]partner.Company, error) {
	var companies []partner.Company
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

var _ partner.CompanyRepository = (*GormCompanyRepository)(nil)
