package partner

import (
	"context"

	"github.com/gmu1026/billing/internal/domain/partner"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyService manages companies and their business-partner assignment.
// Assigning a BP is the manual step that unblocks batch confirmation for
// that company's slip lines.
type CompanyService struct {
	companyRepo partner.CompanyRepository
	bpRepo      partner.BPCodeRepository
	logger      *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo partner.CompanyRepository, bpRepo partner.BPCodeRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{companyRepo: companyRepo, bpRepo: bpRepo, logger: logger}
}

// ListCompanies returns every synced company
func (s *CompanyService) ListCompanies(ctx context.Context) ([]partner.Company, error) {
	return s.companyRepo.FindAll(ctx)
}

// GetCompany returns one company by id
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*partner.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}
	return company, nil
}

// AssignBP maps a company to an ERP business partner. The BP must exist in
// the master table.
func (s *CompanyService) AssignBP(ctx context.Context, companyID uuid.UUID, bpNumber string) (*partner.Company, error) {
	company, err := s.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	bp, err := s.bpRepo.FindByBPNumber(ctx, bpNumber)
	if err != nil {
		return nil, err
	}
	if bp == nil {
		return nil, shared.NewDomainError("BP_NOT_FOUND", "Business partner does not exist in the master table")
	}

	if err := company.AssignBP(bpNumber); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info("business partner assigned",
		zap.String("company", company.Name),
		zap.String("bp_number", bpNumber))
	return company, nil
}

// UpsertBPCodeRequest creates or updates one BP master record
type UpsertBPCodeRequest struct {
	BPNumber    string  `json:"bp_number" binding:"required"`
	CompanyCode string  `json:"company_code"`
	BPGroup     *string `json:"bp_group"`
	NameLocal   *string `json:"name_local"`
	NameEnglish *string `json:"name_english"`
	SearchKey   *string `json:"search_key"`
	TaxNumber   *string `json:"tax_number"`
	ARAccount   *string `json:"ar_account"`
	APAccount   *string `json:"ap_account"`
}

// UpsertBPCode writes one BP master record, creating it when missing
func (s *CompanyService) UpsertBPCode(ctx context.Context, req UpsertBPCodeRequest) (*partner.BPCode, error) {
	bp, err := s.bpRepo.FindByBPNumber(ctx, req.BPNumber)
	if err != nil {
		return nil, err
	}
	if bp == nil {
		bp, err = partner.NewBPCode(req.BPNumber, req.CompanyCode)
		if err != nil {
			return nil, err
		}
	}
	if req.CompanyCode != "" {
		bp.CompanyCode = req.CompanyCode
	}
	bp.BPGroup = req.BPGroup
	bp.NameLocal = req.NameLocal
	bp.NameEnglish = req.NameEnglish
	bp.SearchKey = req.SearchKey
	bp.TaxNumber = req.TaxNumber
	bp.ARAccount = req.ARAccount
	bp.APAccount = req.APAccount

	if err := s.bpRepo.Save(ctx, bp); err != nil {
		return nil, err
	}
	return bp, nil
}
