package billing

import (
	"context"
	"time"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
)

// ProfileService manages the two billing-profile layers. A contract-level
// profile, when present, fully shadows the company-level one during slip
// generation; this service only stores and deletes them.
type ProfileService struct {
	profileRepo billing.ProfileRepository
	depositRepo billing.DepositRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo billing.ProfileRepository, depositRepo billing.DepositRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, depositRepo: depositRepo}
}

// UpsertCompanyProfileRequest rewrites one company+vendor profile
type UpsertCompanyProfileRequest struct {
	CompanyID            uuid.UUID `json:"company_id" binding:"required"`
	Vendor               string    `json:"vendor" binding:"required"`
	PaymentType          *string   `json:"payment_type"`
	HasSalesAgreement    *bool     `json:"has_sales_agreement"`
	HasPurchaseAgreement *bool     `json:"has_purchase_agreement"`
	Currency             *string   `json:"currency"`
	HkontSales           *string   `json:"hkont_sales"`
	HkontPurchase        *string   `json:"hkont_purchase"`
	ARAccount            *string   `json:"ar_account"`
	APAccount            *string   `json:"ap_account"`
	Note                 *string   `json:"note"`
}

// UpsertCompanyProfile creates or updates a company-level profile
func (s *ProfileService) UpsertCompanyProfile(ctx context.Context, req UpsertCompanyProfileRequest) (*billing.CompanyBillingProfile, error) {
	profile, err := s.profileRepo.FindCompanyProfile(ctx, req.CompanyID, req.Vendor)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile, err = billing.NewCompanyBillingProfile(req.CompanyID, req.Vendor)
		if err != nil {
			return nil, err
		}
	}

	if req.PaymentType != nil {
		profile.PaymentType = billing.PaymentType(*req.PaymentType)
	}
	if req.HasSalesAgreement != nil {
		profile.HasSalesAgreement = *req.HasSalesAgreement
	}
	if req.HasPurchaseAgreement != nil {
		profile.HasPurchaseAgreement = *req.HasPurchaseAgreement
	}
	if req.Currency != nil && *req.Currency != "" {
		profile.Currency = *req.Currency
	}
	profile.HkontSales = req.HkontSales
	profile.HkontPurchase = req.HkontPurchase
	profile.ARAccount = req.ARAccount
	profile.APAccount = req.APAccount
	if req.Note != nil {
		profile.Note = req.Note
	}

	if err := s.profileRepo.SaveCompanyProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpsertContractProfileRequest rewrites one contract+vendor profile
type UpsertContractProfileRequest struct {
	ContractID             uuid.UUID  `json:"contract_id" binding:"required"`
	Vendor                 string     `json:"vendor" binding:"required"`
	PaymentType            *string    `json:"payment_type"`
	HasSalesAgreement      *bool      `json:"has_sales_agreement"`
	HasPurchaseAgreement   *bool      `json:"has_purchase_agreement"`
	Currency               *string    `json:"currency"`
	ExchangeRateDateMode   *string    `json:"exchange_rate_date_mode"`
	CustomExchangeRateDate *time.Time `json:"custom_exchange_rate_date"`
	HkontSales             *string    `json:"hkont_sales"`
	HkontPurchase          *string    `json:"hkont_purchase"`
	ARAccount              *string    `json:"ar_account"`
	APAccount              *string    `json:"ap_account"`
	RoundingRuleOverride   *string    `json:"rounding_rule_override"`
	ProRataOverride        *string    `json:"pro_rata_override"`
	Note                   *string    `json:"note"`
}

// UpsertContractProfile creates or updates a contract-level profile
func (s *ProfileService) UpsertContractProfile(ctx context.Context, req UpsertContractProfileRequest) (*billing.ContractBillingProfile, error) {
	profile, err := s.profileRepo.FindContractProfile(ctx, req.ContractID, req.Vendor)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile, err = billing.NewContractBillingProfile(req.ContractID, req.Vendor)
		if err != nil {
			return nil, err
		}
	}

	if req.PaymentType != nil {
		profile.PaymentType = billing.PaymentType(*req.PaymentType)
	}
	if req.HasSalesAgreement != nil {
		profile.HasSalesAgreement = *req.HasSalesAgreement
	}
	if req.HasPurchaseAgreement != nil {
		profile.HasPurchaseAgreement = *req.HasPurchaseAgreement
	}
	if req.Currency != nil && *req.Currency != "" {
		profile.Currency = *req.Currency
	}
	if req.ExchangeRateDateMode != nil {
		mode := billing.ExchangeRateDateMode(*req.ExchangeRateDateMode)
		profile.ExchangeRateDateMode = &mode
		profile.CustomExchangeRateDate = req.CustomExchangeRateDate
	}
	profile.HkontSales = req.HkontSales
	profile.HkontPurchase = req.HkontPurchase
	profile.ARAccount = req.ARAccount
	profile.APAccount = req.APAccount
	profile.RoundingRuleOverride = req.RoundingRuleOverride
	if req.ProRataOverride != nil {
		profile.ProRataOverride = billing.ProRataMode(*req.ProRataOverride)
	}
	if req.Note != nil {
		profile.Note = req.Note
	}

	if err := s.profileRepo.SaveContractProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetContractProfile returns one contract-level profile or nil
func (s *ProfileService) GetContractProfile(ctx context.Context, contractID uuid.UUID, vendor string) (*billing.ContractBillingProfile, error) {
	return s.profileRepo.FindContractProfile(ctx, contractID, vendor)
}

// GetCompanyProfile returns one company-level profile or nil
func (s *ProfileService) GetCompanyProfile(ctx context.Context, companyID uuid.UUID, vendor string) (*billing.CompanyBillingProfile, error) {
	return s.profileRepo.FindCompanyProfile(ctx, companyID, vendor)
}

// DeleteContractProfile removes a contract-level profile. A profile with
// deposits charged against it is never deleted; the deposit history would
// lose its owner.
func (s *ProfileService) DeleteContractProfile(ctx context.Context, contractID uuid.UUID, vendor string) error {
	profile, err := s.profileRepo.FindContractProfile(ctx, contractID, vendor)
	if err != nil {
		return err
	}
	if profile == nil {
		return shared.ErrNotFound
	}

	count, err := s.depositRepo.CountByProfile(ctx, nil, &profile.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("PROFILE_HAS_DEPOSITS", "Cannot delete a billing profile with deposits charged against it")
	}
	return s.profileRepo.DeleteContractProfile(ctx, profile.ID)
}
