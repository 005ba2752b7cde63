package slip

import (
	"context"

	"github.com/gmu1026/billing/internal/domain/slip"
)

// VendorConfigService reads and rewrites the per-vendor fixed slip fields
type VendorConfigService struct {
	vendorRepo slip.VendorConfigRepository
}

// NewVendorConfigService creates a new VendorConfigService
func NewVendorConfigService(vendorRepo slip.VendorConfigRepository) *VendorConfigService {
	return &VendorConfigService{vendorRepo: vendorRepo}
}

// Get returns the stored config for a vendor, falling back to the Alibaba
// defaults when nothing is stored yet.
func (s *VendorConfigService) Get(ctx context.Context, vendor string) (*slip.VendorConfig, error) {
	cfg, err := s.vendorRepo.FindByVendor(ctx, vendor)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = slip.DefaultAlibabaConfig()
		cfg.Vendor = vendor
	}
	return cfg, nil
}

// UpdateVendorConfigRequest rewrites the configurable slip constants
type UpdateVendorConfigRequest struct {
	Bukrs            *string `json:"bukrs"`
	Prctr            *string `json:"prctr"`
	HkontSales       *string `json:"hkont_sales"`
	HkontSalesExport *string `json:"hkont_sales_export"`
	HkontPurchase    *string `json:"hkont_purchase"`
	ARAccountDefault *string `json:"ar_account_default"`
	APAccountDefault *string `json:"ap_account_default"`
	Zzref2           *string `json:"zzref2"`
	SgtxtTemplate    *string `json:"sgtxt_template"`
	RoundingRule     *string `json:"rounding_rule"`
	ProRataEnabled   *bool   `json:"pro_rata_enabled"`
}

// Update applies the given fields and bumps the config version
func (s *VendorConfigService) Update(ctx context.Context, vendor string, req UpdateVendorConfigRequest) (*slip.VendorConfig, error) {
	cfg, err := s.Get(ctx, vendor)
	if err != nil {
		return nil, err
	}

	setIf := func(dst *string, src *string) {
		if src != nil && *src != "" {
			*dst = *src
		}
	}
	setIf(&cfg.Bukrs, req.Bukrs)
	setIf(&cfg.Prctr, req.Prctr)
	setIf(&cfg.HkontSales, req.HkontSales)
	setIf(&cfg.HkontSalesExport, req.HkontSalesExport)
	setIf(&cfg.HkontPurchase, req.HkontPurchase)
	setIf(&cfg.ARAccountDefault, req.ARAccountDefault)
	setIf(&cfg.APAccountDefault, req.APAccountDefault)
	setIf(&cfg.Zzref2, req.Zzref2)
	setIf(&cfg.SgtxtTemplate, req.SgtxtTemplate)
	if req.RoundingRule != nil {
		cfg.RoundingRule = slip.RoundingRule(*req.RoundingRule)
	}
	if req.ProRataEnabled != nil {
		cfg.ProRataEnabled = *req.ProRataEnabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Version++
	if err := s.vendorRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
