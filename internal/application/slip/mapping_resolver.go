package slip

import (
	"context"
	"sort"
	"time"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/partner"
	"github.com/google/uuid"
)

// ResolvedMapping is the account→contract→company→BP chain for one UID.
// BP stays nil when the company has no business partner mapped yet; the
// slip line is still produced and fixed up manually later.
type ResolvedMapping struct {
	Contract       *billing.Contract
	Company        *partner.Company
	Profile        *billing.ContractBillingProfile
	CompanyProfile *billing.CompanyBillingProfile
	BP             *partner.BPCode
}

// HasBP reports whether the chain ends in a mapped business partner
func (m *ResolvedMapping) HasBP() bool {
	return m.BP != nil
}

// MappingResolver walks a vendor account UID to its owning contract,
// company and ERP business partner. When several mappings exist for one
// UID, manual mappings win, then the contract with the most recent start
// date, then the lowest contract id, so repeated runs always pick the
// same chain.
type MappingResolver struct {
	mappingRepo  billing.AccountMappingRepository
	contractRepo billing.ContractRepository
	companyRepo  partner.CompanyRepository
	bpRepo       partner.BPCodeRepository
	profileRepo  billing.ProfileRepository
	vendor       string
}

// NewMappingResolver creates a new MappingResolver
func NewMappingResolver(
	mappingRepo billing.AccountMappingRepository,
	contractRepo billing.ContractRepository,
	companyRepo partner.CompanyRepository,
	bpRepo partner.BPCodeRepository,
	profileRepo billing.ProfileRepository,
	vendor string,
) *MappingResolver {
	return &MappingResolver{
		mappingRepo:  mappingRepo,
		contractRepo: contractRepo,
		companyRepo:  companyRepo,
		bpRepo:       bpRepo,
		profileRepo:  profileRepo,
		vendor:       vendor,
	}
}

// Resolve walks the chain for one UID. Returns nil with no error when the
// UID has no usable mapping at all; the caller records it as unmapped.
func (r *MappingResolver) Resolve(ctx context.Context, uid string) (*ResolvedMapping, error) {
	mappings, err := r.mappingRepo.FindByAccountUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(mappings) == 0 {
		return nil, nil
	}

	contract, err := r.pickContract(ctx, mappings)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, nil
	}

	company, err := r.companyRepo.FindByID(ctx, contract.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}

	resolved := &ResolvedMapping{Contract: contract, Company: company}

	profile, err := r.profileRepo.FindContractProfile(ctx, contract.ID, r.vendor)
	if err != nil {
		return nil, err
	}
	resolved.Profile = profile

	companyProfile, err := r.profileRepo.FindCompanyProfile(ctx, company.ID, r.vendor)
	if err != nil {
		return nil, err
	}
	resolved.CompanyProfile = companyProfile

	if company.HasBP() {
		bp, err := r.bpRepo.FindByBPNumber(ctx, *company.BPNumber)
		if err != nil {
			return nil, err
		}
		resolved.BP = bp
	}
	return resolved, nil
}

// pickContract orders candidates and returns the first enabled contract
func (r *MappingResolver) pickContract(ctx context.Context, mappings []billing.AccountContractMapping) (*billing.Contract, error) {
	ids := make([]uuid.UUID, 0, len(mappings))
	for _, m := range mappings {
		ids = append(ids, m.ContractID)
	}
	contracts, err := r.contractRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		mapping  billing.AccountContractMapping
		contract *billing.Contract
	}
	candidates := make([]candidate, 0, len(mappings))
	for _, m := range mappings {
		c, ok := contracts[m.ContractID]
		if !ok || c == nil || !c.Enabled {
			continue
		}
		candidates = append(candidates, candidate{mapping: m, contract: c})
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.mapping.IsManual != b.mapping.IsManual {
			return a.mapping.IsManual
		}
		as, bs := startOrZero(a.contract), startOrZero(b.contract)
		if !as.Equal(bs) {
			return as.After(bs)
		}
		return a.contract.ID.String() < b.contract.ID.String()
	})
	return candidates[0].contract, nil
}

func startOrZero(c *billing.Contract) time.Time {
	if c.StartDate != nil {
		return *c.StartDate
	}
	return time.Time{}
}
