package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UIDAmount is one UID group's summed raw billing amount for a cycle
type UIDAmount struct {
	UID    string
	Amount decimal.Decimal
}

// BillingRecordRepository reads raw vendor billing rows
type BillingRecordRepository interface {
	// SumByUID aggregates the vendor-formula raw amount per group UID for
	// a cycle and billing type, ordered by UID for deterministic runs.
	SumByUID(ctx context.Context, cycle Cycle, billingType BillingType) ([]UIDAmount, error)
	FindByCycle(ctx context.Context, cycle Cycle, billingType BillingType) ([]BillingRecord, error)
	Save(ctx context.Context, records []BillingRecord) error
}

// AccountMappingRepository resolves the account↔contract graph
type AccountMappingRepository interface {
	FindByAccountUID(ctx context.Context, uid string) ([]AccountContractMapping, error)
	Save(ctx context.Context, mapping *AccountContractMapping) error
}

// ContractRepository defines persistence operations for contracts
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindBySeq(ctx context.Context, seq int64) (*Contract, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Contract, error)
	Save(ctx context.Context, contract *Contract) error
}

// ProfileRepository loads billing profiles at both levels
type ProfileRepository interface {
	FindCompanyProfile(ctx context.Context, companyID uuid.UUID, vendor string) (*CompanyBillingProfile, error)
	FindContractProfile(ctx context.Context, contractID uuid.UUID, vendor string) (*ContractBillingProfile, error)
	SaveCompanyProfile(ctx context.Context, profile *CompanyBillingProfile) error
	SaveContractProfile(ctx context.Context, profile *ContractBillingProfile) error
	DeleteContractProfile(ctx context.Context, id uuid.UUID) error
}

// DepositRepository defines persistence for deposits and their usages.
// ConsumeFIFO must run inside one transaction to prevent double spends.
type DepositRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Deposit, error)
	// FindOpenByProfile returns unexhausted deposits for a profile ordered
	// by deposit date ascending (FIFO order).
	FindOpenByProfile(ctx context.Context, companyProfileID, contractProfileID *uuid.UUID) ([]Deposit, error)
	CountByProfile(ctx context.Context, companyProfileID, contractProfileID *uuid.UUID) (int64, error)
	Save(ctx context.Context, deposit *Deposit) error
	SaveUsage(ctx context.Context, usage *DepositUsage) error
	// InTx runs fn inside one database transaction against a repository
	// bound to that transaction.
	InTx(ctx context.Context, fn func(ctx context.Context, repo DepositRepository) error) error
}

// AdditionalChargeRepository defines persistence for additional charges
type AdditionalChargeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AdditionalCharge, error)
	FindActiveByContracts(ctx context.Context, contractIDs []uuid.UUID) ([]AdditionalCharge, error)
	Save(ctx context.Context, charge *AdditionalCharge) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SplitRuleRepository defines persistence for split billing rules
type SplitRuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SplitBillingRule, error)
	// FindActiveBySourceUID returns the active rule for a UID with its
	// allocations preloaded, or nil when none exists.
	FindActiveBySourceUID(ctx context.Context, uid string) (*SplitBillingRule, error)
	FindAll(ctx context.Context) ([]SplitBillingRule, error)
	Save(ctx context.Context, rule *SplitBillingRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProRataRepository defines persistence for manual pro-rata periods
type ProRataRepository interface {
	FindByContractAndCycle(ctx context.Context, contractID uuid.UUID, cycle Cycle) (*ProRataPeriod, error)
	FindByCycle(ctx context.Context, cycle Cycle) ([]ProRataPeriod, error)
	Save(ctx context.Context, period *ProRataPeriod) error
	Delete(ctx context.Context, id uuid.UUID) error
}
