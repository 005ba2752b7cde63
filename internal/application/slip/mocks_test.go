package slip

import (
	"context"
	"time"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/partner"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock repositories shared by the slip application tests
// =============================================================================

type MockBillingRecordRepository struct {
	mock.Mock
}

func (m *MockBillingRecordRepository) SumByUID(ctx context.Context, cycle billing.Cycle, billingType billing.BillingType) ([]billing.UIDAmount, error) {
	args := m.Called(ctx, cycle, billingType)
	return args.Get(0).([]billing.UIDAmount), args.Error(1)
}

func (m *MockBillingRecordRepository) FindByCycle(ctx context.Context, cycle billing.Cycle, billingType billing.BillingType) ([]billing.BillingRecord, error) {
	args := m.Called(ctx, cycle, billingType)
	return args.Get(0).([]billing.BillingRecord), args.Error(1)
}

func (m *MockBillingRecordRepository) Save(ctx context.Context, records []billing.BillingRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

type MockAccountMappingRepository struct {
	mock.Mock
}

func (m *MockAccountMappingRepository) FindByAccountUID(ctx context.Context, uid string) ([]billing.AccountContractMapping, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]billing.AccountContractMapping), args.Error(1)
}

func (m *MockAccountMappingRepository) Save(ctx context.Context, mapping *billing.AccountContractMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contract), args.Error(1)
}

func (m *MockContractRepository) FindBySeq(ctx context.Context, seq int64) (*billing.Contract, error) {
	args := m.Called(ctx, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contract), args.Error(1)
}

func (m *MockContractRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*billing.Contract, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[uuid.UUID]*billing.Contract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, contract *billing.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindBySeq(ctx context.Context, seq int64) (*partner.Company, error) {
	args := m.Called(ctx, seq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context) ([]partner.Company, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.Company), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

type MockBPCodeRepository struct {
	mock.Mock
}

func (m *MockBPCodeRepository) FindByBPNumber(ctx context.Context, bpNumber string) (*partner.BPCode, error) {
	args := m.Called(ctx, bpNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.BPCode), args.Error(1)
}

func (m *MockBPCodeRepository) FindByBPNumbers(ctx context.Context, bpNumbers []string) (map[string]*partner.BPCode, error) {
	args := m.Called(ctx, bpNumbers)
	return args.Get(0).(map[string]*partner.BPCode), args.Error(1)
}

func (m *MockBPCodeRepository) Save(ctx context.Context, bp *partner.BPCode) error {
	args := m.Called(ctx, bp)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindCompanyProfile(ctx context.Context, companyID uuid.UUID, vendor string) (*billing.CompanyBillingProfile, error) {
	args := m.Called(ctx, companyID, vendor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CompanyBillingProfile), args.Error(1)
}

func (m *MockProfileRepository) FindContractProfile(ctx context.Context, contractID uuid.UUID, vendor string) (*billing.ContractBillingProfile, error) {
	args := m.Called(ctx, contractID, vendor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.ContractBillingProfile), args.Error(1)
}

func (m *MockProfileRepository) SaveCompanyProfile(ctx context.Context, profile *billing.CompanyBillingProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) SaveContractProfile(ctx context.Context, profile *billing.ContractBillingProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteContractProfile(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSplitRuleRepository struct {
	mock.Mock
}

func (m *MockSplitRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.SplitBillingRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.SplitBillingRule), args.Error(1)
}

func (m *MockSplitRuleRepository) FindActiveBySourceUID(ctx context.Context, uid string) (*billing.SplitBillingRule, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.SplitBillingRule), args.Error(1)
}

func (m *MockSplitRuleRepository) FindAll(ctx context.Context) ([]billing.SplitBillingRule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]billing.SplitBillingRule), args.Error(1)
}

func (m *MockSplitRuleRepository) Save(ctx context.Context, rule *billing.SplitBillingRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockSplitRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProRataRepository struct {
	mock.Mock
}

func (m *MockProRataRepository) FindByContractAndCycle(ctx context.Context, contractID uuid.UUID, cycle billing.Cycle) (*billing.ProRataPeriod, error) {
	args := m.Called(ctx, contractID, cycle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.ProRataPeriod), args.Error(1)
}

func (m *MockProRataRepository) FindByCycle(ctx context.Context, cycle billing.Cycle) ([]billing.ProRataPeriod, error) {
	args := m.Called(ctx, cycle)
	return args.Get(0).([]billing.ProRataPeriod), args.Error(1)
}

func (m *MockProRataRepository) Save(ctx context.Context, period *billing.ProRataPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockProRataRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAdditionalChargeRepository struct {
	mock.Mock
}

func (m *MockAdditionalChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.AdditionalCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.AdditionalCharge), args.Error(1)
}

func (m *MockAdditionalChargeRepository) FindActiveByContracts(ctx context.Context, contractIDs []uuid.UUID) ([]billing.AdditionalCharge, error) {
	args := m.Called(ctx, contractIDs)
	return args.Get(0).([]billing.AdditionalCharge), args.Error(1)
}

func (m *MockAdditionalChargeRepository) Save(ctx context.Context, charge *billing.AdditionalCharge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockAdditionalChargeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSlipRecordRepository struct {
	mock.Mock
}

func (m *MockSlipRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*slip.SlipRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slip.SlipRecord), args.Error(1)
}

func (m *MockSlipRecordRepository) FindByBatch(ctx context.Context, batchID string) ([]slip.SlipRecord, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).([]slip.SlipRecord), args.Error(1)
}

func (m *MockSlipRecordRepository) Find(ctx context.Context, filter slip.SlipRecordFilter) ([]slip.SlipRecord, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]slip.SlipRecord), args.Get(1).(int64), args.Error(2)
}

func (m *MockSlipRecordRepository) ListBatches(ctx context.Context) ([]slip.SlipBatch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]slip.SlipBatch), args.Error(1)
}

func (m *MockSlipRecordRepository) HasChargeApplication(ctx context.Context, chargeID uuid.UUID, excludeBatchID string) (bool, error) {
	args := m.Called(ctx, chargeID, excludeBatchID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSlipRecordRepository) SaveAll(ctx context.Context, records []slip.SlipRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockSlipRecordRepository) Update(ctx context.Context, record *slip.SlipRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSlipRecordRepository) ConfirmBatch(ctx context.Context, batchID string) error {
	args := m.Called(ctx, batchID)
	return args.Error(0)
}

func (m *MockSlipRecordRepository) DeleteBatch(ctx context.Context, batchID string) error {
	args := m.Called(ctx, batchID)
	return args.Error(0)
}

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindByDate(ctx context.Context, rateDate time.Time, from, to string, rateType slip.RateType) (*slip.ExchangeRate, error) {
	args := m.Called(ctx, rateDate, from, to, rateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slip.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindRecent(ctx context.Context, from, to string, limit int) ([]slip.ExchangeRate, error) {
	args := m.Called(ctx, from, to, limit)
	return args.Get(0).([]slip.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) Insert(ctx context.Context, rate *slip.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) Upsert(ctx context.Context, rate *slip.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

type MockVendorConfigRepository struct {
	mock.Mock
}

func (m *MockVendorConfigRepository) FindByVendor(ctx context.Context, vendor string) (*slip.VendorConfig, error) {
	args := m.Called(ctx, vendor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slip.VendorConfig), args.Error(1)
}

func (m *MockVendorConfigRepository) Save(ctx context.Context, cfg *slip.VendorConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

type MockRateSyncer struct {
	mock.Mock
}

func (m *MockRateSyncer) SyncRecent(ctx context.Context, days int) (int, error) {
	args := m.Called(ctx, days)
	return args.Int(0), args.Error(1)
}
