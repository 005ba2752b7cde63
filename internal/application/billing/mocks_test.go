package billing

import (
	"context"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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
