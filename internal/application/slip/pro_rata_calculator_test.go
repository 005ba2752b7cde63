package slip

import (
	"context"
	"testing"
	"time"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testContract(t *testing.T, start, end *time.Time) *billing.Contract {
	t.Helper()
	contract, err := billing.NewContract(1001, uuid.New(), "Test Corp")
	require.NoError(t, err)
	contract.StartDate = start
	contract.EndDate = end
	return contract
}

func TestRatioFor(t *testing.T) {
	ctx := context.Background()
	cycle := billing.MustCycle("202506") // 30 days

	t.Run("full month without dates", func(t *testing.T) {
		repo := new(MockProRataRepository)
		repo.On("FindByContractAndCycle", ctx, mock.Anything, cycle).Return(nil, nil)

		calc := NewProRataCalculator(repo)
		got, err := calc.RatioFor(ctx, testContract(t, nil, nil), nil, cycle, true)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1).Equal(got.Ratio))
		assert.False(t, got.IsManual)
	})

	t.Run("contract starting mid month", func(t *testing.T) {
		repo := new(MockProRataRepository)
		repo.On("FindByContractAndCycle", ctx, mock.Anything, cycle).Return(nil, nil)

		start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		calc := NewProRataCalculator(repo)
		got, err := calc.RatioFor(ctx, testContract(t, &start, nil), nil, cycle, true)
		require.NoError(t, err)
		// Days 15..30 of a 30-day month: 16/30 = 0.533333
		assert.Equal(t, 16, got.ActiveDays)
		assert.Equal(t, 30, got.TotalDays)
		assert.True(t, decimal.NewFromFloat(0.533333).Equal(got.Ratio), got.Ratio.String())
	})

	t.Run("manual period wins over contract dates", func(t *testing.T) {
		contract := testContract(t, nil, nil)
		manual, err := billing.NewProRataPeriod(contract.ID, cycle, 1, 10, nil)
		require.NoError(t, err)

		repo := new(MockProRataRepository)
		repo.On("FindByContractAndCycle", ctx, contract.ID, cycle).Return(manual, nil)

		calc := NewProRataCalculator(repo)
		got, err := calc.RatioFor(ctx, contract, nil, cycle, true)
		require.NoError(t, err)
		assert.True(t, got.IsManual)
		assert.Equal(t, 10, got.ActiveDays)
		assert.True(t, decimal.NewFromFloat(0.333333).Equal(got.Ratio), got.Ratio.String())
	})

	t.Run("profile disables derivation", func(t *testing.T) {
		repo := new(MockProRataRepository)
		repo.On("FindByContractAndCycle", ctx, mock.Anything, cycle).Return(nil, nil)

		start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		profile := &billing.ContractBillingProfile{ProRataOverride: billing.ProRataDisabled}

		calc := NewProRataCalculator(repo)
		got, err := calc.RatioFor(ctx, testContract(t, &start, nil), profile, cycle, true)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(1).Equal(got.Ratio))
	})

	t.Run("profile enables derivation against vendor default", func(t *testing.T) {
		repo := new(MockProRataRepository)
		repo.On("FindByContractAndCycle", ctx, mock.Anything, cycle).Return(nil, nil)

		start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
		profile := &billing.ContractBillingProfile{ProRataOverride: billing.ProRataEnabled}

		calc := NewProRataCalculator(repo)
		got, err := calc.RatioFor(ctx, testContract(t, &start, nil), profile, cycle, false)
		require.NoError(t, err)
		assert.Equal(t, 16, got.ActiveDays)
	})

	t.Run("contract entirely outside the cycle yields zero", func(t *testing.T) {
		repo := new(MockProRataRepository)
		repo.On("FindByContractAndCycle", ctx, mock.Anything, cycle).Return(nil, nil)

		end := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
		calc := NewProRataCalculator(repo)
		got, err := calc.RatioFor(ctx, testContract(t, nil, &end), nil, cycle, true)
		require.NoError(t, err)
		assert.True(t, got.Ratio.IsZero())
	})

	t.Run("corrupt manual ratio is clamped and flagged", func(t *testing.T) {
		contract := testContract(t, nil, nil)
		manual := &billing.ProRataPeriod{
			BaseEntity:   shared.NewBaseEntity(),
			ContractID:   contract.ID,
			BillingCycle: cycle.String(),
			Ratio:        decimal.NewFromFloat(1.5),
			ActiveDays:   45,
			TotalDays:    30,
			IsManual:     true,
		}

		repo := new(MockProRataRepository)
		repo.On("FindByContractAndCycle", ctx, contract.ID, cycle).Return(manual, nil)

		calc := NewProRataCalculator(repo)
		got, err := calc.RatioFor(ctx, contract, nil, cycle, true)
		require.NoError(t, err)
		assert.True(t, got.OutOfRange)
		assert.True(t, decimal.NewFromInt(1).Equal(got.Ratio))
	})
}
