package billing

import (
	"testing"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alloc(splitType SplitType, value float64, priority int) SplitBillingAllocation {
	return SplitBillingAllocation{
		BaseEntity:      shared.NewBaseEntity(),
		TargetCompanyID: uuid.New(),
		SplitType:       splitType,
		SplitValue:      decimal.NewFromFloat(value),
		Priority:        priority,
	}
}

func TestNewSplitBillingRule(t *testing.T) {
	contractID := uuid.New()

	t.Run("creates rule with ordered allocations", func(t *testing.T) {
		rule, err := NewSplitBillingRule("uid-1", contractID, "", []SplitBillingAllocation{
			alloc(SplitTypePercentage, 60, 0),
			alloc(SplitTypeFixedAmount, 20, 1),
		})
		require.NoError(t, err)
		assert.Equal(t, "Split rule for uid-1", rule.Name)
		assert.True(t, rule.IsActive)
		assert.Len(t, rule.Allocations, 2)
		for _, a := range rule.Allocations {
			assert.Equal(t, rule.ID, a.RuleID)
		}
	})

	t.Run("rejects empty allocation list", func(t *testing.T) {
		_, err := NewSplitBillingRule("uid-1", contractID, "", nil)
		require.Error(t, err)
	})

	t.Run("rejects percentage total above 100", func(t *testing.T) {
		_, err := NewSplitBillingRule("uid-1", contractID, "", []SplitBillingAllocation{
			alloc(SplitTypePercentage, 70, 0),
			alloc(SplitTypePercentage, 40, 1),
		})
		require.Error(t, err)
	})

	t.Run("fixed amounts do not count toward the percentage cap", func(t *testing.T) {
		_, err := NewSplitBillingRule("uid-1", contractID, "", []SplitBillingAllocation{
			alloc(SplitTypePercentage, 90, 0),
			alloc(SplitTypeFixedAmount, 5000, 1),
		})
		require.NoError(t, err)
	})

	t.Run("rejects non-positive split value", func(t *testing.T) {
		_, err := NewSplitBillingRule("uid-1", contractID, "", []SplitBillingAllocation{
			alloc(SplitTypePercentage, 0, 0),
		})
		require.Error(t, err)
	})
}

func TestSplitRuleIsEffectiveFor(t *testing.T) {
	cycle := MustCycle("202506")

	t.Run("inactive rule never applies", func(t *testing.T) {
		r := SplitBillingRule{IsActive: false}
		assert.False(t, r.IsEffectiveFor(cycle))
	})

	t.Run("open-ended rule applies", func(t *testing.T) {
		r := SplitBillingRule{IsActive: true}
		assert.True(t, r.IsEffectiveFor(cycle))
	})

	t.Run("rule honors effective window", func(t *testing.T) {
		r := SplitBillingRule{
			IsActive:      true,
			EffectiveFrom: date(2025, 6, 1),
			EffectiveTo:   date(2025, 6, 30),
		}
		assert.True(t, r.IsEffectiveFor(cycle))
		assert.False(t, r.IsEffectiveFor(MustCycle("202507")))
		assert.False(t, r.IsEffectiveFor(MustCycle("202505")))
	})
}

func TestOrderedAllocations(t *testing.T) {
	a := alloc(SplitTypePercentage, 10, 2)
	b := alloc(SplitTypePercentage, 20, 0)
	c := alloc(SplitTypeFixedAmount, 30, 1)
	rule := SplitBillingRule{Allocations: []SplitBillingAllocation{a, b, c}}

	ordered := rule.OrderedAllocations()
	assert.Equal(t, []int{0, 1, 2}, []int{ordered[0].Priority, ordered[1].Priority, ordered[2].Priority})
	// input slice untouched
	assert.Equal(t, 2, rule.Allocations[0].Priority)
}
