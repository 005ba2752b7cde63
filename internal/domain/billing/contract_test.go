package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNewContract(t *testing.T) {
	t.Run("creates enabled contract", func(t *testing.T) {
		c, err := NewContract(42, uuid.New(), "ACME Alibaba")
		require.NoError(t, err)
		assert.True(t, c.Enabled)
		assert.Equal(t, int64(42), c.Seq)
	})

	t.Run("rejects missing company", func(t *testing.T) {
		_, err := NewContract(42, uuid.Nil, "x")
		require.Error(t, err)
	})

	t.Run("rejects non-positive seq", func(t *testing.T) {
		_, err := NewContract(0, uuid.New(), "x")
		require.Error(t, err)
	})
}

func TestContractCodes(t *testing.T) {
	c, err := NewContract(1, uuid.New(), "test")
	require.NoError(t, err)

	t.Run("defaults when unset", func(t *testing.T) {
		assert.Equal(t, "매출ALI999", c.EffectiveSalesCode())
		assert.Equal(t, "매입ALI999", c.EffectivePurchaseCode())
	})

	t.Run("derives purchase code from sales code", func(t *testing.T) {
		code := "매출ALI123"
		c.SalesContractCode = &code
		assert.Equal(t, "매입ALI123", c.EffectivePurchaseCode())
	})

	t.Run("unrecognized sales code falls back", func(t *testing.T) {
		assert.Equal(t, "매입ALI999", DerivePurchaseCode("CUSTOM999"))
	})
}

func TestContractActiveDaysIn(t *testing.T) {
	cycle := MustCycle("202506") // 30 days

	t.Run("no dates covers full month", func(t *testing.T) {
		c := Contract{}
		start, end, ok := c.ActiveDaysIn(cycle)
		require.True(t, ok)
		assert.Equal(t, 1, start)
		assert.Equal(t, 30, end)
	})

	t.Run("mid-month start", func(t *testing.T) {
		c := Contract{StartDate: date(2025, 6, 15)}
		start, end, ok := c.ActiveDaysIn(cycle)
		require.True(t, ok)
		assert.Equal(t, 15, start)
		assert.Equal(t, 30, end)
	})

	t.Run("mid-month end", func(t *testing.T) {
		c := Contract{EndDate: date(2025, 6, 10)}
		start, end, ok := c.ActiveDaysIn(cycle)
		require.True(t, ok)
		assert.Equal(t, 1, start)
		assert.Equal(t, 10, end)
	})

	t.Run("contract not yet started", func(t *testing.T) {
		c := Contract{StartDate: date(2025, 7, 1)}
		_, _, ok := c.ActiveDaysIn(cycle)
		assert.False(t, ok)
	})

	t.Run("contract already ended", func(t *testing.T) {
		c := Contract{EndDate: date(2025, 5, 31)}
		_, _, ok := c.ActiveDaysIn(cycle)
		assert.False(t, ok)
	})

	t.Run("start on first day with open end covers full month", func(t *testing.T) {
		c := Contract{StartDate: date(2025, 6, 1)}
		start, end, ok := c.ActiveDaysIn(cycle)
		require.True(t, ok)
		assert.Equal(t, 1, start)
		assert.Equal(t, 30, end)
	})
}
