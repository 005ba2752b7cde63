package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCycle(t *testing.T) {
	t.Run("accepts YYYYMM", func(t *testing.T) {
		c, err := ParseCycle("202512")
		require.NoError(t, err)
		assert.Equal(t, 2025, c.Year())
		assert.Equal(t, time.December, c.Month())
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		for _, bad := range []string{"", "2025", "2025-12", "202513", "abc123", "20251201"} {
			_, err := ParseCycle(bad)
			assert.Error(t, err, bad)
		}
	})
}

func TestCycleBounds(t *testing.T) {
	c := MustCycle("202502")
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), c.Start())
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), c.End())
	assert.Equal(t, 28, c.Days())
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), c.PrevMonthEnd())

	leap := MustCycle("202402")
	assert.Equal(t, 29, leap.Days())
}

func TestCycleContains(t *testing.T) {
	c := MustCycle("202506")
	assert.True(t, c.Contains(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.False(t, c.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCycleMonthLabel(t *testing.T) {
	assert.Equal(t, "03", MustCycle("202503").MonthLabel())
	assert.Equal(t, "12", MustCycle("202512").MonthLabel())
}
