package billing

import (
	"fmt"
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
)

// Cycle is a vendor billing period keyed as YYYYMM (e.g. "202512")
type Cycle string

// ParseCycle validates and returns a billing cycle key
func ParseCycle(s string) (Cycle, error) {
	if len(s) != 6 {
		return "", shared.NewDomainError("INVALID_CYCLE", fmt.Sprintf("Billing cycle must be YYYYMM, got %q", s))
	}
	t, err := time.Parse("200601", s)
	if err != nil {
		return "", shared.NewDomainError("INVALID_CYCLE", fmt.Sprintf("Billing cycle must be YYYYMM, got %q", s))
	}
	if t.Year() < 2000 || t.Year() > 2100 {
		return "", shared.NewDomainError("INVALID_CYCLE", fmt.Sprintf("Billing cycle year out of range: %q", s))
	}
	return Cycle(s), nil
}

// MustCycle parses a cycle and panics on failure. Test helper.
func MustCycle(s string) Cycle {
	c, err := ParseCycle(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the YYYYMM key
func (c Cycle) String() string {
	return string(c)
}

// Year returns the cycle year
func (c Cycle) Year() int {
	t, _ := time.Parse("200601", string(c))
	return t.Year()
}

// Month returns the cycle month
func (c Cycle) Month() time.Month {
	t, _ := time.Parse("200601", string(c))
	return t.Month()
}

// Start returns the first day of the cycle month (UTC)
func (c Cycle) Start() time.Time {
	t, _ := time.Parse("200601", string(c))
	return t
}

// End returns the last day of the cycle month (UTC)
func (c Cycle) End() time.Time {
	return c.Start().AddDate(0, 1, -1)
}

// Days returns the number of calendar days in the cycle month
func (c Cycle) Days() int {
	return c.End().Day()
}

// Contains reports whether the given date falls inside the cycle month
func (c Cycle) Contains(d time.Time) bool {
	return d.Year() == c.Year() && d.Month() == c.Month()
}

// PrevMonthEnd returns the last day of the month preceding the cycle
func (c Cycle) PrevMonthEnd() time.Time {
	return c.Start().AddDate(0, 0, -1)
}

// MonthLabel returns the two-digit month string used in slip descriptions
func (c Cycle) MonthLabel() string {
	return string(c)[4:6]
}
