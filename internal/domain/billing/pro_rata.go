package billing

import (
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProRataPeriod pins a manual day range for a (contract, cycle). Manual
// periods take precedence over derivation from contract dates.
type ProRataPeriod struct {
	shared.BaseEntity
	ContractID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_prorata_contract_cycle,priority:1"`
	BillingCycle string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_prorata_contract_cycle,priority:2;index"`

	StartDay   int             `gorm:"not null"`
	EndDay     int             `gorm:"not null"`
	TotalDays  int             `gorm:"not null"`
	ActiveDays int             `gorm:"not null"`
	Ratio      decimal.Decimal `gorm:"type:decimal(10,6);not null"`

	IsManual bool    `gorm:"not null;default:false"`
	Note     *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProRataPeriod) TableName() string {
	return "pro_rata_periods"
}

// NewProRataPeriod creates a manual pro-rata period for a contract and
// cycle. Day bounds are clamped to the cycle month.
func NewProRataPeriod(contractID uuid.UUID, cycle Cycle, startDay, endDay int, note *string) (*ProRataPeriod, error) {
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Pro-rata contract cannot be empty")
	}
	totalDays, activeDays, ratio := ProRataRatio(cycle, startDay, endDay)
	return &ProRataPeriod{
		BaseEntity:   shared.NewBaseEntity(),
		ContractID:   contractID,
		BillingCycle: cycle.String(),
		StartDay:     startDay,
		EndDay:       endDay,
		TotalDays:    totalDays,
		ActiveDays:   activeDays,
		Ratio:        ratio,
		IsManual:     true,
		Note:         note,
	}, nil
}

// ProRataRatio computes the day-count ratio for a day range within a cycle
// month. Day bounds are clamped to [1, days-in-month]; an inverted range
// yields zero active days.
func ProRataRatio(cycle Cycle, startDay, endDay int) (totalDays, activeDays int, ratio decimal.Decimal) {
	totalDays = cycle.Days()
	startDay = clampDay(startDay, totalDays)
	endDay = clampDay(endDay, totalDays)

	if startDay > endDay {
		activeDays = 0
	} else {
		activeDays = endDay - startDay + 1
	}
	ratio = decimal.NewFromInt(int64(activeDays)).
		Div(decimal.NewFromInt(int64(totalDays))).
		Round(6)
	return totalDays, activeDays, ratio
}

func clampDay(day, totalDays int) int {
	if day < 1 {
		return 1
	}
	if day > totalDays {
		return totalDays
	}
	return day
}
