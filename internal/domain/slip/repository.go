package slip

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SlipRecordFilter narrows slip record queries
type SlipRecordFilter struct {
	BatchID      *string
	BillingCycle *string
	SlipType     *SlipType
	HasBP        *bool
	Limit        int
	Offset       int
}

// SlipRecordRepository defines persistence for slip records and their
// batch-level state transitions. ConfirmBatch and DeleteBatch must be
// atomic: either every record in the batch changes or none does.
type SlipRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SlipRecord, error)
	FindByBatch(ctx context.Context, batchID string) ([]SlipRecord, error)
	Find(ctx context.Context, filter SlipRecordFilter) ([]SlipRecord, int64, error)
	ListBatches(ctx context.Context) ([]SlipBatch, error)
	// HasChargeApplication reports whether any slip line for the given
	// additional charge exists outside the given batch.
	HasChargeApplication(ctx context.Context, chargeID uuid.UUID, excludeBatchID string) (bool, error)
	SaveAll(ctx context.Context, records []SlipRecord) error
	Update(ctx context.Context, record *SlipRecord) error
	ConfirmBatch(ctx context.Context, batchID string) error
	DeleteBatch(ctx context.Context, batchID string) error
}

// ExchangeRateRepository defines persistence for exchange rates.
// Insert rejects duplicates for the same (date, pair, type); Upsert is
// reserved for sync and manual corrections.
type ExchangeRateRepository interface {
	FindByDate(ctx context.Context, rateDate time.Time, from, to string, rateType RateType) (*ExchangeRate, error)
	FindRecent(ctx context.Context, from, to string, limit int) ([]ExchangeRate, error)
	Insert(ctx context.Context, rate *ExchangeRate) error
	Upsert(ctx context.Context, rate *ExchangeRate) error
}

// VendorConfigRepository loads and stores per-vendor slip configuration
type VendorConfigRepository interface {
	FindByVendor(ctx context.Context, vendor string) (*VendorConfig, error)
	Save(ctx context.Context, cfg *VendorConfig) error
}
