package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSlipRecordRepository implements SlipRecordRepository using GORM.
// ConfirmBatch and DeleteBatch run inside one transaction each so a batch
// can never end up partially confirmed or partially deleted.
type GormSlipRecordRepository struct {
	db *gorm.DB
}

// NewGormSlipRecordRepository creates a new GormSlipRecordRepository
func NewGormSlipRecordRepository(db *gorm.DB) *GormSlipRecordRepository {
	return &GormSlipRecordRepository{db: db}
}

// FindByID finds a slip record by its ID, returning nil when missing
func (r *GormSlipRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*slip.SlipRecord, error) {
	var record slip.SlipRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// FindByBatch returns every record of a batch in seqno order
func (r *GormSlipRecordRepository) FindByBatch(ctx context.Context, batchID string) ([]slip.SlipRecord, error) {
	var records []slip.SlipRecord
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("seqno ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Find returns a filtered page of slip records with the total row count
func (r *GormSlipRecordRepository) Find(ctx context.Context, filter slip.SlipRecordFilter) ([]slip.SlipRecord, int64, error) {
	query := r.db.WithContext(ctx).Model(&slip.SlipRecord{})

	if filter.BatchID != nil {
		query = query.Where("batch_id = ?", *filter.BatchID)
	}
	if filter.BillingCycle != nil {
		query = query.Where("billing_cycle = ?", *filter.BillingCycle)
	}
	if filter.SlipType != nil {
		query = query.Where("slip_type = ?", *filter.SlipType)
	}
	if filter.HasBP != nil {
		if *filter.HasBP {
			query = query.Where("partner IS NOT NULL AND partner <> ''")
		} else {
			query = query.Where("partner IS NULL OR partner = ''")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var records []slip.SlipRecord
	if err := query.Order("batch_id ASC, seqno ASC").Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// batchRow is the scan target of the batch aggregation query
type batchRow struct {
	BatchID      string
	BillingCycle string
	SlipType     string
	RecordCount  int64
	ForeignCount int64
	ConfirmCount int64
	TotalAmount  decimal.Decimal
	CreatedAt    time.Time
}

// ListBatches derives the batch list from the record set: one row per batch
// id with counts, totals and the confirm-derived status. The total sums KRW
// lines only; overseas lines in other currencies cannot share a sum and are
// surfaced through the foreign line count instead.
func (r *GormSlipRecordRepository) ListBatches(ctx context.Context) ([]slip.SlipBatch, error) {
	var rows []batchRow
	if err := r.db.WithContext(ctx).Model(&slip.SlipRecord{}).
		Select("batch_id, " +
			"MAX(billing_cycle) AS billing_cycle, " +
			"MAX(slip_type) AS slip_type, " +
			"COUNT(*) AS record_count, " +
			"SUM(CASE WHEN waers <> 'KRW' THEN 1 ELSE 0 END) AS foreign_count, " +
			"SUM(CASE WHEN is_confirmed THEN 1 ELSE 0 END) AS confirm_count, " +
			"SUM(CASE WHEN waers = 'KRW' THEN wrbtr ELSE 0 END) AS total_amount, " +
			"MIN(created_at) AS created_at").
		Group("batch_id").
		Order("created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	batches := make([]slip.SlipBatch, 0, len(rows))
	for _, row := range rows {
		status := slip.BatchStatusDraft
		if row.ConfirmCount == row.RecordCount && row.RecordCount > 0 {
			status = slip.BatchStatusConfirmed
		}
		batches = append(batches, slip.SlipBatch{
			BatchID:      row.BatchID,
			BillingCycle: row.BillingCycle,
			SlipType:     slip.SlipType(row.SlipType),
			Status:       status,
			RecordCount:  row.RecordCount,
			ForeignCount: row.ForeignCount,
			TotalAmount:  row.TotalAmount,
			CreatedAt:    row.CreatedAt,
		})
	}
	return batches, nil
}

// HasChargeApplication reports whether any slip line for the given charge
// exists outside the given batch. One-time charges stop applying once such
// a line exists.
func (r *GormSlipRecordRepository) HasChargeApplication(ctx context.Context, chargeID uuid.UUID, excludeBatchID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&slip.SlipRecord{}).
		Where("source_type = ? AND source_ref = ? AND batch_id <> ?",
			slip.SourceTypeAdditionalCharge, chargeID.String(), excludeBatchID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveAll stores a record set in batches
func (r *GormSlipRecordRepository) SaveAll(ctx context.Context, records []slip.SlipRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(records, 200).Error
}

// Update rewrites one record
func (r *GormSlipRecordRepository) Update(ctx context.Context, record *slip.SlipRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// ConfirmBatch flips every record of a batch to confirmed inside one
// transaction. An already-confirmed record aborts it, and the partner gate
// is re-checked in the same transaction: a concurrent patch clearing a
// partner between the caller's read and this commit cannot slip a
// partner-less record into a confirmed batch.
func (r *GormSlipRecordRepository) ConfirmBatch(ctx context.Context, batchID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var confirmed int64
		if err := tx.Model(&slip.SlipRecord{}).
			Where("batch_id = ? AND is_confirmed = ?", batchID, true).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if confirmed > 0 {
			return shared.NewDomainError("BATCH_CONFIRMED", "Batch is already confirmed")
		}
		var unmapped int64
		if err := tx.Model(&slip.SlipRecord{}).
			Where("batch_id = ? AND (partner IS NULL OR partner = '')", batchID).
			Count(&unmapped).Error; err != nil {
			return err
		}
		if unmapped > 0 {
			return shared.ErrUnmappedPartner
		}
		result := tx.Model(&slip.SlipRecord{}).
			Where("batch_id = ?", batchID).
			Update("is_confirmed", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// DeleteBatch removes every record of a batch inside one transaction.
// Confirmed records make the batch immutable.
func (r *GormSlipRecordRepository) DeleteBatch(ctx context.Context, batchID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var confirmed int64
		if err := tx.Model(&slip.SlipRecord{}).
			Where("batch_id = ? AND is_confirmed = ?", batchID, true).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if confirmed > 0 {
			return shared.NewDomainError("BATCH_CONFIRMED", "Cannot delete a confirmed batch")
		}
		return tx.Delete(&slip.SlipRecord{}, "batch_id = ?", batchID).Error
	})
}

var _ slip.SlipRecordRepository = (*GormSlipRecordRepository)(nil)
