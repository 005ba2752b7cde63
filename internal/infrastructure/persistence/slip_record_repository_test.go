package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlipRecord(batchID string, seqno int, partner *string) slip.SlipRecord {
	return slip.SlipRecord{
		BaseEntity:   shared.NewBaseEntity(),
		BatchID:      batchID,
		SlipType:     slip.SlipTypeSales,
		Vendor:       "alibaba",
		BillingCycle: "202506",
		SourceType:   slip.SourceTypeBilling,
		Seqno:        seqno,
		Bukrs:        "1100",
		Bldat:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Budat:        time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Waers:        "KRW",
		Partner:      partner,
		Wrbtr:        decimal.NewFromInt(1000),
	}
}

func TestSlipRecordRepository_FindAndFilter(t *testing.T) {
	db := newTestDB(t, &slip.SlipRecord{})
	repo := NewGormSlipRecordRepository(db)
	ctx := context.Background()

	records := []slip.SlipRecord{
		newSlipRecord("batch-a", 1, strPtr("BP001")),
		newSlipRecord("batch-a", 2, nil),
		newSlipRecord("batch-b", 1, strPtr("BP002")),
	}
	require.NoError(t, repo.SaveAll(ctx, records))

	t.Run("finds by batch in seqno order", func(t *testing.T) {
		found, err := repo.FindByBatch(ctx, "batch-a")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, 1, found[0].Seqno)
		assert.Equal(t, 2, found[1].Seqno)
	})

	t.Run("filters lines without a partner", func(t *testing.T) {
		noBP := false
		found, total, err := repo.Find(ctx, slip.SlipRecordFilter{HasBP: &noBP})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, found, 1)
		assert.Nil(t, found[0].Partner)
	})

	t.Run("paginates with total count", func(t *testing.T) {
		found, total, err := repo.Find(ctx, slip.SlipRecordFilter{Limit: 2, Offset: 0})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, found, 2)
	})

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, records[0].ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "batch-a", found.BatchID)
	})

	t.Run("missing id yields nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestSlipRecordRepository_ConfirmBatch(t *testing.T) {
	db := newTestDB(t, &slip.SlipRecord{})
	repo := NewGormSlipRecordRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []slip.SlipRecord{
		newSlipRecord("batch-c", 1, strPtr("BP001")),
		newSlipRecord("batch-c", 2, strPtr("BP002")),
	}))

	t.Run("confirms every record", func(t *testing.T) {
		require.NoError(t, repo.ConfirmBatch(ctx, "batch-c"))
		found, err := repo.FindByBatch(ctx, "batch-c")
		require.NoError(t, err)
		for _, r := range found {
			assert.True(t, r.IsConfirmed)
		}
	})

	t.Run("rejects a second confirmation", func(t *testing.T) {
		err := repo.ConfirmBatch(ctx, "batch-c")
		require.Error(t, err)
	})

	t.Run("unknown batch yields not found", func(t *testing.T) {
		err := repo.ConfirmBatch(ctx, "no-such-batch")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("partner gate holds inside the transaction", func(t *testing.T) {
		// A record losing its partner after the caller's precondition read
		// must still block the confirm at commit time.
		require.NoError(t, repo.SaveAll(ctx, []slip.SlipRecord{
			newSlipRecord("batch-d", 1, strPtr("BP001")),
			newSlipRecord("batch-d", 2, nil),
		}))

		err := repo.ConfirmBatch(ctx, "batch-d")
		assert.ErrorIs(t, err, shared.ErrUnmappedPartner)

		found, findErr := repo.FindByBatch(ctx, "batch-d")
		require.NoError(t, findErr)
		for _, r := range found {
			assert.False(t, r.IsConfirmed)
		}
	})

	t.Run("empty partner string blocks like nil", func(t *testing.T) {
		require.NoError(t, repo.SaveAll(ctx, []slip.SlipRecord{
			newSlipRecord("batch-e", 1, strPtr("")),
		}))
		err := repo.ConfirmBatch(ctx, "batch-e")
		assert.ErrorIs(t, err, shared.ErrUnmappedPartner)
	})
}

func TestSlipRecordRepository_DeleteBatch(t *testing.T) {
	db := newTestDB(t, &slip.SlipRecord{})
	repo := NewGormSlipRecordRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, []slip.SlipRecord{
		newSlipRecord("draft", 1, nil),
		newSlipRecord("final", 1, strPtr("BP001")),
	}))
	require.NoError(t, repo.ConfirmBatch(ctx, "final"))

	t.Run("deletes a draft batch", func(t *testing.T) {
		require.NoError(t, repo.DeleteBatch(ctx, "draft"))
		found, err := repo.FindByBatch(ctx, "draft")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("refuses to delete a confirmed batch", func(t *testing.T) {
		err := repo.DeleteBatch(ctx, "final")
		require.Error(t, err)
		found, findErr := repo.FindByBatch(ctx, "final")
		require.NoError(t, findErr)
		assert.Len(t, found, 1)
	})
}

func TestSlipRecordRepository_ListBatches(t *testing.T) {
	db := newTestDB(t, &slip.SlipRecord{})
	repo := NewGormSlipRecordRepository(db)
	ctx := context.Background()

	overseas := newSlipRecord("batch-x", 3, strPtr("BP003"))
	overseas.Waers = "USD"
	overseas.Wrbtr = decimal.NewFromFloat(150.25)

	require.NoError(t, repo.SaveAll(ctx, []slip.SlipRecord{
		newSlipRecord("batch-x", 1, strPtr("BP001")),
		newSlipRecord("batch-x", 2, strPtr("BP002")),
		overseas,
		newSlipRecord("batch-y", 1, nil),
	}))
	require.NoError(t, repo.ConfirmBatch(ctx, "batch-x"))

	batches, err := repo.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 2)

	byID := map[string]slip.SlipBatch{}
	for _, b := range batches {
		byID[b.BatchID] = b
	}
	assert.Equal(t, slip.BatchStatusConfirmed, byID["batch-x"].Status)
	assert.Equal(t, int64(3), byID["batch-x"].RecordCount)
	// Only the KRW lines sum; the USD line is counted, not added.
	assert.True(t, byID["batch-x"].TotalAmount.Equal(decimal.NewFromInt(2000)), byID["batch-x"].TotalAmount.String())
	assert.Equal(t, int64(1), byID["batch-x"].ForeignCount)
	assert.Equal(t, slip.BatchStatusDraft, byID["batch-y"].Status)
	assert.Equal(t, int64(0), byID["batch-y"].ForeignCount)
}

func TestSlipRecordRepository_HasChargeApplication(t *testing.T) {
	db := newTestDB(t, &slip.SlipRecord{})
	repo := NewGormSlipRecordRepository(db)
	ctx := context.Background()

	chargeID := uuid.New()
	ref := chargeID.String()
	record := newSlipRecord("old-batch", 1, strPtr("BP001"))
	record.SourceType = slip.SourceTypeAdditionalCharge
	record.SourceRef = &ref
	require.NoError(t, repo.SaveAll(ctx, []slip.SlipRecord{record}))

	t.Run("line in another batch counts as applied", func(t *testing.T) {
		applied, err := repo.HasChargeApplication(ctx, chargeID, "new-batch")
		require.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("own batch is excluded", func(t *testing.T) {
		applied, err := repo.HasChargeApplication(ctx, chargeID, "old-batch")
		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("unknown charge is unapplied", func(t *testing.T) {
		applied, err := repo.HasChargeApplication(ctx, uuid.New(), "new-batch")
		require.NoError(t, err)
		assert.False(t, applied)
	})
}
