package slip

import (
	"context"
	"fmt"

	"github.com/gmu1026/billing/internal/domain/partner"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BatchService manages the slip batch lifecycle after generation: listing,
// manual patches, all-or-nothing confirmation and draft deletion.
type BatchService struct {
	slipRepo slip.SlipRecordRepository
	bpRepo   partner.BPCodeRepository
	logger   *zap.Logger
}

// NewBatchService creates a new BatchService
func NewBatchService(slipRepo slip.SlipRecordRepository, bpRepo partner.BPCodeRepository, logger *zap.Logger) *BatchService {
	return &BatchService{slipRepo: slipRepo, bpRepo: bpRepo, logger: logger}
}

// SlipListFilter narrows the slip listing
type SlipListFilter struct {
	BatchID      string `form:"batch_id"`
	BillingCycle string `form:"billing_cycle"`
	SlipType     string `form:"slip_type"`
	HasBP        *bool  `form:"has_bp"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}

// SlipListResult is one page of slip records with the total row count
type SlipListResult struct {
	Records []slip.SlipRecord `json:"records"`
	Total   int64             `json:"total"`
}

// ListSlips returns a filtered page of slip records
func (s *BatchService) ListSlips(ctx context.Context, filter SlipListFilter) (*SlipListResult, error) {
	repoFilter := slip.SlipRecordFilter{}
	if filter.BatchID != "" {
		repoFilter.BatchID = &filter.BatchID
	}
	if filter.BillingCycle != "" {
		repoFilter.BillingCycle = &filter.BillingCycle
	}
	if filter.SlipType != "" {
		st := slip.SlipType(filter.SlipType)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_SLIP_TYPE", "Slip type must be sales or purchase")
		}
		repoFilter.SlipType = &st
	}
	repoFilter.HasBP = filter.HasBP

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 500 {
		pageSize = 100
	}
	repoFilter.Limit = pageSize
	repoFilter.Offset = (page - 1) * pageSize

	records, total, err := s.slipRepo.Find(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	return &SlipListResult{Records: records, Total: total}, nil
}

// ListBatches returns every batch with its derived status and totals
func (s *BatchService) ListBatches(ctx context.Context) ([]slip.SlipBatch, error) {
	return s.slipRepo.ListBatches(ctx)
}

// PatchSlipRequest carries the operator-editable fields of one slip line
type PatchSlipRequest struct {
	Partner   *string          `json:"partner"`
	ARAccount *string          `json:"ar_account"`
	Wrbtr     *decimal.Decimal `json:"wrbtr"`
	Zzsconid  *string          `json:"zzsconid"`
	Zzsempnm  *string          `json:"zzsempnm"`
	Zzinvno   *string          `json:"zzinvno"`
}

// PatchSlip rewrites editable fields on an unconfirmed slip line. Patching
// the partner looks the BP master up and rewrites the partner name with it.
func (s *BatchService) PatchSlip(ctx context.Context, id uuid.UUID, req PatchSlipRequest) (*slip.SlipRecord, error) {
	record, err := s.slipRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, shared.ErrNotFound
	}

	patch := slip.SlipPatch{
		ARAccount: req.ARAccount,
		Wrbtr:     req.Wrbtr,
		Zzsconid:  req.Zzsconid,
		Zzsempnm:  req.Zzsempnm,
		Zzinvno:   req.Zzinvno,
	}
	if req.Partner != nil {
		patch.Partner = req.Partner
		bp, err := s.bpRepo.FindByBPNumber(ctx, *req.Partner)
		if err != nil {
			return nil, err
		}
		if bp != nil {
			name := bp.DisplayName()
			patch.PartnerName = &name
		}
	}

	if err := record.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.slipRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ConfirmResult reports a confirmation attempt. Blocked carries the lines
// that still lack a business partner when confirmation is refused.
type ConfirmResult struct {
	BatchID   string   `json:"batch_id"`
	Confirmed int      `json:"confirmed"`
	Blocked   []string `json:"blocked,omitempty"`
}

// ConfirmBatch confirms every record in a batch or none of them. A single
// line without a BP blocks the whole batch; the result lists the offenders.
func (s *BatchService) ConfirmBatch(ctx context.Context, batchID string) (*ConfirmResult, error) {
	records, err := s.slipRepo.FindByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, shared.ErrNotFound
	}

	blocked := make([]string, 0)
	for _, r := range records {
		if !r.HasPartner() {
			ref := fmt.Sprintf("seqno %d", r.Seqno)
			if r.UID != nil {
				ref = fmt.Sprintf("seqno %d (uid %s)", r.Seqno, *r.UID)
			}
			blocked = append(blocked, ref)
		}
	}
	if len(blocked) > 0 {
		return &ConfirmResult{BatchID: batchID, Blocked: blocked}, shared.ErrUnmappedPartner
	}

	if err := s.slipRepo.ConfirmBatch(ctx, batchID); err != nil {
		return nil, err
	}
	s.logger.Info("slip batch confirmed",
		zap.String("batch_id", batchID),
		zap.Int("records", len(records)))
	return &ConfirmResult{BatchID: batchID, Confirmed: len(records)}, nil
}

// DeleteBatch removes a draft batch entirely. Confirmed batches are
// immutable and cannot be deleted.
func (s *BatchService) DeleteBatch(ctx context.Context, batchID string) error {
	records, err := s.slipRepo.FindByBatch(ctx, batchID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return shared.ErrNotFound
	}
	for _, r := range records {
		if r.IsConfirmed {
			return shared.NewDomainError("BATCH_CONFIRMED", "Cannot delete a confirmed batch")
		}
	}
	if err := s.slipRepo.DeleteBatch(ctx, batchID); err != nil {
		return err
	}
	s.logger.Info("slip batch deleted",
		zap.String("batch_id", batchID),
		zap.Int("records", len(records)))
	return nil
}
