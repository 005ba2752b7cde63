package slip

import (
	"context"
	"sort"
	"time"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/partner"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/shared/valueobject"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GenerateSlipsRequest asks for one new slip batch. Every call creates a
// fresh batch; regeneration is additive and old batches are deleted
// explicitly.
type GenerateSlipsRequest struct {
	BillingCycle string     `json:"billing_cycle" binding:"required,cycle"`
	SlipType     string     `json:"slip_type" binding:"required,oneof=sales purchase"`
	DocumentDate *time.Time `json:"document_date"`
}

// UnmappedLine describes one UID that produced a line without a business
// partner, with the reason an operator needs for fix-up.
type UnmappedLine struct {
	UID    string          `json:"uid"`
	Reason string          `json:"reason"`
	Amount decimal.Decimal `json:"amount"`
}

// GenerationReport is the aggregate outcome of one generation run. Lines
// without a BP are expected; the report carries everything an operator
// needs to finish the batch manually.
type GenerationReport struct {
	BatchID             string         `json:"batch_id"`
	BillingCycle        string         `json:"billing_cycle"`
	SlipType            string         `json:"slip_type"`
	Total               int            `json:"total"`
	WithBP              int            `json:"with_bp"`
	NoBP                int            `json:"no_bp"`
	Unmapped            []UnmappedLine `json:"unmapped"`
	InternalCostSkipped []string       `json:"internal_cost_skipped"`
	OverseasLines       int            `json:"overseas_lines"`
	RateMissing         []string       `json:"rate_missing"`
	ProRataWarnings     []string       `json:"pro_rata_warnings"`
	ChargeLines         int            `json:"charge_lines"`
	SplitLines          int            `json:"split_lines"`
}

// GenerationService orchestrates one slip generation run: for every UID
// group it resolves the mapping chain, applies split rules and pro-rata
// scaling, resolves the exchange rate and computes the posted amount. One
// UID's failure never aborts the batch; outcomes accumulate in the report.
type GenerationService struct {
	billingRepo billing.BillingRecordRepository
	resolver    *MappingResolver
	proRata     *ProRataCalculator
	splitRepo   billing.SplitRuleRepository
	injector    *ChargeInjector
	slipRepo    slip.SlipRecordRepository
	vendorRepo  slip.VendorConfigRepository
	rateRepo    slip.ExchangeRateRepository
	companyRepo partner.CompanyRepository
	bpRepo      partner.BPCodeRepository
	syncer      RateSyncer
	calc        *AmountCalculator
	logger      *zap.Logger
	vendor      string
	syncDays    int
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(
	billingRepo billing.BillingRecordRepository,
	resolver *MappingResolver,
	proRata *ProRataCalculator,
	splitRepo billing.SplitRuleRepository,
	injector *ChargeInjector,
	slipRepo slip.SlipRecordRepository,
	vendorRepo slip.VendorConfigRepository,
	rateRepo slip.ExchangeRateRepository,
	companyRepo partner.CompanyRepository,
	bpRepo partner.BPCodeRepository,
	syncer RateSyncer,
	logger *zap.Logger,
	vendor string,
	syncDays int,
) *GenerationService {
	return &GenerationService{
		billingRepo: billingRepo,
		resolver:    resolver,
		proRata:     proRata,
		splitRepo:   splitRepo,
		injector:    injector,
		slipRepo:    slipRepo,
		vendorRepo:  vendorRepo,
		rateRepo:    rateRepo,
		companyRepo: companyRepo,
		bpRepo:      bpRepo,
		syncer:      syncer,
		calc:        NewAmountCalculator(),
		logger:      logger,
		vendor:      vendor,
		syncDays:    syncDays,
	}
}

// lineTarget is the resolved destination of one slip line: the company it
// posts against plus the contract whose codes it carries.
type lineTarget struct {
	contract       *billing.Contract
	company        *partner.Company
	profile        *billing.ContractBillingProfile
	companyProfile *billing.CompanyBillingProfile
	bp             *partner.BPCode
}

// buildState carries the per-run mutable state threaded through line builds
type buildState struct {
	cfg      *slip.VendorConfig
	cycle    billing.Cycle
	slipType slip.SlipType
	batchID  string
	docDate  time.Time
	rates    *RateResolver
	seqno    int
	records  []slip.SlipRecord
	report   *GenerationReport
}

// Generate runs one generation pass and persists the resulting batch
func (s *GenerationService) Generate(ctx context.Context, req GenerateSlipsRequest) (*GenerationReport, error) {
	cycle, err := billing.ParseCycle(req.BillingCycle)
	if err != nil {
		return nil, err
	}
	slipType := slip.SlipType(req.SlipType)
	if !slipType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SLIP_TYPE", "Slip type must be sales or purchase")
	}

	cfg, err := s.vendorRepo.FindByVendor(ctx, s.vendor)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = slip.DefaultAlibabaConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	docDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.DocumentDate != nil {
		docDate = *req.DocumentDate
	}

	sums, err := s.billingRepo.SumByUID(ctx, cycle, slipType.BillingType())
	if err != nil {
		return nil, err
	}

	st := &buildState{
		cfg:      cfg,
		cycle:    cycle,
		slipType: slipType,
		batchID:  slip.NewBatchID(),
		docDate:  docDate,
		rates:    NewRateResolver(s.rateRepo, s.syncer, s.syncDays, s.logger),
		seqno:    1,
		report: &GenerationReport{
			BillingCycle: cycle.String(),
			SlipType:     string(slipType),
			Unmapped:            []UnmappedLine{},
			InternalCostSkipped: []string{},
			RateMissing:         []string{},
			ProRataWarnings:     []string{},
		},
	}
	st.report.BatchID = st.batchID

	contractSeen := map[uuid.UUID]lineTarget{}

	for _, group := range sums {
		mapping, err := s.resolver.Resolve(ctx, group.UID)
		if err != nil {
			return nil, err
		}
		if mapping == nil {
			s.appendUnmappedLine(ctx, st, group)
			continue
		}
		if slipType == slip.SlipTypeSales && mapping.Company.IsInternalCost {
			st.report.InternalCostSkipped = append(st.report.InternalCostSkipped, group.UID)
			continue
		}

		target := lineTarget{
			contract:       mapping.Contract,
			company:        mapping.Company,
			profile:        mapping.Profile,
			companyProfile: mapping.CompanyProfile,
			bp:             mapping.BP,
		}
		contractSeen[mapping.Contract.ID] = target

		rule, err := s.splitRepo.FindActiveBySourceUID(ctx, group.UID)
		if err != nil {
			return nil, err
		}
		if rule != nil && rule.IsEffectiveFor(cycle) {
			if err := s.appendSplitLines(ctx, st, group, target, rule); err != nil {
				return nil, err
			}
			continue
		}

		if err := s.appendBillingLine(ctx, st, group.UID, group.Amount, target, slip.SourceTypeBilling); err != nil {
			return nil, err
		}
	}

	if err := s.appendChargeLines(ctx, st, contractSeen); err != nil {
		return nil, err
	}

	if len(st.records) > 0 {
		if err := s.slipRepo.SaveAll(ctx, st.records); err != nil {
			return nil, err
		}
	}

	st.report.Total = len(st.records)
	s.logger.Info("slip batch generated",
		zap.String("batch_id", st.batchID),
		zap.String("billing_cycle", cycle.String()),
		zap.String("slip_type", string(slipType)),
		zap.Int("total", st.report.Total),
		zap.Int("no_bp", st.report.NoBP))
	return st.report, nil
}

// appendUnmappedLine emits a placeholder line for a UID with no usable
// account mapping. The amount still posts so the operator can patch the
// partner in instead of hunting for a missing row.
func (s *GenerationService) appendUnmappedLine(ctx context.Context, st *buildState, group billing.UIDAmount) {
	sgtxt := st.cfg.Sgtxt(st.cycle.MonthLabel(), st.slipType)
	uid := group.UID
	record := slip.SlipRecord{
		BaseEntity:   shared.NewBaseEntity(),
		BatchID:      st.batchID,
		SlipType:     st.slipType,
		Vendor:       s.vendor,
		BillingCycle: st.cycle.String(),
		SourceType:   slip.SourceTypeBilling,
		SourceRef:    &uid,
		Seqno:        st.seqno,
		Bukrs:        st.cfg.Bukrs,
		Bldat:        st.docDate,
		Budat:        st.docDate,
		Waers:        "KRW",
		Sgtxt:        &sgtxt,
		WrbtrUSD:     group.Amount.Truncate(2),
		Prctr:        &st.cfg.Prctr,
		Zzref2:       &st.cfg.Zzref2,
		UID:          &uid,
	}
	st.seqno++
	st.records = append(st.records, record)
	st.report.NoBP++
	st.report.Unmapped = append(st.report.Unmapped, UnmappedLine{
		UID:    group.UID,
		Reason: "no account mapping",
		Amount: group.Amount,
	})
}

// appendSplitLines fans one source UID out across the rule's allocations
func (s *GenerationService) appendSplitLines(ctx context.Context, st *buildState, group billing.UIDAmount, source lineTarget, rule *billing.SplitBillingRule) error {
	shares := AllocateSplit(group.Amount, rule)
	for _, share := range shares {
		if share.Amount.IsZero() {
			continue
		}
		target := source
		company, err := s.companyRepo.FindByID(ctx, share.TargetCompanyID)
		if err != nil {
			return err
		}
		if company != nil {
			target.company = company
			target.bp = nil
			if company.HasBP() {
				bp, err := s.bpRepo.FindByBPNumber(ctx, *company.BPNumber)
				if err != nil {
					return err
				}
				target.bp = bp
			}
		}
		if err := s.appendBillingLine(ctx, st, group.UID, share.Amount, target, slip.SourceTypeSplit); err != nil {
			return err
		}
		st.report.SplitLines++
	}
	return nil
}

// appendBillingLine builds and appends one slip line from a raw amount
func (s *GenerationService) appendBillingLine(ctx context.Context, st *buildState, uid string, rawAmount decimal.Decimal, target lineTarget, sourceType slip.SourceType) error {
	ratio, err := s.proRata.RatioFor(ctx, target.contract, target.profile, st.cycle, st.cfg.ProRataEnabled)
	if err != nil {
		return err
	}
	if ratio.OutOfRange {
		st.report.ProRataWarnings = append(st.report.ProRataWarnings, target.contract.EffectiveSalesCode())
	}
	scaled := s.calc.ScaleProRata(valueobject.NewMoneyUSD(rawAmount), ratio.Ratio)

	cp := st.cfg.CurrencyProfileFor(st.slipType, target.company.IsOverseas, target.company.SlipCurrency())
	accounts := resolveAccounts(cp.Accounts, st.slipType, target)

	var wrbtr decimal.Decimal
	var rate *decimal.Decimal
	if cp.ConvertToKRW {
		rateDate := RateDateForProfile(target.profile, cp.RateDateRule, st.cycle, st.docDate)
		resolvedRate, err := st.rates.Resolve(ctx, rateDate, "USD", "KRW", cp.RateType)
		if err != nil {
			return err
		}
		if resolvedRate == nil {
			st.report.RateMissing = append(st.report.RateMissing, uid)
		} else {
			r := resolvedRate.Rate
			rate = &r
			wrbtr = s.calc.LocalAmount(scaled, r, st.slipType, RoundingRuleFor(st.cfg, target.profile)).Amount()
		}
	} else {
		wrbtr = s.calc.ForeignAmount(scaled).Amount()
		st.report.OverseasLines++
	}

	sgtxt := st.cfg.Sgtxt(st.cycle.MonthLabel(), st.slipType)
	salesCode := target.contract.EffectiveSalesCode()
	purchaseCode := target.contract.EffectivePurchaseCode()
	uidCopy := uid
	contractID := target.contract.ID
	companyID := target.company.ID

	record := slip.SlipRecord{
		BaseEntity:   shared.NewBaseEntity(),
		BatchID:      st.batchID,
		SlipType:     st.slipType,
		Vendor:       s.vendor,
		BillingCycle: st.cycle.String(),
		SourceType:   sourceType,
		SourceRef:    &uidCopy,
		Seqno:        st.seqno,
		Bukrs:        st.cfg.Bukrs,
		Bldat:        st.docDate,
		Budat:        st.docDate,
		Waers:        string(cp.Currency),
		Sgtxt:        &sgtxt,
		ARAccount:    &accounts.CounterAccount,
		Hkont:        &accounts.Hkont,
		Wrbtr:        wrbtr,
		WrbtrUSD:     scaled.Truncate(2).Amount(),
		ExchangeRate: rate,
		Prctr:        &st.cfg.Prctr,
		Zzsconid:     &salesCode,
		Zzpconid:     &purchaseCode,
		Zzref2:       &st.cfg.Zzref2,
		UID:          &uidCopy,
		ContractID:   &contractID,
		CompanyID:    &companyID,
	}

	if target.company.HasBP() {
		record.Partner = target.company.BPNumber
		record.Zzcon = target.company.BPNumber
		name := target.company.Name
		if target.bp != nil && target.bp.DisplayName() != "" {
			name = target.bp.DisplayName()
		}
		record.PartnerName = &name
		st.report.WithBP++
	} else {
		name := target.company.Name
		record.PartnerName = &name
		st.report.NoBP++
		st.report.Unmapped = append(st.report.Unmapped, UnmappedLine{
			UID:    uid,
			Reason: "company has no business partner",
			Amount: rawAmount,
		})
	}
	if target.contract.SalesPerson != nil {
		record.Zzsempnm = target.contract.SalesPerson
	}

	st.seqno++
	st.records = append(st.records, record)
	return nil
}

// appendChargeLines injects the additional charges owed by contracts that
// produced billing lines in this batch
func (s *GenerationService) appendChargeLines(ctx context.Context, st *buildState, targets map[uuid.UUID]lineTarget) error {
	ids := make([]uuid.UUID, 0, len(targets))
	for id := range targets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	charges, err := s.injector.ApplicableCharges(ctx, st.cycle, st.slipType, st.batchID, ids)
	if err != nil {
		return err
	}

	for _, charge := range charges {
		target, ok := targets[charge.ContractID]
		if !ok {
			continue
		}
		if err := s.appendChargeLine(ctx, st, charge, target); err != nil {
			return err
		}
	}
	return nil
}

func (s *GenerationService) appendChargeLine(ctx context.Context, st *buildState, charge billing.AdditionalCharge, target lineTarget) error {
	cp := st.cfg.CurrencyProfileFor(st.slipType, target.company.IsOverseas, target.company.SlipCurrency())
	accounts := resolveAccounts(cp.Accounts, st.slipType, target)

	var wrbtr decimal.Decimal
	var rate *decimal.Decimal
	amountUSD := decimal.Zero

	switch {
	case charge.Currency == "KRW":
		wrbtr = charge.Amount.Round(0)
	case !cp.ConvertToKRW:
		chargeMoney, err := valueobject.NewMoney(charge.Amount, valueobject.Currency(charge.Currency))
		if err != nil {
			return err
		}
		wrbtr = s.calc.ForeignAmount(chargeMoney).Amount()
		amountUSD = charge.Amount.Truncate(2)
	default:
		amountUSD = charge.Amount.Truncate(2)
		rateDate := RateDateForProfile(target.profile, cp.RateDateRule, st.cycle, st.docDate)
		resolvedRate, err := st.rates.Resolve(ctx, rateDate, "USD", "KRW", cp.RateType)
		if err != nil {
			return err
		}
		if resolvedRate == nil {
			st.report.RateMissing = append(st.report.RateMissing, charge.ID.String())
		} else {
			r := resolvedRate.Rate
			rate = &r
			converted := charge.Amount.Mul(r)
			// Credits keep their sign; floor would skew negatives down.
			wrbtr = converted.Round(0)
		}
	}

	sgtxt := charge.Name
	salesCode := target.contract.EffectiveSalesCode()
	purchaseCode := target.contract.EffectivePurchaseCode()
	chargeRef := charge.ID.String()
	contractID := target.contract.ID
	companyID := target.company.ID

	record := slip.SlipRecord{
		BaseEntity:   shared.NewBaseEntity(),
		BatchID:      st.batchID,
		SlipType:     st.slipType,
		Vendor:       s.vendor,
		BillingCycle: st.cycle.String(),
		SourceType:   slip.SourceTypeAdditionalCharge,
		SourceRef:    &chargeRef,
		Seqno:        st.seqno,
		Bukrs:        st.cfg.Bukrs,
		Bldat:        st.docDate,
		Budat:        st.docDate,
		Waers:        string(cp.Currency),
		Sgtxt:        &sgtxt,
		ARAccount:    &accounts.CounterAccount,
		Hkont:        &accounts.Hkont,
		Wrbtr:        wrbtr,
		WrbtrUSD:     amountUSD,
		ExchangeRate: rate,
		Prctr:        &st.cfg.Prctr,
		Zzsconid:     &salesCode,
		Zzpconid:     &purchaseCode,
		Zzref2:       &st.cfg.Zzref2,
		ContractID:   &contractID,
		CompanyID:    &companyID,
	}
	if target.company.HasBP() {
		record.Partner = target.company.BPNumber
		record.Zzcon = target.company.BPNumber
		st.report.WithBP++
	} else {
		st.report.NoBP++
	}
	name := target.company.Name
	if target.bp != nil && target.bp.DisplayName() != "" {
		name = target.bp.DisplayName()
	}
	record.PartnerName = &name

	st.seqno++
	st.records = append(st.records, record)
	st.report.ChargeLines++
	return nil
}

// resolveAccounts applies the account override chain: contract profile,
// then company profile, then the BP master, then the vendor defaults
// already present in the base set.
func resolveAccounts(base slip.AccountSet, slipType slip.SlipType, target lineTarget) slip.AccountSet {
	out := base

	applyOverrides := func(o billing.AccountOverrides) {
		if slipType == slip.SlipTypeSales {
			if o.HkontSales != nil && *o.HkontSales != "" {
				out.Hkont = *o.HkontSales
			}
			if o.ARAccount != nil && *o.ARAccount != "" {
				out.CounterAccount = *o.ARAccount
			}
		} else {
			if o.HkontPurchase != nil && *o.HkontPurchase != "" {
				out.Hkont = *o.HkontPurchase
			}
			if o.APAccount != nil && *o.APAccount != "" {
				out.CounterAccount = *o.APAccount
			}
		}
	}

	// BP master first so profile layers can shadow it.
	if target.bp != nil {
		if slipType == slip.SlipTypeSales {
			if target.bp.ARAccount != nil && *target.bp.ARAccount != "" {
				out.CounterAccount = *target.bp.ARAccount
			}
		} else {
			if target.bp.APAccount != nil && *target.bp.APAccount != "" {
				out.CounterAccount = *target.bp.APAccount
			}
		}
	}
	if target.companyProfile != nil {
		applyOverrides(target.companyProfile.AccountOverrides)
	}
	if target.profile != nil {
		applyOverrides(target.profile.AccountOverrides)
	}
	return out
}
