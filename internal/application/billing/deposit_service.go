package billing

import (
	"context"
	"time"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DepositService manages prepaid deposits on billing profiles. Consumption
// walks deposits oldest first and runs inside one transaction so two
// concurrent consumers can never spend the same balance twice.
type DepositService struct {
	depositRepo billing.DepositRepository
	logger      *zap.Logger
}

// NewDepositService creates a new DepositService
func NewDepositService(depositRepo billing.DepositRepository, logger *zap.Logger) *DepositService {
	return &DepositService{depositRepo: depositRepo, logger: logger}
}

// CreateDepositRequest charges a deposit against one billing profile.
// Exactly one of the two profile ids must be set.
type CreateDepositRequest struct {
	CompanyProfileID  *uuid.UUID       `json:"company_profile_id"`
	ContractProfileID *uuid.UUID       `json:"contract_profile_id"`
	DepositDate       time.Time        `json:"deposit_date" binding:"required"`
	Amount            decimal.Decimal  `json:"amount" binding:"required"`
	Currency          string           `json:"currency"`
	ExchangeRate      *decimal.Decimal `json:"exchange_rate"`
	Reference         *string          `json:"reference"`
	Description       *string          `json:"description"`
}

// CreateDeposit stores a new deposit charge
func (s *DepositService) CreateDeposit(ctx context.Context, req CreateDepositRequest) (*billing.Deposit, error) {
	deposit, err := billing.NewDeposit(req.CompanyProfileID, req.ContractProfileID, req.DepositDate, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	deposit.ExchangeRate = req.ExchangeRate
	deposit.Reference = req.Reference
	deposit.Description = req.Description

	if err := s.depositRepo.Save(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

// AdjustDeposit rewrites the charged amount of one deposit
func (s *DepositService) AdjustDeposit(ctx context.Context, id uuid.UUID, newAmount decimal.Decimal) (*billing.Deposit, error) {
	deposit, err := s.depositRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if deposit == nil {
		return nil, shared.ErrNotFound
	}
	if err := deposit.Adjust(newAmount); err != nil {
		return nil, err
	}
	if err := s.depositRepo.Save(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

// BalanceResult is the open balance of one profile per currency
type BalanceResult struct {
	Balances map[string]decimal.Decimal `json:"balances"`
	Deposits int                        `json:"deposits"`
}

// Balance sums the remaining amounts of a profile's open deposits grouped
// by currency.
func (s *DepositService) Balance(ctx context.Context, companyProfileID, contractProfileID *uuid.UUID) (*BalanceResult, error) {
	deposits, err := s.depositRepo.FindOpenByProfile(ctx, companyProfileID, contractProfileID)
	if err != nil {
		return nil, err
	}
	result := &BalanceResult{Balances: map[string]decimal.Decimal{}, Deposits: len(deposits)}
	for i := range deposits {
		d := &deposits[i]
		result.Balances[d.Currency] = result.Balances[d.Currency].Add(d.RemainingAmount)
	}
	return result, nil
}

// ConsumeRequest spends an amount from a profile's deposits
type ConsumeRequest struct {
	CompanyProfileID  *uuid.UUID      `json:"company_profile_id"`
	ContractProfileID *uuid.UUID      `json:"contract_profile_id"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	UsageDate         time.Time       `json:"usage_date" binding:"required"`
	BillingCycle      *string         `json:"billing_cycle"`
	SlipBatchID       *string         `json:"slip_batch_id"`
	UID               *string         `json:"uid"`
	Description       *string         `json:"description"`
}

// ConsumedSlice records how much one deposit contributed to a consumption
type ConsumedSlice struct {
	DepositID uuid.UUID        `json:"deposit_id"`
	Amount    decimal.Decimal  `json:"amount"`
	AmountKRW *decimal.Decimal `json:"amount_krw,omitempty"`
}

// ConsumeResult reports one completed consumption
type ConsumeResult struct {
	Requested decimal.Decimal `json:"requested"`
	Consumed  decimal.Decimal `json:"consumed"`
	Slices    []ConsumedSlice `json:"slices"`
}

// Consume spends the requested amount across a profile's deposits oldest
// first. The whole operation runs in one transaction and is rejected when
// the open balance cannot cover the request.
func (s *DepositService) Consume(ctx context.Context, req ConsumeRequest) (*ConsumeResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Consumption amount must be positive")
	}

	result := &ConsumeResult{Requested: req.Amount, Consumed: decimal.Zero}
	err := s.depositRepo.InTx(ctx, func(ctx context.Context, repo billing.DepositRepository) error {
		deposits, err := repo.FindOpenByProfile(ctx, req.CompanyProfileID, req.ContractProfileID)
		if err != nil {
			return err
		}

		available := decimal.Zero
		for i := range deposits {
			available = available.Add(deposits[i].RemainingAmount)
		}
		if available.LessThan(req.Amount) {
			return shared.ErrInsufficientBalance
		}

		remaining := req.Amount
		for i := range deposits {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			d := &deposits[i]
			taken := d.Consume(remaining)
			if taken.IsZero() {
				continue
			}
			remaining = remaining.Sub(taken)

			if err := repo.Save(ctx, d); err != nil {
				return err
			}
			usage := &billing.DepositUsage{
				BaseEntity:   shared.NewBaseEntity(),
				DepositID:    d.ID,
				UsageDate:    req.UsageDate,
				Amount:       taken,
				AmountKRW:    d.KRWValue(taken),
				BillingCycle: req.BillingCycle,
				SlipBatchID:  req.SlipBatchID,
				UID:          req.UID,
				Description:  req.Description,
			}
			if err := repo.SaveUsage(ctx, usage); err != nil {
				return err
			}
			result.Consumed = result.Consumed.Add(taken)
			result.Slices = append(result.Slices, ConsumedSlice{
				DepositID: d.ID,
				Amount:    taken,
				AmountKRW: usage.AmountKRW,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("deposit consumed",
		zap.String("amount", result.Consumed.String()),
		zap.Int("slices", len(result.Slices)))
	return result, nil
}
