package partner

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindBySeq(ctx context.Context, seq int64) (*Company, error)
	FindAll(ctx context.Context) ([]Company, error)
	Save(ctx context.Context, company *Company) error
}

// BPCodeRepository defines persistence operations for BP master records
type BPCodeRepository interface {
	FindByBPNumber(ctx context.Context, bpNumber string) (*BPCode, error)
	FindByBPNumbers(ctx context.Context, bpNumbers []string) (map[string]*BPCode, error)
	Save(ctx context.Context, bp *BPCode) error
}
