package partner

import (
	"github.com/gmu1026/billing/internal/domain/shared"
)

// BPCode is the ERP business-partner master record. TaxNumber feeds the
// export validation columns; ARAccount/APAccount override the vendor default
// receivable/payable accounts when no billing profile is configured.
type BPCode struct {
	shared.BaseEntity
	CompanyCode string  `gorm:"type:varchar(10);not null;default:'1100'"`
	BPNumber    string  `gorm:"type:varchar(20);not null;uniqueIndex"`
	BPGroup     *string `gorm:"type:varchar(20)"`
	NameLocal   *string `gorm:"type:varchar(200)"`
	NameEnglish *string `gorm:"type:varchar(200)"`
	SearchKey   *string `gorm:"type:varchar(100)"`
	TaxNumber   *string `gorm:"type:varchar(30);index"` // business registration number
	ARAccount   *string `gorm:"type:varchar(20)"`
	APAccount   *string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (BPCode) TableName() string {
	return "bp_codes"
}

// NewBPCode creates a new business partner master record
func NewBPCode(bpNumber, companyCode string) (*BPCode, error) {
	if bpNumber == "" {
		return nil, shared.NewDomainError("INVALID_BP_NUMBER", "BP number cannot be empty")
	}
	if companyCode == "" {
		companyCode = "1100"
	}
	return &BPCode{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyCode: companyCode,
		BPNumber:    bpNumber,
	}, nil
}

// DisplayName returns the local name, falling back to the English name
func (b *BPCode) DisplayName() string {
	if b.NameLocal != nil && *b.NameLocal != "" {
		return *b.NameLocal
	}
	if b.NameEnglish != nil {
		return *b.NameEnglish
	}
	return ""
}
