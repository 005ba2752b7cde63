package billing

import (
	"time"

	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
)

// VendorAccount is a cloud-vendor account (UID) synced from the HB system
type VendorAccount struct {
	shared.BaseEntity
	UID         string  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        *string `gorm:"type:varchar(200)"`
	Corporation *string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (VendorAccount) TableName() string {
	return "vendor_accounts"
}

// NewVendorAccount creates a new vendor account
func NewVendorAccount(uid string) (*VendorAccount, error) {
	if uid == "" {
		return nil, shared.NewDomainError("INVALID_UID", "Vendor account UID cannot be empty")
	}
	return &VendorAccount{
		BaseEntity: shared.NewBaseEntity(),
		UID:        uid,
	}, nil
}

// AccountContractMapping is the N:N edge between vendor accounts and
// contracts. Manual mappings take precedence over synced ones; EstablishedAt
// breaks ties among automatic mappings (most recent wins).
type AccountContractMapping struct {
	shared.BaseEntity
	AccountUID    string    `gorm:"type:varchar(50);not null;index:idx_mapping_account"`
	ContractID    uuid.UUID `gorm:"type:uuid;not null;index"`
	IsManual      bool      `gorm:"not null;default:false"`
	EstablishedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountContractMapping) TableName() string {
	return "account_contract_mappings"
}

// NewAccountContractMapping creates a mapping edge
func NewAccountContractMapping(accountUID string, contractID uuid.UUID, isManual bool) (*AccountContractMapping, error) {
	if accountUID == "" {
		return nil, shared.NewDomainError("INVALID_UID", "Mapping account UID cannot be empty")
	}
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Mapping contract cannot be empty")
	}
	return &AccountContractMapping{
		BaseEntity:    shared.NewBaseEntity(),
		AccountUID:    accountUID,
		ContractID:    contractID,
		IsManual:      isManual,
		EstablishedAt: time.Now(),
	}, nil
}
