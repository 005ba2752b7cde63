package slip

import (
	"time"

	"github.com/gmu1026/billing/internal/domain/billing"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SlipType is the accounting side a record posts to
type SlipType string

const (
	SlipTypeSales    SlipType = "sales"
	SlipTypePurchase SlipType = "purchase"
)

// IsValid reports whether the slip type is known
func (t SlipType) IsValid() bool {
	return t == SlipTypeSales || t == SlipTypePurchase
}

// BillingType returns the raw billing category feeding this slip side
func (t SlipType) BillingType() billing.BillingType {
	if t == SlipTypePurchase {
		return billing.BillingTypeReseller
	}
	return billing.BillingTypeEnduser
}

// SourceType records where a slip line came from, for audit
type SourceType string

const (
	SourceTypeBilling          SourceType = "billing"
	SourceTypeSplit            SourceType = "split"
	SourceTypeAdditionalCharge SourceType = "additional_charge"
)

// SlipRecord is one accounting voucher row destined for ERP import. Records
// are created only by the generation orchestrator, patched only while their
// batch is unconfirmed, and immutable once confirmed.
type SlipRecord struct {
	shared.BaseEntity
	BatchID      string     `gorm:"type:varchar(50);not null;index"`
	SlipType     SlipType   `gorm:"type:varchar(20);not null;index"`
	Vendor       string     `gorm:"type:varchar(50);not null;default:'alibaba'"`
	BillingCycle string     `gorm:"type:varchar(10);not null;index"`
	SourceType   SourceType `gorm:"type:varchar(30);not null;default:'billing'"`
	SourceRef    *string    `gorm:"type:varchar(100)"` // originating UID or charge id

	Seqno int       `gorm:"not null"`
	Bukrs string    `gorm:"type:varchar(10);not null"` // company code
	Bldat time.Time `gorm:"type:date;not null"`        // document date
	Budat time.Time `gorm:"type:date;not null"`        // posting date
	Waers string    `gorm:"type:varchar(10);not null"` // currency
	Xblnr *string   `gorm:"type:varchar(50)"`          // reference
	Sgtxt *string   `gorm:"type:varchar(200)"`         // line text

	Partner     *string `gorm:"type:varchar(20);index"` // BP number
	PartnerName *string `gorm:"type:varchar(200)"`

	ARAccount *string `gorm:"type:varchar(20)"` // receivable/payable account
	Hkont     *string `gorm:"type:varchar(20)"` // GL account

	Wrbtr        decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"` // amount in slip currency
	WrbtrUSD     decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"` // original USD amount
	ExchangeRate *decimal.Decimal `gorm:"type:decimal(12,4)"`

	Prctr    *string `gorm:"type:varchar(20)"` // cost center
	Zzcon    *string `gorm:"type:varchar(20)"` // partner code
	Zzsconid *string `gorm:"type:varchar(30)"` // sales contract number
	Zzpconid *string `gorm:"type:varchar(30)"` // purchase contract number
	Zzsempno *string `gorm:"type:varchar(20)"` // salesperson number
	Zzsempnm *string `gorm:"type:varchar(50)"` // salesperson name
	Zzref2   *string `gorm:"type:varchar(50)"` // trade name
	Zzref    *string `gorm:"type:varchar(50)"` // tax invoice management number
	Zzinvno  *string `gorm:"type:varchar(50)"` // invoice number
	Zzdepgno *string `gorm:"type:varchar(50)"` // deposit group number

	UID         *string    `gorm:"type:varchar(50);index"`
	ContractID  *uuid.UUID `gorm:"type:uuid"`
	CompanyID   *uuid.UUID `gorm:"type:uuid"`
	IsConfirmed bool       `gorm:"not null;default:false;index"`
	IsExported  bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SlipRecord) TableName() string {
	return "slip_records"
}

// HasPartner reports whether the record has a BP mapped
func (s *SlipRecord) HasPartner() bool {
	return s.Partner != nil && *s.Partner != ""
}

// Confirm marks the record confirmed. Confirmation requires a mapped
// partner; the batch-level operation enforces all-or-nothing semantics.
func (s *SlipRecord) Confirm() error {
	if !s.HasPartner() {
		return shared.ErrUnmappedPartner
	}
	s.IsConfirmed = true
	return nil
}

// SlipPatch carries the fields an operator may rewrite before confirmation
type SlipPatch struct {
	Partner     *string
	PartnerName *string
	ARAccount   *string
	Wrbtr       *decimal.Decimal
	Zzsconid    *string
	Zzsempnm    *string
	Zzinvno     *string
}

// Apply rewrites patchable fields on an unconfirmed record. Patching the
// partner also rewrites the partner code column; patching the sales
// contract number re-derives the purchase contract number.
func (s *SlipRecord) Apply(patch SlipPatch) error {
	if s.IsConfirmed {
		return shared.NewDomainError("SLIP_CONFIRMED", "Cannot modify a confirmed slip record")
	}
	if patch.Partner != nil {
		s.Partner = patch.Partner
		s.Zzcon = patch.Partner
	}
	if patch.PartnerName != nil {
		s.PartnerName = patch.PartnerName
	}
	if patch.ARAccount != nil {
		s.ARAccount = patch.ARAccount
	}
	if patch.Wrbtr != nil {
		s.Wrbtr = *patch.Wrbtr
	}
	if patch.Zzsconid != nil {
		s.Zzsconid = patch.Zzsconid
		purchase := billing.DerivePurchaseCode(*patch.Zzsconid)
		s.Zzpconid = &purchase
	}
	if patch.Zzsempnm != nil {
		s.Zzsempnm = patch.Zzsempnm
	}
	if patch.Zzinvno != nil {
		s.Zzinvno = patch.Zzinvno
	}
	return nil
}

// BatchStatus is the derived lifecycle state of a slip batch
type BatchStatus string

const (
	BatchStatusDraft     BatchStatus = "DRAFT"
	BatchStatusConfirmed BatchStatus = "CONFIRMED"
)

// SlipBatch is the derived grouping of records sharing a batch id; it is
// never stored separately. TotalAmount covers KRW lines only; lines kept in
// a foreign currency are counted in ForeignCount rather than mixed into a
// single sum.
type SlipBatch struct {
	BatchID      string          `json:"batch_id"`
	BillingCycle string          `json:"billing_cycle"`
	SlipType     SlipType        `json:"slip_type"`
	Status       BatchStatus     `json:"status"`
	RecordCount  int64           `json:"record_count"`
	ForeignCount int64           `json:"foreign_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewBatchID derives a short batch identifier the way batch ids have always
// been cut for ERP upload: the first uuid segment.
func NewBatchID() string {
	return uuid.NewString()[:8]
}
