package slip

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gmu1026/billing/internal/domain/partner"
	"github.com/gmu1026/billing/internal/domain/shared"
	"github.com/gmu1026/billing/internal/domain/slip"
	"github.com/shopspring/decimal"
)

// ExportLayout selects the fixed column layout of a CSV export. The sales
// and purchase layouts follow the batch's slip side; the billing layout is
// the tax-invoice rendition of a sales batch with VAT columns appended.
type ExportLayout string

const (
	LayoutSales    ExportLayout = "sales"
	LayoutPurchase ExportLayout = "purchase"
	LayoutBilling  ExportLayout = "billing"
)

// IsValid reports whether the layout is known
func (l ExportLayout) IsValid() bool {
	return l == LayoutSales || l == LayoutPurchase || l == LayoutBilling
}

// salesHeaders: 22 data columns, one spacer, two validation columns.
// The column set is a fixed contract with the receiving ERP system.
var salesHeaders = []string{
	"SEQNO",
	"BUKRS(회사코드)",
	"BLDAT(증빙일)",
	"BUDAT(전표기준일)",
	"WAERS(통화)",
	"XBLNR(참조)",
	"SGTXT(전표적요)",
	"PARTNER(거래처)",
	"채권과목",
	"HKONT(계정과목)",
	"WRBTR(통화금액)",
	"DMBTR_C(통화금액)",
	"PRCTR(부서코드)",
	"ZZCON(거래처코드)",
	"ZZSCONID(매출계약번호)",
	"ZZPCONID(매입계약번호)",
	"ZZSEMPNO(영업사원번호)",
	"ZZSEMPNM(영업사원명)",
	"ZZREF2(거래명)",
	"ZZREF(세금계산서 관리번호)",
	"ZZINVNO(인보이스)",
	"ZZDEPGNO(예치금그룹번호)",
	"",
	"사업자번호",
	"거래처명",
}

// purchaseHeaders: 21 data columns, one spacer, two validation columns.
// Purchase slips carry no deposit group number and post against a payable.
var purchaseHeaders = []string{
	"SEQNO",
	"BUKRS(회사코드)",
	"BLDAT(증빙일)",
	"BUDAT(전표기준일)",
	"WAERS(통화)",
	"XBLNR(참조)",
	"SGTXT(전표적요)",
	"PARTNER(거래처)",
	"채무과목",
	"HKONT(계정과목)",
	"WRBTR(통화금액)",
	"DMBTR_C(통화금액)",
	"PRCTR(부서코드)",
	"ZZCON(거래처코드)",
	"ZZSCONID(매출계약번호)",
	"ZZPCONID(매입계약번호)",
	"ZZSEMPNO(영업사원번호)",
	"ZZSEMPNM(영업사원명)",
	"ZZREF2(거래명)",
	"ZZREF(세금계산서 관리번호)",
	"ZZINVNO(인보이스)",
	"",
	"사업자번호",
	"거래처명",
}

// billingHeaders: 26 data columns, one spacer, three validation columns.
// The tax-invoice rendition adds the VAT code, supply price, VAT amount and
// payment term to the sales layout.
var billingHeaders = []string{
	"SEQNO",
	"BUKRS(회사코드)",
	"BLDAT(증빙일)",
	"BUDAT(전표기준일)",
	"WAERS(통화)",
	"XBLNR(참조)",
	"SGTXT(전표적요)",
	"PARTNER(거래처)",
	"채권과목",
	"HKONT(계정과목)",
	"WRBTR(통화금액)",
	"DMBTR_C(통화금액)",
	"MWSKZ(부가세코드)",
	"공급가액",
	"부가세액",
	"ZTERM(지급조건)",
	"PRCTR(부서코드)",
	"ZZCON(거래처코드)",
	"ZZSCONID(매출계약번호)",
	"ZZPCONID(매입계약번호)",
	"ZZSEMPNO(영업사원번호)",
	"ZZSEMPNM(영업사원명)",
	"ZZREF2(거래명)",
	"ZZREF(세금계산서 관리번호)",
	"ZZINVNO(인보이스)",
	"ZZDEPGNO(예치금그룹번호)",
	"",
	"사업자번호",
	"거래처명",
	"공급가액(검증)",
}

// utf8BOM keeps Korean headers intact when the file is opened in Excel
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportService serializes a slip batch into the fixed-column CSV the ERP
// import expects.
type ExportService struct {
	slipRepo slip.SlipRecordRepository
	bpRepo   partner.BPCodeRepository
}

// NewExportService creates a new ExportService
func NewExportService(slipRepo slip.SlipRecordRepository, bpRepo partner.BPCodeRepository) *ExportService {
	return &ExportService{slipRepo: slipRepo, bpRepo: bpRepo}
}

// ExportResult carries the rendered file and its download name
type ExportResult struct {
	Filename string
	Content  []byte
}

// Export renders a batch under the given layout. An empty layout follows
// the batch's own slip type.
func (s *ExportService) Export(ctx context.Context, batchID string, layout ExportLayout) (*ExportResult, error) {
	records, err := s.slipRepo.FindByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, shared.ErrNotFound
	}

	if layout == "" {
		layout = ExportLayout(records[0].SlipType)
	}
	if !layout.IsValid() {
		return nil, shared.NewDomainError("INVALID_LAYOUT", "Export layout must be sales, purchase or billing")
	}

	taxNumbers, err := s.lookupTaxNumbers(ctx, records)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	if err := w.Write(headersFor(layout)); err != nil {
		return nil, err
	}
	for i := range records {
		if err := w.Write(rowFor(layout, &records[i], taxNumbers)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_%s_%s.csv", layout, records[0].BillingCycle, batchID)
	return &ExportResult{Filename: filename, Content: buf.Bytes()}, nil
}

func (s *ExportService) lookupTaxNumbers(ctx context.Context, records []slip.SlipRecord) (map[string]string, error) {
	bpNumbers := make([]string, 0, len(records))
	seen := map[string]bool{}
	for i := range records {
		if records[i].Partner == nil || *records[i].Partner == "" || seen[*records[i].Partner] {
			continue
		}
		seen[*records[i].Partner] = true
		bpNumbers = append(bpNumbers, *records[i].Partner)
	}
	if len(bpNumbers) == 0 {
		return map[string]string{}, nil
	}

	bps, err := s.bpRepo.FindByBPNumbers(ctx, bpNumbers)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(bps))
	for number, bp := range bps {
		if bp != nil && bp.TaxNumber != nil {
			out[number] = *bp.TaxNumber
		}
	}
	return out, nil
}

func headersFor(layout ExportLayout) []string {
	switch layout {
	case LayoutPurchase:
		return purchaseHeaders
	case LayoutBilling:
		return billingHeaders
	default:
		return salesHeaders
	}
}

func rowFor(layout ExportLayout, r *slip.SlipRecord, taxNumbers map[string]string) []string {
	taxNumber := ""
	if r.Partner != nil {
		taxNumber = taxNumbers[*r.Partner]
	}

	base := []string{
		strconv.Itoa(r.Seqno),
		r.Bukrs,
		r.Bldat.Format("20060102"),
		r.Budat.Format("20060102"),
		r.Waers,
		deref(r.Xblnr),
		deref(r.Sgtxt),
		deref(r.Partner),
		deref(r.ARAccount),
		deref(r.Hkont),
		wholeAmount(r.Wrbtr),
		"", // DMBTR_C stays blank for the importer
	}

	tail := []string{
		deref(r.Prctr),
		deref(r.Zzcon),
		deref(r.Zzsconid),
		deref(r.Zzpconid),
		deref(r.Zzsempno),
		deref(r.Zzsempnm),
		deref(r.Zzref2),
		deref(r.Zzref),
		deref(r.Zzinvno),
	}

	switch layout {
	case LayoutPurchase:
		row := append(base, tail...)
		return append(row, "", taxNumber, deref(r.PartnerName))
	case LayoutBilling:
		taxCode, vat := vatFor(r)
		row := append(base, taxCode, wholeAmount(r.Wrbtr), vat, "")
		row = append(row, tail...)
		row = append(row, deref(r.Zzdepgno))
		return append(row, "", taxNumber, deref(r.PartnerName), wholeAmount(r.Wrbtr))
	default:
		row := append(base, tail...)
		row = append(row, deref(r.Zzdepgno))
		return append(row, "", taxNumber, deref(r.PartnerName))
	}
}

// vatFor derives the tax-invoice columns: foreign-currency lines export
// zero-rated, domestic lines carry 10% VAT rounded half-up.
func vatFor(r *slip.SlipRecord) (taxCode, vatAmount string) {
	if r.Waers != "KRW" {
		return "B1", "0"
	}
	vat := r.Wrbtr.Mul(decimal.NewFromFloat(0.1)).Round(0)
	return "A1", vat.String()
}

func wholeAmount(d decimal.Decimal) string {
	return d.Truncate(0).String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
