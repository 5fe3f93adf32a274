package receivable

import (
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ApplicationDocType is the ERP document type on a payment application row.
// When a credit memo funds a payment the ERP emits two rows with the same
// positive amount: one with doc type Invoice and one with doc type Credit
// Memo. Summing both double-counts the application, which is why every
// aggregation in this package goes through AppliedTotal.
type ApplicationDocType string

const (
	ApplicationDocInvoice    ApplicationDocType = "Invoice"
	ApplicationDocCreditMemo ApplicationDocType = "Credit Memo"
)

// IsValid checks if the doc type is a known ERP application doc type
func (t ApplicationDocType) IsValid() bool {
	return t == ApplicationDocInvoice || t == ApplicationDocCreditMemo
}

// PaymentApplication links a payment to an invoice for a specific amount
type PaymentApplication struct {
	shared.BaseEntity
	PaymentReference string
	InvoiceReference string
	DocType          ApplicationDocType
	AmountPaid       decimal.Decimal
	AppliedAt        time.Time
}

// NewPaymentApplication creates an application row from a sync payload
func NewPaymentApplication(paymentRef, invoiceRef string, docType ApplicationDocType, amountPaid decimal.Decimal, appliedAt time.Time) (*PaymentApplication, error) {
	if paymentRef == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Payment reference cannot be empty")
	}
	if invoiceRef == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Invoice reference cannot be empty")
	}
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOC_TYPE", "Application doc type is not valid")
	}

	return &PaymentApplication{
		BaseEntity:       shared.NewBaseEntity(),
		PaymentReference: paymentRef,
		InvoiceReference: invoiceRef,
		DocType:          docType,
		AmountPaid:       amountPaid,
		AppliedAt:        appliedAt,
	}, nil
}

// ApplicationStats summarizes a set of application rows without
// double-counting credit-memo-funded payments.
type ApplicationStats struct {
	TotalApplied      decimal.Decimal `json:"total_applied"`
	CreditMemoApplied decimal.Decimal `json:"credit_memo_applied"`
	RowCount          int             `json:"row_count"`
	InvoiceRowCount   int             `json:"invoice_row_count"`
}

// AppliedTotal is the single source of truth for "money applied to
// invoices": it sums Invoice-doc-type rows only. Credit Memo rows mirror
// the funding side of the same application and must never be added in.
func AppliedTotal(apps []PaymentApplication) decimal.Decimal {
	total := decimal.Zero
	for i := range apps {
		if apps[i].DocType == ApplicationDocInvoice {
			total = total.Add(apps[i].AmountPaid)
		}
	}
	return total
}

// CreditMemoTotal sums the Credit Memo rows, tracked separately from
// AppliedTotal for reporting.
func CreditMemoTotal(apps []PaymentApplication) decimal.Decimal {
	total := decimal.Zero
	for i := range apps {
		if apps[i].DocType == ApplicationDocCreditMemo {
			total = total.Add(apps[i].AmountPaid)
		}
	}
	return total
}

// Stats computes the full application summary in one pass
func Stats(apps []PaymentApplication) ApplicationStats {
	s := ApplicationStats{
		TotalApplied:      decimal.Zero,
		CreditMemoApplied: decimal.Zero,
	}
	for i := range apps {
		s.RowCount++
		switch apps[i].DocType {
		case ApplicationDocInvoice:
			s.InvoiceRowCount++
			s.TotalApplied = s.TotalApplied.Add(apps[i].AmountPaid)
		case ApplicationDocCreditMemo:
			s.CreditMemoApplied = s.CreditMemoApplied.Add(apps[i].AmountPaid)
		}
	}
	return s
}

// CollectionSample pairs an application with the dates needed for
// days-to-collect math.
type CollectionSample struct {
	InvoiceDate time.Time
	PaymentDate time.Time
	AmountPaid  decimal.Decimal
	PaymentType PaymentType
}

// AverageDaysToCollect averages payment date minus invoice date in days.
// Samples with non-positive amounts, prepayments, credit memos, and
// payments dated before the invoice (bad data) are excluded. Returns
// zero and false when no sample qualifies.
func AverageDaysToCollect(samples []CollectionSample) (float64, bool) {
	var totalDays float64
	var n int
	for _, s := range samples {
		if !s.AmountPaid.GreaterThan(decimal.Zero) {
			continue
		}
		if !s.PaymentType.CountsTowardCollection() {
			continue
		}
		if s.PaymentDate.Before(s.InvoiceDate) {
			continue
		}
		totalDays += s.PaymentDate.Sub(s.InvoiceDate).Hours() / 24
		n++
	}
	if n == 0 {
		return 0, false
	}
	return totalDays / float64(n), true
}
