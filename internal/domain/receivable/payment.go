package receivable

import (
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentType mirrors the ERP payment document type
type PaymentType string

const (
	PaymentTypePayment    PaymentType = "Payment"
	PaymentTypePrepayment PaymentType = "Prepayment"
	PaymentTypeCreditMemo PaymentType = "Credit Memo"
	PaymentTypeVoided     PaymentType = "Voided Payment"
)

// IsValid checks if the payment type is a known ERP type
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypePayment, PaymentTypePrepayment, PaymentTypeCreditMemo, PaymentTypeVoided:
		return true
	}
	return false
}

// CountsTowardCollection returns true for payment types that represent
// real collected money in performance rollups. Prepayments and credit
// memos are tracked, but excluded from days-to-collect math.
func (t PaymentType) CountsTowardCollection() bool {
	return t == PaymentTypePayment
}

// Payment is a local mirror of an ERP payment header
type Payment struct {
	shared.BaseAggregateRoot
	ReferenceNumber string // unique ERP key
	CustomerID      string
	Type            PaymentType
	Amount          decimal.Decimal
	ApplicationDate time.Time
	LastSyncedAt    time.Time
}

// NewPayment creates a payment mirror from a sync payload
func NewPayment(referenceNumber, customerID string, paymentType PaymentType, amount decimal.Decimal, applicationDate time.Time) (*Payment, error) {
	referenceNumber = strings.TrimSpace(referenceNumber)
	if referenceNumber == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Payment reference number cannot be empty")
	}
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Payment type is not valid")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReferenceNumber:   referenceNumber,
		CustomerID:        customerID,
		Type:              paymentType,
		Amount:            amount,
		ApplicationDate:   applicationDate,
		LastSyncedAt:      time.Now(),
	}, nil
}

// ApplySync updates ERP-owned fields from a fresh sync payload
func (p *Payment) ApplySync(paymentType PaymentType, amount decimal.Decimal, applicationDate time.Time) error {
	if !paymentType.IsValid() {
		return shared.NewDomainError("INVALID_TYPE", "Payment type is not valid")
	}
	p.Type = paymentType
	p.Amount = amount
	p.ApplicationDate = applicationDate
	p.LastSyncedAt = time.Now()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsVoided returns true for voided payments
func (p *Payment) IsVoided() bool {
	return p.Type == PaymentTypeVoided
}
