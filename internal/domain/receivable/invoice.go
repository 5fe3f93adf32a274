package receivable

import (
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceType mirrors the ERP document type
type InvoiceType string

const (
	InvoiceTypeInvoice    InvoiceType = "Invoice"
	InvoiceTypeCreditMemo InvoiceType = "Credit Memo"
	InvoiceTypeCreditWO   InvoiceType = "Credit WO"
	InvoiceTypeDebitMemo  InvoiceType = "Debit Memo"
)

// IsValid checks if the invoice type is a known ERP type
func (t InvoiceType) IsValid() bool {
	switch t {
	case InvoiceTypeInvoice, InvoiceTypeCreditMemo, InvoiceTypeCreditWO, InvoiceTypeDebitMemo:
		return true
	}
	return false
}

// IsCredit returns true for document types that reduce a customer's balance
func (t InvoiceType) IsCredit() bool {
	return t == InvoiceTypeCreditMemo || t == InvoiceTypeCreditWO
}

// InvoiceStatus mirrors the ERP invoice status
type InvoiceStatus string

const (
	InvoiceStatusOpen      InvoiceStatus = "Open"
	InvoiceStatusClosed    InvoiceStatus = "Closed"
	InvoiceStatusVoided    InvoiceStatus = "Voided"
	InvoiceStatusBalanced  InvoiceStatus = "Balanced"
	InvoiceStatusOnHold    InvoiceStatus = "On Hold"
	InvoiceStatusScheduled InvoiceStatus = "Scheduled"
)

// IsValid checks if the status is a known ERP status
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusOpen, InvoiceStatusClosed, InvoiceStatusVoided,
		InvoiceStatusBalanced, InvoiceStatusOnHold, InvoiceStatusScheduled:
		return true
	}
	return false
}

// IsDraft returns true for statuses that exist in the ERP but are not yet
// real receivables. Draft invoices are excluded from every balance rollup.
func (s InvoiceStatus) IsDraft() bool {
	return s == InvoiceStatusBalanced || s == InvoiceStatusOnHold || s == InvoiceStatusScheduled
}

// ColorStatus is the locally derived collection flag on an invoice,
// distinct from the ERP's own status field.
type ColorStatus string

const (
	ColorStatusUnset  ColorStatus = ""
	ColorStatusGreen  ColorStatus = "green"
	ColorStatusYellow ColorStatus = "yellow"
	ColorStatusOrange ColorStatus = "orange"
	ColorStatusRed    ColorStatus = "red"
)

// IsValid checks if the color status is one of the allowed values
func (c ColorStatus) IsValid() bool {
	switch c {
	case ColorStatusUnset, ColorStatusGreen, ColorStatusYellow, ColorStatusOrange, ColorStatusRed:
		return true
	}
	return false
}

// Invoice is a local mirror of an ERP invoice plus the collection state
// derived on top of it (color status, last touch).
type Invoice struct {
	shared.BaseAggregateRoot
	ReferenceNumber string // unique ERP key
	CustomerID      string // external ERP customer key
	Type            InvoiceType
	Status          InvoiceStatus
	Date            time.Time
	DueDate         *time.Time
	Amount          decimal.Decimal
	Balance         decimal.Decimal
	ColorStatus     ColorStatus
	Memo            string // local collection memo, never synced
	LastTouchedAt   *time.Time
	LastSyncedAt    time.Time
}

// NewInvoice creates an invoice mirror from a sync payload
func NewInvoice(referenceNumber, customerID string, invoiceType InvoiceType, status InvoiceStatus, date time.Time, dueDate *time.Time, amount, balance decimal.Decimal) (*Invoice, error) {
	referenceNumber = strings.TrimSpace(referenceNumber)
	if referenceNumber == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Invoice reference number cannot be empty")
	}
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	if !invoiceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invoice type is not valid")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invoice status is not valid")
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReferenceNumber:   referenceNumber,
		CustomerID:        customerID,
		Type:              invoiceType,
		Status:            status,
		Date:              date,
		DueDate:           dueDate,
		Amount:            amount,
		Balance:           balance,
		ColorStatus:       ColorStatusUnset,
		LastSyncedAt:      time.Now(),
	}, nil
}

// ApplySync updates ERP-owned fields from a fresh sync payload and drives
// the balance-triggered color transitions. The red flag is cleared the
// moment the balance crosses from positive to zero or below, regardless of
// what caused the payment; a balance going back above zero never restores
// red by itself (only the escalation sweep may re-apply it).
func (inv *Invoice) ApplySync(status InvoiceStatus, dueDate *time.Time, amount, balance decimal.Decimal) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invoice status is not valid")
	}

	oldBalance := inv.Balance
	inv.Status = status
	inv.DueDate = dueDate
	inv.Amount = amount
	inv.Balance = balance
	inv.LastSyncedAt = time.Now()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	if !oldBalance.Equal(balance) {
		inv.AddDomainEvent(NewInvoiceBalanceChangedEvent(inv, oldBalance, balance))

		if oldBalance.GreaterThan(decimal.Zero) && balance.LessThanOrEqual(decimal.Zero) && inv.ColorStatus == ColorStatusRed {
			inv.clearColor(nil)
		}
	}
	return nil
}

// SetMemo updates the local collection memo
func (inv *Invoice) SetMemo(memo string) {
	inv.Memo = memo
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// Touch records a collector contact against the invoice
func (inv *Invoice) Touch(at time.Time) {
	inv.LastTouchedAt = &at
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// SetColorStatus applies a manual color change by an authorized user.
// Every manual change is audited via the emitted event.
func (inv *Invoice) SetColorStatus(status ColorStatus, changedBy uuid.UUID) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_COLOR_STATUS", "Color status is not valid")
	}
	if status == inv.ColorStatus {
		return nil
	}

	old := inv.ColorStatus
	inv.ColorStatus = status
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceColorStatusChangedEvent(inv, old, status, &changedBy, false))
	return nil
}

// ShouldEscalateToRed reports whether the escalation sweep must flag this
// invoice red: positive balance and either past due or untouched for at
// least thresholdDays (never touched counts from the invoice date).
func (inv *Invoice) ShouldEscalateToRed(now time.Time, thresholdDays int) bool {
	if inv.Type != InvoiceTypeInvoice || inv.Status != InvoiceStatusOpen {
		return false
	}
	if !inv.Balance.GreaterThan(decimal.Zero) {
		return false
	}
	if inv.DueDate != nil && inv.DueDate.Before(now) {
		return true
	}

	threshold := time.Duration(thresholdDays) * 24 * time.Hour
	if inv.LastTouchedAt == nil {
		return now.Sub(inv.Date) > threshold
	}
	return now.Sub(*inv.LastTouchedAt) > threshold
}

// EscalateToRed applies the automatic red flag from the sweep
func (inv *Invoice) EscalateToRed() {
	if inv.ColorStatus == ColorStatusRed {
		return
	}
	old := inv.ColorStatus
	inv.ColorStatus = ColorStatusRed
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceColorStatusChangedEvent(inv, old, ColorStatusRed, nil, true))
}

// clearColor resets the color flag, recording the automatic transition
func (inv *Invoice) clearColor(changedBy *uuid.UUID) {
	old := inv.ColorStatus
	inv.ColorStatus = ColorStatusUnset
	inv.AddDomainEvent(NewInvoiceColorStatusChangedEvent(inv, old, ColorStatusUnset, changedBy, true))
}

// IsOpen returns true for a real, still-collectible invoice
func (inv *Invoice) IsOpen() bool {
	return inv.Type == InvoiceTypeInvoice && inv.Status == InvoiceStatusOpen
}

// IsOutstanding returns true if the invoice still carries collectible balance
func (inv *Invoice) IsOutstanding() bool {
	return inv.IsOpen() && inv.Balance.GreaterThan(decimal.Zero)
}

// IsOverdue returns true if the invoice is past its due date with balance remaining
func (inv *Invoice) IsOverdue(now time.Time) bool {
	return inv.IsOutstanding() && inv.DueDate != nil && inv.DueDate.Before(now)
}

// DaysOverdue returns whole days past due, zero when not overdue
func (inv *Invoice) DaysOverdue(now time.Time) int {
	if !inv.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(*inv.DueDate).Hours() / 24)
}
