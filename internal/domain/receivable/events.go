package receivable

import (
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the receivable context
const (
	EventTypeInvoiceBalanceChanged     = "receivable.invoice.balance_changed"
	EventTypeInvoiceColorStatusChanged = "receivable.invoice.color_status_changed"
)

// InvoiceBalanceChangedEvent is raised when a sync moves an invoice balance
type InvoiceBalanceChangedEvent struct {
	shared.BaseDomainEvent
	ReferenceNumber string          `json:"reference_number"`
	CustomerID      string          `json:"customer_id"`
	OldBalance      decimal.Decimal `json:"old_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Status          InvoiceStatus   `json:"status"`
}

// NewInvoiceBalanceChangedEvent creates a balance changed event
func NewInvoiceBalanceChangedEvent(inv *Invoice, oldBalance, newBalance decimal.Decimal) *InvoiceBalanceChangedEvent {
	return &InvoiceBalanceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceBalanceChanged, "Invoice", inv.ID),
		ReferenceNumber: inv.ReferenceNumber,
		CustomerID:      inv.CustomerID,
		OldBalance:      oldBalance,
		NewBalance:      newBalance,
		Status:          inv.Status,
	}
}

// ReachedZero returns true when the balance crossed from positive to zero or below
func (e *InvoiceBalanceChangedEvent) ReachedZero() bool {
	return e.OldBalance.GreaterThan(decimal.Zero) && e.NewBalance.LessThanOrEqual(decimal.Zero)
}

// InvoiceColorStatusChangedEvent audits every color transition, manual or automatic
type InvoiceColorStatusChangedEvent struct {
	shared.BaseDomainEvent
	ReferenceNumber string      `json:"reference_number"`
	OldStatus       ColorStatus `json:"old_status"`
	NewStatus       ColorStatus `json:"new_status"`
	ChangedBy       *uuid.UUID  `json:"changed_by,omitempty"`
	Automatic       bool        `json:"automatic"`
}

// NewInvoiceColorStatusChangedEvent creates a color status changed event
func NewInvoiceColorStatusChangedEvent(inv *Invoice, oldStatus, newStatus ColorStatus, changedBy *uuid.UUID, automatic bool) *InvoiceColorStatusChangedEvent {
	return &InvoiceColorStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceColorStatusChanged, "Invoice", inv.ID),
		ReferenceNumber: inv.ReferenceNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		ChangedBy:       changedBy,
		Automatic:       automatic,
	}
}
