package receivable

import (
	"time"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoicePayload is one invoice row from an ERP sync batch
type InvoicePayload struct {
	ReferenceNumber string          `json:"reference_number" binding:"required"`
	CustomerID      string          `json:"customer_id" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	Status          string          `json:"status" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	DueDate         *time.Time      `json:"due_date"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
}

// PaymentPayload is one payment row from an ERP sync batch
type PaymentPayload struct {
	ReferenceNumber string          `json:"reference_number" binding:"required"`
	CustomerID      string          `json:"customer_id" binding:"required"`
	Type            string          `json:"type" binding:"required"`
	ApplicationDate time.Time       `json:"application_date" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
}

// ApplicationPayload is one payment application row from an ERP sync batch
type ApplicationPayload struct {
	InvoiceReference string          `json:"invoice_reference" binding:"required"`
	DocType          string          `json:"doc_type" binding:"required"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	ApplicationDate  time.Time       `json:"application_date"`
}

// UpsertResult summarizes one sync batch ingest
type UpsertResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// SetColorStatusRequest is a manual color change by a user
type SetColorStatusRequest struct {
	ColorStatus string `json:"color_status" binding:"omitempty,oneof=green yellow orange red"`
}

// UpdateMemoRequest updates the local memo on an invoice mirror
type UpdateMemoRequest struct {
	Memo string `json:"memo" binding:"max=4000"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	ReferenceNumber string          `json:"reference_number"`
	CustomerID      string          `json:"customer_id"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	Date            time.Time       `json:"date"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Balance         decimal.Decimal `json:"balance"`
	ColorStatus     string          `json:"color_status"`
	DaysOverdue     int             `json:"days_overdue"`
	LastTouchedAt   *time.Time      `json:"last_touched_at,omitempty"`
	LastSyncedAt    time.Time       `json:"last_synced_at"`
}

// ToInvoiceResponse converts a domain invoice to its API shape
func ToInvoiceResponse(inv *receivable.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		ReferenceNumber: inv.ReferenceNumber,
		CustomerID:      inv.CustomerID,
		Type:            string(inv.Type),
		Status:          string(inv.Status),
		Date:            inv.Date,
		DueDate:         inv.DueDate,
		Amount:          inv.Amount,
		Balance:         inv.Balance,
		ColorStatus:     string(inv.ColorStatus),
		DaysOverdue:     inv.DaysOverdue(time.Now()),
		LastTouchedAt:   inv.LastTouchedAt,
		LastSyncedAt:    inv.LastSyncedAt,
	}
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	ReferenceNumber string          `json:"reference_number"`
	CustomerID      string          `json:"customer_id"`
	Type            string          `json:"type"`
	ApplicationDate time.Time       `json:"application_date"`
	Amount          decimal.Decimal `json:"amount"`
	AppliedAmount   decimal.Decimal `json:"applied_amount"`
}

// ToPaymentResponse converts a domain payment to its API shape
func ToPaymentResponse(p *receivable.Payment, applied decimal.Decimal) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		ReferenceNumber: p.ReferenceNumber,
		CustomerID:      p.CustomerID,
		Type:            string(p.Type),
		ApplicationDate: p.ApplicationDate,
		Amount:          p.Amount,
		AppliedAmount:   applied,
	}
}

// CustomerBalanceResponse is the receivable rollup for one customer
type CustomerBalanceResponse struct {
	CustomerID       string          `json:"customer_id"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	CreditBalance    decimal.Decimal `json:"credit_balance"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	OpenInvoiceCount int             `json:"open_invoice_count"`
	OverdueCount     int             `json:"overdue_count"`
}

// ColorStatusLogResponse is one audit row for an invoice's color history
type ColorStatusLogResponse struct {
	ID               uuid.UUID  `json:"id"`
	InvoiceReference string     `json:"invoice_reference"`
	OldStatus        string     `json:"old_status"`
	NewStatus        string     `json:"new_status"`
	ChangedBy        *uuid.UUID `json:"changed_by,omitempty"`
	Automatic        bool       `json:"automatic"`
	ChangedAt        time.Time  `json:"changed_at"`
}

// ToColorStatusLogResponse converts an audit entry to its API shape
func ToColorStatusLogResponse(e *receivable.ColorStatusLogEntry) ColorStatusLogResponse {
	return ColorStatusLogResponse{
		ID:               e.ID,
		InvoiceReference: e.InvoiceReference,
		OldStatus:        string(e.OldStatus),
		NewStatus:        string(e.NewStatus),
		ChangedBy:        e.ChangedBy,
		Automatic:        e.Automatic,
		ChangedAt:        e.ChangedAt,
	}
}
