package collection

import (
	"time"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTicketRequest opens a ticket for a customer
type CreateTicketRequest struct {
	CustomerID        string   `json:"customer_id" binding:"required"`
	CollectorID       string   `json:"collector_id" binding:"required,uuid"`
	Priority          string   `json:"priority" binding:"required,oneof=low medium high"`
	Subject           string   `json:"subject" binding:"required,min=1,max=200"`
	Notes             string   `json:"notes"`
	InvoiceReferences []string `json:"invoice_references"`
}

// AddInvoiceRequest links an invoice to a ticket
type AddInvoiceRequest struct {
	InvoiceReference string `json:"invoice_reference" binding:"required"`
}

// ReassignTicketRequest hands a ticket to another collector
type ReassignTicketRequest struct {
	CollectorID string `json:"collector_id" binding:"required,uuid"`
}

// LogActivityRequest records a collector contact
type LogActivityRequest struct {
	CustomerID       string `json:"customer_id" binding:"required"`
	Type             string `json:"type" binding:"required,oneof=call email note promise_to_pay"`
	Summary          string `json:"summary" binding:"required,min=1,max=2000"`
	InvoiceReference string `json:"invoice_reference"`
	TicketID         string `json:"ticket_id" binding:"omitempty,uuid"`
}

// TicketInvoiceResponse is one invoice linked to a ticket
type TicketInvoiceResponse struct {
	InvoiceReference string          `json:"invoice_reference"`
	BalanceAtLink    decimal.Decimal `json:"balance_at_link"`
	Settled          bool            `json:"settled"`
	SettledAt        *time.Time      `json:"settled_at,omitempty"`
}

// TicketResponse represents a ticket in API responses
type TicketResponse struct {
	ID           uuid.UUID               `json:"id"`
	CustomerID   string                  `json:"customer_id"`
	CollectorID  uuid.UUID               `json:"collector_id"`
	Status       string                  `json:"status"`
	Priority     string                  `json:"priority"`
	Subject      string                  `json:"subject"`
	Notes        string                  `json:"notes"`
	Invoices     []TicketInvoiceResponse `json:"invoices"`
	ResolvedAt   *time.Time              `json:"resolved_at,omitempty"`
	AutoResolved bool                    `json:"auto_resolved"`
	CreatedAt    time.Time               `json:"created_at"`
}

// ToTicketResponse converts a domain ticket to its API shape
func ToTicketResponse(t *collection.CollectionTicket) TicketResponse {
	invoices := make([]TicketInvoiceResponse, 0, len(t.Invoices))
	for i := range t.Invoices {
		invoices = append(invoices, TicketInvoiceResponse{
			InvoiceReference: t.Invoices[i].InvoiceReference,
			BalanceAtLink:    t.Invoices[i].BalanceAtLink,
			Settled:          t.Invoices[i].Settled,
			SettledAt:        t.Invoices[i].SettledAt,
		})
	}
	return TicketResponse{
		ID:           t.ID,
		CustomerID:   t.CustomerID,
		CollectorID:  t.CollectorID,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		Subject:      t.Subject,
		Notes:        t.Notes,
		Invoices:     invoices,
		ResolvedAt:   t.ResolvedAt,
		AutoResolved: t.AutoResolved,
		CreatedAt:    t.CreatedAt,
	}
}

// ActivityResponse represents a logged activity in API responses
type ActivityResponse struct {
	ID               uuid.UUID  `json:"id"`
	CollectorID      uuid.UUID  `json:"collector_id"`
	CustomerID       string     `json:"customer_id"`
	InvoiceReference string     `json:"invoice_reference,omitempty"`
	TicketID         *uuid.UUID `json:"ticket_id,omitempty"`
	Type             string     `json:"type"`
	Summary          string     `json:"summary"`
	OccurredAt       time.Time  `json:"occurred_at"`
}

// ToActivityResponse converts a domain activity to its API shape
func ToActivityResponse(a *collection.CollectorActivity) ActivityResponse {
	return ActivityResponse{
		ID:               a.ID,
		CollectorID:      a.CollectorID,
		CustomerID:       a.CustomerID,
		InvoiceReference: a.InvoiceReference,
		TicketID:         a.TicketID,
		Type:             string(a.Type),
		Summary:          a.Summary,
		OccurredAt:       a.OccurredAt,
	}
}
