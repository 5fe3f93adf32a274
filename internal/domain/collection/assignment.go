package collection

import (
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceAssignment records which collector owns an invoice. The mapping
// is kept in step with ticket membership: linking an invoice to a ticket
// upserts its assignment to the ticket's collector, and reassigning the
// ticket moves every linked invoice with it.
type InvoiceAssignment struct {
	shared.BaseEntity
	InvoiceReference string
	CustomerID       string
	CollectorID      uuid.UUID
	TicketID         *uuid.UUID
	AssignedAt       time.Time
}

// NewInvoiceAssignment creates an assignment for an invoice
func NewInvoiceAssignment(invoiceReference, customerID string, collectorID uuid.UUID, ticketID *uuid.UUID) (*InvoiceAssignment, error) {
	if invoiceReference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Invoice reference cannot be empty")
	}
	if collectorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLLECTOR", "Collector ID cannot be empty")
	}

	return &InvoiceAssignment{
		BaseEntity:       shared.NewBaseEntity(),
		InvoiceReference: invoiceReference,
		CustomerID:       customerID,
		CollectorID:      collectorID,
		TicketID:         ticketID,
		AssignedAt:       time.Now(),
	}, nil
}

// Reassign points the assignment at a new collector
func (a *InvoiceAssignment) Reassign(collectorID uuid.UUID, ticketID *uuid.UUID) {
	a.CollectorID = collectorID
	a.TicketID = ticketID
	a.AssignedAt = time.Now()
	a.UpdatedAt = time.Now()
}
