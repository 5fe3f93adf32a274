package collection

import (
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the collection context
const (
	EventTypeTicketInvoiceAdded     = "collection.ticket.invoice_added"
	EventTypeTicketCollectorChanged = "collection.ticket.collector_changed"
	EventTypeTicketResolved         = "collection.ticket.resolved"
)

// TicketInvoiceAddedEvent is raised when an invoice is linked to a ticket.
// The assignment sync handler upserts the invoice's collector from it.
type TicketInvoiceAddedEvent struct {
	shared.BaseDomainEvent
	TicketID         uuid.UUID `json:"ticket_id"`
	CustomerID       string    `json:"customer_id"`
	CollectorID      uuid.UUID `json:"collector_id"`
	InvoiceReference string    `json:"invoice_reference"`
}

// NewTicketInvoiceAddedEvent creates an invoice added event
func NewTicketInvoiceAddedEvent(t *CollectionTicket, invoiceReference string) *TicketInvoiceAddedEvent {
	return &TicketInvoiceAddedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeTicketInvoiceAdded, "CollectionTicket", t.ID),
		TicketID:         t.ID,
		CustomerID:       t.CustomerID,
		CollectorID:      t.CollectorID,
		InvoiceReference: invoiceReference,
	}
}

// TicketCollectorChangedEvent is raised when a ticket is reassigned.
// Every invoice linked to the ticket follows the new collector.
type TicketCollectorChangedEvent struct {
	shared.BaseDomainEvent
	TicketID       uuid.UUID `json:"ticket_id"`
	OldCollectorID uuid.UUID `json:"old_collector_id"`
	NewCollectorID uuid.UUID `json:"new_collector_id"`
}

// NewTicketCollectorChangedEvent creates a collector changed event
func NewTicketCollectorChangedEvent(t *CollectionTicket, oldCollectorID, newCollectorID uuid.UUID) *TicketCollectorChangedEvent {
	return &TicketCollectorChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketCollectorChanged, "CollectionTicket", t.ID),
		TicketID:        t.ID,
		OldCollectorID:  oldCollectorID,
		NewCollectorID:  newCollectorID,
	}
}

// TicketResolvedEvent is raised when a ticket resolves, manually or
// automatically once the last linked invoice settles
type TicketResolvedEvent struct {
	shared.BaseDomainEvent
	TicketID     uuid.UUID `json:"ticket_id"`
	CustomerID   string    `json:"customer_id"`
	CollectorID  uuid.UUID `json:"collector_id"`
	AutoResolved bool      `json:"auto_resolved"`
}

// NewTicketResolvedEvent creates a ticket resolved event
func NewTicketResolvedEvent(t *CollectionTicket, auto bool) *TicketResolvedEvent {
	return &TicketResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTicketResolved, "CollectionTicket", t.ID),
		TicketID:        t.ID,
		CustomerID:      t.CustomerID,
		CollectorID:     t.CollectorID,
		AutoResolved:    auto,
	}
}
