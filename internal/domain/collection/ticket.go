package collection

import (
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketStatus is the lifecycle state of a collection ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// IsValid checks if the ticket status is a known value
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// IsActive returns true while the ticket is still being worked
func (s TicketStatus) IsActive() bool {
	return s == TicketStatusOpen || s == TicketStatusInProgress
}

// TicketPriority is the collector-assigned urgency of a ticket
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// IsValid checks if the priority is a known value
func (p TicketPriority) IsValid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// TicketInvoice links an invoice to a ticket with the balance captured at
// link time. The settled flag tracks whether that invoice has since been
// paid down to zero.
type TicketInvoice struct {
	shared.BaseEntity
	TicketID         uuid.UUID
	InvoiceReference string
	BalanceAtLink    decimal.Decimal
	Settled          bool
	SettledAt        *time.Time
}

// CollectionTicket groups a customer's problem invoices under one
// collector-owned work item. A ticket resolves automatically once every
// linked invoice settles; closing is a terminal, manual step.
type CollectionTicket struct {
	shared.BaseAggregateRoot
	CustomerID   string
	CollectorID  uuid.UUID
	Status       TicketStatus
	Priority     TicketPriority
	Subject      string
	Notes        string
	Invoices     []TicketInvoice `gorm:"-"`
	ResolvedAt   *time.Time
	AutoResolved bool
}

// NewCollectionTicket creates an open ticket for a customer
func NewCollectionTicket(customerID string, collectorID uuid.UUID, priority TicketPriority, subject string) (*CollectionTicket, error) {
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	if collectorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLLECTOR", "Collector ID cannot be empty")
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Ticket priority is not valid")
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Ticket subject cannot be empty")
	}

	return &CollectionTicket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CollectorID:       collectorID,
		Status:            TicketStatusOpen,
		Priority:          priority,
		Subject:           subject,
	}, nil
}

// AddInvoice links an invoice to the ticket. An invoice already paid down
// to zero (or closed in the ERP) when linked is recorded settled from the
// start, so only the still-open links keep the ticket from resolving.
// Linking the same reference twice is rejected; linking to a resolved
// ticket reopens it.
func (t *CollectionTicket) AddInvoice(invoiceReference string, balance decimal.Decimal, settled bool) error {
	invoiceReference = strings.TrimSpace(invoiceReference)
	if invoiceReference == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Invoice reference cannot be empty")
	}
	if t.Status == TicketStatusClosed {
		return shared.NewDomainError("TICKET_CLOSED", "Cannot link invoices to a closed ticket")
	}
	for i := range t.Invoices {
		if t.Invoices[i].InvoiceReference == invoiceReference {
			return shared.ErrAlreadyExists
		}
	}

	link := TicketInvoice{
		BaseEntity:       shared.NewBaseEntity(),
		TicketID:         t.ID,
		InvoiceReference: invoiceReference,
		BalanceAtLink:    balance,
	}
	if settled {
		now := time.Now()
		link.Settled = true
		link.SettledAt = &now
	}
	t.Invoices = append(t.Invoices, link)
	if !settled && t.Status == TicketStatusResolved {
		t.Status = TicketStatusOpen
		t.ResolvedAt = nil
		t.AutoResolved = false
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	t.AddDomainEvent(NewTicketInvoiceAddedEvent(t, invoiceReference))
	return nil
}

// MarkInvoiceSettled records that a linked invoice reached zero balance.
// When the last open linked invoice settles, the ticket auto-resolves.
func (t *CollectionTicket) MarkInvoiceSettled(invoiceReference string, at time.Time) error {
	found := false
	for i := range t.Invoices {
		if t.Invoices[i].InvoiceReference == invoiceReference {
			if t.Invoices[i].Settled {
				return nil
			}
			t.Invoices[i].Settled = true
			t.Invoices[i].SettledAt = &at
			found = true
			break
		}
	}
	if !found {
		return shared.ErrNotFound
	}

	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	if t.Status.IsActive() && t.AllSettled() {
		t.resolve(at, true)
	}
	return nil
}

// AllSettled returns true when every linked invoice has settled.
// A ticket with no linked invoices is never considered settled.
func (t *CollectionTicket) AllSettled() bool {
	if len(t.Invoices) == 0 {
		return false
	}
	for i := range t.Invoices {
		if !t.Invoices[i].Settled {
			return false
		}
	}
	return true
}

// Start marks the ticket as being worked
func (t *CollectionTicket) Start() error {
	if t.Status != TicketStatusOpen {
		return shared.ErrInvalidState
	}
	t.Status = TicketStatusInProgress
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Resolve resolves the ticket manually
func (t *CollectionTicket) Resolve(at time.Time) error {
	if !t.Status.IsActive() {
		return shared.ErrInvalidState
	}
	t.resolve(at, false)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

func (t *CollectionTicket) resolve(at time.Time, auto bool) {
	t.Status = TicketStatusResolved
	t.ResolvedAt = &at
	t.AutoResolved = auto
	t.AddDomainEvent(NewTicketResolvedEvent(t, auto))
}

// Reopen moves a resolved ticket back to open
func (t *CollectionTicket) Reopen() error {
	if t.Status != TicketStatusResolved {
		return shared.ErrInvalidState
	}
	t.Status = TicketStatusOpen
	t.ResolvedAt = nil
	t.AutoResolved = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Close closes a resolved ticket for good
func (t *CollectionTicket) Close() error {
	if t.Status != TicketStatusResolved {
		return shared.NewDomainError("TICKET_NOT_RESOLVED", "Only resolved tickets can be closed")
	}
	t.Status = TicketStatusClosed
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Reassign hands the ticket to another collector
func (t *CollectionTicket) Reassign(collectorID uuid.UUID) error {
	if collectorID == uuid.Nil {
		return shared.NewDomainError("INVALID_COLLECTOR", "Collector ID cannot be empty")
	}
	if collectorID == t.CollectorID {
		return nil
	}
	old := t.CollectorID
	t.CollectorID = collectorID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	t.AddDomainEvent(NewTicketCollectorChangedEvent(t, old, collectorID))
	return nil
}

// SetPriority updates the ticket priority
func (t *CollectionTicket) SetPriority(priority TicketPriority) error {
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Ticket priority is not valid")
	}
	t.Priority = priority
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// SetNotes replaces the ticket notes
func (t *CollectionTicket) SetNotes(notes string) {
	t.Notes = notes
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}
