package collection

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TicketRepository provides access to collection tickets
type TicketRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CollectionTicket, error)
	FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]CollectionTicket, error)
	FindByCollector(ctx context.Context, collectorID uuid.UUID, status TicketStatus, filter shared.Filter) ([]CollectionTicket, error)
	FindActiveByInvoice(ctx context.Context, invoiceReference string) ([]CollectionTicket, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]CollectionTicket, error)
	Save(ctx context.Context, ticket *CollectionTicket) error
	SaveWithLock(ctx context.Context, ticket *CollectionTicket) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByCollector(ctx context.Context, collectorID uuid.UUID, status TicketStatus) (int64, error)
}

// AssignmentRepository provides access to invoice assignments.
// Upsert replaces any existing assignment for the same invoice reference.
type AssignmentRepository interface {
	FindByInvoice(ctx context.Context, invoiceReference string) (*InvoiceAssignment, error)
	FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]InvoiceAssignment, error)
	FindByTicket(ctx context.Context, ticketID uuid.UUID) ([]InvoiceAssignment, error)
	Upsert(ctx context.Context, assignment *InvoiceAssignment) error
	ReassignByTicket(ctx context.Context, ticketID uuid.UUID, collectorID uuid.UUID) error
	Delete(ctx context.Context, invoiceReference string) error
}

// ActivityRepository provides access to collector activity logs
type ActivityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CollectorActivity, error)
	FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]CollectorActivity, error)
	FindByCollector(ctx context.Context, collectorID uuid.UUID, from, to time.Time) ([]CollectorActivity, error)
	FindByTicket(ctx context.Context, ticketID uuid.UUID, filter shared.Filter) ([]CollectorActivity, error)
	Save(ctx context.Context, activity *CollectorActivity) error
	CountByCollector(ctx context.Context, collectorID uuid.UUID, from, to time.Time) (int64, error)
}
