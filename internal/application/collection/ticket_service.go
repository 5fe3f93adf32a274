package collection

import (
	"context"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketService handles collection ticket operations. Linking and
// reassignment emit events consumed by the assignment sync handler, which
// keeps invoice_assignments consistent with ticket membership.
type TicketService struct {
	ticketRepo   collection.TicketRepository
	activityRepo collection.ActivityRepository
	invoiceRepo  receivable.InvoiceRepository
	eventBus     shared.EventBus
}

// NewTicketService creates a new TicketService
func NewTicketService(
	ticketRepo collection.TicketRepository,
	activityRepo collection.ActivityRepository,
	invoiceRepo receivable.InvoiceRepository,
	eventBus shared.EventBus,
) *TicketService {
	return &TicketService{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		invoiceRepo:  invoiceRepo,
		eventBus:     eventBus,
	}
}

// invoiceSettled reports whether an invoice mirror already carries no
// collectible balance when linked. Such links start out settled, so the
// ticket waits only on the invoices that still owe money.
func invoiceSettled(inv *receivable.Invoice) bool {
	return !inv.Balance.GreaterThan(decimal.Zero) || inv.Status == receivable.InvoiceStatusClosed
}

// Create opens a ticket, optionally linking invoices in the same call
func (s *TicketService) Create(ctx context.Context, req CreateTicketRequest) (*TicketResponse, error) {
	collectorID, err := uuid.Parse(req.CollectorID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_COLLECTOR", "Collector ID is not a valid UUID")
	}

	ticket, err := collection.NewCollectionTicket(req.CustomerID, collectorID,
		collection.TicketPriority(req.Priority), req.Subject)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		ticket.SetNotes(req.Notes)
	}

	for _, ref := range req.InvoiceReferences {
		inv, err := s.invoiceRepo.FindByReference(ctx, ref)
		if err != nil {
			return nil, err
		}
		if inv.CustomerID != ticket.CustomerID {
			return nil, shared.NewDomainError("CUSTOMER_MISMATCH", "Invoice belongs to a different customer")
		}
		if err := ticket.AddInvoice(inv.ReferenceNumber, inv.Balance, invoiceSettled(inv)); err != nil {
			return nil, err
		}
	}

	if err := s.ticketRepo.Save(ctx, ticket); err != nil {
		return nil, err
	}
	if err := shared.PublishEvents(ctx, s.eventBus, ticket); err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// GetByID returns one ticket
func (s *TicketService) GetByID(ctx context.Context, id uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToTicketResponse(ticket)
	return &response, nil
}

// ListByCollector returns a collector's tickets in one status
func (s *TicketService) ListByCollector(ctx context.Context, collectorID uuid.UUID, status collection.TicketStatus, filter shared.Filter) ([]TicketResponse, error) {
	filter.Clamp()
	tickets, err := s.ticketRepo.FindByCollector(ctx, collectorID, status, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		responses = append(responses, ToTicketResponse(&tickets[i]))
	}
	return responses, nil
}

// AddInvoice links an invoice to an existing ticket
func (s *TicketService) AddInvoice(ctx context.Context, ticketID uuid.UUID, req AddInvoiceRequest) (*TicketResponse, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	inv, err := s.invoiceRepo.FindByReference(ctx, req.InvoiceReference)
	if err != nil {
		return nil, err
	}
	if inv.CustomerID != ticket.CustomerID {
		return nil, shared.NewDomainError("CUSTOMER_MISMATCH", "Invoice belongs to a different customer")
	}

	if err := ticket.AddInvoice(inv.ReferenceNumber, inv.Balance, invoiceSettled(inv)); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.SaveWithLock(ctx, ticket); err != nil {
		return nil, err
	}
	if err := shared.PublishEvents(ctx, s.eventBus, ticket); err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// Reassign hands a ticket and its linked invoices to another collector
func (s *TicketService) Reassign(ctx context.Context, ticketID uuid.UUID, req ReassignTicketRequest) (*TicketResponse, error) {
	collectorID, err := uuid.Parse(req.CollectorID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_COLLECTOR", "Collector ID is not a valid UUID")
	}

	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := ticket.Reassign(collectorID); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.SaveWithLock(ctx, ticket); err != nil {
		return nil, err
	}
	if err := shared.PublishEvents(ctx, s.eventBus, ticket); err != nil {
		return nil, err
	}

	response := ToTicketResponse(ticket)
	return &response, nil
}

// Start marks a ticket as being worked
func (s *TicketService) Start(ctx context.Context, ticketID uuid.UUID) error {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := ticket.Start(); err != nil {
		return err
	}
	return s.ticketRepo.SaveWithLock(ctx, ticket)
}

// Resolve resolves a ticket manually
func (s *TicketService) Resolve(ctx context.Context, ticketID uuid.UUID) error {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := ticket.Resolve(nowFunc()); err != nil {
		return err
	}
	if err := s.ticketRepo.SaveWithLock(ctx, ticket); err != nil {
		return err
	}
	return shared.PublishEvents(ctx, s.eventBus, ticket)
}

// Close closes a resolved ticket for good
func (s *TicketService) Close(ctx context.Context, ticketID uuid.UUID) error {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := ticket.Close(); err != nil {
		return err
	}
	return s.ticketRepo.SaveWithLock(ctx, ticket)
}

// Reopen reopens a resolved ticket
func (s *TicketService) Reopen(ctx context.Context, ticketID uuid.UUID) error {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := ticket.Reopen(); err != nil {
		return err
	}
	return s.ticketRepo.SaveWithLock(ctx, ticket)
}

// LogActivity records a collector contact and touches the invoice when one
// is referenced, resetting its untouched clock.
func (s *TicketService) LogActivity(ctx context.Context, collectorID uuid.UUID, req LogActivityRequest) (*ActivityResponse, error) {
	activity, err := collection.NewCollectorActivity(collectorID, req.CustomerID,
		collection.ActivityType(req.Type), req.Summary, nowFunc())
	if err != nil {
		return nil, err
	}
	if req.TicketID != "" {
		ticketID, err := uuid.Parse(req.TicketID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_TICKET_ID", "Ticket ID is not a valid UUID")
		}
		activity.AttachTicket(ticketID)
	}

	if req.InvoiceReference != "" {
		inv, err := s.invoiceRepo.FindByReference(ctx, req.InvoiceReference)
		if err != nil {
			return nil, err
		}
		activity.AttachInvoice(inv.ReferenceNumber)
		inv.Touch(activity.OccurredAt)
		if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
			return nil, err
		}
	}

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}
	response := ToActivityResponse(activity)
	return &response, nil
}

// ListActivities returns a customer's activity log
func (s *TicketService) ListActivities(ctx context.Context, customerID string, filter shared.Filter) ([]ActivityResponse, error) {
	filter.Clamp()
	activities, err := s.activityRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ActivityResponse, 0, len(activities))
	for i := range activities {
		responses = append(responses, ToActivityResponse(&activities[i]))
	}
	return responses, nil
}
