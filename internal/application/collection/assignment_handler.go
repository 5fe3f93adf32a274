package collection

import (
	"context"
	"errors"
	"time"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// nowFunc is stubbed in tests
var nowFunc = time.Now

// AssignmentSyncHandler keeps invoice assignments consistent with ticket
// membership: linking an invoice to a ticket upserts its assignment to the
// ticket's collector, and reassigning a ticket moves every linked invoice.
type AssignmentSyncHandler struct {
	assignmentRepo collection.AssignmentRepository
	logger         *zap.Logger
}

// NewAssignmentSyncHandler creates a new AssignmentSyncHandler
func NewAssignmentSyncHandler(assignmentRepo collection.AssignmentRepository, logger *zap.Logger) *AssignmentSyncHandler {
	return &AssignmentSyncHandler{assignmentRepo: assignmentRepo, logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *AssignmentSyncHandler) EventTypes() []string {
	return []string{
		collection.EventTypeTicketInvoiceAdded,
		collection.EventTypeTicketCollectorChanged,
	}
}

// Handle applies one assignment sync step
func (h *AssignmentSyncHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *collection.TicketInvoiceAddedEvent:
		return h.upsertAssignment(ctx, e)
	case *collection.TicketCollectorChangedEvent:
		return h.reassignTicketInvoices(ctx, e)
	}
	return nil
}

func (h *AssignmentSyncHandler) upsertAssignment(ctx context.Context, e *collection.TicketInvoiceAddedEvent) error {
	existing, err := h.assignmentRepo.FindByInvoice(ctx, e.InvoiceReference)
	switch {
	case err == nil:
		existing.Reassign(e.CollectorID, &e.TicketID)
		return h.assignmentRepo.Upsert(ctx, existing)
	case errors.Is(err, shared.ErrNotFound):
		assignment, err := collection.NewInvoiceAssignment(e.InvoiceReference, e.CustomerID, e.CollectorID, &e.TicketID)
		if err != nil {
			return err
		}
		return h.assignmentRepo.Upsert(ctx, assignment)
	default:
		return err
	}
}

func (h *AssignmentSyncHandler) reassignTicketInvoices(ctx context.Context, e *collection.TicketCollectorChangedEvent) error {
	if err := h.assignmentRepo.ReassignByTicket(ctx, e.TicketID, e.NewCollectorID); err != nil {
		h.logger.Error("failed to propagate ticket reassignment",
			zap.String("ticket_id", e.TicketID.String()),
			zap.Error(err))
		return err
	}
	return nil
}
