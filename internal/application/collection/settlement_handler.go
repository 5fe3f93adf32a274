package collection

import (
	"context"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SettlementHandler reacts to invoice balances reaching zero: it marks the
// invoice settled on every active ticket that links it, which auto-resolves
// a ticket once its last linked invoice settles.
type SettlementHandler struct {
	ticketRepo collection.TicketRepository
	eventBus   shared.EventBus
	logger     *zap.Logger
}

// NewSettlementHandler creates a new SettlementHandler
func NewSettlementHandler(ticketRepo collection.TicketRepository, eventBus shared.EventBus, logger *zap.Logger) *SettlementHandler {
	return &SettlementHandler{ticketRepo: ticketRepo, eventBus: eventBus, logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *SettlementHandler) EventTypes() []string {
	return []string{receivable.EventTypeInvoiceBalanceChanged}
}

// Handle processes one balance change event
func (h *SettlementHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*receivable.InvoiceBalanceChangedEvent)
	if !ok || !changed.ReachedZero() {
		return nil
	}

	tickets, err := h.ticketRepo.FindActiveByInvoice(ctx, changed.ReferenceNumber)
	if err != nil {
		return err
	}

	for i := range tickets {
		ticket := &tickets[i]
		if err := ticket.MarkInvoiceSettled(changed.ReferenceNumber, changed.OccurredAt()); err != nil {
			continue
		}
		if err := h.ticketRepo.SaveWithLock(ctx, ticket); err != nil {
			h.logger.Warn("settlement save conflict",
				zap.String("ticket_id", ticket.ID.String()),
				zap.Error(err))
			continue
		}
		if err := shared.PublishEvents(ctx, h.eventBus, ticket); err != nil {
			return err
		}
	}
	return nil
}
