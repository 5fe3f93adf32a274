package receivable

import (
	"context"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ColorAuditHandler writes one audit row per color transition event,
// manual or automatic.
type ColorAuditHandler struct {
	logRepo receivable.ColorStatusLogRepository
	logger  *zap.Logger
}

// NewColorAuditHandler creates a new ColorAuditHandler
func NewColorAuditHandler(logRepo receivable.ColorStatusLogRepository, logger *zap.Logger) *ColorAuditHandler {
	return &ColorAuditHandler{logRepo: logRepo, logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *ColorAuditHandler) EventTypes() []string {
	return []string{receivable.EventTypeInvoiceColorStatusChanged}
}

// Handle appends the audit row
func (h *ColorAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*receivable.InvoiceColorStatusChangedEvent)
	if !ok {
		return nil
	}

	entry := receivable.NewColorStatusLogEntry(changed)
	if err := h.logRepo.Append(ctx, entry); err != nil {
		h.logger.Error("failed to append color status audit row",
			zap.String("reference", changed.ReferenceNumber),
			zap.Error(err))
		return err
	}
	return nil
}
