package receivable

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/partner"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// nowFunc is stubbed in tests
var nowFunc = time.Now

// escalationBatchSize caps how many candidates one sweep pass loads
const escalationBatchSize = 500

// StatusEscalationService runs the red-flag sweep and applies manual color
// changes. Automatic and manual transitions both flow through the invoice
// aggregate so every change lands in the audit trail.
type StatusEscalationService struct {
	invoiceRepo  receivable.InvoiceRepository
	customerRepo partner.CustomerRepository
	logRepo      receivable.ColorStatusLogRepository
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewStatusEscalationService creates a new StatusEscalationService
func NewStatusEscalationService(
	invoiceRepo receivable.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	logRepo receivable.ColorStatusLogRepository,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *StatusEscalationService {
	return &StatusEscalationService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		logRepo:      logRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// SweepResult summarizes one escalation sweep
type SweepResult struct {
	Examined  int `json:"examined"`
	Escalated int `json:"escalated"`
	Conflicts int `json:"conflicts"`
}

// Sweep flags overdue or untouched open invoices red, honoring each
// customer's configured threshold. Optimistic-lock conflicts are counted
// and skipped; the next sweep picks those invoices up again.
func (s *StatusEscalationService) Sweep(ctx context.Context) (*SweepResult, error) {
	now := nowFunc()
	candidates, err := s.invoiceRepo.FindEscalationCandidates(ctx, now, escalationBatchSize)
	if err != nil {
		return nil, err
	}

	thresholds := make(map[string]int)
	result := &SweepResult{Examined: len(candidates)}
	for i := range candidates {
		inv := &candidates[i]

		threshold, ok := thresholds[inv.CustomerID]
		if !ok {
			threshold = partner.DefaultRedThresholdDays
			customer, err := s.customerRepo.FindByCustomerID(ctx, inv.CustomerID)
			if err == nil {
				threshold = customer.EffectiveRedThreshold()
			}
			thresholds[inv.CustomerID] = threshold
		}

		if !inv.ShouldEscalateToRed(now, threshold) {
			continue
		}

		inv.EscalateToRed()
		if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
			result.Conflicts++
			s.logger.Warn("escalation save conflict",
				zap.String("reference", inv.ReferenceNumber),
				zap.Error(err))
			continue
		}
		if err := shared.PublishEvents(ctx, s.eventBus, inv); err != nil {
			return result, err
		}
		result.Escalated++
	}

	s.logger.Info("escalation sweep complete",
		zap.Int("examined", result.Examined),
		zap.Int("escalated", result.Escalated),
		zap.Int("conflicts", result.Conflicts))
	return result, nil
}

// SetColorStatus applies a manual color change by a user. An empty color
// in the request clears the flag.
func (s *StatusEscalationService) SetColorStatus(ctx context.Context, reference string, req SetColorStatusRequest, changedBy uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if err := inv.SetColorStatus(receivable.ColorStatus(req.ColorStatus), changedBy); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}
	if err := shared.PublishEvents(ctx, s.eventBus, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetColorHistory returns the audit trail for one invoice
func (s *StatusEscalationService) GetColorHistory(ctx context.Context, reference string, filter shared.Filter) ([]ColorStatusLogResponse, error) {
	filter.Clamp()
	entries, err := s.logRepo.FindByInvoice(ctx, reference, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ColorStatusLogResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToColorStatusLogResponse(&entries[i]))
	}
	return responses, nil
}
