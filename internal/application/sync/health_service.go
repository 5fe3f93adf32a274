package sync

import (
	"context"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// healthCheckBatchSize bounds one drift check pass
const healthCheckBatchSize = 1000

// HealthService cross-checks synced payment headers against their
// application rows. Drift between the two usually means a partial sync:
// the header landed but its application rows did not, or the other way
// around.
type HealthService struct {
	paymentRepo receivable.PaymentRepository
	appRepo     receivable.ApplicationRepository
	logger      *zap.Logger
}

// NewHealthService creates a new HealthService
func NewHealthService(
	paymentRepo receivable.PaymentRepository,
	appRepo receivable.ApplicationRepository,
	logger *zap.Logger,
) *HealthService {
	return &HealthService{
		paymentRepo: paymentRepo,
		appRepo:     appRepo,
		logger:      logger,
	}
}

// CheckPaymentDrift compares every payment header amount against the
// applied total of its application rows. Voided payments are skipped;
// their applications are reversed in the ERP but the header keeps its
// original amount.
func (s *HealthService) CheckPaymentDrift(ctx context.Context) (*DriftReport, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = healthCheckBatchSize

	report := &DriftReport{CheckedAt: nowFunc()}
	for {
		payments, err := s.paymentRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		if len(payments) == 0 {
			break
		}

		for i := range payments {
			payment := &payments[i]
			if payment.IsVoided() {
				continue
			}
			report.CheckedPayments++

			apps, err := s.appRepo.FindByPayment(ctx, payment.ReferenceNumber)
			if err != nil {
				return nil, err
			}
			applied := receivable.AppliedTotal(apps)
			if applied.Equal(payment.Amount) {
				continue
			}

			report.DriftingCount++
			report.Entries = append(report.Entries, PaymentDriftEntry{
				PaymentReference: payment.ReferenceNumber,
				CustomerID:       payment.CustomerID,
				HeaderAmount:     payment.Amount,
				AppliedAmount:    applied,
				Drift:            payment.Amount.Sub(applied),
			})
		}

		if len(payments) < filter.PageSize {
			break
		}
		filter.Page++
	}

	if report.DriftingCount > 0 {
		s.logger.Warn("payment application drift detected",
			zap.Int("checked", report.CheckedPayments),
			zap.Int("drifting", report.DriftingCount))
	}
	return report, nil
}
