package collection

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PerformanceService computes per-collector rollups over a reporting
// window. Collected money is derived from application rows via the central
// applied-amount rule, never re-summed locally.
type PerformanceService struct {
	ticketRepo     collection.TicketRepository
	activityRepo   collection.ActivityRepository
	assignmentRepo collection.AssignmentRepository
	appRepo        receivable.ApplicationRepository
	invoiceRepo    receivable.InvoiceRepository
	paymentRepo    receivable.PaymentRepository
}

// NewPerformanceService creates a new PerformanceService
func NewPerformanceService(
	ticketRepo collection.TicketRepository,
	activityRepo collection.ActivityRepository,
	assignmentRepo collection.AssignmentRepository,
	appRepo receivable.ApplicationRepository,
	invoiceRepo receivable.InvoiceRepository,
	paymentRepo receivable.PaymentRepository,
) *PerformanceService {
	return &PerformanceService{
		ticketRepo:     ticketRepo,
		activityRepo:   activityRepo,
		assignmentRepo: assignmentRepo,
		appRepo:        appRepo,
		invoiceRepo:    invoiceRepo,
		paymentRepo:    paymentRepo,
	}
}

// PerformanceReport is the per-collector rollup plus collected money
type PerformanceReport struct {
	collection.CollectorPerformance
	InvoicesAssigned int64           `json:"invoices_assigned"`
	MoneyCollected   decimal.Decimal `json:"money_collected"`
	WindowFrom       time.Time       `json:"window_from"`
	WindowTo         time.Time       `json:"window_to"`
}

// Report computes one collector's rollup for a reporting window
func (s *PerformanceService) Report(ctx context.Context, collectorID uuid.UUID, from, to time.Time) (*PerformanceReport, error) {
	report := &PerformanceReport{
		CollectorPerformance: collection.CollectorPerformance{CollectorID: collectorID},
		MoneyCollected:       decimal.Zero,
		WindowFrom:           from,
		WindowTo:             to,
	}

	for _, status := range []collection.TicketStatus{collection.TicketStatusOpen, collection.TicketStatusInProgress} {
		count, err := s.ticketRepo.CountByCollector(ctx, collectorID, status)
		if err != nil {
			return nil, err
		}
		report.ActiveTickets += count
	}

	resolvedTickets, err := s.ticketRepo.CountByCollector(ctx, collectorID, collection.TicketStatusResolved)
	if err != nil {
		return nil, err
	}
	report.ResolvedTickets = resolvedTickets

	activities, err := s.activityRepo.CountByCollector(ctx, collectorID, from, to)
	if err != nil {
		return nil, err
	}
	report.ActivitiesLogged = activities

	assignmentFilter := shared.DefaultFilter()
	assignmentFilter.PageSize = shared.MaxPageSize
	assignments, err := s.assignmentRepo.FindByCollector(ctx, collectorID, assignmentFilter)
	if err != nil {
		return nil, err
	}
	report.InvoicesAssigned = int64(len(assignments))

	assigned := make(map[string]bool, len(assignments))
	refs := make([]string, 0, len(assignments))
	for i := range assignments {
		assigned[assignments[i].InvoiceReference] = true
		refs = append(refs, assignments[i].InvoiceReference)
	}

	apps, err := s.appRepo.FindInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	mine := make([]receivable.PaymentApplication, 0, len(apps))
	for i := range apps {
		if assigned[apps[i].InvoiceReference] {
			mine = append(mine, apps[i])
		}
	}
	report.MoneyCollected = receivable.AppliedTotal(mine)

	samples, err := s.collectionSamples(ctx, refs, mine)
	if err != nil {
		return nil, err
	}
	report.AvgDaysToCollect, report.HasCollectionAvg = receivable.AverageDaysToCollect(samples)

	return report, nil
}

// collectionSamples joins application rows with invoice and payment dates
func (s *PerformanceService) collectionSamples(ctx context.Context, refs []string, apps []receivable.PaymentApplication) ([]receivable.CollectionSample, error) {
	if len(apps) == 0 {
		return nil, nil
	}

	invoices, err := s.invoiceRepo.FindByReferences(ctx, refs)
	if err != nil {
		return nil, err
	}
	invoiceDates := make(map[string]time.Time, len(invoices))
	for i := range invoices {
		invoiceDates[invoices[i].ReferenceNumber] = invoices[i].Date
	}

	samples := make([]receivable.CollectionSample, 0, len(apps))
	for i := range apps {
		if apps[i].DocType != receivable.ApplicationDocInvoice {
			continue
		}
		invoiceDate, ok := invoiceDates[apps[i].InvoiceReference]
		if !ok {
			continue
		}
		payment, err := s.paymentRepo.FindByReference(ctx, apps[i].PaymentReference)
		if err != nil {
			continue
		}
		samples = append(samples, receivable.CollectionSample{
			InvoiceDate: invoiceDate,
			PaymentDate: payment.ApplicationDate,
			AmountPaid:  apps[i].AmountPaid,
			PaymentType: payment.Type,
		})
	}
	return samples, nil
}
