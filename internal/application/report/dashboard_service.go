package report

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/mail"
	"github.com/arflow/backend/internal/domain/partner"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// nowFunc is stubbed in tests
var nowFunc = time.Now

// agingBatchSize bounds one invoice page while building aging buckets
const agingBatchSize = 1000

// staleAfter marks a sync entity unhealthy when its last success is older
// than this.
const staleAfter = 30 * time.Minute

// DashboardService computes the admin landing page rollup
type DashboardService struct {
	customerRepo partner.CustomerRepository
	invoiceRepo  receivable.InvoiceRepository
	ticketRepo   collection.TicketRepository
	emailRepo    mail.EmailRepository
	syncRepo     sync.EntityRepository
	logger       *zap.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	customerRepo partner.CustomerRepository,
	invoiceRepo receivable.InvoiceRepository,
	ticketRepo collection.TicketRepository,
	emailRepo mail.EmailRepository,
	syncRepo sync.EntityRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		ticketRepo:   ticketRepo,
		emailRepo:    emailRepo,
		syncRepo:     syncRepo,
		logger:       logger,
	}
}

// Build assembles the dashboard in one pass over open invoices plus a
// handful of counts.
func (s *DashboardService) Build(ctx context.Context) (*DashboardResponse, error) {
	now := nowFunc()
	resp := &DashboardResponse{
		ColorCounts:      map[string]int64{},
		OutstandingGross: decimal.Zero,
		OutstandingNet:   decimal.Zero,
		GeneratedAt:      now,
	}

	customers, err := s.customerRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	resp.Customers = customers

	for _, status := range []collection.TicketStatus{collection.TicketStatusOpen, collection.TicketStatusInProgress} {
		count, err := s.ticketRepo.Count(ctx, filterWith("status", string(status)))
		if err != nil {
			return nil, err
		}
		resp.ActiveTickets += count
	}

	inbox, err := s.emailRepo.Count(ctx, mail.FolderInbox)
	if err != nil {
		return nil, err
	}
	resp.InboxEmails = inbox

	if err := s.scanInvoices(ctx, now, resp); err != nil {
		return nil, err
	}

	entities, err := s.syncRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entities {
		e := &entities[i]
		stale := e.LastSucceededAt == nil || now.Sub(*e.LastSucceededAt) > staleAfter
		resp.SyncHealth = append(resp.SyncHealth, SyncHealth{
			Kind:            string(e.Kind),
			Status:          string(e.Status),
			LastSucceededAt: e.LastSucceededAt,
			Stale:           stale,
		})
	}

	return resp, nil
}

// scanInvoices pages over open invoices accumulating totals, color counts
// and aging buckets.
func (s *DashboardService) scanInvoices(ctx context.Context, now time.Time, resp *DashboardResponse) error {
	buckets := []AgingBucket{
		{Label: "current", Balance: decimal.Zero},
		{Label: "1-30", Balance: decimal.Zero},
		{Label: "31-60", Balance: decimal.Zero},
		{Label: "61-90", Balance: decimal.Zero},
		{Label: "90+", Balance: decimal.Zero},
	}

	filter := filterWith("status", string(receivable.InvoiceStatusOpen))
	filter.PageSize = agingBatchSize
	for {
		invoices, err := s.invoiceRepo.FindAll(ctx, filter)
		if err != nil {
			return err
		}
		if len(invoices) == 0 {
			break
		}

		for i := range invoices {
			inv := &invoices[i]
			if inv.Status != receivable.InvoiceStatusOpen {
				continue
			}
			if inv.ColorStatus != receivable.ColorStatusUnset {
				resp.ColorCounts[string(inv.ColorStatus)]++
			}

			switch {
			case inv.Type == receivable.InvoiceTypeInvoice:
				resp.OpenInvoices++
				resp.OutstandingGross = resp.OutstandingGross.Add(inv.Balance)
				resp.OutstandingNet = resp.OutstandingNet.Add(inv.Balance)

				overdue := inv.IsOverdue(now)
				if overdue {
					resp.OverdueInvoices++
				}
				idx := agingBucketIndex(overdue, inv.DaysOverdue(now))
				buckets[idx].InvoiceCount++
				buckets[idx].Balance = buckets[idx].Balance.Add(inv.Balance)
			case inv.Type.IsCredit():
				resp.OutstandingNet = resp.OutstandingNet.Sub(inv.Balance)
			}
		}

		if len(invoices) < filter.PageSize {
			break
		}
		filter.Page++
	}

	resp.Aging = buckets
	return nil
}

func agingBucketIndex(overdue bool, overdueDays int) int {
	switch {
	case !overdue:
		return 0
	case overdueDays <= 30:
		return 1
	case overdueDays <= 60:
		return 2
	case overdueDays <= 90:
		return 3
	default:
		return 4
	}
}

func filterWith(key string, value interface{}) shared.Filter {
	f := shared.DefaultFilter()
	f.Filters[key] = value
	return f
}
