package receivable

import (
	"context"
	"errors"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
)

// ReconciliationService ingests ERP sync batches for invoices, payments and
// payment applications, and computes receivable rollups. All applied-amount
// math goes through receivable.AppliedTotal so credit-memo-funded payments
// are never double-counted.
type ReconciliationService struct {
	invoiceRepo receivable.InvoiceRepository
	paymentRepo receivable.PaymentRepository
	appRepo     receivable.ApplicationRepository
	eventBus    shared.EventBus
}

// NewReconciliationService creates a new ReconciliationService
func NewReconciliationService(
	invoiceRepo receivable.InvoiceRepository,
	paymentRepo receivable.PaymentRepository,
	appRepo receivable.ApplicationRepository,
	eventBus shared.EventBus,
) *ReconciliationService {
	return &ReconciliationService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		appRepo:     appRepo,
		eventBus:    eventBus,
	}
}

// UpsertInvoices applies one invoice sync batch. Existing mirrors are
// updated in place; rows that fail validation are counted and skipped so a
// bad row cannot poison the batch.
func (s *ReconciliationService) UpsertInvoices(ctx context.Context, payloads []InvoicePayload) (*UpsertResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "upsert_invoices",
		telemetry.WithAttribute(telemetry.SpanAttrRowCount, len(payloads)))
	defer span.End()

	result := &UpsertResult{}
	for _, p := range payloads {
		existing, err := s.invoiceRepo.FindByReference(ctx, p.ReferenceNumber)
		switch {
		case err == nil:
			if err := existing.ApplySync(receivable.InvoiceStatus(p.Status), p.DueDate, p.Amount, p.Balance); err != nil {
				result.Failed++
				continue
			}
			if err := s.invoiceRepo.SaveWithLock(ctx, existing); err != nil {
				result.Failed++
				continue
			}
			if err := shared.PublishEvents(ctx, s.eventBus, existing); err != nil {
				return result, err
			}
			result.Updated++
		case errors.Is(err, shared.ErrNotFound):
			inv, err := receivable.NewInvoice(p.ReferenceNumber, p.CustomerID,
				receivable.InvoiceType(p.Type), receivable.InvoiceStatus(p.Status),
				p.Date, p.DueDate, p.Amount, p.Balance)
			if err != nil {
				result.Failed++
				continue
			}
			if err := s.invoiceRepo.Save(ctx, inv); err != nil {
				result.Failed++
				continue
			}
			result.Created++
		default:
			return result, err
		}
	}
	return result, nil
}

// UpsertPayments applies one payment sync batch
func (s *ReconciliationService) UpsertPayments(ctx context.Context, payloads []PaymentPayload) (*UpsertResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "upsert_payments",
		telemetry.WithAttribute(telemetry.SpanAttrRowCount, len(payloads)))
	defer span.End()

	result := &UpsertResult{}
	for _, p := range payloads {
		existing, err := s.paymentRepo.FindByReference(ctx, p.ReferenceNumber)
		switch {
		case err == nil:
			if err := existing.ApplySync(receivable.PaymentType(p.Type), p.Amount, p.ApplicationDate); err != nil {
				result.Failed++
				continue
			}
			if err := s.paymentRepo.Save(ctx, existing); err != nil {
				result.Failed++
				continue
			}
			result.Updated++
		case errors.Is(err, shared.ErrNotFound):
			payment, err := receivable.NewPayment(p.ReferenceNumber, p.CustomerID,
				receivable.PaymentType(p.Type), p.Amount, p.ApplicationDate)
			if err != nil {
				result.Failed++
				continue
			}
			if err := s.paymentRepo.Save(ctx, payment); err != nil {
				result.Failed++
				continue
			}
			result.Created++
		default:
			return result, err
		}
	}
	return result, nil
}

// ReplaceApplications replaces all application rows for one payment with
// the rows from a fresh sync. The ERP resends the full application set per
// payment, so replace-all is the only way to drop stale rows.
func (s *ReconciliationService) ReplaceApplications(ctx context.Context, paymentReference string, payloads []ApplicationPayload) error {
	if paymentReference == "" {
		return shared.NewDomainError("INVALID_REFERENCE", "Payment reference cannot be empty")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "replace_applications",
		telemetry.WithAttribute(telemetry.SpanAttrPaymentReference, paymentReference),
		telemetry.WithAttribute(telemetry.SpanAttrRowCount, len(payloads)))
	defer span.End()

	apps := make([]*receivable.PaymentApplication, 0, len(payloads))
	for _, p := range payloads {
		app, err := receivable.NewPaymentApplication(paymentReference, p.InvoiceReference,
			receivable.ApplicationDocType(p.DocType), p.AmountPaid, p.ApplicationDate)
		if err != nil {
			return err
		}
		apps = append(apps, app)
	}

	if err := s.appRepo.DeleteByPayment(ctx, paymentReference); err != nil {
		return err
	}
	return s.appRepo.SaveBatch(ctx, apps)
}

// GetInvoice returns one invoice mirror by its ERP reference
func (s *ReconciliationService) GetInvoice(ctx context.Context, reference string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// ListInvoicesByCustomer returns a customer's invoice mirrors
func (s *ReconciliationService) ListInvoicesByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]InvoiceResponse, error) {
	filter.Clamp()
	invoices, err := s.invoiceRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	return responses, nil
}

// GetPayment returns one payment with its applied amount
func (s *ReconciliationService) GetPayment(ctx context.Context, reference string) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	apps, err := s.appRepo.FindByPayment(ctx, reference)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment, receivable.AppliedTotal(apps))
	return &response, nil
}

// GetCustomerBalance computes the receivable rollup for one customer.
// Large customers can mirror more invoices than one page holds, so the
// rollup walks every page; the outstanding sums are additive across pages.
func (s *ReconciliationService) GetCustomerBalance(ctx context.Context, customerID string, mode receivable.BalanceMode) (*CustomerBalanceResponse, error) {
	openCount, err := s.invoiceRepo.CountOpenByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	balance := receivable.CustomerBalance{
		CustomerID:       customerID,
		Outstanding:      decimal.Zero,
		CreditBalance:    decimal.Zero,
		OpenInvoiceCount: int(openCount),
	}

	now := nowFunc()
	filter := shared.DefaultFilter()
	filter.PageSize = shared.MaxPageSize
	net := decimal.Zero
	for {
		invoices, err := s.invoiceRepo.FindByCustomer(ctx, customerID, filter)
		if err != nil {
			return nil, err
		}

		balance.Outstanding = balance.Outstanding.Add(receivable.OutstandingBalance(invoices, receivable.BalanceGross))
		net = net.Add(receivable.OutstandingBalance(invoices, receivable.BalanceNet))
		for i := range invoices {
			if invoices[i].IsOverdue(now) {
				balance.OverdueCount++
			}
		}

		if len(invoices) < filter.PageSize {
			break
		}
		filter.Page++
	}
	balance.CreditBalance = balance.Outstanding.Sub(net)

	resp := &CustomerBalanceResponse{
		CustomerID:       customerID,
		Outstanding:      balance.Outstanding,
		CreditBalance:    balance.CreditBalance,
		NetBalance:       balance.Net(),
		OpenInvoiceCount: balance.OpenInvoiceCount,
		OverdueCount:     balance.OverdueCount,
	}
	if mode == receivable.BalanceGross {
		resp.NetBalance = balance.Outstanding
	}
	return resp, nil
}

// TouchInvoice records a collector contact, which resets the untouched
// clock used by the escalation sweep.
func (s *ReconciliationService) TouchInvoice(ctx context.Context, reference string) error {
	inv, err := s.invoiceRepo.FindByReference(ctx, reference)
	if err != nil {
		return err
	}
	inv.Touch(nowFunc())
	return s.invoiceRepo.SaveWithLock(ctx, inv)
}

// UpdateMemo updates the local collection memo on an invoice
func (s *ReconciliationService) UpdateMemo(ctx context.Context, reference string, req UpdateMemoRequest) error {
	inv, err := s.invoiceRepo.FindByReference(ctx, reference)
	if err != nil {
		return err
	}
	inv.SetMemo(req.Memo)
	return s.invoiceRepo.SaveWithLock(ctx, inv)
}
