package receivable

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReconciliationService() (*ReconciliationService, *MockInvoiceRepository, *MockPaymentRepository, *MockApplicationRepository, *MockEventBus) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	appRepo := new(MockApplicationRepository)
	bus := new(MockEventBus)
	svc := NewReconciliationService(invoiceRepo, paymentRepo, appRepo, bus)
	return svc, invoiceRepo, paymentRepo, appRepo, bus
}

func TestUpsertInvoices_CreatesAndUpdates(t *testing.T) {
	svc, invoiceRepo, _, _, bus := newReconciliationService()
	ctx := context.Background()
	due := time.Now().AddDate(0, 0, 14)

	existing, err := receivable.NewInvoice("INV-1", "CUST001", receivable.InvoiceTypeInvoice,
		receivable.InvoiceStatusOpen, time.Now(), &due, decimal.NewFromInt(100), decimal.NewFromInt(100))
	require.NoError(t, err)

	invoiceRepo.On("FindByReference", ctx, "INV-1").Return(existing, nil)
	invoiceRepo.On("FindByReference", ctx, "INV-2").Return(nil, shared.ErrNotFound)
	invoiceRepo.On("SaveWithLock", ctx, existing).Return(nil)
	invoiceRepo.On("Save", ctx, mock.AnythingOfType("*receivable.Invoice")).Return(nil)
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	result, err := svc.UpsertInvoices(ctx, []InvoicePayload{
		{ReferenceNumber: "INV-1", CustomerID: "CUST001", Type: "Invoice", Status: "Open", Date: time.Now(), DueDate: &due, Amount: decimal.NewFromInt(100), Balance: decimal.NewFromInt(60)},
		{ReferenceNumber: "INV-2", CustomerID: "CUST001", Type: "Invoice", Status: "Open", Date: time.Now(), DueDate: &due, Amount: decimal.NewFromInt(40), Balance: decimal.NewFromInt(40)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 0, result.Failed)
	assert.True(t, existing.Balance.Equal(decimal.NewFromInt(60)))
	invoiceRepo.AssertExpectations(t)
}

func TestUpsertInvoices_PublishesBalanceEvents(t *testing.T) {
	svc, invoiceRepo, _, _, bus := newReconciliationService()
	ctx := context.Background()
	due := time.Now().AddDate(0, 0, -1)

	existing, err := receivable.NewInvoice("INV-1", "CUST001", receivable.InvoiceTypeInvoice,
		receivable.InvoiceStatusOpen, time.Now(), &due, decimal.NewFromInt(100), decimal.NewFromInt(100))
	require.NoError(t, err)

	invoiceRepo.On("FindByReference", ctx, "INV-1").Return(existing, nil)
	invoiceRepo.On("SaveWithLock", ctx, existing).Return(nil)
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	_, err = svc.UpsertInvoices(ctx, []InvoicePayload{
		{ReferenceNumber: "INV-1", CustomerID: "CUST001", Type: "Invoice", Status: "Closed", Date: time.Now(), Amount: decimal.NewFromInt(100), Balance: decimal.Zero},
	})
	require.NoError(t, err)

	require.NotEmpty(t, bus.Published)
	balanceEvent, ok := bus.Published[0].(*receivable.InvoiceBalanceChangedEvent)
	require.True(t, ok)
	assert.True(t, balanceEvent.ReachedZero())
	assert.Empty(t, existing.GetDomainEvents(), "events must be cleared after publish")
}

func TestUpsertInvoices_BadRowDoesNotPoisonBatch(t *testing.T) {
	svc, invoiceRepo, _, _, _ := newReconciliationService()
	ctx := context.Background()

	invoiceRepo.On("FindByReference", ctx, "INV-OK").Return(nil, shared.ErrNotFound)
	invoiceRepo.On("FindByReference", ctx, "INV-BAD").Return(nil, shared.ErrNotFound)
	invoiceRepo.On("Save", ctx, mock.AnythingOfType("*receivable.Invoice")).Return(nil)

	result, err := svc.UpsertInvoices(ctx, []InvoicePayload{
		{ReferenceNumber: "INV-BAD", CustomerID: "CUST001", Type: "Quote", Status: "Open", Date: time.Now()},
		{ReferenceNumber: "INV-OK", CustomerID: "CUST001", Type: "Invoice", Status: "Open", Date: time.Now()},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)
}

func TestReplaceApplications(t *testing.T) {
	svc, _, _, appRepo, _ := newReconciliationService()
	ctx := context.Background()

	appRepo.On("DeleteByPayment", ctx, "PMT-1").Return(nil)
	appRepo.On("SaveBatch", ctx, mock.MatchedBy(func(apps []*receivable.PaymentApplication) bool {
		return len(apps) == 2
	})).Return(nil)

	err := svc.ReplaceApplications(ctx, "PMT-1", []ApplicationPayload{
		{InvoiceReference: "INV-1", DocType: "Invoice", AmountPaid: decimal.NewFromInt(100), ApplicationDate: time.Now()},
		{InvoiceReference: "INV-1", DocType: "Credit Memo", AmountPaid: decimal.NewFromInt(100), ApplicationDate: time.Now()},
	})
	require.NoError(t, err)
	appRepo.AssertExpectations(t)
}

func TestGetPayment_AppliedAmountCountsInvoiceRowsOnly(t *testing.T) {
	svc, _, paymentRepo, appRepo, _ := newReconciliationService()
	ctx := context.Background()

	payment, err := receivable.NewPayment("PMT-1", "CUST001", receivable.PaymentTypePayment,
		decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)

	invRow, err := receivable.NewPaymentApplication("PMT-1", "INV-1", receivable.ApplicationDocInvoice, decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)
	cmRow, err := receivable.NewPaymentApplication("PMT-1", "INV-1", receivable.ApplicationDocCreditMemo, decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)

	paymentRepo.On("FindByReference", ctx, "PMT-1").Return(payment, nil)
	appRepo.On("FindByPayment", ctx, "PMT-1").Return([]receivable.PaymentApplication{*invRow, *cmRow}, nil)

	resp, err := svc.GetPayment(ctx, "PMT-1")
	require.NoError(t, err)
	assert.True(t, resp.AppliedAmount.Equal(decimal.NewFromInt(100)))
}

func TestGetCustomerBalance(t *testing.T) {
	svc, invoiceRepo, _, _, _ := newReconciliationService()
	ctx := context.Background()

	overdueDue := time.Now().AddDate(0, 0, -3)
	futureDue := time.Now().AddDate(0, 0, 30)

	open1, err := receivable.NewInvoice("INV-1", "CUST001", receivable.InvoiceTypeInvoice,
		receivable.InvoiceStatusOpen, time.Now(), &overdueDue, decimal.NewFromInt(100), decimal.NewFromInt(100))
	require.NoError(t, err)
	open2, err := receivable.NewInvoice("INV-2", "CUST001", receivable.InvoiceTypeInvoice,
		receivable.InvoiceStatusOpen, time.Now(), &futureDue, decimal.NewFromInt(50), decimal.NewFromInt(50))
	require.NoError(t, err)
	credit, err := receivable.NewInvoice("CM-1", "CUST001", receivable.InvoiceTypeCreditMemo,
		receivable.InvoiceStatusOpen, time.Now(), nil, decimal.NewFromInt(30), decimal.NewFromInt(30))
	require.NoError(t, err)

	invoiceRepo.On("CountOpenByCustomer", ctx, "CUST001").Return(int64(2), nil)
	invoiceRepo.On("FindByCustomer", ctx, "CUST001", mock.Anything).
		Return([]receivable.Invoice{*open1, *open2, *credit}, nil)

	resp, err := svc.GetCustomerBalance(ctx, "CUST001", receivable.BalanceNet)
	require.NoError(t, err)

	assert.True(t, resp.Outstanding.Equal(decimal.NewFromInt(150)))
	assert.True(t, resp.CreditBalance.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.NetBalance.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 2, resp.OpenInvoiceCount)
	assert.Equal(t, 1, resp.OverdueCount)
}

func TestGetCustomerBalance_WalksEveryPage(t *testing.T) {
	svc, invoiceRepo, _, _, _ := newReconciliationService()
	ctx := context.Background()

	due := time.Now().AddDate(0, 0, 30)
	page1 := make([]receivable.Invoice, shared.MaxPageSize)
	for i := range page1 {
		inv, err := receivable.NewInvoice(fmt.Sprintf("INV-%04d", i), "CUST001",
			receivable.InvoiceTypeInvoice, receivable.InvoiceStatusOpen,
			time.Now(), &due, decimal.NewFromInt(1), decimal.NewFromInt(1))
		require.NoError(t, err)
		page1[i] = *inv
	}
	tail, err := receivable.NewInvoice("INV-TAIL", "CUST001",
		receivable.InvoiceTypeInvoice, receivable.InvoiceStatusOpen,
		time.Now(), &due, decimal.NewFromInt(5), decimal.NewFromInt(5))
	require.NoError(t, err)

	invoiceRepo.On("CountOpenByCustomer", ctx, "CUST001").Return(int64(shared.MaxPageSize+1), nil)
	invoiceRepo.On("FindByCustomer", ctx, "CUST001", mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1
	})).Return(page1, nil)
	invoiceRepo.On("FindByCustomer", ctx, "CUST001", mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 2
	})).Return([]receivable.Invoice{*tail}, nil)

	resp, err := svc.GetCustomerBalance(ctx, "CUST001", receivable.BalanceNet)
	require.NoError(t, err)

	assert.True(t, resp.Outstanding.Equal(decimal.NewFromInt(int64(shared.MaxPageSize+5))))
	assert.Equal(t, shared.MaxPageSize+1, resp.OpenInvoiceCount)
	invoiceRepo.AssertExpectations(t)
}
