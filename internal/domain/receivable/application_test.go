package receivable

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustApplication(t *testing.T, paymentRef, invoiceRef string, docType ApplicationDocType, amount int64) PaymentApplication {
	t.Helper()
	app, err := NewPaymentApplication(paymentRef, invoiceRef, docType, decimal.NewFromInt(amount), time.Now())
	require.NoError(t, err)
	return *app
}

func TestAppliedTotal_CreditMemoFundedPaymentCountedOnce(t *testing.T) {
	// The ERP emits two rows of equal amount for a credit-memo-funded
	// payment; only the Invoice row may count.
	apps := []PaymentApplication{
		mustApplication(t, "PMT-1", "INV-1", ApplicationDocInvoice, 100),
		mustApplication(t, "PMT-1", "INV-1", ApplicationDocCreditMemo, 100),
	}

	assert.True(t, AppliedTotal(apps).Equal(decimal.NewFromInt(100)))
	assert.True(t, CreditMemoTotal(apps).Equal(decimal.NewFromInt(100)))
}

func TestStats(t *testing.T) {
	apps := []PaymentApplication{
		mustApplication(t, "PMT-1", "INV-1", ApplicationDocInvoice, 100),
		mustApplication(t, "PMT-1", "INV-1", ApplicationDocCreditMemo, 100),
		mustApplication(t, "PMT-2", "INV-2", ApplicationDocInvoice, 50),
	}

	s := Stats(apps)
	assert.True(t, s.TotalApplied.Equal(decimal.NewFromInt(150)))
	assert.True(t, s.CreditMemoApplied.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 3, s.RowCount)
	assert.Equal(t, 2, s.InvoiceRowCount)
}

func TestStats_Empty(t *testing.T) {
	s := Stats(nil)
	assert.True(t, s.TotalApplied.IsZero())
	assert.Equal(t, 0, s.RowCount)
}

func TestAverageDaysToCollect(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("averages qualifying samples", func(t *testing.T) {
		samples := []CollectionSample{
			{InvoiceDate: base, PaymentDate: base.AddDate(0, 0, 10), AmountPaid: decimal.NewFromInt(100), PaymentType: PaymentTypePayment},
			{InvoiceDate: base, PaymentDate: base.AddDate(0, 0, 20), AmountPaid: decimal.NewFromInt(100), PaymentType: PaymentTypePayment},
		}
		avg, ok := AverageDaysToCollect(samples)
		require.True(t, ok)
		assert.InDelta(t, 15.0, avg, 0.01)
	})

	t.Run("excludes prepayments and credit memos", func(t *testing.T) {
		samples := []CollectionSample{
			{InvoiceDate: base, PaymentDate: base.AddDate(0, 0, 10), AmountPaid: decimal.NewFromInt(100), PaymentType: PaymentTypePayment},
			{InvoiceDate: base, PaymentDate: base.AddDate(0, 0, 99), AmountPaid: decimal.NewFromInt(100), PaymentType: PaymentTypePrepayment},
			{InvoiceDate: base, PaymentDate: base.AddDate(0, 0, 99), AmountPaid: decimal.NewFromInt(100), PaymentType: PaymentTypeCreditMemo},
		}
		avg, ok := AverageDaysToCollect(samples)
		require.True(t, ok)
		assert.InDelta(t, 10.0, avg, 0.01)
	})

	t.Run("guards against payments dated before the invoice", func(t *testing.T) {
		samples := []CollectionSample{
			{InvoiceDate: base, PaymentDate: base.AddDate(0, 0, -5), AmountPaid: decimal.NewFromInt(100), PaymentType: PaymentTypePayment},
		}
		_, ok := AverageDaysToCollect(samples)
		assert.False(t, ok)
	})

	t.Run("excludes non-positive amounts", func(t *testing.T) {
		samples := []CollectionSample{
			{InvoiceDate: base, PaymentDate: base.AddDate(0, 0, 5), AmountPaid: decimal.Zero, PaymentType: PaymentTypePayment},
		}
		_, ok := AverageDaysToCollect(samples)
		assert.False(t, ok)
	})
}

func TestOutstandingBalance(t *testing.T) {
	open := func(invType InvoiceType, status InvoiceStatus, balance int64) Invoice {
		due := time.Now().AddDate(0, 0, 30)
		inv, err := NewInvoice("INV-"+string(invType)+string(status), "CUST001", invType, status,
			time.Now(), &due, decimal.NewFromInt(balance), decimal.NewFromInt(balance))
		require.NoError(t, err)
		return *inv
	}

	invoices := []Invoice{
		open(InvoiceTypeInvoice, InvoiceStatusOpen, 100),
		open(InvoiceTypeInvoice, InvoiceStatusOpen, 50),
		open(InvoiceTypeInvoice, InvoiceStatusClosed, 999),   // closed: never counted
		open(InvoiceTypeInvoice, InvoiceStatusBalanced, 999), // draft: never counted
		open(InvoiceTypeCreditMemo, InvoiceStatusOpen, 30),
	}

	assert.True(t, OutstandingBalance(invoices, BalanceGross).Equal(decimal.NewFromInt(150)))
	assert.True(t, OutstandingBalance(invoices, BalanceNet).Equal(decimal.NewFromInt(120)))
}
