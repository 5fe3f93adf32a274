package receivable

import "github.com/shopspring/decimal"

// BalanceMode selects between gross and net outstanding balance
type BalanceMode int

const (
	// BalanceGross sums open invoice balances only
	BalanceGross BalanceMode = iota
	// BalanceNet additionally subtracts open credit memo balances
	BalanceNet
)

// CustomerBalance is the rollup of a customer's receivable position
type CustomerBalance struct {
	CustomerID       string          `json:"customer_id"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	CreditBalance    decimal.Decimal `json:"credit_balance"`
	OpenInvoiceCount int             `json:"open_invoice_count"`
	OverdueCount     int             `json:"overdue_count"`
}

// Net returns outstanding minus credits
func (b CustomerBalance) Net() decimal.Decimal {
	return b.Outstanding.Sub(b.CreditBalance)
}

// OutstandingBalance computes the collectible balance over a set of
// invoice mirrors. Only type=Invoice status=Open rows count toward the
// gross figure; draft statuses (Balanced, On Hold, Scheduled) exist in
// the ERP but are not yet real receivables and are excluded either way.
// In net mode the open balances of Credit Memo and Credit WO documents
// are subtracted.
func OutstandingBalance(invoices []Invoice, mode BalanceMode) decimal.Decimal {
	total := decimal.Zero
	for i := range invoices {
		inv := &invoices[i]
		if inv.Status.IsDraft() {
			continue
		}
		switch {
		case inv.Type == InvoiceTypeInvoice && inv.Status == InvoiceStatusOpen:
			total = total.Add(inv.Balance)
		case mode == BalanceNet && inv.Type.IsCredit() && inv.Status == InvoiceStatusOpen:
			total = total.Sub(inv.Balance)
		}
	}
	return total
}
