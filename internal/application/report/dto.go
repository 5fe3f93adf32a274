package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardResponse is the admin landing page rollup
type DashboardResponse struct {
	Customers        int64            `json:"customers"`
	OpenInvoices     int64            `json:"open_invoices"`
	OverdueInvoices  int64            `json:"overdue_invoices"`
	OutstandingGross decimal.Decimal  `json:"outstanding_gross"`
	OutstandingNet   decimal.Decimal  `json:"outstanding_net"`
	ColorCounts      map[string]int64 `json:"color_counts"`
	ActiveTickets    int64            `json:"active_tickets"`
	InboxEmails      int64            `json:"inbox_emails"`
	Aging            []AgingBucket    `json:"aging"`
	SyncHealth       []SyncHealth     `json:"sync_health"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

// AgingBucket is one receivables aging band
type AgingBucket struct {
	Label        string          `json:"label"`
	InvoiceCount int             `json:"invoice_count"`
	Balance      decimal.Decimal `json:"balance"`
}

// SyncHealth is one sync entity's dashboard summary
type SyncHealth struct {
	Kind            string     `json:"kind"`
	Status          string     `json:"status"`
	LastSucceededAt *time.Time `json:"last_succeeded_at,omitempty"`
	Stale           bool       `json:"stale"`
}

// SearchHit is one global search result
type SearchHit struct {
	Kind      string    `json:"kind"`
	ID        uuid.UUID `json:"id"`
	Reference string    `json:"reference,omitempty"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle,omitempty"`
}

// SearchResponse groups global search results by kind
type SearchResponse struct {
	Query     string      `json:"query"`
	Customers []SearchHit `json:"customers"`
	Invoices  []SearchHit `json:"invoices"`
	Tickets   []SearchHit `json:"tickets"`
	Emails    []SearchHit `json:"emails"`
}
