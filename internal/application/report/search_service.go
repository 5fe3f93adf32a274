package report

import (
	"context"
	"strings"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/mail"
	"github.com/arflow/backend/internal/domain/partner"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
)

// globalSearchLimit caps hits per result group
const globalSearchLimit = 10

// SearchService runs a global search across customers, invoices, tickets
// and emails.
type SearchService struct {
	customerRepo partner.CustomerRepository
	invoiceRepo  receivable.InvoiceRepository
	ticketRepo   collection.TicketRepository
	emailRepo    mail.EmailRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(
	customerRepo partner.CustomerRepository,
	invoiceRepo receivable.InvoiceRepository,
	ticketRepo collection.TicketRepository,
	emailRepo mail.EmailRepository,
) *SearchService {
	return &SearchService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		ticketRepo:   ticketRepo,
		emailRepo:    emailRepo,
	}
}

// Search queries every group with the same term
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	resp := &SearchResponse{Query: query}
	if query == "" {
		return resp, nil
	}

	filter := shared.DefaultFilter()
	filter.Search = query
	filter.PageSize = globalSearchLimit

	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		c := &customers[i]
		resp.Customers = append(resp.Customers, SearchHit{
			Kind:      "customer",
			ID:        c.ID,
			Reference: c.CustomerID,
			Title:     c.Name,
			Subtitle:  string(c.Status),
		})
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		inv := &invoices[i]
		resp.Invoices = append(resp.Invoices, SearchHit{
			Kind:      "invoice",
			ID:        inv.ID,
			Reference: inv.ReferenceNumber,
			Title:     inv.ReferenceNumber,
			Subtitle:  inv.CustomerID + " " + string(inv.Status),
		})
	}

	tickets, err := s.ticketRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range tickets {
		t := &tickets[i]
		resp.Tickets = append(resp.Tickets, SearchHit{
			Kind:     "ticket",
			ID:       t.ID,
			Title:    t.Subject,
			Subtitle: t.CustomerID + " " + string(t.Status),
		})
	}

	emails, err := s.emailRepo.Search(ctx, query, filter)
	if err != nil {
		return nil, err
	}
	for i := range emails {
		e := &emails[i]
		resp.Emails = append(resp.Emails, SearchHit{
			Kind:     "email",
			ID:       e.ID,
			Title:    e.Subject,
			Subtitle: e.Sender,
		})
	}

	return resp, nil
}
