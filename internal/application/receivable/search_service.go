package receivable

import (
	"context"
	"strconv"
	"strings"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
)

// Search result caps. Quick search stays small for typeahead use; the
// paginated search is bounded by the shared page-size cap.
const quickSearchLimit = 50

// InvoiceSearchService answers invoice search queries. Fully numeric
// queries take a fast path that tries an exact reference match before
// falling back to the general search.
type InvoiceSearchService struct {
	invoiceRepo receivable.InvoiceRepository
}

// NewInvoiceSearchService creates a new InvoiceSearchService
func NewInvoiceSearchService(invoiceRepo receivable.InvoiceRepository) *InvoiceSearchService {
	return &InvoiceSearchService{invoiceRepo: invoiceRepo}
}

// SearchRequest is a paginated invoice search
type SearchRequest struct {
	Query       string `form:"q"`
	CustomerID  string `form:"customer_id"`
	Status      string `form:"status"`
	ColorStatus string `form:"color_status"`
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
}

// Search runs a paginated invoice search
func (s *InvoiceSearchService) Search(ctx context.Context, req SearchRequest) (*shared.Paginated[InvoiceResponse], error) {
	filter := shared.DefaultFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	filter.Clamp()
	filter.Search = strings.TrimSpace(req.Query)
	if req.CustomerID != "" {
		filter.Filters["customer_id"] = req.CustomerID
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.ColorStatus != "" {
		filter.Filters["color_status"] = req.ColorStatus
	}

	// Numeric queries are almost always reference lookups; try the exact
	// match first and skip the scan entirely on a hit.
	if isNumeric(filter.Search) {
		if inv, err := s.invoiceRepo.FindByReference(ctx, filter.Search); err == nil {
			page := shared.NewPaginated([]InvoiceResponse{ToInvoiceResponse(inv)}, 1, 1, filter.PageSize)
			return &page, nil
		}
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// QuickSearch returns at most quickSearchLimit matches for typeahead
func (s *InvoiceSearchService) QuickSearch(ctx context.Context, query string) ([]InvoiceResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = quickSearchLimit
	filter.Search = strings.TrimSpace(query)
	if filter.Search == "" {
		return []InvoiceResponse{}, nil
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	return responses, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}
