package handler

import (
	receivableapp "github.com/arflow/backend/internal/application/receivable"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice mirror endpoints
type InvoiceHandler struct {
	BaseHandler
	reconciliationService *receivableapp.ReconciliationService
	escalationService     *receivableapp.StatusEscalationService
	searchService         *receivableapp.InvoiceSearchService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(
	reconciliationService *receivableapp.ReconciliationService,
	escalationService *receivableapp.StatusEscalationService,
	searchService *receivableapp.InvoiceSearchService,
) *InvoiceHandler {
	return &InvoiceHandler{
		reconciliationService: reconciliationService,
		escalationService:     escalationService,
		searchService:         searchService,
	}
}

// UpsertBatch ingests one invoice sync batch from the ERP
// POST /api/v1/sync/invoices
func (h *InvoiceHandler) UpsertBatch(c *gin.Context) {
	var payloads []receivableapp.InvoicePayload
	if !h.BindJSON(c, &payloads) {
		return
	}

	result, err := h.reconciliationService.UpsertInvoices(c.Request.Context(), payloads)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Get returns one invoice by its ERP reference
// GET /api/v1/invoices/:reference
func (h *InvoiceHandler) Get(c *gin.Context) {
	var uri dto.ReferenceRequest
	if !h.BindURI(c, &uri) {
		return
	}

	invoice, err := h.reconciliationService.GetInvoice(c.Request.Context(), uri.Reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// Search runs a paginated invoice search
// GET /api/v1/invoices
func (h *InvoiceHandler) Search(c *gin.Context) {
	var req receivableapp.SearchRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.searchService.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// QuickSearch answers typeahead queries with a small result set
// GET /api/v1/invoices/quick-search
func (h *InvoiceHandler) QuickSearch(c *gin.Context) {
	results, err := h.searchService.QuickSearch(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Touch records a collector contact on an invoice, resetting the
// untouched clock used by the escalation sweep.
// POST /api/v1/invoices/:reference/touch
func (h *InvoiceHandler) Touch(c *gin.Context) {
	var uri dto.ReferenceRequest
	if !h.BindURI(c, &uri) {
		return
	}

	if err := h.reconciliationService.TouchInvoice(c.Request.Context(), uri.Reference); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UpdateMemo updates the local collection memo on an invoice
// PUT /api/v1/invoices/:reference/memo
func (h *InvoiceHandler) UpdateMemo(c *gin.Context) {
	var uri dto.ReferenceRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req receivableapp.UpdateMemoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.reconciliationService.UpdateMemo(c.Request.Context(), uri.Reference, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetColorStatus manually sets an invoice's collection color
// PUT /api/v1/invoices/:reference/color
func (h *InvoiceHandler) SetColorStatus(c *gin.Context) {
	changedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.ReferenceRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req receivableapp.SetColorStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	invoice, err := h.escalationService.SetColorStatus(c.Request.Context(), uri.Reference, req, changedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// ColorHistory returns the audit trail of an invoice's color changes
// GET /api/v1/invoices/:reference/color-history
func (h *InvoiceHandler) ColorHistory(c *gin.Context) {
	var uri dto.ReferenceRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var listReq dto.ListRequest
	if !h.BindQuery(c, &listReq) {
		return
	}

	history, err := h.escalationService.GetColorHistory(c.Request.Context(), uri.Reference, listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}
