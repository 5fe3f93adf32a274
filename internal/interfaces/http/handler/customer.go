package handler

import (
	partnerapp "github.com/arflow/backend/internal/application/partner"
	receivableapp "github.com/arflow/backend/internal/application/receivable"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer mirror endpoints
type CustomerHandler struct {
	BaseHandler
	customerService       *partnerapp.CustomerService
	reconciliationService *receivableapp.ReconciliationService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(
	customerService *partnerapp.CustomerService,
	reconciliationService *receivableapp.ReconciliationService,
) *CustomerHandler {
	return &CustomerHandler{
		customerService:       customerService,
		reconciliationService: reconciliationService,
	}
}

// customerIDRequest is a request keyed by ERP customer ID
type customerIDRequest struct {
	CustomerID string `uri:"customer_id" binding:"required,min=1,max=30"`
}

// UpsertBatch ingests one customer sync batch from the ERP
// POST /api/v1/sync/customers
func (h *CustomerHandler) UpsertBatch(c *gin.Context) {
	var payloads []partnerapp.CustomerPayload
	if !h.BindJSON(c, &payloads) {
		return
	}

	result, err := h.customerService.UpsertBatch(c.Request.Context(), payloads)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns a paginated customer listing
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if !h.BindQuery(c, &listReq) {
		return
	}

	page, err := h.customerService.List(c.Request.Context(), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one customer by ERP customer ID
// GET /api/v1/customers/:customer_id
func (h *CustomerHandler) Get(c *gin.Context) {
	var uri customerIDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	customer, err := h.customerService.GetByCustomerID(c.Request.Context(), uri.CustomerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// UpdateSettings edits the local-only collection settings on a customer
// PUT /api/v1/customers/:customer_id/settings
func (h *CustomerHandler) UpdateSettings(c *gin.Context) {
	var uri customerIDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req partnerapp.UpdateCustomerSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateSettings(c.Request.Context(), uri.CustomerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// Balance returns the receivable rollup for one customer. The mode query
// parameter selects gross or net credit treatment; net is the default.
// GET /api/v1/customers/:customer_id/balance
func (h *CustomerHandler) Balance(c *gin.Context) {
	var uri customerIDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	mode := receivable.BalanceNet
	if c.Query("mode") == "gross" {
		mode = receivable.BalanceGross
	}

	balance, err := h.reconciliationService.GetCustomerBalance(c.Request.Context(), uri.CustomerID, mode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// Invoices returns a customer's invoice mirrors
// GET /api/v1/customers/:customer_id/invoices
func (h *CustomerHandler) Invoices(c *gin.Context) {
	var uri customerIDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var listReq dto.ListRequest
	if !h.BindQuery(c, &listReq) {
		return
	}

	invoices, err := h.reconciliationService.ListInvoicesByCustomer(c.Request.Context(), uri.CustomerID, listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}
