package handler

import (
	receivableapp "github.com/arflow/backend/internal/application/receivable"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment mirror endpoints
type PaymentHandler struct {
	BaseHandler
	reconciliationService *receivableapp.ReconciliationService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(reconciliationService *receivableapp.ReconciliationService) *PaymentHandler {
	return &PaymentHandler{reconciliationService: reconciliationService}
}

// UpsertBatch ingests one payment sync batch from the ERP
// POST /api/v1/sync/payments
func (h *PaymentHandler) UpsertBatch(c *gin.Context) {
	var payloads []receivableapp.PaymentPayload
	if !h.BindJSON(c, &payloads) {
		return
	}

	result, err := h.reconciliationService.UpsertPayments(c.Request.Context(), payloads)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ReplaceApplications replaces all application rows for one payment with
// the rows from a fresh sync.
// PUT /api/v1/sync/payments/:reference/applications
func (h *PaymentHandler) ReplaceApplications(c *gin.Context) {
	var uri dto.ReferenceRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var payloads []receivableapp.ApplicationPayload
	if !h.BindJSON(c, &payloads) {
		return
	}

	if err := h.reconciliationService.ReplaceApplications(c.Request.Context(), uri.Reference, payloads); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Get returns one payment with its applied amount
// GET /api/v1/payments/:reference
func (h *PaymentHandler) Get(c *gin.Context) {
	var uri dto.ReferenceRequest
	if !h.BindURI(c, &uri) {
		return
	}

	payment, err := h.reconciliationService.GetPayment(c.Request.Context(), uri.Reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}
