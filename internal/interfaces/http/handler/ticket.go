package handler

import (
	"time"

	collectionapp "github.com/arflow/backend/internal/application/collection"
	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler handles collection ticket and activity endpoints
type TicketHandler struct {
	BaseHandler
	ticketService      *collectionapp.TicketService
	performanceService *collectionapp.PerformanceService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(
	ticketService *collectionapp.TicketService,
	performanceService *collectionapp.PerformanceService,
) *TicketHandler {
	return &TicketHandler{
		ticketService:      ticketService,
		performanceService: performanceService,
	}
}

// Create opens a ticket for a customer
// POST /api/v1/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	var req collectionapp.CreateTicketRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ticket)
}

// Get returns one ticket by ID
// GET /api/v1/tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	ticket, err := h.ticketService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// listTicketsRequest filters a collector's ticket queue
type listTicketsRequest struct {
	dto.ListRequest
	CollectorID string `form:"collector_id" binding:"required,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
}

// List returns a collector's tickets, optionally filtered by status
// GET /api/v1/tickets
func (h *TicketHandler) List(c *gin.Context) {
	var req listTicketsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	tickets, err := h.ticketService.ListByCollector(c.Request.Context(),
		uuid.MustParse(req.CollectorID), collection.TicketStatus(req.Status), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tickets)
}

// AddInvoice links an invoice to a ticket
// POST /api/v1/tickets/:id/invoices
func (h *TicketHandler) AddInvoice(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req collectionapp.AddInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.AddInvoice(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// Reassign hands a ticket to another collector
// PUT /api/v1/tickets/:id/collector
func (h *TicketHandler) Reassign(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req collectionapp.ReassignTicketRequest
	if !h.BindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.Reassign(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ticket)
}

// Start marks a ticket as being worked
// POST /api/v1/tickets/:id/start
func (h *TicketHandler) Start(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	if err := h.ticketService.Start(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Resolve resolves a ticket manually
// POST /api/v1/tickets/:id/resolve
func (h *TicketHandler) Resolve(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	if err := h.ticketService.Resolve(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Close closes a resolved ticket
// POST /api/v1/tickets/:id/close
func (h *TicketHandler) Close(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	if err := h.ticketService.Close(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Reopen reopens a resolved ticket
// POST /api/v1/tickets/:id/reopen
func (h *TicketHandler) Reopen(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	if err := h.ticketService.Reopen(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// LogActivity records a collector contact
// POST /api/v1/activities
func (h *TicketHandler) LogActivity(c *gin.Context) {
	collectorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req collectionapp.LogActivityRequest
	if !h.BindJSON(c, &req) {
		return
	}

	activity, err := h.ticketService.LogActivity(c.Request.Context(), collectorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, activity)
}

// listActivitiesRequest filters activities by customer
type listActivitiesRequest struct {
	dto.ListRequest
	CustomerID string `form:"customer_id" binding:"required"`
}

// ListActivities returns a customer's activity history
// GET /api/v1/activities
func (h *TicketHandler) ListActivities(c *gin.Context) {
	var req listActivitiesRequest
	if !h.BindQuery(c, &req) {
		return
	}

	activities, err := h.ticketService.ListActivities(c.Request.Context(), req.CustomerID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, activities)
}

// performanceRequest bounds a collector performance report window
type performanceRequest struct {
	CollectorID string    `form:"collector_id" binding:"required,uuid"`
	From        time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To          time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// Performance computes one collector's rollup for a reporting window
// GET /api/v1/collectors/performance
func (h *TicketHandler) Performance(c *gin.Context) {
	var req performanceRequest
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.performanceService.Report(c.Request.Context(),
		uuid.MustParse(req.CollectorID), req.From, req.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}
