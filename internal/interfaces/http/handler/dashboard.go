package handler

import (
	"net/http"

	reportapp "github.com/arflow/backend/internal/application/report"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles the dashboard and global search endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
	searchService    *reportapp.SearchService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(
	dashboardService *reportapp.DashboardService,
	searchService *reportapp.SearchService,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		searchService:    searchService,
	}
}

// Dashboard returns the landing page rollup
// GET /api/v1/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.Build(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dashboard)
}

// Search runs a global search across customers, invoices, tickets and
// emails.
// GET /api/v1/search
func (h *DashboardHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "q is required")
		return
	}

	results, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}
