package handler

import (
	"net/http"
	"strconv"

	syncapp "github.com/arflow/backend/internal/application/sync"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SyncHandler handles sync administration endpoints
type SyncHandler struct {
	BaseHandler
	dispatchService *syncapp.DispatchService
	healthService   *syncapp.HealthService
	jobService      *syncapp.JobService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(
	dispatchService *syncapp.DispatchService,
	healthService *syncapp.HealthService,
	jobService *syncapp.JobService,
) *SyncHandler {
	return &SyncHandler{
		dispatchService: dispatchService,
		healthService:   healthService,
		jobService:      jobService,
	}
}

// kindRequest is a request keyed by sync entity kind
type kindRequest struct {
	Kind string `uri:"kind" binding:"required,oneof=customers invoices payments payment_applications"`
}

// Status returns the schedule state of every sync entity
// GET /api/v1/sync/status
func (h *SyncHandler) Status(c *gin.Context) {
	status, err := h.dispatchService.Status(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// Trigger manually dispatches one entity sync
// POST /api/v1/sync/trigger
func (h *SyncHandler) Trigger(c *gin.Context) {
	var req syncapp.TriggerSyncRequest
	if !h.BindJSON(c, &req) {
		return
	}

	status, err := h.dispatchService.Trigger(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, status)
}

// UpdateSchedule edits one sync entity's schedule
// PUT /api/v1/sync/entities/:kind
func (h *SyncHandler) UpdateSchedule(c *gin.Context) {
	var uri kindRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req syncapp.UpdateScheduleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	status, err := h.dispatchService.UpdateSchedule(c.Request.Context(), sync.EntityKind(uri.Kind), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// SetCredentials replaces the active ERP credential set
// PUT /api/v1/sync/credentials
func (h *SyncHandler) SetCredentials(c *gin.Context) {
	var req syncapp.SetCredentialsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.dispatchService.SetCredentials(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Logs returns recent dispatch logs for one entity kind
// GET /api/v1/sync/entities/:kind/logs
func (h *SyncHandler) Logs(c *gin.Context) {
	var uri kindRequest
	if !h.BindURI(c, &uri) {
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	logs, err := h.dispatchService.RecentLogs(c.Request.Context(), sync.EntityKind(uri.Kind), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}

// Drift reports payments whose header amount disagrees with the sum of
// their application rows.
// GET /api/v1/sync/drift
func (h *SyncHandler) Drift(c *gin.Context) {
	report, err := h.healthService.CheckPaymentDrift(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// EnqueueJob queues a long-running async sync job
// POST /api/v1/sync/jobs
func (h *SyncHandler) EnqueueJob(c *gin.Context) {
	var req syncapp.EnqueueJobRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobService.Enqueue(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, job)
}

// GetJob returns one async job
// GET /api/v1/sync/jobs/:id
func (h *SyncHandler) GetJob(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	job, err := h.jobService.Get(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// listJobsRequest filters async jobs by status
type listJobsRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"required,oneof=queued running completed failed"`
}

// ListJobs returns async jobs in one status
// GET /api/v1/sync/jobs
func (h *SyncHandler) ListJobs(c *gin.Context) {
	var req listJobsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	jobs, err := h.jobService.ListByStatus(c.Request.Context(), sync.JobStatus(req.Status), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, jobs)
}
