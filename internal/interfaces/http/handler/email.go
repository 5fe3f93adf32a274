package handler

import (
	mailapp "github.com/arflow/backend/internal/application/mail"
	"github.com/arflow/backend/internal/domain/mail"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EmailHandler handles inbound email filing, label and template endpoints
type EmailHandler struct {
	BaseHandler
	filingService   *mailapp.FilingService
	templateService *mailapp.TemplateService
}

// NewEmailHandler creates a new EmailHandler
func NewEmailHandler(filingService *mailapp.FilingService, templateService *mailapp.TemplateService) *EmailHandler {
	return &EmailHandler{
		filingService:   filingService,
		templateService: templateService,
	}
}

// Ingest accepts one inbound message from the mail provider webhook
// POST /api/v1/webhooks/email
func (h *EmailHandler) Ingest(c *gin.Context) {
	var req mailapp.IngestEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}

	email, err := h.filingService.Ingest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, email)
}

// listEmailsRequest filters emails by folder
type listEmailsRequest struct {
	dto.ListRequest
	Folder string `form:"folder" binding:"omitempty,oneof=inbox spam archive trash sent"`
}

// List returns emails in one folder, defaulting to the inbox
// GET /api/v1/emails
func (h *EmailHandler) List(c *gin.Context) {
	var req listEmailsRequest
	if !h.BindQuery(c, &req) {
		return
	}

	folder := mail.FolderInbox
	if req.Folder != "" {
		folder = mail.EmailFolder(req.Folder)
	}

	emails, err := h.filingService.ListByFolder(c.Request.Context(), folder, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, emails)
}

// Search runs a full-text email search
// GET /api/v1/emails/search
func (h *EmailHandler) Search(c *gin.Context) {
	var listReq dto.ListRequest
	if !h.BindQuery(c, &listReq) {
		return
	}

	emails, err := h.filingService.Search(c.Request.Context(), c.Query("q"), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, emails)
}

// File manually files an email against a customer
// POST /api/v1/emails/:id/file
func (h *EmailHandler) File(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req mailapp.FileEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}

	email, err := h.filingService.FileManually(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, email)
}

// Move moves an email to another folder
// PUT /api/v1/emails/:id/folder
func (h *EmailHandler) Move(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req mailapp.MoveEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.filingService.Move(c.Request.Context(), uuid.MustParse(uri.ID), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateLabel creates a per-user label
// POST /api/v1/email-labels
func (h *EmailHandler) CreateLabel(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req mailapp.CreateLabelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	label, err := h.filingService.CreateLabel(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, label)
}

// applyLabelRequest attaches an existing label to an email
type applyLabelRequest struct {
	LabelID string `json:"label_id" binding:"required,uuid"`
}

// ApplyLabel attaches one of the caller's labels to an email
// POST /api/v1/emails/:id/labels
func (h *EmailHandler) ApplyLabel(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req applyLabelRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.filingService.ApplyLabel(c.Request.Context(),
		uuid.MustParse(uri.ID), uuid.MustParse(req.LabelID), ownerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateTemplate creates an outbound email template
// POST /api/v1/email-templates
func (h *EmailHandler) CreateTemplate(c *gin.Context) {
	var req mailapp.CreateTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, template)
}

// ListTemplates returns all active templates
// GET /api/v1/email-templates
func (h *EmailHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, templates)
}

// renderTemplateRequest supplies placeholder values for a render
type renderTemplateRequest struct {
	Values map[string]string `json:"values"`
}

// RenderTemplate renders a template with the given placeholder values
// POST /api/v1/email-templates/:id/render
func (h *EmailHandler) RenderTemplate(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req renderTemplateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	rendered, err := h.templateService.Render(c.Request.Context(), uuid.MustParse(uri.ID), req.Values)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rendered)
}

// setTemplateActiveRequest toggles a template's active flag
type setTemplateActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetTemplateActive activates or retires a template
// PUT /api/v1/email-templates/:id/active
func (h *EmailHandler) SetTemplateActive(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req setTemplateActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.templateService.SetActive(c.Request.Context(), uuid.MustParse(uri.ID), *req.Active); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
