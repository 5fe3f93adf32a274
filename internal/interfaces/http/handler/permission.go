package handler

import (
	identityapp "github.com/arflow/backend/internal/application/identity"
	"github.com/arflow/backend/internal/domain/identity"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PermissionHandler handles the consolidated permission catalog endpoints
type PermissionHandler struct {
	BaseHandler
	permissionService *identityapp.PermissionService
}

// NewPermissionHandler creates a new PermissionHandler
func NewPermissionHandler(permissionService *identityapp.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissionService: permissionService}
}

// Catalog returns every key in the consolidated permission catalog
// GET /api/v1/permissions/catalog
func (h *PermissionHandler) Catalog(c *gin.Context) {
	catalog, err := h.permissionService.Catalog(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalog)
}

// MyMatrix returns the caller's effective permission matrix
// GET /api/v1/permissions/me
func (h *PermissionHandler) MyMatrix(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	matrix, err := h.permissionService.GetMatrix(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, matrix)
}

// UserMatrix returns another user's effective permission matrix
// GET /api/v1/permissions/users/:id
func (h *PermissionHandler) UserMatrix(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	matrix, err := h.permissionService.GetMatrix(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, matrix)
}

// SetOverride sets a per-user permission override
// PUT /api/v1/permissions/users/:id/overrides
func (h *PermissionHandler) SetOverride(c *gin.Context) {
	grantedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req identityapp.SetOverrideRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.permissionService.SetOverride(c.Request.Context(), uuid.MustParse(uri.ID), grantedBy, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteOverride removes a per-user override so the role default applies
// DELETE /api/v1/permissions/users/:id/overrides/:key
func (h *PermissionHandler) DeleteOverride(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	key := identity.PermissionKey(c.Param("key"))
	if err := h.permissionService.DeleteOverride(c.Request.Context(), uuid.MustParse(uri.ID), key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Consolidate migrates one user's legacy fine-grained grants onto the
// consolidated catalog.
// POST /api/v1/permissions/consolidate
func (h *PermissionHandler) Consolidate(c *gin.Context) {
	migratedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ConsolidateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	matrix, err := h.permissionService.Consolidate(c.Request.Context(), migratedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, matrix)
}
