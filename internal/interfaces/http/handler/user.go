package handler

import (
	identityapp "github.com/arflow/backend/internal/application/identity"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create registers a new user
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// List returns a paginated user listing
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if !h.BindQuery(c, &listReq) {
		return
	}

	page, err := h.userService.List(c.Request.Context(), listReq.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one user by ID
// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ChangeRole moves a user to another role
// PUT /api/v1/users/:id/role
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req identityapp.ChangeRoleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.ChangeRole(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// setActiveRequest toggles a user's active flag
type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetActive activates or deactivates a user
// PUT /api/v1/users/:id/active
func (h *UserHandler) SetActive(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	var req setActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.userService.SetActive(c.Request.Context(), uuid.MustParse(uri.ID), *req.Active); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
