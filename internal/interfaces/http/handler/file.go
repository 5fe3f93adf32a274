package handler

import (
	"net/http"
	"strconv"
	"time"

	mailapp "github.com/arflow/backend/internal/application/mail"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileHandler handles customer file bucket endpoints. Binary content
// never passes through this API; uploads and downloads go straight to
// object storage through presigned URLs.
type FileHandler struct {
	BaseHandler
	fileService *mailapp.FileService
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(fileService *mailapp.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Register records file metadata and returns a presigned upload URL
// POST /api/v1/files
func (h *FileHandler) Register(c *gin.Context) {
	uploadedBy, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req mailapp.RegisterFileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	file, err := h.fileService.Register(c.Request.Context(), uploadedBy, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, file)
}

// downloadURLResponse carries a presigned download URL
type downloadURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DownloadURL returns a presigned download URL for one file
// GET /api/v1/files/:id/download
func (h *FileHandler) DownloadURL(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	url, expiresAt, err := h.fileService.GetDownloadURL(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, downloadURLResponse{URL: url, ExpiresAt: expiresAt})
}

// ListBucket returns one customer's monthly file bucket
// GET /api/v1/files
func (h *FileHandler) ListBucket(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "customer_id is required")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "year must be a number")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "month must be a number")
		return
	}

	files, err := h.fileService.ListBucket(c.Request.Context(), customerID, year, month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, files)
}

// Delete removes a file's metadata and its stored object
// DELETE /api/v1/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if !h.BindURI(c, &uri) {
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
