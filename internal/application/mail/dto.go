package mail

import (
	"time"

	"github.com/arflow/backend/internal/domain/mail"
	"github.com/google/uuid"
)

// IngestEmailRequest is one inbound message delivered by the mail provider
type IngestEmailRequest struct {
	Sender     string    `json:"sender" binding:"required,email"`
	Subject    string    `json:"subject" binding:"max=500"`
	Body       string    `json:"body"`
	ReceivedAt time.Time `json:"received_at"`
}

// FileEmailRequest manually files an email against a customer
type FileEmailRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
}

// MoveEmailRequest moves an email to another folder
type MoveEmailRequest struct {
	Folder string `json:"folder" binding:"required,oneof=inbox spam archive trash sent"`
}

// CreateLabelRequest creates a per-user label
type CreateLabelRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Color string `json:"color" binding:"max=20"`
}

// CreateTemplateRequest creates an outbound template
type CreateTemplateRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Subject string `json:"subject" binding:"max=500"`
	Body    string `json:"body" binding:"required"`
}

// RegisterFileRequest records customer file metadata and requests an
// upload URL for the binary content.
type RegisterFileRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	FileName   string `json:"file_name" binding:"required,min=1,max=255"`
	MimeType   string `json:"mime_type" binding:"required,max=100"`
	SizeBytes  int64  `json:"size_bytes" binding:"min=0"`
	Month      int    `json:"month" binding:"required,min=1,max=12"`
	Year       int    `json:"year" binding:"required,min=2000"`
	EmailID    string `json:"email_id" binding:"omitempty,uuid"`
}

// EmailResponse represents an inbound email in API responses
type EmailResponse struct {
	ID                uuid.UUID   `json:"id"`
	Sender            string      `json:"sender"`
	Subject           string      `json:"subject"`
	NormalizedSubject string      `json:"normalized_subject"`
	Body              string      `json:"body"`
	CustomerID        *string     `json:"customer_id,omitempty"`
	Status            string      `json:"status"`
	Folder            string      `json:"folder"`
	Labels            []uuid.UUID `json:"labels"`
	ReceivedAt        time.Time   `json:"received_at"`
	ProcessedAt       *time.Time  `json:"processed_at,omitempty"`
	FailureReason     string      `json:"failure_reason,omitempty"`
}

// ToEmailResponse converts a domain email to its API shape
func ToEmailResponse(e *mail.InboundEmail) EmailResponse {
	return EmailResponse{
		ID:                e.ID,
		Sender:            e.Sender,
		Subject:           e.Subject,
		NormalizedSubject: e.NormalizedSubject,
		Body:              e.Body,
		CustomerID:        e.CustomerID,
		Status:            string(e.Status),
		Folder:            string(e.Folder),
		Labels:            e.Labels,
		ReceivedAt:        e.ReceivedAt,
		ProcessedAt:       e.ProcessedAt,
		FailureReason:     e.FailureReason,
	}
}

// FileResponse represents customer file metadata plus its upload URL
type FileResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID string    `json:"customer_id"`
	FileName   string    `json:"file_name"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url,omitempty"`
	ExpiresAt  time.Time `json:"expires_at,omitempty"`
}

// ToFileResponse converts file metadata to its API shape
func ToFileResponse(f *mail.CustomerFile) FileResponse {
	return FileResponse{
		ID:         f.ID,
		CustomerID: f.CustomerID,
		FileName:   f.FileName,
		MimeType:   f.MimeType,
		SizeBytes:  f.SizeBytes,
		Month:      f.Month,
		Year:       f.Year,
		StorageKey: f.StorageKey,
	}
}
