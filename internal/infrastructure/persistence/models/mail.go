package models

import (
	"time"

	"github.com/arflow/backend/internal/domain/mail"
	"github.com/google/uuid"
)

// EmailModel is the GORM model for inbound emails
type EmailModel struct {
	AggregateModel
	Sender            string     `gorm:"size:255;not null;index"`
	Subject           string     `gorm:"size:512"`
	NormalizedSubject string     `gorm:"size:512;index"`
	Body              string     `gorm:"type:text"`
	CustomerID        *string    `gorm:"size:64;index"`
	Status            string     `gorm:"size:32;not null;index"`
	Folder            string     `gorm:"size:16;not null;index"`
	ReceivedAt        time.Time  `gorm:"not null;index"`
	ProcessedAt       *time.Time
	FailureReason     string `gorm:"size:512"`
}

// TableName returns the table name
func (EmailModel) TableName() string {
	return "inbound_emails"
}

// ToDomain converts the model to a domain email. Label links are loaded
// separately.
func (m *EmailModel) ToDomain() *mail.InboundEmail {
	return &mail.InboundEmail{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Sender:            m.Sender,
		Subject:           m.Subject,
		NormalizedSubject: m.NormalizedSubject,
		Body:              m.Body,
		CustomerID:        m.CustomerID,
		Status:            mail.ProcessingStatus(m.Status),
		Folder:            mail.EmailFolder(m.Folder),
		ReceivedAt:        m.ReceivedAt,
		ProcessedAt:       m.ProcessedAt,
		FailureReason:     m.FailureReason,
	}
}

// EmailModelFromDomain builds the model from a domain email
func EmailModelFromDomain(e *mail.InboundEmail) *EmailModel {
	m := &EmailModel{
		Sender:            e.Sender,
		Subject:           e.Subject,
		NormalizedSubject: e.NormalizedSubject,
		Body:              e.Body,
		CustomerID:        e.CustomerID,
		Status:            string(e.Status),
		Folder:            string(e.Folder),
		ReceivedAt:        e.ReceivedAt,
		ProcessedAt:       e.ProcessedAt,
		FailureReason:     e.FailureReason,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}

// EmailLabelLinkModel joins emails to labels
type EmailLabelLinkModel struct {
	EmailID uuid.UUID `gorm:"type:uuid;primaryKey"`
	LabelID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name
func (EmailLabelLinkModel) TableName() string {
	return "inbound_email_labels"
}

// LabelModel is the GORM model for per-user email labels
type LabelModel struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"size:64;not null"`
	Color   string    `gorm:"size:16"`
}

// TableName returns the table name
func (LabelModel) TableName() string {
	return "email_labels"
}

// ToDomain converts the model to a domain label
func (m *LabelModel) ToDomain() *mail.EmailLabel {
	return &mail.EmailLabel{
		BaseEntity: m.BaseModel.ToDomain(),
		OwnerID:    m.OwnerID,
		Name:       m.Name,
		Color:      m.Color,
	}
}

// LabelModelFromDomain builds the model from a domain label
func LabelModelFromDomain(l *mail.EmailLabel) *LabelModel {
	m := &LabelModel{
		OwnerID: l.OwnerID,
		Name:    l.Name,
		Color:   l.Color,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}

// TemplateModel is the GORM model for outbound email templates
type TemplateModel struct {
	BaseModel
	Name    string `gorm:"uniqueIndex;size:128;not null"`
	Subject string `gorm:"size:512"`
	Body    string `gorm:"type:text;not null"`
	Active  bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name
func (TemplateModel) TableName() string {
	return "email_templates"
}

// ToDomain converts the model to a domain template
func (m *TemplateModel) ToDomain() *mail.EmailTemplate {
	return &mail.EmailTemplate{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Subject:    m.Subject,
		Body:       m.Body,
		Active:     m.Active,
	}
}

// TemplateModelFromDomain builds the model from a domain template
func TemplateModelFromDomain(t *mail.EmailTemplate) *TemplateModel {
	m := &TemplateModel{
		Name:    t.Name,
		Subject: t.Subject,
		Body:    t.Body,
		Active:  t.Active,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// FileModel is the GORM model for customer file metadata
type FileModel struct {
	BaseModel
	CustomerID string     `gorm:"size:64;not null;index:idx_files_bucket"`
	EmailID    *uuid.UUID `gorm:"type:uuid;index"`
	FileName   string     `gorm:"size:255;not null"`
	MimeType   string     `gorm:"size:128"`
	SizeBytes  int64      `gorm:"not null"`
	Month      int        `gorm:"not null;index:idx_files_bucket"`
	Year       int        `gorm:"not null;index:idx_files_bucket"`
	StorageKey string     `gorm:"uniqueIndex;size:512;not null"`
	UploadedBy uuid.UUID  `gorm:"type:uuid;not null"`
}

// TableName returns the table name
func (FileModel) TableName() string {
	return "customer_files"
}

// ToDomain converts the model to a domain file
func (m *FileModel) ToDomain() *mail.CustomerFile {
	return &mail.CustomerFile{
		BaseEntity: m.BaseModel.ToDomain(),
		CustomerID: m.CustomerID,
		EmailID:    m.EmailID,
		FileName:   m.FileName,
		MimeType:   m.MimeType,
		SizeBytes:  m.SizeBytes,
		Month:      m.Month,
		Year:       m.Year,
		StorageKey: m.StorageKey,
		UploadedBy: m.UploadedBy,
	}
}

// FileModelFromDomain builds the model from a domain file
func FileModelFromDomain(f *mail.CustomerFile) *FileModel {
	m := &FileModel{
		CustomerID: f.CustomerID,
		EmailID:    f.EmailID,
		FileName:   f.FileName,
		MimeType:   f.MimeType,
		SizeBytes:  f.SizeBytes,
		Month:      f.Month,
		Year:       f.Year,
		StorageKey: f.StorageKey,
		UploadedBy: f.UploadedBy,
	}
	m.FromDomainBaseEntity(f.BaseEntity)
	return m
}
