package models

import (
	"time"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the GORM model for invoice mirrors
type InvoiceModel struct {
	AggregateModel
	ReferenceNumber string          `gorm:"uniqueIndex;size:64;not null"`
	CustomerID      string          `gorm:"size:64;not null;index"`
	Type            string          `gorm:"size:32;not null;index"`
	Status          string          `gorm:"size:32;not null;index"`
	Date            time.Time       `gorm:"not null"`
	DueDate         *time.Time      `gorm:"index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Balance         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ColorStatus     string          `gorm:"size:16;not null;default:'';index"`
	Memo            string          `gorm:"type:text"`
	LastTouchedAt   *time.Time
	LastSyncedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the model to a domain invoice
func (m *InvoiceModel) ToDomain() *receivable.Invoice {
	return &receivable.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ReferenceNumber:   m.ReferenceNumber,
		CustomerID:        m.CustomerID,
		Type:              receivable.InvoiceType(m.Type),
		Status:            receivable.InvoiceStatus(m.Status),
		Date:              m.Date,
		DueDate:           m.DueDate,
		Amount:            m.Amount,
		Balance:           m.Balance,
		ColorStatus:       receivable.ColorStatus(m.ColorStatus),
		Memo:              m.Memo,
		LastTouchedAt:     m.LastTouchedAt,
		LastSyncedAt:      m.LastSyncedAt,
	}
}

// InvoiceModelFromDomain builds the model from a domain invoice
func InvoiceModelFromDomain(inv *receivable.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		ReferenceNumber: inv.ReferenceNumber,
		CustomerID:      inv.CustomerID,
		Type:            string(inv.Type),
		Status:          string(inv.Status),
		Date:            inv.Date,
		DueDate:         inv.DueDate,
		Amount:          inv.Amount,
		Balance:         inv.Balance,
		ColorStatus:     string(inv.ColorStatus),
		Memo:            inv.Memo,
		LastTouchedAt:   inv.LastTouchedAt,
		LastSyncedAt:    inv.LastSyncedAt,
	}
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	return m
}

// PaymentModel is the GORM model for payment mirrors
type PaymentModel struct {
	AggregateModel
	ReferenceNumber string          `gorm:"uniqueIndex;size:64;not null"`
	CustomerID      string          `gorm:"size:64;not null;index"`
	Type            string          `gorm:"size:32;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ApplicationDate time.Time       `gorm:"not null;index"`
	LastSyncedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the model to a domain payment
func (m *PaymentModel) ToDomain() *receivable.Payment {
	return &receivable.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ReferenceNumber:   m.ReferenceNumber,
		CustomerID:        m.CustomerID,
		Type:              receivable.PaymentType(m.Type),
		Amount:            m.Amount,
		ApplicationDate:   m.ApplicationDate,
		LastSyncedAt:      m.LastSyncedAt,
	}
}

// PaymentModelFromDomain builds the model from a domain payment
func PaymentModelFromDomain(p *receivable.Payment) *PaymentModel {
	m := &PaymentModel{
		ReferenceNumber: p.ReferenceNumber,
		CustomerID:      p.CustomerID,
		Type:            string(p.Type),
		Amount:          p.Amount,
		ApplicationDate: p.ApplicationDate,
		LastSyncedAt:    p.LastSyncedAt,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}

// PaymentApplicationModel is the GORM model for payment application rows
type PaymentApplicationModel struct {
	BaseModel
	PaymentReference string          `gorm:"size:64;not null;index"`
	InvoiceReference string          `gorm:"size:64;not null;index"`
	DocType          string          `gorm:"size:32;not null"`
	AmountPaid       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AppliedAt        time.Time       `gorm:"not null;index"`
}

// TableName returns the table name
func (PaymentApplicationModel) TableName() string {
	return "payment_applications"
}

// ToDomain converts the model to a domain payment application
func (m *PaymentApplicationModel) ToDomain() *receivable.PaymentApplication {
	return &receivable.PaymentApplication{
		BaseEntity:       m.BaseModel.ToDomain(),
		PaymentReference: m.PaymentReference,
		InvoiceReference: m.InvoiceReference,
		DocType:          receivable.ApplicationDocType(m.DocType),
		AmountPaid:       m.AmountPaid,
		AppliedAt:        m.AppliedAt,
	}
}

// PaymentApplicationModelFromDomain builds the model from a domain application row
func PaymentApplicationModelFromDomain(app *receivable.PaymentApplication) *PaymentApplicationModel {
	m := &PaymentApplicationModel{
		PaymentReference: app.PaymentReference,
		InvoiceReference: app.InvoiceReference,
		DocType:          string(app.DocType),
		AmountPaid:       app.AmountPaid,
		AppliedAt:        app.AppliedAt,
	}
	m.FromDomainBaseEntity(app.BaseEntity)
	return m
}

// ColorStatusLogModel is the GORM model for the color transition audit trail
type ColorStatusLogModel struct {
	BaseModel
	InvoiceReference string     `gorm:"size:64;not null;index"`
	OldStatus        string     `gorm:"size:16;not null;default:''"`
	NewStatus        string     `gorm:"size:16;not null;default:''"`
	ChangedBy        *uuid.UUID `gorm:"type:uuid"`
	Automatic        bool       `gorm:"not null"`
	ChangedAt        time.Time  `gorm:"not null;index"`
}

// TableName returns the table name
func (ColorStatusLogModel) TableName() string {
	return "invoice_color_status_logs"
}

// ToDomain converts the model to a domain audit entry
func (m *ColorStatusLogModel) ToDomain() *receivable.ColorStatusLogEntry {
	return &receivable.ColorStatusLogEntry{
		BaseEntity:       m.BaseModel.ToDomain(),
		InvoiceReference: m.InvoiceReference,
		OldStatus:        receivable.ColorStatus(m.OldStatus),
		NewStatus:        receivable.ColorStatus(m.NewStatus),
		ChangedBy:        m.ChangedBy,
		Automatic:        m.Automatic,
		ChangedAt:        m.ChangedAt,
	}
}

// ColorStatusLogModelFromDomain builds the model from a domain audit entry
func ColorStatusLogModelFromDomain(e *receivable.ColorStatusLogEntry) *ColorStatusLogModel {
	m := &ColorStatusLogModel{
		InvoiceReference: e.InvoiceReference,
		OldStatus:        string(e.OldStatus),
		NewStatus:        string(e.NewStatus),
		ChangedBy:        e.ChangedBy,
		Automatic:        e.Automatic,
		ChangedAt:        e.ChangedAt,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
