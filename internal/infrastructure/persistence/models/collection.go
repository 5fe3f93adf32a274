package models

import (
	"time"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TicketModel is the GORM model for collection tickets
type TicketModel struct {
	AggregateModel
	CustomerID   string    `gorm:"size:64;not null;index"`
	CollectorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"size:32;not null;index"`
	Priority     string    `gorm:"size:16;not null"`
	Subject      string    `gorm:"size:255;not null"`
	Notes        string    `gorm:"type:text"`
	ResolvedAt   *time.Time
	AutoResolved bool `gorm:"not null;default:false"`
}

// TableName returns the table name
func (TicketModel) TableName() string {
	return "collection_tickets"
}

// ToDomain converts the model to a domain ticket. Linked invoices are
// loaded separately.
func (m *TicketModel) ToDomain() *collection.CollectionTicket {
	return &collection.CollectionTicket{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		CollectorID:       m.CollectorID,
		Status:            collection.TicketStatus(m.Status),
		Priority:          collection.TicketPriority(m.Priority),
		Subject:           m.Subject,
		Notes:             m.Notes,
		ResolvedAt:        m.ResolvedAt,
		AutoResolved:      m.AutoResolved,
	}
}

// TicketModelFromDomain builds the model from a domain ticket
func TicketModelFromDomain(t *collection.CollectionTicket) *TicketModel {
	m := &TicketModel{
		CustomerID:   t.CustomerID,
		CollectorID:  t.CollectorID,
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		Subject:      t.Subject,
		Notes:        t.Notes,
		ResolvedAt:   t.ResolvedAt,
		AutoResolved: t.AutoResolved,
	}
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	return m
}

// TicketInvoiceModel is the GORM model for invoices linked to a ticket
type TicketInvoiceModel struct {
	BaseModel
	TicketID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceReference string          `gorm:"size:64;not null;index"`
	BalanceAtLink    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Settled          bool            `gorm:"not null;default:false"`
	SettledAt        *time.Time
}

// TableName returns the table name
func (TicketInvoiceModel) TableName() string {
	return "collection_ticket_invoices"
}

// ToDomain converts the model to a domain ticket invoice link
func (m *TicketInvoiceModel) ToDomain() collection.TicketInvoice {
	return collection.TicketInvoice{
		BaseEntity:       m.BaseModel.ToDomain(),
		TicketID:         m.TicketID,
		InvoiceReference: m.InvoiceReference,
		BalanceAtLink:    m.BalanceAtLink,
		Settled:          m.Settled,
		SettledAt:        m.SettledAt,
	}
}

// TicketInvoiceModelFromDomain builds the model from a domain ticket invoice link
func TicketInvoiceModelFromDomain(ti *collection.TicketInvoice) *TicketInvoiceModel {
	m := &TicketInvoiceModel{
		TicketID:         ti.TicketID,
		InvoiceReference: ti.InvoiceReference,
		BalanceAtLink:    ti.BalanceAtLink,
		Settled:          ti.Settled,
		SettledAt:        ti.SettledAt,
	}
	m.FromDomainBaseEntity(ti.BaseEntity)
	return m
}

// AssignmentModel is the GORM model for invoice assignments
type AssignmentModel struct {
	BaseModel
	InvoiceReference string     `gorm:"uniqueIndex;size:64;not null"`
	CustomerID       string     `gorm:"size:64;not null;index"`
	CollectorID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	TicketID         *uuid.UUID `gorm:"type:uuid;index"`
	AssignedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name
func (AssignmentModel) TableName() string {
	return "invoice_assignments"
}

// ToDomain converts the model to a domain assignment
func (m *AssignmentModel) ToDomain() *collection.InvoiceAssignment {
	return &collection.InvoiceAssignment{
		BaseEntity:       m.BaseModel.ToDomain(),
		InvoiceReference: m.InvoiceReference,
		CustomerID:       m.CustomerID,
		CollectorID:      m.CollectorID,
		TicketID:         m.TicketID,
		AssignedAt:       m.AssignedAt,
	}
}

// AssignmentModelFromDomain builds the model from a domain assignment
func AssignmentModelFromDomain(a *collection.InvoiceAssignment) *AssignmentModel {
	m := &AssignmentModel{
		InvoiceReference: a.InvoiceReference,
		CustomerID:       a.CustomerID,
		CollectorID:      a.CollectorID,
		TicketID:         a.TicketID,
		AssignedAt:       a.AssignedAt,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// ActivityModel is the GORM model for collector activity logs
type ActivityModel struct {
	BaseModel
	CollectorID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID       string     `gorm:"size:64;not null;index"`
	InvoiceReference string     `gorm:"size:64"`
	TicketID         *uuid.UUID `gorm:"type:uuid;index"`
	Type             string     `gorm:"size:32;not null"`
	Summary          string     `gorm:"type:text"`
	OccurredAt       time.Time  `gorm:"not null;index"`
}

// TableName returns the table name
func (ActivityModel) TableName() string {
	return "collector_activities"
}

// ToDomain converts the model to a domain activity
func (m *ActivityModel) ToDomain() *collection.CollectorActivity {
	return &collection.CollectorActivity{
		BaseEntity:       m.BaseModel.ToDomain(),
		CollectorID:      m.CollectorID,
		CustomerID:       m.CustomerID,
		InvoiceReference: m.InvoiceReference,
		TicketID:         m.TicketID,
		Type:             collection.ActivityType(m.Type),
		Summary:          m.Summary,
		OccurredAt:       m.OccurredAt,
	}
}

// ActivityModelFromDomain builds the model from a domain activity
func ActivityModelFromDomain(a *collection.CollectorActivity) *ActivityModel {
	m := &ActivityModel{
		CollectorID:      a.CollectorID,
		CustomerID:       a.CustomerID,
		InvoiceReference: a.InvoiceReference,
		TicketID:         a.TicketID,
		Type:             string(a.Type),
		Summary:          a.Summary,
		OccurredAt:       a.OccurredAt,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
