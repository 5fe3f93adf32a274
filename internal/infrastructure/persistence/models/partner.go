package models

import (
	"time"

	"github.com/arflow/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the GORM model for customer mirrors
type CustomerModel struct {
	AggregateModel
	CustomerID       string          `gorm:"uniqueIndex;size:64;not null"`
	Name             string          `gorm:"size:255;not null;index"`
	Status           string          `gorm:"size:32;not null;index"`
	Email            string          `gorm:"size:255"`
	Phone            string          `gorm:"size:64"`
	City             string          `gorm:"size:128"`
	Country          string          `gorm:"size:128"`
	CreditLimit      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	RedThresholdDays int             `gorm:"not null;default:0"`
	Notes            string          `gorm:"type:text"`
	LastSyncedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the model to a domain customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		Name:              m.Name,
		Status:            partner.CustomerStatus(m.Status),
		Email:             m.Email,
		Phone:             m.Phone,
		City:              m.City,
		Country:           m.Country,
		CreditLimit:       m.CreditLimit,
		RedThresholdDays:  m.RedThresholdDays,
		Notes:             m.Notes,
		LastSyncedAt:      m.LastSyncedAt,
	}
}

// CustomerModelFromDomain builds the model from a domain customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		CustomerID:       c.CustomerID,
		Name:             c.Name,
		Status:           string(c.Status),
		Email:            c.Email,
		Phone:            c.Phone,
		City:             c.City,
		Country:          c.Country,
		CreditLimit:      c.CreditLimit,
		RedThresholdDays: c.RedThresholdDays,
		Notes:            c.Notes,
		LastSyncedAt:     c.LastSyncedAt,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
