package partner

import (
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus mirrors the ERP customer status
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "Active"
	CustomerStatusInactive CustomerStatus = "Inactive"
	CustomerStatusHold     CustomerStatus = "Hold"
)

// IsValid checks if the status is a known ERP status
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusHold:
		return true
	}
	return false
}

// DefaultRedThresholdDays is the untouched-days threshold applied when a
// customer has no explicit override configured.
const DefaultRedThresholdDays = 30

// Customer is a local mirror of an ERP customer record. The sync layer is
// the only writer for ERP-owned fields; end users may only edit the local
// collection settings (red threshold, notes).
type Customer struct {
	shared.BaseAggregateRoot
	CustomerID       string // external ERP key, unique
	Name             string
	Status           CustomerStatus
	Email            string
	Phone            string
	City             string
	Country          string
	CreditLimit      decimal.Decimal
	RedThresholdDays int
	Notes            string
	LastSyncedAt     time.Time
}

// NewCustomer creates a customer mirror from a sync payload
func NewCustomer(customerID, name string, status CustomerStatus) (*Customer, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Customer status is not valid")
	}

	c := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Name:              name,
		Status:            status,
		RedThresholdDays:  DefaultRedThresholdDays,
		LastSyncedAt:      time.Now(),
	}
	c.AddDomainEvent(NewCustomerSyncedEvent(c))
	return c, nil
}

// ApplySync overwrites the ERP-owned fields from a fresh sync payload.
// Local fields (RedThresholdDays, Notes) are preserved.
func (c *Customer) ApplySync(name string, status CustomerStatus, email, phone, city, country string, creditLimit decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Customer status is not valid")
	}

	c.Name = name
	c.Status = status
	c.Email = strings.ToLower(email)
	c.Phone = phone
	c.City = city
	c.Country = country
	c.CreditLimit = creditLimit
	c.LastSyncedAt = time.Now()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerSyncedEvent(c))
	return nil
}

// SetRedThresholdDays configures the untouched-days threshold for this customer
func (c *Customer) SetRedThresholdDays(days int) error {
	if days < 1 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Red threshold must be at least one day")
	}
	c.RedThresholdDays = days
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// SetNotes updates local collection notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// EffectiveRedThreshold returns the threshold in days, falling back to the default
func (c *Customer) EffectiveRedThreshold() int {
	if c.RedThresholdDays < 1 {
		return DefaultRedThresholdDays
	}
	return c.RedThresholdDays
}

// IsActive returns true if the ERP considers the customer active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}
