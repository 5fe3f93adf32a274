package partner

import (
	"time"

	"github.com/arflow/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerPayload is one customer row from an ERP sync batch
type CustomerPayload struct {
	CustomerID  string          `json:"customer_id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Status      string          `json:"status" binding:"required"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	City        string          `json:"city"`
	Country     string          `json:"country"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// UpdateCustomerSettingsRequest edits the local-only collection settings
type UpdateCustomerSettingsRequest struct {
	RedThresholdDays *int    `json:"red_threshold_days" binding:"omitempty,min=1,max=365"`
	Notes            *string `json:"notes" binding:"omitempty,max=4000"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID               uuid.UUID       `json:"id"`
	CustomerID       string          `json:"customer_id"`
	Name             string          `json:"name"`
	Status           string          `json:"status"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	City             string          `json:"city"`
	Country          string          `json:"country"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	RedThresholdDays int             `json:"red_threshold_days"`
	Notes            string          `json:"notes"`
	LastSyncedAt     time.Time       `json:"last_synced_at"`
}

// ToCustomerResponse converts a domain customer to its API shape
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
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
}

// UpsertResult summarizes one customer sync batch
type UpsertResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}
