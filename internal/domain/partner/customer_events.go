package partner

import "github.com/arflow/backend/internal/domain/shared"

// Event types for the partner context
const (
	EventTypeCustomerSynced = "partner.customer.synced"
)

// CustomerSyncedEvent is raised whenever a customer mirror is created or refreshed
type CustomerSyncedEvent struct {
	shared.BaseDomainEvent
	CustomerID string         `json:"customer_id"`
	Name       string         `json:"name"`
	Status     CustomerStatus `json:"status"`
}

// NewCustomerSyncedEvent creates a customer synced event
func NewCustomerSyncedEvent(c *Customer) *CustomerSyncedEvent {
	return &CustomerSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerSynced, "Customer", c.ID),
		CustomerID:      c.CustomerID,
		Name:            c.Name,
		Status:          c.Status,
	}
}
