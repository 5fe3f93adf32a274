package mail

import "github.com/arflow/backend/internal/domain/shared"

// Event types for the mail context
const (
	EventTypeEmailFiled = "mail.email.filed"
)

// EmailFiledEvent is raised when an inbound email is matched to a customer
type EmailFiledEvent struct {
	shared.BaseDomainEvent
	Sender            string `json:"sender"`
	NormalizedSubject string `json:"normalized_subject"`
	CustomerID        string `json:"customer_id"`
}

// NewEmailFiledEvent creates an email filed event
func NewEmailFiledEvent(e *InboundEmail, customerID string) *EmailFiledEvent {
	return &EmailFiledEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeEmailFiled, "InboundEmail", e.ID),
		Sender:            e.Sender,
		NormalizedSubject: e.NormalizedSubject,
		CustomerID:        customerID,
	}
}
