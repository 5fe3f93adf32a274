package collection

import (
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ActivityType classifies a collector contact
type ActivityType string

const (
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeEmail   ActivityType = "email"
	ActivityTypeNote    ActivityType = "note"
	ActivityTypePromise ActivityType = "promise_to_pay"
)

// IsValid checks if the activity type is a known value
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeNote, ActivityTypePromise:
		return true
	}
	return false
}

// CollectorActivity is one logged contact or note by a collector,
// optionally pinned to a specific invoice or ticket.
type CollectorActivity struct {
	shared.BaseEntity
	CollectorID      uuid.UUID
	CustomerID       string
	InvoiceReference string
	TicketID         *uuid.UUID
	Type             ActivityType
	Summary          string
	OccurredAt       time.Time
}

// NewCollectorActivity records a collector contact
func NewCollectorActivity(collectorID uuid.UUID, customerID string, activityType ActivityType, summary string, occurredAt time.Time) (*CollectorActivity, error) {
	if collectorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLLECTOR", "Collector ID cannot be empty")
	}
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_ID", "Customer ID cannot be empty")
	}
	if !activityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTIVITY_TYPE", "Activity type is not valid")
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return nil, shared.NewDomainError("INVALID_SUMMARY", "Activity summary cannot be empty")
	}

	return &CollectorActivity{
		BaseEntity:  shared.NewBaseEntity(),
		CollectorID: collectorID,
		CustomerID:  customerID,
		Type:        activityType,
		Summary:     summary,
		OccurredAt:  occurredAt,
	}, nil
}

// AttachInvoice pins the activity to an invoice
func (a *CollectorActivity) AttachInvoice(reference string) {
	a.InvoiceReference = reference
}

// AttachTicket pins the activity to a ticket
func (a *CollectorActivity) AttachTicket(ticketID uuid.UUID) {
	a.TicketID = &ticketID
}

// CollectorPerformance is the per-collector rollup over a reporting window
type CollectorPerformance struct {
	CollectorID      uuid.UUID `json:"collector_id"`
	ActiveTickets    int64     `json:"active_tickets"`
	ResolvedTickets  int64     `json:"resolved_tickets"`
	ActivitiesLogged int64     `json:"activities_logged"`
	AvgDaysToCollect float64   `json:"avg_days_to_collect"`
	HasCollectionAvg bool      `json:"has_collection_avg"`
}
