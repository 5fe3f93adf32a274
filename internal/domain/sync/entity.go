package sync

import (
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
)

// SyncStatus is the dispatch state of one synced entity
type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusRunning SyncStatus = "running"
	SyncStatusFailed  SyncStatus = "failed"
)

// EntityKind names the ERP entity a sync row drives
type EntityKind string

const (
	EntityCustomers    EntityKind = "customers"
	EntityInvoices     EntityKind = "invoices"
	EntityPayments     EntityKind = "payments"
	EntityApplications EntityKind = "payment_applications"
)

// IsValid checks if the kind is a known synced entity
func (k EntityKind) IsValid() bool {
	switch k {
	case EntityCustomers, EntityInvoices, EntityPayments, EntityApplications:
		return true
	}
	return false
}

// SyncEntity is one row of the sync scheduling table. The dispatcher takes
// a distributed lease before marking a row running, so the status column is
// informational rather than the mutex it used to be.
type SyncEntity struct {
	shared.BaseAggregateRoot
	Kind            EntityKind
	Enabled         bool
	Status          SyncStatus
	IntervalMinutes int
	LastStartedAt   *time.Time
	LastSucceededAt *time.Time
	LastError       string
}

// NewSyncEntity creates an enabled sync row with the default 5 minute cadence
func NewSyncEntity(kind EntityKind) (*SyncEntity, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_KIND", "Sync entity kind is not valid")
	}
	return &SyncEntity{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Enabled:           true,
		Status:            SyncStatusIdle,
		IntervalMinutes:   5,
	}, nil
}

// IsDue reports whether the entity should be dispatched: enabled, not
// currently running, and no success within its interval.
func (e *SyncEntity) IsDue(now time.Time) bool {
	if !e.Enabled || e.Status == SyncStatusRunning {
		return false
	}
	if e.LastSucceededAt == nil {
		return true
	}
	return now.Sub(*e.LastSucceededAt) >= time.Duration(e.IntervalMinutes)*time.Minute
}

// MarkRunning records the start of a dispatch
func (e *SyncEntity) MarkRunning(at time.Time) {
	e.Status = SyncStatusRunning
	e.LastStartedAt = &at
	e.LastError = ""
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// MarkSucceeded records a successful dispatch
func (e *SyncEntity) MarkSucceeded(at time.Time) {
	e.Status = SyncStatusIdle
	e.LastSucceededAt = &at
	e.LastError = ""
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// MarkFailed records a failed dispatch with its error text
func (e *SyncEntity) MarkFailed(reason string) {
	e.Status = SyncStatusFailed
	e.LastError = strings.TrimSpace(reason)
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// Enable turns dispatching on
func (e *SyncEntity) Enable() {
	e.Enabled = true
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// Disable turns dispatching off
func (e *SyncEntity) Disable() {
	e.Enabled = false
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// SetInterval changes the dispatch cadence
func (e *SyncEntity) SetInterval(minutes int) error {
	if minutes < 1 {
		return shared.NewDomainError("INVALID_INTERVAL", "Sync interval must be at least one minute")
	}
	e.IntervalMinutes = minutes
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
	return nil
}
