package receivable

import (
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ColorStatusLogEntry is the audit row written for every color transition.
// Automatic transitions carry a nil actor.
type ColorStatusLogEntry struct {
	shared.BaseEntity
	InvoiceReference string
	OldStatus        ColorStatus
	NewStatus        ColorStatus
	ChangedBy        *uuid.UUID
	Automatic        bool
	ChangedAt        time.Time
}

// NewColorStatusLogEntry creates an audit entry from a color change event
func NewColorStatusLogEntry(e *InvoiceColorStatusChangedEvent) *ColorStatusLogEntry {
	return &ColorStatusLogEntry{
		BaseEntity:       shared.NewBaseEntity(),
		InvoiceReference: e.ReferenceNumber,
		OldStatus:        e.OldStatus,
		NewStatus:        e.NewStatus,
		ChangedBy:        e.ChangedBy,
		Automatic:        e.Automatic,
		ChangedAt:        e.OccurredAt(),
	}
}
