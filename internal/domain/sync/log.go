package sync

import (
	"time"

	"github.com/arflow/backend/internal/domain/shared"
)

// LogOutcome is the recorded result of one dispatch attempt
type LogOutcome string

const (
	OutcomeDispatched LogOutcome = "dispatched"
	OutcomeSkipped    LogOutcome = "skipped"
	OutcomeFailed     LogOutcome = "failed"
)

// SyncLog is one append-only dispatch record. IdempotencyKey ties the log
// row to the request sent downstream so replays can be traced.
type SyncLog struct {
	shared.BaseEntity
	Kind           EntityKind
	Outcome        LogOutcome
	Endpoint       string
	IdempotencyKey string
	Detail         string
	DispatchedAt   time.Time
	DurationMS     int64
}

// NewSyncLog appends a dispatch record
func NewSyncLog(kind EntityKind, outcome LogOutcome, endpoint, idempotencyKey, detail string, dispatchedAt time.Time, duration time.Duration) *SyncLog {
	return &SyncLog{
		BaseEntity:     shared.NewBaseEntity(),
		Kind:           kind,
		Outcome:        outcome,
		Endpoint:       endpoint,
		IdempotencyKey: idempotencyKey,
		Detail:         detail,
		DispatchedAt:   dispatchedAt,
		DurationMS:     duration.Milliseconds(),
	}
}
