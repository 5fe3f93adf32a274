package sync

import (
	"time"

	"github.com/arflow/backend/internal/domain/sync"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TriggerSyncRequest manually triggers one entity sync
type TriggerSyncRequest struct {
	Kind string `json:"kind" binding:"required,oneof=customers invoices payments payment_applications"`
}

// UpdateScheduleRequest edits one sync row's schedule
type UpdateScheduleRequest struct {
	Enabled         *bool `json:"enabled"`
	IntervalMinutes *int  `json:"interval_minutes" binding:"omitempty,min=1,max=1440"`
}

// SetCredentialsRequest replaces the active ERP credential set
type SetCredentialsRequest struct {
	BaseURL  string `json:"base_url" binding:"required,url"`
	Tenant   string `json:"tenant"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// EnqueueJobRequest queues a long-running async sync job
type EnqueueJobRequest struct {
	Kind       string `json:"kind" binding:"required,oneof=customers invoices payments payment_applications"`
	Parameters string `json:"parameters"`
}

// EntityStatusResponse is one sync row in API responses
type EntityStatusResponse struct {
	Kind            string     `json:"kind"`
	Enabled         bool       `json:"enabled"`
	Status          string     `json:"status"`
	IntervalMinutes int        `json:"interval_minutes"`
	LastStartedAt   *time.Time `json:"last_started_at,omitempty"`
	LastSucceededAt *time.Time `json:"last_succeeded_at,omitempty"`
	LastError       string     `json:"last_error,omitempty"`
}

// ToEntityStatusResponse converts a sync row to its API shape
func ToEntityStatusResponse(e *sync.SyncEntity) EntityStatusResponse {
	return EntityStatusResponse{
		Kind:            string(e.Kind),
		Enabled:         e.Enabled,
		Status:          string(e.Status),
		IntervalMinutes: e.IntervalMinutes,
		LastStartedAt:   e.LastStartedAt,
		LastSucceededAt: e.LastSucceededAt,
		LastError:       e.LastError,
	}
}

// LogResponse is one dispatch log row in API responses
type LogResponse struct {
	ID             uuid.UUID `json:"id"`
	Kind           string    `json:"kind"`
	Outcome        string    `json:"outcome"`
	Endpoint       string    `json:"endpoint"`
	IdempotencyKey string    `json:"idempotency_key"`
	Detail         string    `json:"detail,omitempty"`
	DispatchedAt   time.Time `json:"dispatched_at"`
	DurationMS     int64     `json:"duration_ms"`
}

// ToLogResponse converts a log row to its API shape
func ToLogResponse(l *sync.SyncLog) LogResponse {
	return LogResponse{
		ID:             l.ID,
		Kind:           string(l.Kind),
		Outcome:        string(l.Outcome),
		Endpoint:       l.Endpoint,
		IdempotencyKey: l.IdempotencyKey,
		Detail:         l.Detail,
		DispatchedAt:   l.DispatchedAt,
		DurationMS:     l.DurationMS,
	}
}

// JobResponse is one async job in API responses
type JobResponse struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	Parameters  string     `json:"parameters,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	RowsSynced  int64      `json:"rows_synced"`
}

// ToJobResponse converts an async job to its API shape
func ToJobResponse(j *sync.AsyncSyncJob) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Kind:        string(j.Kind),
		Status:      string(j.Status),
		Parameters:  j.Parameters,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
		Error:       j.Error,
		RowsSynced:  j.RowsSynced,
	}
}

// PaymentDriftEntry is one payment whose header amount disagrees with the
// sum of its application rows.
type PaymentDriftEntry struct {
	PaymentReference string          `json:"payment_reference"`
	CustomerID       string          `json:"customer_id"`
	HeaderAmount     decimal.Decimal `json:"header_amount"`
	AppliedAmount    decimal.Decimal `json:"applied_amount"`
	Drift            decimal.Decimal `json:"drift"`
}

// DriftReport summarizes a payment application health check
type DriftReport struct {
	CheckedPayments int                 `json:"checked_payments"`
	DriftingCount   int                 `json:"drifting_count"`
	Entries         []PaymentDriftEntry `json:"entries"`
	CheckedAt       time.Time           `json:"checked_at"`
}
