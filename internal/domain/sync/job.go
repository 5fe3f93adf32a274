package sync

import (
	"time"

	"github.com/arflow/backend/internal/domain/shared"
)

// JobStatus is the state of a long-running async sync job. The worker loop
// that drains these lives outside this service; we record and expose status.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// AsyncSyncJob tracks one long-running sync job
type AsyncSyncJob struct {
	shared.BaseAggregateRoot
	Kind        EntityKind
	Status      JobStatus
	Parameters  string
	StartedAt   *time.Time
	CompletedAt *time.Time
	Error       string
	RowsSynced  int64
}

// NewAsyncSyncJob queues a job
func NewAsyncSyncJob(kind EntityKind, parameters string) (*AsyncSyncJob, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ENTITY_KIND", "Sync entity kind is not valid")
	}
	return &AsyncSyncJob{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Status:            JobStatusQueued,
		Parameters:        parameters,
	}, nil
}

// Start moves the job to running
func (j *AsyncSyncJob) Start(at time.Time) error {
	if j.Status != JobStatusQueued {
		return shared.ErrInvalidState
	}
	j.Status = JobStatusRunning
	j.StartedAt = &at
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	return nil
}

// Complete records success with the number of rows synced
func (j *AsyncSyncJob) Complete(at time.Time, rows int64) error {
	if j.Status != JobStatusRunning {
		return shared.ErrInvalidState
	}
	j.Status = JobStatusCompleted
	j.CompletedAt = &at
	j.RowsSynced = rows
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	return nil
}

// Fail records failure with the error text
func (j *AsyncSyncJob) Fail(at time.Time, reason string) error {
	if j.Status != JobStatusRunning && j.Status != JobStatusQueued {
		return shared.ErrInvalidState
	}
	j.Status = JobStatusFailed
	j.CompletedAt = &at
	j.Error = reason
	j.UpdatedAt = time.Now()
	j.IncrementVersion()
	return nil
}
