package sync

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EntityRepository provides access to sync scheduling rows
type EntityRepository interface {
	FindByKind(ctx context.Context, kind EntityKind) (*SyncEntity, error)
	FindAll(ctx context.Context) ([]SyncEntity, error)
	FindDue(ctx context.Context, now time.Time) ([]SyncEntity, error)
	Save(ctx context.Context, entity *SyncEntity) error
	SaveWithLock(ctx context.Context, entity *SyncEntity) error
}

// LogRepository provides append-only access to dispatch logs
type LogRepository interface {
	Append(ctx context.Context, log *SyncLog) error
	FindRecent(ctx context.Context, kind EntityKind, limit int) ([]SyncLog, error)
	FindInRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]SyncLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// JobRepository provides access to async sync jobs
type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AsyncSyncJob, error)
	FindByStatus(ctx context.Context, status JobStatus, filter shared.Filter) ([]AsyncSyncJob, error)
	Save(ctx context.Context, job *AsyncSyncJob) error
	SaveWithLock(ctx context.Context, job *AsyncSyncJob) error
}

// CredentialsRepository provides access to the stored ERP credentials
type CredentialsRepository interface {
	FindActive(ctx context.Context) (*ErpCredentials, error)
	Save(ctx context.Context, creds *ErpCredentials) error
	DeactivateAll(ctx context.Context) error
}
