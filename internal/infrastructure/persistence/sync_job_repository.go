package persistence

import (
	"context"
	"errors"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSyncJobRepository implements sync.JobRepository using GORM
type GormSyncJobRepository struct {
	db *gorm.DB
}

// NewGormSyncJobRepository creates a new GormSyncJobRepository
func NewGormSyncJobRepository(db *gorm.DB) *GormSyncJobRepository {
	return &GormSyncJobRepository{db: db}
}

// FindByID finds a job by its ID
func (r *GormSyncJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*sync.AsyncSyncJob, error) {
	var model models.SyncJobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatus finds jobs in the given status matching the filter
func (r *GormSyncJobRepository) FindByStatus(ctx context.Context, status sync.JobStatus, filter shared.Filter) ([]sync.AsyncSyncJob, error) {
	var jobModels []models.SyncJobModel
	query := r.db.WithContext(ctx).Model(&models.SyncJobModel{}).
		Where("status = ?", status)

	for key, value := range filter.Filters {
		if key == "kind" {
			query = query.Where("kind = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, SyncJobSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&jobModels).Error; err != nil {
		return nil, err
	}

	jobs := make([]sync.AsyncSyncJob, len(jobModels))
	for i, model := range jobModels {
		jobs[i] = *model.ToDomain()
	}
	return jobs, nil
}

// Save creates or updates a job
func (r *GormSyncJobRepository) Save(ctx context.Context, job *sync.AsyncSyncJob) error {
	model := models.SyncJobModelFromDomain(job)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a job with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormSyncJobRepository) SaveWithLock(ctx context.Context, job *sync.AsyncSyncJob) error {
	model := models.SyncJobModelFromDomain(job)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", job.ID, job.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The sync job record has been modified by another transaction")
	}
	return nil
}

// Ensure GormSyncJobRepository implements JobRepository
var _ sync.JobRepository = (*GormSyncJobRepository)(nil)
