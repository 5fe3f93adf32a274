package persistence

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSyncLogRepository implements sync.LogRepository using GORM
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Append stores a dispatch log entry
func (r *GormSyncLogRepository) Append(ctx context.Context, log *sync.SyncLog) error {
	model := models.SyncLogModelFromDomain(log)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindRecent returns the most recent log entries for a kind, newest first
func (r *GormSyncLogRepository) FindRecent(ctx context.Context, kind sync.EntityKind, limit int) ([]sync.SyncLog, error) {
	var logModels []models.SyncLogModel
	query := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("dispatched_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}
	return toSyncLogs(logModels), nil
}

// FindInRange returns log entries dispatched within the window
func (r *GormSyncLogRepository) FindInRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]sync.SyncLog, error) {
	var logModels []models.SyncLogModel
	query := r.db.WithContext(ctx).Model(&models.SyncLogModel{}).
		Where("dispatched_at >= ? AND dispatched_at < ?", from, to)

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "outcome":
			query = query.Where("outcome = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, SyncLogSortFields, "dispatched_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}
	return toSyncLogs(logModels), nil
}

// DeleteOlderThan removes log entries dispatched before the cutoff and
// returns how many rows were removed
func (r *GormSyncLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.SyncLogModel{}, "dispatched_at < ?", cutoff)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func toSyncLogs(logModels []models.SyncLogModel) []sync.SyncLog {
	logs := make([]sync.SyncLog, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs
}

// Ensure GormSyncLogRepository implements LogRepository
var _ sync.LogRepository = (*GormSyncLogRepository)(nil)
