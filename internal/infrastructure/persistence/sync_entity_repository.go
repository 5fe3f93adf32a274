package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSyncEntityRepository implements sync.EntityRepository using GORM
type GormSyncEntityRepository struct {
	db *gorm.DB
}

// NewGormSyncEntityRepository creates a new GormSyncEntityRepository
func NewGormSyncEntityRepository(db *gorm.DB) *GormSyncEntityRepository {
	return &GormSyncEntityRepository{db: db}
}

// FindByKind finds the scheduling row for an entity kind
func (r *GormSyncEntityRepository) FindByKind(ctx context.Context, kind sync.EntityKind) (*sync.SyncEntity, error) {
	var model models.SyncEntityModel
	if err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all scheduling rows
func (r *GormSyncEntityRepository) FindAll(ctx context.Context) ([]sync.SyncEntity, error) {
	var entityModels []models.SyncEntityModel
	if err := r.db.WithContext(ctx).
		Order("kind ASC").
		Find(&entityModels).Error; err != nil {
		return nil, err
	}
	return toSyncEntities(entityModels), nil
}

// FindDue returns enabled entities whose interval has elapsed since the last
// start, or that have never started
func (r *GormSyncEntityRepository) FindDue(ctx context.Context, now time.Time) ([]sync.SyncEntity, error) {
	var entityModels []models.SyncEntityModel
	if err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Where("status <> ?", sync.SyncStatusRunning).
		Where("last_started_at IS NULL OR last_started_at <= ? - make_interval(mins => interval_minutes)", now).
		Order("kind ASC").
		Find(&entityModels).Error; err != nil {
		return nil, err
	}
	return toSyncEntities(entityModels), nil
}

// Save creates or updates a scheduling row
func (r *GormSyncEntityRepository) Save(ctx context.Context, entity *sync.SyncEntity) error {
	model := models.SyncEntityModelFromDomain(entity)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a scheduling row with optimistic locking (version check)
// Returns error if the version has changed (concurrent modification)
func (r *GormSyncEntityRepository) SaveWithLock(ctx context.Context, entity *sync.SyncEntity) error {
	model := models.SyncEntityModelFromDomain(entity)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", entity.ID, entity.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The sync entity record has been modified by another transaction")
	}
	return nil
}

func toSyncEntities(entityModels []models.SyncEntityModel) []sync.SyncEntity {
	entities := make([]sync.SyncEntity, len(entityModels))
	for i, model := range entityModels {
		entities[i] = *model.ToDomain()
	}
	return entities
}

// Ensure GormSyncEntityRepository implements EntityRepository
var _ sync.EntityRepository = (*GormSyncEntityRepository)(nil)
