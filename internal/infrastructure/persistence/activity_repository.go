package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormActivityRepository implements ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// FindByID finds an activity by its ID
func (r *GormActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.CollectorActivity, error) {
	var model models.ActivityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer finds activities for a customer matching the filter
func (r *GormActivityRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]collection.CollectorActivity, error) {
	var activityModels []models.ActivityModel
	query := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("customer_id = ?", customerID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return toActivities(activityModels), nil
}

// FindByCollector finds activities logged by a collector within the window
func (r *GormActivityRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, from, to time.Time) ([]collection.CollectorActivity, error) {
	var activityModels []models.ActivityModel
	if err := r.db.WithContext(ctx).
		Where("collector_id = ? AND occurred_at >= ? AND occurred_at < ?", collectorID, from, to).
		Order("occurred_at DESC").
		Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return toActivities(activityModels), nil
}

// FindByTicket finds activities linked to a ticket matching the filter
func (r *GormActivityRepository) FindByTicket(ctx context.Context, ticketID uuid.UUID, filter shared.Filter) ([]collection.CollectorActivity, error) {
	var activityModels []models.ActivityModel
	query := r.db.WithContext(ctx).Model(&models.ActivityModel{}).
		Where("ticket_id = ?", ticketID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return toActivities(activityModels), nil
}

// Save creates or updates an activity
func (r *GormActivityRepository) Save(ctx context.Context, activity *collection.CollectorActivity) error {
	model := models.ActivityModelFromDomain(activity)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountByCollector counts activities logged by a collector within the window
func (r *GormActivityRepository) CountByCollector(ctx context.Context, collectorID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActivityModel{}).
		Where("collector_id = ? AND occurred_at >= ? AND occurred_at < ?", collectorID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormActivityRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("summary ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "invoice_reference":
			query = query.Where("invoice_reference = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ActivitySortFields, "occurred_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func toActivities(activityModels []models.ActivityModel) []collection.CollectorActivity {
	activities := make([]collection.CollectorActivity, len(activityModels))
	for i, model := range activityModels {
		activities[i] = *model.ToDomain()
	}
	return activities
}

// Ensure GormActivityRepository implements ActivityRepository
var _ collection.ActivityRepository = (*GormActivityRepository)(nil)
