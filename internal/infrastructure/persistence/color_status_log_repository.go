package persistence

import (
	"context"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormColorStatusLogRepository implements ColorStatusLogRepository using GORM
type GormColorStatusLogRepository struct {
	db *gorm.DB
}

// NewGormColorStatusLogRepository creates a new GormColorStatusLogRepository
func NewGormColorStatusLogRepository(db *gorm.DB) *GormColorStatusLogRepository {
	return &GormColorStatusLogRepository{db: db}
}

// Append stores a color transition audit entry
func (r *GormColorStatusLogRepository) Append(ctx context.Context, entry *receivable.ColorStatusLogEntry) error {
	model := models.ColorStatusLogModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByInvoice returns the transition history for an invoice, newest first
func (r *GormColorStatusLogRepository) FindByInvoice(ctx context.Context, invoiceReference string, filter shared.Filter) ([]receivable.ColorStatusLogEntry, error) {
	var logModels []models.ColorStatusLogModel
	query := r.db.WithContext(ctx).
		Model(&models.ColorStatusLogModel{}).
		Where("invoice_reference = ?", invoiceReference).
		Order("changed_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	entries := make([]receivable.ColorStatusLogEntry, len(logModels))
	for i, model := range logModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Ensure GormColorStatusLogRepository implements ColorStatusLogRepository
var _ receivable.ColorStatusLogRepository = (*GormColorStatusLogRepository)(nil)
