package persistence

import (
	"context"
	"errors"

	"github.com/arflow/backend/internal/domain/mail"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormLabelRepository implements LabelRepository using GORM
type GormLabelRepository struct {
	db *gorm.DB
}

// NewGormLabelRepository creates a new GormLabelRepository
func NewGormLabelRepository(db *gorm.DB) *GormLabelRepository {
	return &GormLabelRepository{db: db}
}

// FindByID finds a label by its ID
func (r *GormLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*mail.EmailLabel, error) {
	var model models.LabelModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds all labels owned by a user
func (r *GormLabelRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]mail.EmailLabel, error) {
	var labelModels []models.LabelModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&labelModels).Error; err != nil {
		return nil, err
	}

	labels := make([]mail.EmailLabel, len(labelModels))
	for i, model := range labelModels {
		labels[i] = *model.ToDomain()
	}
	return labels, nil
}

// Save creates or updates a label
func (r *GormLabelRepository) Save(ctx context.Context, label *mail.EmailLabel) error {
	model := models.LabelModelFromDomain(label)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a label and its email links
func (r *GormLabelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.EmailLabelLinkModel{}, "label_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.LabelModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormLabelRepository implements LabelRepository
var _ mail.LabelRepository = (*GormLabelRepository)(nil)
