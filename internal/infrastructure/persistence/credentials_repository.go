package persistence

import (
	"context"
	"errors"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCredentialsRepository implements sync.CredentialsRepository using GORM
type GormCredentialsRepository struct {
	db *gorm.DB
}

// NewGormCredentialsRepository creates a new GormCredentialsRepository
func NewGormCredentialsRepository(db *gorm.DB) *GormCredentialsRepository {
	return &GormCredentialsRepository{db: db}
}

// FindActive returns the active ERP credentials. At most one row is active.
func (r *GormCredentialsRepository) FindActive(ctx context.Context) (*sync.ErpCredentials, error) {
	var model models.ErpCredentialsModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("updated_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save stores credentials. Saving an active row deactivates all others so a
// single set of credentials drives dispatch.
func (r *GormCredentialsRepository) Save(ctx context.Context, creds *sync.ErpCredentials) error {
	model := models.ErpCredentialsModelFromDomain(creds)
	if !creds.Active {
		return r.db.WithContext(ctx).Save(model).Error
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ErpCredentialsModel{}).
			Where("active = ? AND id <> ?", true, creds.ID).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Save(model).Error
	})
}

// DeactivateAll marks every credentials row inactive
func (r *GormCredentialsRepository) DeactivateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&models.ErpCredentialsModel{}).
		Where("active = ?", true).
		Update("active", false).Error
}

// Ensure GormCredentialsRepository implements CredentialsRepository
var _ sync.CredentialsRepository = (*GormCredentialsRepository)(nil)
