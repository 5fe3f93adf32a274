package persistence

import (
	"context"

	"github.com/arflow/backend/internal/domain/identity"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPermissionRepository implements PermissionRepository using GORM
type GormPermissionRepository struct {
	db *gorm.DB
}

// NewGormPermissionRepository creates a new GormPermissionRepository
func NewGormPermissionRepository(db *gorm.DB) *GormPermissionRepository {
	return &GormPermissionRepository{db: db}
}

// FindCatalog returns the full permission catalog ordered by category
func (r *GormPermissionRepository) FindCatalog(ctx context.Context) ([]identity.SystemPermission, error) {
	var permModels []models.SystemPermissionModel
	if err := r.db.WithContext(ctx).
		Order("category ASC, key ASC").
		Find(&permModels).Error; err != nil {
		return nil, err
	}

	perms := make([]identity.SystemPermission, len(permModels))
	for i, model := range permModels {
		perms[i] = *model.ToDomain()
	}
	return perms, nil
}

// FindRoleDefaults returns the default grants for a role
func (r *GormPermissionRepository) FindRoleDefaults(ctx context.Context, role identity.Role) ([]identity.RolePermission, error) {
	var rpModels []models.RolePermissionModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("key ASC").
		Find(&rpModels).Error; err != nil {
		return nil, err
	}

	defaults := make([]identity.RolePermission, len(rpModels))
	for i, model := range rpModels {
		defaults[i] = *model.ToDomain()
	}
	return defaults, nil
}

// FindUserOverrides returns the per-user overrides for a user
func (r *GormPermissionRepository) FindUserOverrides(ctx context.Context, userID uuid.UUID) ([]identity.UserCustomPermission, error) {
	var ucpModels []models.UserCustomPermissionModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("key ASC").
		Find(&ucpModels).Error; err != nil {
		return nil, err
	}

	overrides := make([]identity.UserCustomPermission, len(ucpModels))
	for i, model := range ucpModels {
		overrides[i] = *model.ToDomain()
	}
	return overrides, nil
}

// SaveRoleDefault stores a role default grant, replacing any existing row
// for the same role and key
func (r *GormPermissionRepository) SaveRoleDefault(ctx context.Context, rp *identity.RolePermission) error {
	model := models.RolePermissionModelFromDomain(rp)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "role"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"can_view", "can_create", "can_edit", "can_delete", "updated_at",
			}),
		}).
		Create(model).Error
}

// SaveUserOverride stores a per-user override, replacing any existing row
// for the same user and key
func (r *GormPermissionRepository) SaveUserOverride(ctx context.Context, ucp *identity.UserCustomPermission) error {
	model := models.UserCustomPermissionModelFromDomain(ucp)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"can_view", "can_create", "can_edit", "can_delete",
				"granted_by", "granted_at", "updated_at",
			}),
		}).
		Create(model).Error
}

// SaveUserOverrideBatch stores multiple per-user overrides in one transaction
func (r *GormPermissionRepository) SaveUserOverrideBatch(ctx context.Context, overrides []identity.UserCustomPermission) error {
	if len(overrides) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range overrides {
			model := models.UserCustomPermissionModelFromDomain(&overrides[i])
			if err := tx.
				Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "user_id"}, {Name: "key"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"can_view", "can_create", "can_edit", "can_delete",
						"granted_by", "granted_at", "updated_at",
					}),
				}).
				Create(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteUserOverride removes a single per-user override
func (r *GormPermissionRepository) DeleteUserOverride(ctx context.Context, userID uuid.UUID, key identity.PermissionKey) error {
	result := r.db.WithContext(ctx).
		Delete(&models.UserCustomPermissionModel{}, "user_id = ? AND key = ?", userID, key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteUserOverrides removes all overrides for a user. Used when the user's
// role changes and role defaults should apply again.
func (r *GormPermissionRepository) DeleteUserOverrides(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.UserCustomPermissionModel{}, "user_id = ?", userID).Error
}

// Ensure GormPermissionRepository implements PermissionRepository
var _ identity.PermissionRepository = (*GormPermissionRepository)(nil)
