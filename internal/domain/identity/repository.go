package identity

import (
	"context"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository provides access to user profiles
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*UserProfile, error)
	FindByRole(ctx context.Context, role Role) ([]UserProfile, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]UserProfile, error)
	Save(ctx context.Context, user *UserProfile) error
	SaveWithLock(ctx context.Context, user *UserProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PermissionRepository provides access to the catalog, role defaults and
// per-user overrides.
type PermissionRepository interface {
	FindCatalog(ctx context.Context) ([]SystemPermission, error)
	FindRoleDefaults(ctx context.Context, role Role) ([]RolePermission, error)
	FindUserOverrides(ctx context.Context, userID uuid.UUID) ([]UserCustomPermission, error)
	SaveRoleDefault(ctx context.Context, rp *RolePermission) error
	SaveUserOverride(ctx context.Context, ucp *UserCustomPermission) error
	SaveUserOverrideBatch(ctx context.Context, overrides []UserCustomPermission) error
	DeleteUserOverride(ctx context.Context, userID uuid.UUID, key PermissionKey) error
	DeleteUserOverrides(ctx context.Context, userID uuid.UUID) error
}
