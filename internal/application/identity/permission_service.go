package identity

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/identity"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PermissionService resolves effective permission matrices and manages
// per-user overrides.
type PermissionService struct {
	userRepo identity.UserRepository
	permRepo identity.PermissionRepository
	logger   *zap.Logger
}

// NewPermissionService creates a new PermissionService
func NewPermissionService(
	userRepo identity.UserRepository,
	permRepo identity.PermissionRepository,
	logger *zap.Logger,
) *PermissionService {
	return &PermissionService{
		userRepo: userRepo,
		permRepo: permRepo,
		logger:   logger,
	}
}

// GetMatrix resolves a user's full effective permission matrix
func (s *PermissionService) GetMatrix(ctx context.Context, userID uuid.UUID) (*MatrixResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	roleDefaults, err := s.permRepo.FindRoleDefaults(ctx, user.Role)
	if err != nil {
		return nil, err
	}
	overrides, err := s.permRepo.FindUserOverrides(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &MatrixResponse{
		UserID:      userID,
		Role:        string(user.Role),
		Permissions: identity.Resolve(user.Role, roleDefaults, overrides),
	}, nil
}

// BuildMatrix resolves a user's matrix into the lookup used by the
// authorization middleware.
func (s *PermissionService) BuildMatrix(ctx context.Context, userID uuid.UUID) (identity.Matrix, error) {
	resp, err := s.GetMatrix(ctx, userID)
	if err != nil {
		return nil, err
	}
	return identity.NewMatrix(resp.Permissions), nil
}

// SetOverride stores a per-user override that takes precedence over the
// user's role default.
func (s *PermissionService) SetOverride(ctx context.Context, userID, grantedBy uuid.UUID, req SetOverrideRequest) error {
	key := identity.PermissionKey(req.Key)
	if !key.IsValid() {
		return shared.NewDomainError("UNKNOWN_PERMISSION", "Permission key is not in the catalog")
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}

	override := identity.UserCustomPermission{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Key:        key,
		Grant: identity.Grant{
			CanView:   req.CanView,
			CanCreate: req.CanCreate,
			CanEdit:   req.CanEdit,
			CanDelete: req.CanDelete,
		},
		GrantedBy: grantedBy,
		GrantedAt: time.Now(),
	}
	if err := s.permRepo.SaveUserOverride(ctx, &override); err != nil {
		return err
	}

	s.logger.Info("permission override set",
		zap.String("user_id", userID.String()),
		zap.String("key", req.Key),
		zap.String("granted_by", grantedBy.String()))
	return nil
}

// DeleteOverride removes one override so the role default applies again
func (s *PermissionService) DeleteOverride(ctx context.Context, userID uuid.UUID, key identity.PermissionKey) error {
	if !key.IsValid() {
		return shared.NewDomainError("UNKNOWN_PERMISSION", "Permission key is not in the catalog")
	}
	return s.permRepo.DeleteUserOverride(ctx, userID, key)
}

// Consolidate replaces a user's legacy fine-grained grants with overrides
// on the consolidated catalog. Existing overrides for the user are wiped
// first so the migration is repeatable.
func (s *PermissionService) Consolidate(ctx context.Context, migratedBy uuid.UUID, req ConsolidateRequest) (*MatrixResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID is not a valid UUID")
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	actor, err := s.userRepo.FindByID(ctx, migratedBy)
	if err != nil {
		return nil, err
	}

	legacy := make([]identity.LegacyPermission, 0, len(req.Grants))
	for _, g := range req.Grants {
		legacy = append(legacy, identity.LegacyPermission{
			LegacyKey: g.LegacyKey,
			Grant: identity.Grant{
				CanView:   g.CanView,
				CanCreate: g.CanCreate,
				CanEdit:   g.CanEdit,
				CanDelete: g.CanDelete,
			},
		})
	}

	overrides := identity.BuildConsolidatedOverrides(user, legacy, actor, time.Now())

	if err := s.permRepo.DeleteUserOverrides(ctx, userID); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := s.permRepo.SaveUserOverrideBatch(ctx, overrides); err != nil {
			return nil, err
		}
	}

	s.logger.Info("legacy permissions consolidated",
		zap.String("user_id", userID.String()),
		zap.Int("legacy_grants", len(req.Grants)),
		zap.Int("overrides", len(overrides)))

	return s.GetMatrix(ctx, userID)
}

// Catalog returns the consolidated permission catalog
func (s *PermissionService) Catalog(ctx context.Context) ([]identity.SystemPermission, error) {
	return s.permRepo.FindCatalog(ctx)
}
