package identity

import (
	"context"
	"testing"
	"time"

	"github.com/arflow/backend/internal/domain/identity"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/infrastructure/auth"
	"github.com/arflow/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserProfile), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserProfile), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.UserProfile, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]identity.UserProfile), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.UserProfile, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.UserProfile), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.UserProfile) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, user *identity.UserProfile) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockPermissionRepository is a mock implementation of identity.PermissionRepository
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) FindCatalog(ctx context.Context) ([]identity.SystemPermission, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.SystemPermission), args.Error(1)
}

func (m *MockPermissionRepository) FindRoleDefaults(ctx context.Context, role identity.Role) ([]identity.RolePermission, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]identity.RolePermission), args.Error(1)
}

func (m *MockPermissionRepository) FindUserOverrides(ctx context.Context, userID uuid.UUID) ([]identity.UserCustomPermission, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]identity.UserCustomPermission), args.Error(1)
}

func (m *MockPermissionRepository) SaveRoleDefault(ctx context.Context, rp *identity.RolePermission) error {
	args := m.Called(ctx, rp)
	return args.Error(0)
}

func (m *MockPermissionRepository) SaveUserOverride(ctx context.Context, ucp *identity.UserCustomPermission) error {
	args := m.Called(ctx, ucp)
	return args.Error(0)
}

func (m *MockPermissionRepository) SaveUserOverrideBatch(ctx context.Context, overrides []identity.UserCustomPermission) error {
	args := m.Called(ctx, overrides)
	return args.Error(0)
}

func (m *MockPermissionRepository) DeleteUserOverride(ctx context.Context, userID uuid.UUID, key identity.PermissionKey) error {
	args := m.Called(ctx, userID, key)
	return args.Error(0)
}

func (m *MockPermissionRepository) DeleteUserOverrides(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newAuthService(repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "arflow-test",
		MaxRefreshCount:        3,
	})
	return NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func newActiveUser(t *testing.T, password string) *identity.UserProfile {
	t.Helper()
	user, err := identity.NewUserProfile("collector@arflow.example", "Jo Collector", password, identity.RoleCollector)
	require.NoError(t, err)
	return user
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	ctx := context.Background()

	user := newActiveUser(t, "correct-horse")
	repo.On("FindByEmail", ctx, "collector@arflow.example").Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: "collector@arflow.example", Password: "correct-horse"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "collector", resp.User.Role)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	ctx := context.Background()

	user := newActiveUser(t, "correct-horse")
	repo.On("FindByEmail", ctx, "collector@arflow.example").Return(user, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "collector@arflow.example", Password: "wrong"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	ctx := context.Background()

	repo.On("FindByEmail", ctx, "ghost@arflow.example").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(ctx, LoginRequest{Email: "ghost@arflow.example", Password: "anything"})
	require.Error(t, err)

	// unknown email and wrong password are indistinguishable to the caller
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	ctx := context.Background()

	user := newActiveUser(t, "correct-horse")
	user.Deactivate()
	repo.On("FindByEmail", ctx, "collector@arflow.example").Return(user, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "collector@arflow.example", Password: "correct-horse"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestRefresh_PicksUpRoleChange(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	ctx := context.Background()

	user := newActiveUser(t, "correct-horse")
	repo.On("FindByEmail", ctx, "collector@arflow.example").Return(user, nil)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	login, err := svc.Login(ctx, LoginRequest{Email: "collector@arflow.example", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, user.ChangeRole(identity.RoleManager))

	refreshed, err := svc.Refresh(ctx, RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	claims, err := svc.jwtService.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "manager", claims.Role)
}

func TestLogout_RevokesRefreshTokens(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	ctx := context.Background()

	user := newActiveUser(t, "correct-horse")
	repo.On("FindByEmail", ctx, "collector@arflow.example").Return(user, nil)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	login, err := svc.Login(ctx, LoginRequest{Email: "collector@arflow.example", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.Refresh(ctx, RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
}

func TestChangePassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	ctx := context.Background()

	user := newActiveUser(t, "correct-horse")
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("SaveWithLock", ctx, user).Return(nil)

	err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		OldPassword: "correct-horse",
		NewPassword: "battery-staple",
	})
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("battery-staple"))
	assert.False(t, user.CheckPassword("correct-horse"))
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newAuthService(repo)
	ctx := context.Background()

	user := newActiveUser(t, "correct-horse")
	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "battery-staple",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}
