package models

import (
	"time"

	"github.com/arflow/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// UserModel is the GORM model for user profiles
type UserModel struct {
	AggregateModel
	Email        string     `gorm:"uniqueIndex;size:255;not null"`
	DisplayName  string     `gorm:"size:128;not null"`
	Role         string     `gorm:"size:32;not null;index"`
	PasswordHash string     `gorm:"size:255;not null"`
	Active       bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain user profile
func (m *UserModel) ToDomain() *identity.UserProfile {
	return &identity.UserProfile{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		DisplayName:       m.DisplayName,
		Role:              identity.Role(m.Role),
		PasswordHash:      m.PasswordHash,
		Active:            m.Active,
		LastLoginAt:       m.LastLoginAt,
	}
}

// UserModelFromDomain builds the model from a domain user profile
func UserModelFromDomain(u *identity.UserProfile) *UserModel {
	m := &UserModel{
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		Active:       u.Active,
		LastLoginAt:  u.LastLoginAt,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// SystemPermissionModel is the GORM model for the permission catalog
type SystemPermissionModel struct {
	BaseModel
	Key         string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"size:255"`
	Category    string `gorm:"size:64;index"`
}

// TableName returns the table name
func (SystemPermissionModel) TableName() string {
	return "system_permissions"
}

// ToDomain converts the model to a domain system permission
func (m *SystemPermissionModel) ToDomain() *identity.SystemPermission {
	return &identity.SystemPermission{
		BaseEntity:  m.BaseModel.ToDomain(),
		Key:         identity.PermissionKey(m.Key),
		Description: m.Description,
		Category:    m.Category,
	}
}

// SystemPermissionModelFromDomain builds the model from a domain system permission
func SystemPermissionModelFromDomain(sp *identity.SystemPermission) *SystemPermissionModel {
	m := &SystemPermissionModel{
		Key:         string(sp.Key),
		Description: sp.Description,
		Category:    sp.Category,
	}
	m.FromDomainBaseEntity(sp.BaseEntity)
	return m
}

// RolePermissionModel is the GORM model for role default grants
type RolePermissionModel struct {
	BaseModel
	Role      string `gorm:"size:32;not null;uniqueIndex:idx_role_perm"`
	Key       string `gorm:"size:64;not null;uniqueIndex:idx_role_perm"`
	CanView   bool   `gorm:"not null;default:false"`
	CanCreate bool   `gorm:"not null;default:false"`
	CanEdit   bool   `gorm:"not null;default:false"`
	CanDelete bool   `gorm:"not null;default:false"`
}

// TableName returns the table name
func (RolePermissionModel) TableName() string {
	return "role_permissions"
}

// ToDomain converts the model to a domain role permission
func (m *RolePermissionModel) ToDomain() *identity.RolePermission {
	return &identity.RolePermission{
		BaseEntity: m.BaseModel.ToDomain(),
		Role:       identity.Role(m.Role),
		Key:        identity.PermissionKey(m.Key),
		Grant: identity.Grant{
			CanView:   m.CanView,
			CanCreate: m.CanCreate,
			CanEdit:   m.CanEdit,
			CanDelete: m.CanDelete,
		},
	}
}

// RolePermissionModelFromDomain builds the model from a domain role permission
func RolePermissionModelFromDomain(rp *identity.RolePermission) *RolePermissionModel {
	m := &RolePermissionModel{
		Role:      string(rp.Role),
		Key:       string(rp.Key),
		CanView:   rp.Grant.CanView,
		CanCreate: rp.Grant.CanCreate,
		CanEdit:   rp.Grant.CanEdit,
		CanDelete: rp.Grant.CanDelete,
	}
	m.FromDomainBaseEntity(rp.BaseEntity)
	return m
}

// UserCustomPermissionModel is the GORM model for per-user overrides
type UserCustomPermissionModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_perm"`
	Key       string    `gorm:"size:64;not null;uniqueIndex:idx_user_perm"`
	CanView   bool      `gorm:"not null;default:false"`
	CanCreate bool      `gorm:"not null;default:false"`
	CanEdit   bool      `gorm:"not null;default:false"`
	CanDelete bool      `gorm:"not null;default:false"`
	GrantedBy uuid.UUID `gorm:"type:uuid;not null"`
	GrantedAt time.Time `gorm:"not null"`
}

// TableName returns the table name
func (UserCustomPermissionModel) TableName() string {
	return "user_custom_permissions"
}

// ToDomain converts the model to a domain user override
func (m *UserCustomPermissionModel) ToDomain() *identity.UserCustomPermission {
	return &identity.UserCustomPermission{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Key:        identity.PermissionKey(m.Key),
		Grant: identity.Grant{
			CanView:   m.CanView,
			CanCreate: m.CanCreate,
			CanEdit:   m.CanEdit,
			CanDelete: m.CanDelete,
		},
		GrantedBy: m.GrantedBy,
		GrantedAt: m.GrantedAt,
	}
}

// UserCustomPermissionModelFromDomain builds the model from a domain user override
func UserCustomPermissionModelFromDomain(ucp *identity.UserCustomPermission) *UserCustomPermissionModel {
	m := &UserCustomPermissionModel{
		UserID:    ucp.UserID,
		Key:       string(ucp.Key),
		CanView:   ucp.Grant.CanView,
		CanCreate: ucp.Grant.CanCreate,
		CanEdit:   ucp.Grant.CanEdit,
		CanDelete: ucp.Grant.CanDelete,
		GrantedBy: ucp.GrantedBy,
		GrantedAt: ucp.GrantedAt,
	}
	m.FromDomainBaseEntity(ucp.BaseEntity)
	return m
}
