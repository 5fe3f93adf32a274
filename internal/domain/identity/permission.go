package identity

import (
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PermissionKey identifies one entry in the consolidated permission catalog
type PermissionKey string

// The consolidated catalog. Every authorization decision resolves against
// one of these keys.
const (
	PermCustomers      PermissionKey = "customers"
	PermCustomerNotes  PermissionKey = "customer_notes"
	PermInvoices       PermissionKey = "invoices"
	PermInvoiceColor   PermissionKey = "invoice_color_status"
	PermInvoiceMemos   PermissionKey = "invoice_memos"
	PermPayments       PermissionKey = "payments"
	PermApplications   PermissionKey = "payment_applications"
	PermTickets        PermissionKey = "tickets"
	PermAssignments    PermissionKey = "invoice_assignments"
	PermActivities     PermissionKey = "collector_activities"
	PermPerformance    PermissionKey = "collector_performance"
	PermEmails         PermissionKey = "emails"
	PermEmailLabels    PermissionKey = "email_labels"
	PermEmailTemplates PermissionKey = "email_templates"
	PermCustomerFiles  PermissionKey = "customer_files"
	PermUsers          PermissionKey = "users"
	PermPermissions    PermissionKey = "permissions"
	PermSync           PermissionKey = "sync"
	PermSyncLogs       PermissionKey = "sync_logs"
	PermDashboard      PermissionKey = "dashboard"
	PermReports        PermissionKey = "reports"
)

// Catalog returns every key in the consolidated permission catalog
func Catalog() []PermissionKey {
	return []PermissionKey{
		PermCustomers, PermCustomerNotes, PermInvoices, PermInvoiceColor,
		PermInvoiceMemos, PermPayments, PermApplications, PermTickets,
		PermAssignments, PermActivities, PermPerformance, PermEmails,
		PermEmailLabels, PermEmailTemplates, PermCustomerFiles, PermUsers,
		PermPermissions, PermSync, PermSyncLogs, PermDashboard, PermReports,
	}
}

// IsValid checks membership in the catalog
func (k PermissionKey) IsValid() bool {
	for _, key := range Catalog() {
		if key == k {
			return true
		}
	}
	return false
}

// Grant is the four CRUD capabilities for one permission key
type Grant struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanEdit   bool `json:"can_edit"`
	CanDelete bool `json:"can_delete"`
}

// Union ORs two grants together
func (g Grant) Union(other Grant) Grant {
	return Grant{
		CanView:   g.CanView || other.CanView,
		CanCreate: g.CanCreate || other.CanCreate,
		CanEdit:   g.CanEdit || other.CanEdit,
		CanDelete: g.CanDelete || other.CanDelete,
	}
}

// Allows checks one action against the grant
func (g Grant) Allows(action Action) bool {
	switch action {
	case ActionView:
		return g.CanView
	case ActionCreate:
		return g.CanCreate
	case ActionEdit:
		return g.CanEdit
	case ActionDelete:
		return g.CanDelete
	}
	return false
}

// Action is one of the four CRUD capabilities
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// SystemPermission is one catalog row with display metadata
type SystemPermission struct {
	shared.BaseEntity
	Key         PermissionKey
	Description string
	Category    string
}

// RolePermission is the default grant for a role on a permission key
type RolePermission struct {
	shared.BaseEntity
	Role  Role
	Key   PermissionKey
	Grant Grant `gorm:"embedded"`
}

// UserCustomPermission is a per-user override that takes precedence over
// the user's role default.
type UserCustomPermission struct {
	shared.BaseEntity
	UserID    uuid.UUID
	Key       PermissionKey
	Grant     Grant `gorm:"embedded"`
	GrantedBy uuid.UUID
	GrantedAt time.Time
}

// ResolvedPermission is one row of a user's effective permission matrix
type ResolvedPermission struct {
	Key       PermissionKey `json:"key"`
	Grant     Grant         `json:"grant"`
	HasCustom bool          `json:"has_custom"`
}

// Resolve computes a user's full effective matrix: for every catalog key a
// custom override wins outright, otherwise the role default applies,
// otherwise everything is denied.
func Resolve(role Role, roleDefaults []RolePermission, overrides []UserCustomPermission) []ResolvedPermission {
	defaults := make(map[PermissionKey]Grant, len(roleDefaults))
	for i := range roleDefaults {
		if roleDefaults[i].Role == role {
			defaults[roleDefaults[i].Key] = roleDefaults[i].Grant
		}
	}
	custom := make(map[PermissionKey]Grant, len(overrides))
	for i := range overrides {
		custom[overrides[i].Key] = overrides[i].Grant
	}

	catalog := Catalog()
	resolved := make([]ResolvedPermission, 0, len(catalog))
	for _, key := range catalog {
		entry := ResolvedPermission{Key: key}
		if grant, ok := custom[key]; ok {
			entry.Grant = grant
			entry.HasCustom = true
		} else if grant, ok := defaults[key]; ok {
			entry.Grant = grant
		}
		resolved = append(resolved, entry)
	}
	return resolved
}

// Matrix indexes a resolved permission list by key
type Matrix map[PermissionKey]ResolvedPermission

// NewMatrix builds the lookup from a resolved list
func NewMatrix(resolved []ResolvedPermission) Matrix {
	m := make(Matrix, len(resolved))
	for _, p := range resolved {
		m[p.Key] = p
	}
	return m
}

// Can checks one key/action pair; unknown keys are denied
func (m Matrix) Can(key PermissionKey, action Action) bool {
	p, ok := m[key]
	if !ok {
		return false
	}
	return p.Grant.Allows(action)
}
