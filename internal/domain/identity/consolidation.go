package identity

import (
	"time"

	"github.com/arflow/backend/internal/domain/shared"
)

// LegacyPermission is one pre-consolidation fine-grained grant, keyed by the
// old permission name. The consolidation maps old names onto catalog keys
// and ORs every grant that lands on the same key.
type LegacyPermission struct {
	LegacyKey string
	Grant     Grant
}

// legacyKeyMapping folds all 74 retired fine-grained keys into the current
// 21-key catalog. Keys absent from the map are dropped with their grants.
var legacyKeyMapping = map[string]PermissionKey{
	"view_customers":         PermCustomers,
	"create_customers":       PermCustomers,
	"edit_customers":         PermCustomers,
	"view_customer_balance":  PermCustomers,
	"view_customer_contacts": PermCustomers,
	"edit_customer_contacts": PermCustomers,
	"view_customer_terms":    PermCustomers,

	"view_customer_notes":   PermCustomerNotes,
	"edit_customer_notes":   PermCustomerNotes,
	"delete_customer_notes": PermCustomerNotes,

	"view_invoices":        PermInvoices,
	"edit_invoices":        PermInvoices,
	"search_invoices":      PermInvoices,
	"export_invoices":      PermInvoices,
	"view_invoice_details": PermInvoices,

	"view_color_status":  PermInvoiceColor,
	"edit_color_status":  PermInvoiceColor,
	"view_color_history": PermInvoiceColor,

	"view_invoice_memos": PermInvoiceMemos,
	"edit_invoice_memos": PermInvoiceMemos,

	"view_payments":        PermPayments,
	"edit_payments":        PermPayments,
	"view_payment_details": PermPayments,
	"export_payments":      PermPayments,

	"view_applications":        PermApplications,
	"view_application_history": PermApplications,

	"view_tickets":      PermTickets,
	"create_tickets":    PermTickets,
	"edit_tickets":      PermTickets,
	"close_tickets":     PermTickets,
	"reopen_tickets":    PermTickets,
	"reassign_tickets":  PermTickets,
	"view_ticket_notes": PermTickets,
	"edit_ticket_notes": PermTickets,

	"view_assignments":     PermAssignments,
	"edit_assignments":     PermAssignments,
	"bulk_assign_invoices": PermAssignments,

	"view_activities": PermActivities,
	"log_activities":  PermActivities,
	"edit_activities": PermActivities,

	"view_performance":      PermPerformance,
	"view_team_performance": PermPerformance,
	"export_performance":    PermPerformance,

	"view_emails":          PermEmails,
	"file_emails":          PermEmails,
	"archive_emails":       PermEmails,
	"delete_emails":        PermEmails,
	"download_attachments": PermEmails,

	"view_labels":   PermEmailLabels,
	"assign_labels": PermEmailLabels,
	"manage_labels": PermEmailLabels,

	"view_templates":    PermEmailTemplates,
	"preview_templates": PermEmailTemplates,
	"manage_templates":  PermEmailTemplates,

	"view_customer_files":   PermCustomerFiles,
	"upload_customer_files": PermCustomerFiles,
	"delete_customer_files": PermCustomerFiles,

	"view_users":       PermUsers,
	"create_users":     PermUsers,
	"manage_users":     PermUsers,
	"deactivate_users": PermUsers,

	"view_permissions":   PermPermissions,
	"manage_permissions": PermPermissions,

	"trigger_sync":       PermSync,
	"view_sync_status":   PermSync,
	"edit_sync_schedule": PermSync,
	"manage_credentials": PermSync,

	"view_sync_logs":   PermSyncLogs,
	"export_sync_logs": PermSyncLogs,

	"view_dashboard":     PermDashboard,
	"view_global_search": PermDashboard,

	"view_reports":      PermReports,
	"export_reports":    PermReports,
	"view_aging_report": PermReports,
}

// ConsolidateLegacy folds a user's fine-grained legacy overrides into
// overrides on the consolidated catalog. Grants landing on the same catalog
// key are ORed together, so the fold is lossy and can only widen access:
// a user who held view on one retired key and edit on a sibling ends up
// with both on the merged key.
func ConsolidateLegacy(legacy []LegacyPermission) map[PermissionKey]Grant {
	merged := make(map[PermissionKey]Grant)
	for _, lp := range legacy {
		key, ok := legacyKeyMapping[lp.LegacyKey]
		if !ok {
			continue
		}
		merged[key] = merged[key].Union(lp.Grant)
	}
	return merged
}

// WidenedKeys reports the catalog keys where the fold granted more than
// at least one of the contributing legacy keys conferred on its own.
// Callers use it to audit users whose effective access grew during the
// consolidation.
func WidenedKeys(legacy []LegacyPermission) []PermissionKey {
	merged := ConsolidateLegacy(legacy)

	contributions := make(map[PermissionKey][]Grant)
	for _, lp := range legacy {
		key, ok := legacyKeyMapping[lp.LegacyKey]
		if !ok {
			continue
		}
		contributions[key] = append(contributions[key], lp.Grant)
	}

	widened := make([]PermissionKey, 0)
	for _, key := range Catalog() {
		grants, ok := contributions[key]
		if !ok {
			continue
		}
		for _, g := range grants {
			if g != merged[key] {
				widened = append(widened, key)
				break
			}
		}
	}
	return widened
}

// BuildConsolidatedOverrides materializes the fold into custom permission
// rows for a user, stamped with the migration actor.
func BuildConsolidatedOverrides(user *UserProfile, legacy []LegacyPermission, migratedBy *UserProfile, at time.Time) []UserCustomPermission {
	merged := ConsolidateLegacy(legacy)
	overrides := make([]UserCustomPermission, 0, len(merged))
	for _, key := range Catalog() {
		grant, ok := merged[key]
		if !ok {
			continue
		}
		overrides = append(overrides, UserCustomPermission{
			BaseEntity: shared.NewBaseEntity(),
			UserID:     user.ID,
			Key:        key,
			Grant:      grant,
			GrantedBy:  migratedBy.ID,
			GrantedAt:  at,
		})
	}
	return overrides
}
