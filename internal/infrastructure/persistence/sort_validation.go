package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"customer_id":        true,
	"name":               true,
	"status":             true,
	"credit_limit":       true,
	"red_threshold_days": true,
	"last_synced_at":     true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"reference_number": true,
	"customer_id":      true,
	"type":             true,
	"status":           true,
	"date":             true,
	"due_date":         true,
	"amount":           true,
	"balance":          true,
	"color_status":     true,
	"last_synced_at":   true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"reference_number": true,
	"customer_id":      true,
	"type":             true,
	"amount":           true,
	"application_date": true,
	"last_synced_at":   true,
}

// ApplicationSortFields contains allowed sort fields for payment applications
var ApplicationSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"payment_reference": true,
	"invoice_reference": true,
	"doc_type":          true,
	"amount_paid":       true,
	"applied_at":        true,
}

// TicketSortFields contains allowed sort fields for collection tickets
var TicketSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"customer_id":  true,
	"collector_id": true,
	"status":       true,
	"priority":     true,
	"resolved_at":  true,
}

// AssignmentSortFields contains allowed sort fields for invoice assignments
var AssignmentSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"invoice_reference": true,
	"customer_id":       true,
	"collector_id":      true,
	"assigned_at":       true,
}

// ActivitySortFields contains allowed sort fields for collector activities
var ActivitySortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"collector_id": true,
	"customer_id":  true,
	"type":         true,
	"occurred_at":  true,
}

// EmailSortFields contains allowed sort fields for inbound emails
var EmailSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"sender":       true,
	"subject":      true,
	"customer_id":  true,
	"status":       true,
	"folder":       true,
	"received_at":  true,
	"processed_at": true,
}

// FileSortFields contains allowed sort fields for customer files
var FileSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"customer_id": true,
	"file_name":   true,
	"size_bytes":  true,
	"month":       true,
	"year":        true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"display_name":  true,
	"role":          true,
	"active":        true,
	"last_login_at": true,
}

// SyncLogSortFields contains allowed sort fields for sync logs
var SyncLogSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"kind":          true,
	"outcome":       true,
	"dispatched_at": true,
	"duration_ms":   true,
}

// SyncJobSortFields contains allowed sort fields for sync jobs
var SyncJobSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"kind":         true,
	"status":       true,
	"started_at":   true,
	"completed_at": true,
}
