package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	t.Run("accepts ASC in any case", func(t *testing.T) {
		assert.Equal(t, "ASC", ValidateSortOrder("asc"))
		assert.Equal(t, "ASC", ValidateSortOrder("ASC"))
		assert.Equal(t, "ASC", ValidateSortOrder("  Asc  "))
	})

	t.Run("defaults to DESC", func(t *testing.T) {
		assert.Equal(t, "DESC", ValidateSortOrder("desc"))
		assert.Equal(t, "DESC", ValidateSortOrder(""))
		assert.Equal(t, "DESC", ValidateSortOrder("sideways"))
		assert.Equal(t, "DESC", ValidateSortOrder("ASC; DROP TABLE invoices"))
	})
}

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted field", func(t *testing.T) {
		assert.Equal(t, "due_date", ValidateSortField("due_date", InvoiceSortFields, "date"))
	})

	t.Run("falls back to default for unknown field", func(t *testing.T) {
		assert.Equal(t, "date", ValidateSortField("evil_column", InvoiceSortFields, "date"))
	})

	t.Run("falls back to default for empty field", func(t *testing.T) {
		assert.Equal(t, "date", ValidateSortField("", InvoiceSortFields, "date"))
	})

	t.Run("rejects injection attempts", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("id; DROP TABLE customers", CommonSortFields, "created_at"))
	})
}
