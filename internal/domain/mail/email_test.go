package mail

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSubject(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"stacked prefixes", "Re: Re: Fwd: Quarterly Report", "quarterly report"},
		{"single reply", "RE: Invoice 1042", "invoice 1042"},
		{"fw variant", "FW: payment confirmation", "payment confirmation"},
		{"no prefix", "Quarterly Report", "quarterly report"},
		{"prefix without space", "re:hello", "hello"},
		{"internal whitespace collapsed", "Re:   Invoice   1042  ", "invoice 1042"},
		{"prefix mid-subject untouched", "About re: this", "about re: this"},
		{"empty", "", ""},
		{"only prefixes", "Re: Fwd:", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeSubject(tc.input))
		})
	}
}

func TestNewInboundEmail(t *testing.T) {
	email, err := NewInboundEmail("billing@acme.test", "Fwd: Statement request", "please send", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "statement request", email.NormalizedSubject)
	assert.Equal(t, ProcessingPending, email.Status)
	assert.Equal(t, FolderInbox, email.Folder)

	_, err = NewInboundEmail("  ", "subject", "body", time.Now())
	assert.Error(t, err)
}

func TestInboundEmail_FileToCustomer(t *testing.T) {
	email, err := NewInboundEmail("billing@acme.test", "Statement", "body", time.Now())
	require.NoError(t, err)

	require.NoError(t, email.FileToCustomer("CUST001", time.Now()))
	require.NotNil(t, email.CustomerID)
	assert.Equal(t, "CUST001", *email.CustomerID)
	assert.Equal(t, ProcessingProcessed, email.Status)
	assert.NotNil(t, email.ProcessedAt)

	events := email.GetDomainEvents()
	require.Len(t, events, 1)
	filed, ok := events[0].(*EmailFiledEvent)
	require.True(t, ok)
	assert.Equal(t, "CUST001", filed.CustomerID)
}

func TestInboundEmail_MarkFailed(t *testing.T) {
	email, err := NewInboundEmail("noreply@unknown.test", "???", "body", time.Now())
	require.NoError(t, err)

	email.MarkFailed("no matching customer", time.Now())
	assert.Equal(t, ProcessingFailed, email.Status)
	assert.Equal(t, "no matching customer", email.FailureReason)
	assert.Nil(t, email.CustomerID)
}

func TestInboundEmail_Labels(t *testing.T) {
	email, err := NewInboundEmail("a@b.test", "s", "b", time.Now())
	require.NoError(t, err)

	label := uuid.New()
	email.AddLabel(label)
	email.AddLabel(label)
	assert.Len(t, email.Labels, 1)

	email.RemoveLabel(label)
	assert.Empty(t, email.Labels)
}

func TestEmailTemplate_Render(t *testing.T) {
	tmpl, err := NewEmailTemplate("reminder", "Payment due for {{customer_name}}", "Invoice {{invoice_ref}} is overdue, {{customer_name}}.")
	require.NoError(t, err)

	subject, body := tmpl.Render(map[string]string{
		"customer_name": "Acme Ltd",
		"invoice_ref":   "INV-1042",
	})
	assert.Equal(t, "Payment due for Acme Ltd", subject)
	assert.Equal(t, "Invoice INV-1042 is overdue, Acme Ltd.", body)

	t.Run("unknown placeholders stay visible", func(t *testing.T) {
		subject, _ := tmpl.Render(map[string]string{"invoice_ref": "INV-1"})
		assert.Contains(t, subject, "{{customer_name}}")
	})
}

func TestNewCustomerFile(t *testing.T) {
	uploader := uuid.New()
	file, err := NewCustomerFile("CUST001", "statement.pdf", "application/pdf", 2048, 3, 2026, uploader)
	require.NoError(t, err)

	assert.Contains(t, file.StorageKey, uploader.String()+"/")
	assert.Contains(t, file.StorageKey, "CUST001")
	assert.Contains(t, file.StorageKey, "2026-03")
	assert.Contains(t, file.StorageKey, "statement.pdf")

	_, err = NewCustomerFile("CUST001", "f.pdf", "application/pdf", 1, 13, 2026, uploader)
	assert.Error(t, err)
}
