package mail

import (
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
)

// EmailTemplate is an automated outbound body with placeholder substitution.
// Placeholders use {{name}} syntax, e.g. {{customer_name}}, {{invoice_ref}}.
type EmailTemplate struct {
	shared.BaseEntity
	Name    string
	Subject string
	Body    string
	Active  bool
}

// NewEmailTemplate creates an active template
func NewEmailTemplate(name, subject, body string) (*EmailTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Template body cannot be empty")
	}

	return &EmailTemplate{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Subject:    subject,
		Body:       body,
		Active:     true,
	}, nil
}

// Render substitutes {{key}} placeholders in subject and body.
// Unknown placeholders are left in place so the gap is visible.
func (t *EmailTemplate) Render(values map[string]string) (subject, body string) {
	subject = t.Subject
	body = t.Body
	for key, value := range values {
		placeholder := "{{" + key + "}}"
		subject = strings.ReplaceAll(subject, placeholder, value)
		body = strings.ReplaceAll(body, placeholder, value)
	}
	return subject, body
}

// Deactivate takes the template out of the reminder rotation
func (t *EmailTemplate) Deactivate() {
	t.Active = false
	t.UpdatedAt = time.Now()
}

// Activate puts the template back in rotation
func (t *EmailTemplate) Activate() {
	t.Active = true
	t.UpdatedAt = time.Now()
}
