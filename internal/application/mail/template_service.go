package mail

import (
	"context"

	"github.com/arflow/backend/internal/domain/mail"
	"github.com/google/uuid"
)

// TemplateService manages outbound templates and renders reminder
// payloads from them.
type TemplateService struct {
	templateRepo mail.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo mail.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// Create adds a new active template
func (s *TemplateService) Create(ctx context.Context, req CreateTemplateRequest) (*mail.EmailTemplate, error) {
	template, err := mail.NewEmailTemplate(req.Name, req.Subject, req.Body)
	if err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// ListActive returns templates available for reminder sending
func (s *TemplateService) ListActive(ctx context.Context) ([]mail.EmailTemplate, error) {
	return s.templateRepo.FindActive(ctx)
}

// RenderedEmail is a reminder payload ready to hand to the mail provider
type RenderedEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Render substitutes placeholder values into a template
func (s *TemplateService) Render(ctx context.Context, templateID uuid.UUID, values map[string]string) (*RenderedEmail, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	subject, body := template.Render(values)
	return &RenderedEmail{Subject: subject, Body: body}, nil
}

// SetActive toggles a template in or out of the reminder rotation
func (s *TemplateService) SetActive(ctx context.Context, templateID uuid.UUID, active bool) error {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return err
	}
	if active {
		template.Activate()
	} else {
		template.Deactivate()
	}
	return s.templateRepo.Save(ctx, template)
}
