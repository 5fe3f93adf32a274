package mail

import (
	"context"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmailRepository provides access to inbound emails
type EmailRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InboundEmail, error)
	FindByFolder(ctx context.Context, folder EmailFolder, filter shared.Filter) ([]InboundEmail, error)
	FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]InboundEmail, error)
	FindPending(ctx context.Context, limit int) ([]InboundEmail, error)
	Search(ctx context.Context, query string, filter shared.Filter) ([]InboundEmail, error)
	Save(ctx context.Context, email *InboundEmail) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, folder EmailFolder) (int64, error)
}

// LabelRepository provides access to per-user email labels
type LabelRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EmailLabel, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]EmailLabel, error)
	Save(ctx context.Context, label *EmailLabel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TemplateRepository provides access to outbound email templates
type TemplateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EmailTemplate, error)
	FindByName(ctx context.Context, name string) (*EmailTemplate, error)
	FindActive(ctx context.Context) ([]EmailTemplate, error)
	Save(ctx context.Context, template *EmailTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FileRepository provides access to customer file metadata
type FileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CustomerFile, error)
	FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]CustomerFile, error)
	FindByBucket(ctx context.Context, customerID string, year, month int) ([]CustomerFile, error)
	FindByEmail(ctx context.Context, emailID uuid.UUID) ([]CustomerFile, error)
	Save(ctx context.Context, file *CustomerFile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
