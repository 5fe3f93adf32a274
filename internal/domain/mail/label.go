package mail

import (
	"strings"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EmailLabel is a per-user label applied to inbound emails
type EmailLabel struct {
	shared.BaseEntity
	OwnerID uuid.UUID
	Name    string
	Color   string
}

// NewEmailLabel creates a label owned by a user
func NewEmailLabel(ownerID uuid.UUID, name, color string) (*EmailLabel, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Label owner cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Label name cannot be empty")
	}

	return &EmailLabel{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    ownerID,
		Name:       name,
		Color:      color,
	}, nil
}

// Rename changes the label name
func (l *EmailLabel) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Label name cannot be empty")
	}
	l.Name = name
	l.UpdatedAt = time.Now()
	return nil
}
