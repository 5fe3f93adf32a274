package sync

import (
	"strings"

	"github.com/arflow/backend/internal/domain/shared"
)

// ErpCredentials is the stored credential set sent to the downstream sync
// functions. There is one active row at a time.
type ErpCredentials struct {
	shared.BaseEntity
	BaseURL  string
	Tenant   string
	Username string
	Password string
	Active   bool
}

// NewErpCredentials stores a credential set
func NewErpCredentials(baseURL, tenant, username, password string) (*ErpCredentials, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, shared.NewDomainError("INVALID_BASE_URL", "ERP base URL cannot be empty")
	}
	if username == "" || password == "" {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "ERP username and password are required")
	}

	return &ErpCredentials{
		BaseEntity: shared.NewBaseEntity(),
		BaseURL:    baseURL,
		Tenant:     tenant,
		Username:   username,
		Password:   password,
		Active:     true,
	}, nil
}
