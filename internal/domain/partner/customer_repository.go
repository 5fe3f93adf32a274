package partner

import (
	"context"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository provides access to customer mirrors
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByCustomerID(ctx context.Context, customerID string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	SaveWithLock(ctx context.Context, customer *Customer) error
	SaveBatch(ctx context.Context, customers []*Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCustomerID(ctx context.Context, customerID string) (bool, error)
}
