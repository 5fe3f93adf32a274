package receivable

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository provides access to invoice mirrors
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByReference(ctx context.Context, referenceNumber string) (*Invoice, error)
	FindByReferences(ctx context.Context, referenceNumbers []string) ([]Invoice, error)
	FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	// FindEscalationCandidates returns open invoices with positive balance
	// that are past due or untouched beyond their customer's threshold.
	FindEscalationCandidates(ctx context.Context, now time.Time, limit int) ([]Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
	SaveWithLock(ctx context.Context, invoice *Invoice) error
	SaveBatch(ctx context.Context, invoices []*Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountOpenByCustomer(ctx context.Context, customerID string) (int64, error)
}

// PaymentRepository provides access to payment mirrors
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByReference(ctx context.Context, referenceNumber string) (*Payment, error)
	FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	Save(ctx context.Context, payment *Payment) error
	SaveBatch(ctx context.Context, payments []*Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ApplicationRepository provides access to payment application rows
type ApplicationRepository interface {
	FindByPayment(ctx context.Context, paymentReference string) ([]PaymentApplication, error)
	FindByInvoice(ctx context.Context, invoiceReference string) ([]PaymentApplication, error)
	FindByCustomer(ctx context.Context, customerID string) ([]PaymentApplication, error)
	FindInRange(ctx context.Context, from, to time.Time) ([]PaymentApplication, error)
	Save(ctx context.Context, app *PaymentApplication) error
	SaveBatch(ctx context.Context, apps []*PaymentApplication) error
	DeleteByPayment(ctx context.Context, paymentReference string) error
}

// ColorStatusLogRepository stores the color transition audit trail
type ColorStatusLogRepository interface {
	Append(ctx context.Context, entry *ColorStatusLogEntry) error
	FindByInvoice(ctx context.Context, invoiceReference string, filter shared.Filter) ([]ColorStatusLogEntry, error)
}
