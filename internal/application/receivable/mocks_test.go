package receivable

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/partner"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*receivable.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receivable.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByReference(ctx context.Context, referenceNumber string) (*receivable.Invoice, error) {
	args := m.Called(ctx, referenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receivable.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByReferences(ctx context.Context, referenceNumbers []string) ([]receivable.Invoice, error) {
	args := m.Called(ctx, referenceNumbers)
	return args.Get(0).([]receivable.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]receivable.Invoice, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]receivable.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]receivable.Invoice, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]receivable.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindEscalationCandidates(ctx context.Context, now time.Time, limit int) ([]receivable.Invoice, error) {
	args := m.Called(ctx, now, limit)
	return args.Get(0).([]receivable.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *receivable.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *receivable.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveBatch(ctx context.Context, invoices []*receivable.Invoice) error {
	args := m.Called(ctx, invoices)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) CountOpenByCustomer(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*receivable.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receivable.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByReference(ctx context.Context, referenceNumber string) (*receivable.Payment, error) {
	args := m.Called(ctx, referenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*receivable.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]receivable.Payment, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]receivable.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]receivable.Payment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]receivable.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *receivable.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) SaveBatch(ctx context.Context, payments []*receivable.Payment) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockApplicationRepository is a mock implementation of ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindByPayment(ctx context.Context, paymentReference string) ([]receivable.PaymentApplication, error) {
	args := m.Called(ctx, paymentReference)
	return args.Get(0).([]receivable.PaymentApplication), args.Error(1)
}

func (m *MockApplicationRepository) FindByInvoice(ctx context.Context, invoiceReference string) ([]receivable.PaymentApplication, error) {
	args := m.Called(ctx, invoiceReference)
	return args.Get(0).([]receivable.PaymentApplication), args.Error(1)
}

func (m *MockApplicationRepository) FindByCustomer(ctx context.Context, customerID string) ([]receivable.PaymentApplication, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]receivable.PaymentApplication), args.Error(1)
}

func (m *MockApplicationRepository) FindInRange(ctx context.Context, from, to time.Time) ([]receivable.PaymentApplication, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]receivable.PaymentApplication), args.Error(1)
}

func (m *MockApplicationRepository) Save(ctx context.Context, app *receivable.PaymentApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) SaveBatch(ctx context.Context, apps []*receivable.PaymentApplication) error {
	args := m.Called(ctx, apps)
	return args.Error(0)
}

func (m *MockApplicationRepository) DeleteByPayment(ctx context.Context, paymentReference string) error {
	args := m.Called(ctx, paymentReference)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCustomerID(ctx context.Context, customerID string) (*partner.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]partner.Customer, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLock(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveBatch(ctx context.Context, customers []*partner.Customer) error {
	args := m.Called(ctx, customers)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByCustomerID(ctx context.Context, customerID string) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

// MockColorStatusLogRepository is a mock implementation of ColorStatusLogRepository
type MockColorStatusLogRepository struct {
	mock.Mock
}

func (m *MockColorStatusLogRepository) Append(ctx context.Context, entry *receivable.ColorStatusLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockColorStatusLogRepository) FindByInvoice(ctx context.Context, invoiceReference string, filter shared.Filter) ([]receivable.ColorStatusLogEntry, error) {
	args := m.Called(ctx, invoiceReference, filter)
	return args.Get(0).([]receivable.ColorStatusLogEntry), args.Error(1)
}

// MockEventBus is a mock implementation of shared.EventBus that records
// published events for assertions.
type MockEventBus struct {
	mock.Mock
	Published []shared.DomainEvent
}

func (m *MockEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	m.Published = append(m.Published, events...)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	m.Called(handler, eventTypes)
}

func (m *MockEventBus) Unsubscribe(handler shared.EventHandler) {
	m.Called(handler)
}

func (m *MockEventBus) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEventBus) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
