package report

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/mail"
	"github.com/arflow/backend/internal/domain/partner"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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

// MockInvoiceRepository is a mock implementation of receivable.InvoiceRepository
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

// MockTicketRepository is a mock implementation of collection.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.CollectionTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.CollectionTicket), args.Error(1)
}

func (m *MockTicketRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]collection.CollectionTicket, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]collection.CollectionTicket), args.Error(1)
}

func (m *MockTicketRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, status collection.TicketStatus, filter shared.Filter) ([]collection.CollectionTicket, error) {
	args := m.Called(ctx, collectorID, status, filter)
	return args.Get(0).([]collection.CollectionTicket), args.Error(1)
}

func (m *MockTicketRepository) FindActiveByInvoice(ctx context.Context, invoiceReference string) ([]collection.CollectionTicket, error) {
	args := m.Called(ctx, invoiceReference)
	return args.Get(0).([]collection.CollectionTicket), args.Error(1)
}

func (m *MockTicketRepository) FindAll(ctx context.Context, filter shared.Filter) ([]collection.CollectionTicket, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]collection.CollectionTicket), args.Error(1)
}

func (m *MockTicketRepository) Save(ctx context.Context, ticket *collection.CollectionTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) SaveWithLock(ctx context.Context, ticket *collection.CollectionTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTicketRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepository) CountByCollector(ctx context.Context, collectorID uuid.UUID, status collection.TicketStatus) (int64, error) {
	args := m.Called(ctx, collectorID, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmailRepository is a mock implementation of mail.EmailRepository
type MockEmailRepository struct {
	mock.Mock
}

func (m *MockEmailRepository) FindByID(ctx context.Context, id uuid.UUID) (*mail.InboundEmail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mail.InboundEmail), args.Error(1)
}

func (m *MockEmailRepository) FindByFolder(ctx context.Context, folder mail.EmailFolder, filter shared.Filter) ([]mail.InboundEmail, error) {
	args := m.Called(ctx, folder, filter)
	return args.Get(0).([]mail.InboundEmail), args.Error(1)
}

func (m *MockEmailRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]mail.InboundEmail, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]mail.InboundEmail), args.Error(1)
}

func (m *MockEmailRepository) FindPending(ctx context.Context, limit int) ([]mail.InboundEmail, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]mail.InboundEmail), args.Error(1)
}

func (m *MockEmailRepository) Search(ctx context.Context, query string, filter shared.Filter) ([]mail.InboundEmail, error) {
	args := m.Called(ctx, query, filter)
	return args.Get(0).([]mail.InboundEmail), args.Error(1)
}

func (m *MockEmailRepository) Save(ctx context.Context, email *mail.InboundEmail) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockEmailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEmailRepository) Count(ctx context.Context, folder mail.EmailFolder) (int64, error) {
	args := m.Called(ctx, folder)
	return args.Get(0).(int64), args.Error(1)
}

// MockSyncEntityRepository is a mock implementation of sync.EntityRepository
type MockSyncEntityRepository struct {
	mock.Mock
}

func (m *MockSyncEntityRepository) FindByKind(ctx context.Context, kind sync.EntityKind) (*sync.SyncEntity, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.SyncEntity), args.Error(1)
}

func (m *MockSyncEntityRepository) FindAll(ctx context.Context) ([]sync.SyncEntity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sync.SyncEntity), args.Error(1)
}

func (m *MockSyncEntityRepository) FindDue(ctx context.Context, now time.Time) ([]sync.SyncEntity, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]sync.SyncEntity), args.Error(1)
}

func (m *MockSyncEntityRepository) Save(ctx context.Context, entity *sync.SyncEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockSyncEntityRepository) SaveWithLock(ctx context.Context, entity *sync.SyncEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}
