package collection

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/collection"
	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTicketRepository is a mock implementation of TicketRepository
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

// MockAssignmentRepository is a mock implementation of AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindByInvoice(ctx context.Context, invoiceReference string) (*collection.InvoiceAssignment, error) {
	args := m.Called(ctx, invoiceReference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.InvoiceAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]collection.InvoiceAssignment, error) {
	args := m.Called(ctx, collectorID, filter)
	return args.Get(0).([]collection.InvoiceAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByTicket(ctx context.Context, ticketID uuid.UUID) ([]collection.InvoiceAssignment, error) {
	args := m.Called(ctx, ticketID)
	return args.Get(0).([]collection.InvoiceAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) Upsert(ctx context.Context, assignment *collection.InvoiceAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) ReassignByTicket(ctx context.Context, ticketID uuid.UUID, collectorID uuid.UUID) error {
	args := m.Called(ctx, ticketID, collectorID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, invoiceReference string) error {
	args := m.Called(ctx, invoiceReference)
	return args.Error(0)
}

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.CollectorActivity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.CollectorActivity), args.Error(1)
}

func (m *MockActivityRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]collection.CollectorActivity, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]collection.CollectorActivity), args.Error(1)
}

func (m *MockActivityRepository) FindByCollector(ctx context.Context, collectorID uuid.UUID, from, to time.Time) ([]collection.CollectorActivity, error) {
	args := m.Called(ctx, collectorID, from, to)
	return args.Get(0).([]collection.CollectorActivity), args.Error(1)
}

func (m *MockActivityRepository) FindByTicket(ctx context.Context, ticketID uuid.UUID, filter shared.Filter) ([]collection.CollectorActivity, error) {
	args := m.Called(ctx, ticketID, filter)
	return args.Get(0).([]collection.CollectorActivity), args.Error(1)
}

func (m *MockActivityRepository) Save(ctx context.Context, activity *collection.CollectorActivity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) CountByCollector(ctx context.Context, collectorID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, collectorID, from, to)
	return args.Get(0).(int64), args.Error(1)
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

// MockEventBus is a mock implementation of shared.EventBus
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
