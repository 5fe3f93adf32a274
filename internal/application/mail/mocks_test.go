package mail

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/mail"
	"github.com/arflow/backend/internal/domain/partner"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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

// MockLabelRepository is a mock implementation of mail.LabelRepository
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) FindByID(ctx context.Context, id uuid.UUID) (*mail.EmailLabel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mail.EmailLabel), args.Error(1)
}

func (m *MockLabelRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]mail.EmailLabel, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]mail.EmailLabel), args.Error(1)
}

func (m *MockLabelRepository) Save(ctx context.Context, label *mail.EmailLabel) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockLabelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTemplateRepository is a mock implementation of mail.TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*mail.EmailTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mail.EmailTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindByName(ctx context.Context, name string) (*mail.EmailTemplate, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mail.EmailTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindActive(ctx context.Context) ([]mail.EmailTemplate, error) {
	args := m.Called(ctx)
	return args.Get(0).([]mail.EmailTemplate), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *mail.EmailTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFileRepository is a mock implementation of mail.FileRepository
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*mail.CustomerFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mail.CustomerFile), args.Error(1)
}

func (m *MockFileRepository) FindByCustomer(ctx context.Context, customerID string, filter shared.Filter) ([]mail.CustomerFile, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]mail.CustomerFile), args.Error(1)
}

func (m *MockFileRepository) FindByBucket(ctx context.Context, customerID string, year, month int) ([]mail.CustomerFile, error) {
	args := m.Called(ctx, customerID, year, month)
	return args.Get(0).([]mail.CustomerFile), args.Error(1)
}

func (m *MockFileRepository) FindByEmail(ctx context.Context, emailID uuid.UUID) ([]mail.CustomerFile, error) {
	args := m.Called(ctx, emailID)
	return args.Get(0).([]mail.CustomerFile), args.Error(1)
}

func (m *MockFileRepository) Save(ctx context.Context, file *mail.CustomerFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
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

// MockObjectStorage is a mock implementation of ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey string, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}
