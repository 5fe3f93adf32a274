package sync

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/receivable"
	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEntityRepository is a mock implementation of sync.EntityRepository
type MockEntityRepository struct {
	mock.Mock
}

func (m *MockEntityRepository) FindByKind(ctx context.Context, kind sync.EntityKind) (*sync.SyncEntity, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.SyncEntity), args.Error(1)
}

func (m *MockEntityRepository) FindAll(ctx context.Context) ([]sync.SyncEntity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]sync.SyncEntity), args.Error(1)
}

func (m *MockEntityRepository) FindDue(ctx context.Context, now time.Time) ([]sync.SyncEntity, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]sync.SyncEntity), args.Error(1)
}

func (m *MockEntityRepository) Save(ctx context.Context, entity *sync.SyncEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockEntityRepository) SaveWithLock(ctx context.Context, entity *sync.SyncEntity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

// MockLogRepository is a mock implementation of sync.LogRepository
type MockLogRepository struct {
	mock.Mock
	Appended []sync.SyncLog
}

func (m *MockLogRepository) Append(ctx context.Context, log *sync.SyncLog) error {
	args := m.Called(ctx, log)
	m.Appended = append(m.Appended, *log)
	return args.Error(0)
}

func (m *MockLogRepository) FindRecent(ctx context.Context, kind sync.EntityKind, limit int) ([]sync.SyncLog, error) {
	args := m.Called(ctx, kind, limit)
	return args.Get(0).([]sync.SyncLog), args.Error(1)
}

func (m *MockLogRepository) FindInRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]sync.SyncLog, error) {
	args := m.Called(ctx, from, to, filter)
	return args.Get(0).([]sync.SyncLog), args.Error(1)
}

func (m *MockLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockCredentialsRepository is a mock implementation of sync.CredentialsRepository
type MockCredentialsRepository struct {
	mock.Mock
}

func (m *MockCredentialsRepository) FindActive(ctx context.Context) (*sync.ErpCredentials, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.ErpCredentials), args.Error(1)
}

func (m *MockCredentialsRepository) Save(ctx context.Context, creds *sync.ErpCredentials) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

func (m *MockCredentialsRepository) DeactivateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockJobRepository is a mock implementation of sync.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*sync.AsyncSyncJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sync.AsyncSyncJob), args.Error(1)
}

func (m *MockJobRepository) FindByStatus(ctx context.Context, status sync.JobStatus, filter shared.Filter) ([]sync.AsyncSyncJob, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]sync.AsyncSyncJob), args.Error(1)
}

func (m *MockJobRepository) Save(ctx context.Context, job *sync.AsyncSyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) SaveWithLock(ctx context.Context, job *sync.AsyncSyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockLease is a mock implementation of DispatchLease
type MockLease struct {
	mock.Mock
}

func (m *MockLease) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockLease) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockGateway is a mock implementation of ErpGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) TriggerSync(ctx context.Context, req TriggerRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockReminderGateway is a mock implementation of ReminderGateway
type MockReminderGateway struct {
	mock.Mock
}

func (m *MockReminderGateway) TriggerReminder(ctx context.Context, req ReminderRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockPaymentRepository is a mock implementation of receivable.PaymentRepository
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

// MockApplicationRepository is a mock implementation of receivable.ApplicationRepository
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
