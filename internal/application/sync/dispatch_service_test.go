package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDispatchService() (*DispatchService, *MockEntityRepository, *MockLogRepository, *MockCredentialsRepository, *MockLease, *MockGateway) {
	entityRepo := new(MockEntityRepository)
	logRepo := new(MockLogRepository)
	credsRepo := new(MockCredentialsRepository)
	lease := new(MockLease)
	gateway := new(MockGateway)
	svc := NewDispatchService(entityRepo, logRepo, credsRepo, lease, gateway, zap.NewNop())
	return svc, entityRepo, logRepo, credsRepo, lease, gateway
}

func testCredentials(t *testing.T) *sync.ErpCredentials {
	t.Helper()
	creds, err := sync.NewErpCredentials("https://erp.example.com/", "ACME", "sync-user", "secret")
	require.NoError(t, err)
	return creds
}

func TestPoll_DispatchesDueEntity(t *testing.T) {
	svc, entityRepo, logRepo, credsRepo, lease, gateway := newDispatchService()
	ctx := context.Background()

	entity, err := sync.NewSyncEntity(sync.EntityInvoices)
	require.NoError(t, err)

	entityRepo.On("FindDue", ctx, mock.Anything).Return([]sync.SyncEntity{*entity}, nil)
	credsRepo.On("FindActive", ctx).Return(testCredentials(t), nil)
	lease.On("Acquire", ctx, "sync:lease:invoices", leaseTTL).Return(true, nil)
	lease.On("Release", ctx, "sync:lease:invoices").Return(nil)
	entityRepo.On("SaveWithLock", ctx, mock.AnythingOfType("*sync.SyncEntity")).Return(nil)
	gateway.On("TriggerSync", ctx, mock.MatchedBy(func(req TriggerRequest) bool {
		return req.Kind == sync.EntityInvoices &&
			req.BaseURL == "https://erp.example.com" &&
			req.IdempotencyKey != ""
	})).Return("/functions/v1/acumatica-invoice-sync", nil)
	logRepo.On("Append", ctx, mock.AnythingOfType("*sync.SyncLog")).Return(nil)

	result, err := svc.Poll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Due)
	assert.Equal(t, 1, result.Dispatched)
	require.Len(t, logRepo.Appended, 1)
	assert.Equal(t, sync.OutcomeDispatched, logRepo.Appended[0].Outcome)
	assert.Equal(t, "/functions/v1/acumatica-invoice-sync", logRepo.Appended[0].Endpoint)
}

func TestPoll_LeaseHeldSkips(t *testing.T) {
	svc, entityRepo, logRepo, credsRepo, lease, gateway := newDispatchService()
	ctx := context.Background()

	entity, err := sync.NewSyncEntity(sync.EntityCustomers)
	require.NoError(t, err)

	entityRepo.On("FindDue", ctx, mock.Anything).Return([]sync.SyncEntity{*entity}, nil)
	credsRepo.On("FindActive", ctx).Return(testCredentials(t), nil)
	lease.On("Acquire", ctx, "sync:lease:customers", leaseTTL).Return(false, nil)
	logRepo.On("Append", ctx, mock.AnythingOfType("*sync.SyncLog")).Return(nil)

	result, err := svc.Poll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Dispatched)
	gateway.AssertNotCalled(t, "TriggerSync", mock.Anything, mock.Anything)
	require.Len(t, logRepo.Appended, 1)
	assert.Equal(t, sync.OutcomeSkipped, logRepo.Appended[0].Outcome)
}

func TestPoll_GatewayFailureMarksFailed(t *testing.T) {
	svc, entityRepo, logRepo, credsRepo, lease, gateway := newDispatchService()
	ctx := context.Background()

	entity, err := sync.NewSyncEntity(sync.EntityPayments)
	require.NoError(t, err)

	entityRepo.On("FindDue", ctx, mock.Anything).Return([]sync.SyncEntity{*entity}, nil)
	credsRepo.On("FindActive", ctx).Return(testCredentials(t), nil)
	lease.On("Acquire", ctx, "sync:lease:payments", leaseTTL).Return(true, nil)
	lease.On("Release", ctx, "sync:lease:payments").Return(nil)
	entityRepo.On("SaveWithLock", ctx, mock.MatchedBy(func(e *sync.SyncEntity) bool {
		return e.Kind == sync.EntityPayments
	})).Return(nil)
	gateway.On("TriggerSync", ctx, mock.Anything).Return("/functions/v1/acumatica-payment-sync", errors.New("downstream 502"))
	logRepo.On("Append", ctx, mock.AnythingOfType("*sync.SyncLog")).Return(nil)

	result, err := svc.Poll(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	require.Len(t, logRepo.Appended, 1)
	assert.Equal(t, sync.OutcomeFailed, logRepo.Appended[0].Outcome)
	assert.Contains(t, logRepo.Appended[0].Detail, "downstream 502")
}

func TestPoll_NoCredentials(t *testing.T) {
	svc, entityRepo, _, credsRepo, _, _ := newDispatchService()
	ctx := context.Background()

	entity, err := sync.NewSyncEntity(sync.EntityInvoices)
	require.NoError(t, err)

	entityRepo.On("FindDue", ctx, mock.Anything).Return([]sync.SyncEntity{*entity}, nil)
	credsRepo.On("FindActive", ctx).Return(nil, shared.ErrNotFound)

	_, err = svc.Poll(ctx)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_CREDENTIALS", domainErr.Code)
}

func TestTrigger_DisabledEntityRejected(t *testing.T) {
	svc, entityRepo, _, _, _, _ := newDispatchService()
	ctx := context.Background()

	entity, err := sync.NewSyncEntity(sync.EntityInvoices)
	require.NoError(t, err)
	entity.Disable()

	entityRepo.On("FindByKind", ctx, sync.EntityInvoices).Return(entity, nil)

	_, err = svc.Trigger(ctx, TriggerSyncRequest{Kind: "invoices"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SYNC_DISABLED", domainErr.Code)
}

func TestTrigger_RaceWithPollerReportsInProgress(t *testing.T) {
	svc, entityRepo, logRepo, credsRepo, lease, _ := newDispatchService()
	ctx := context.Background()

	entity, err := sync.NewSyncEntity(sync.EntityInvoices)
	require.NoError(t, err)

	entityRepo.On("FindByKind", ctx, sync.EntityInvoices).Return(entity, nil)
	credsRepo.On("FindActive", ctx).Return(testCredentials(t), nil)
	lease.On("Acquire", ctx, "sync:lease:invoices", leaseTTL).Return(false, nil)
	logRepo.On("Append", ctx, mock.AnythingOfType("*sync.SyncLog")).Return(nil)

	_, err = svc.Trigger(ctx, TriggerSyncRequest{Kind: "invoices"})
	assert.ErrorIs(t, err, shared.ErrSyncInProgress)
}

func TestUpdateSchedule(t *testing.T) {
	svc, entityRepo, _, _, _, _ := newDispatchService()
	ctx := context.Background()

	entity, err := sync.NewSyncEntity(sync.EntityCustomers)
	require.NoError(t, err)

	entityRepo.On("FindByKind", ctx, sync.EntityCustomers).Return(entity, nil)
	entityRepo.On("SaveWithLock", ctx, entity).Return(nil)

	enabled := false
	interval := 30
	resp, err := svc.UpdateSchedule(ctx, sync.EntityCustomers, UpdateScheduleRequest{
		Enabled:         &enabled,
		IntervalMinutes: &interval,
	})
	require.NoError(t, err)

	assert.False(t, resp.Enabled)
	assert.Equal(t, 30, resp.IntervalMinutes)
}

func TestPruneLogs(t *testing.T) {
	svc, _, logRepo, _, _, _ := newDispatchService()
	ctx := context.Background()

	logRepo.On("DeleteOlderThan", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		return time.Since(cutoff) > 29*24*time.Hour
	})).Return(int64(12), nil)

	deleted, err := svc.PruneLogs(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
}
