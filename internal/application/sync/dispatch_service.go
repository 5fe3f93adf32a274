package sync

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// nowFunc is stubbed in tests
var nowFunc = time.Now

// leaseTTL bounds how long a crashed dispatcher can block an entity
const leaseTTL = 4 * time.Minute

// DispatchLease is a distributed lock held for the duration of one entity
// dispatch, so concurrent pollers never trigger the same entity twice.
type DispatchLease interface {
	// Acquire returns true when the lease was taken
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// TriggerRequest is one downstream sync invocation
type TriggerRequest struct {
	Kind           sync.EntityKind
	BaseURL        string
	Tenant         string
	Username       string
	Password       string
	IdempotencyKey string
}

// ErpGateway fires sync triggers at the downstream ERP sync functions
type ErpGateway interface {
	// TriggerSync fires one dispatch and returns the endpoint it hit.
	// Dispatches are fire-and-forget: a 2xx acknowledgement means the
	// downstream accepted the trigger, not that the sync finished.
	TriggerSync(ctx context.Context, req TriggerRequest) (endpoint string, err error)
}

// DispatchService polls the sync schedule and fires due entities downstream
type DispatchService struct {
	entityRepo sync.EntityRepository
	logRepo    sync.LogRepository
	credsRepo  sync.CredentialsRepository
	lease      DispatchLease
	gateway    ErpGateway
	logger     *zap.Logger
}

// NewDispatchService creates a new DispatchService
func NewDispatchService(
	entityRepo sync.EntityRepository,
	logRepo sync.LogRepository,
	credsRepo sync.CredentialsRepository,
	lease DispatchLease,
	gateway ErpGateway,
	logger *zap.Logger,
) *DispatchService {
	return &DispatchService{
		entityRepo: entityRepo,
		logRepo:    logRepo,
		credsRepo:  credsRepo,
		lease:      lease,
		gateway:    gateway,
		logger:     logger,
	}
}

// PollResult summarizes one poll pass
type PollResult struct {
	Due        int `json:"due"`
	Dispatched int `json:"dispatched"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// Poll dispatches every due entity. Each entity is guarded by its own
// lease; an entity another poller holds is skipped, not an error.
func (s *DispatchService) Poll(ctx context.Context) (*PollResult, error) {
	now := nowFunc()
	due, err := s.entityRepo.FindDue(ctx, now)
	if err != nil {
		return nil, err
	}

	result := &PollResult{Due: len(due)}
	if len(due) == 0 {
		return result, nil
	}

	creds, err := s.credsRepo.FindActive(ctx)
	if err != nil {
		return nil, shared.NewDomainError("NO_CREDENTIALS", "No active ERP credentials configured")
	}

	for i := range due {
		entity := &due[i]
		switch s.dispatchOne(ctx, entity, creds) {
		case sync.OutcomeDispatched:
			result.Dispatched++
		case sync.OutcomeSkipped:
			result.Skipped++
		case sync.OutcomeFailed:
			result.Failed++
		}
	}
	return result, nil
}

// Trigger fires one entity immediately, regardless of its schedule. The
// lease still applies, so a trigger racing the poller is skipped.
func (s *DispatchService) Trigger(ctx context.Context, req TriggerSyncRequest) (*EntityStatusResponse, error) {
	kind := sync.EntityKind(req.Kind)
	entity, err := s.entityRepo.FindByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	if !entity.Enabled {
		return nil, shared.NewDomainError("SYNC_DISABLED", "Sync for this entity is disabled")
	}
	creds, err := s.credsRepo.FindActive(ctx)
	if err != nil {
		return nil, shared.NewDomainError("NO_CREDENTIALS", "No active ERP credentials configured")
	}

	if outcome := s.dispatchOne(ctx, entity, creds); outcome == sync.OutcomeSkipped {
		return nil, shared.ErrSyncInProgress
	}

	response := ToEntityStatusResponse(entity)
	return &response, nil
}

func (s *DispatchService) dispatchOne(ctx context.Context, entity *sync.SyncEntity, creds *sync.ErpCredentials) sync.LogOutcome {
	leaseKey := "sync:lease:" + string(entity.Kind)
	now := nowFunc()
	idempotencyKey := uuid.New().String()

	acquired, err := s.lease.Acquire(ctx, leaseKey, leaseTTL)
	if err != nil {
		s.logger.Error("lease acquire failed",
			zap.String("kind", string(entity.Kind)),
			zap.Error(err))
		s.appendLog(ctx, entity.Kind, sync.OutcomeFailed, "", idempotencyKey, "lease error: "+err.Error(), now, 0)
		return sync.OutcomeFailed
	}
	if !acquired {
		s.appendLog(ctx, entity.Kind, sync.OutcomeSkipped, "", idempotencyKey, "lease held by another dispatcher", now, 0)
		return sync.OutcomeSkipped
	}
	defer func() {
		if err := s.lease.Release(ctx, leaseKey); err != nil {
			s.logger.Warn("lease release failed",
				zap.String("kind", string(entity.Kind)),
				zap.Error(err))
		}
	}()

	entity.MarkRunning(now)
	if err := s.entityRepo.SaveWithLock(ctx, entity); err != nil {
		s.appendLog(ctx, entity.Kind, sync.OutcomeSkipped, "", idempotencyKey, "schedule row contended", now, 0)
		return sync.OutcomeSkipped
	}

	endpoint, err := s.gateway.TriggerSync(ctx, TriggerRequest{
		Kind:           entity.Kind,
		BaseURL:        creds.BaseURL,
		Tenant:         creds.Tenant,
		Username:       creds.Username,
		Password:       creds.Password,
		IdempotencyKey: idempotencyKey,
	})
	duration := nowFunc().Sub(now)

	if err != nil {
		entity.MarkFailed(err.Error())
		if saveErr := s.entityRepo.SaveWithLock(ctx, entity); saveErr != nil {
			s.logger.Error("failed to record dispatch failure",
				zap.String("kind", string(entity.Kind)),
				zap.Error(saveErr))
		}
		s.appendLog(ctx, entity.Kind, sync.OutcomeFailed, endpoint, idempotencyKey, err.Error(), now, duration)
		s.logger.Warn("sync dispatch failed",
			zap.String("kind", string(entity.Kind)),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return sync.OutcomeFailed
	}

	entity.MarkSucceeded(nowFunc())
	if err := s.entityRepo.SaveWithLock(ctx, entity); err != nil {
		s.logger.Error("failed to record dispatch success",
			zap.String("kind", string(entity.Kind)),
			zap.Error(err))
	}
	s.appendLog(ctx, entity.Kind, sync.OutcomeDispatched, endpoint, idempotencyKey, "", now, duration)
	s.logger.Info("sync dispatched",
		zap.String("kind", string(entity.Kind)),
		zap.String("endpoint", endpoint),
		zap.Duration("duration", duration))
	return sync.OutcomeDispatched
}

func (s *DispatchService) appendLog(ctx context.Context, kind sync.EntityKind, outcome sync.LogOutcome, endpoint, idempotencyKey, detail string, at time.Time, duration time.Duration) {
	entry := sync.NewSyncLog(kind, outcome, endpoint, idempotencyKey, detail, at, duration)
	if err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append sync log",
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}

// Status lists every sync row
func (s *DispatchService) Status(ctx context.Context) ([]EntityStatusResponse, error) {
	entities, err := s.entityRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]EntityStatusResponse, 0, len(entities))
	for i := range entities {
		responses = append(responses, ToEntityStatusResponse(&entities[i]))
	}
	return responses, nil
}

// UpdateSchedule edits one sync row's enabled flag and interval
func (s *DispatchService) UpdateSchedule(ctx context.Context, kind sync.EntityKind, req UpdateScheduleRequest) (*EntityStatusResponse, error) {
	entity, err := s.entityRepo.FindByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	if req.Enabled != nil {
		if *req.Enabled {
			entity.Enable()
		} else {
			entity.Disable()
		}
	}
	if req.IntervalMinutes != nil {
		if err := entity.SetInterval(*req.IntervalMinutes); err != nil {
			return nil, err
		}
	}
	if err := s.entityRepo.SaveWithLock(ctx, entity); err != nil {
		return nil, err
	}

	response := ToEntityStatusResponse(entity)
	return &response, nil
}

// SetCredentials replaces the active ERP credential set
func (s *DispatchService) SetCredentials(ctx context.Context, req SetCredentialsRequest) error {
	creds, err := sync.NewErpCredentials(req.BaseURL, req.Tenant, req.Username, req.Password)
	if err != nil {
		return err
	}
	if err := s.credsRepo.DeactivateAll(ctx); err != nil {
		return err
	}
	return s.credsRepo.Save(ctx, creds)
}

// RecentLogs returns the latest dispatch logs for one entity
func (s *DispatchService) RecentLogs(ctx context.Context, kind sync.EntityKind, limit int) ([]LogResponse, error) {
	logs, err := s.logRepo.FindRecent(ctx, kind, limit)
	if err != nil {
		return nil, err
	}
	responses := make([]LogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, ToLogResponse(&logs[i]))
	}
	return responses, nil
}

// PruneLogs deletes dispatch logs older than the retention window
func (s *DispatchService) PruneLogs(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := nowFunc().Add(-retention)
	deleted, err := s.logRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("pruned sync logs",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
	return deleted, nil
}
