package sync

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/domain/shared"
	"github.com/arflow/backend/internal/domain/sync"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderKind names one downstream reminder function
type ReminderKind string

const (
	// ReminderCheck scans for invoices whose reminder is due
	ReminderCheck ReminderKind = "reminder_check"
	// ReminderEmails sends the queued reminder emails
	ReminderEmails ReminderKind = "reminder_emails"
)

// ReminderRequest is one downstream reminder invocation
type ReminderRequest struct {
	Kind           ReminderKind
	BaseURL        string
	Tenant         string
	Username       string
	Password       string
	IdempotencyKey string
}

// ReminderGateway fires reminder triggers at the downstream functions
type ReminderGateway interface {
	// TriggerReminder fires one dispatch and returns the endpoint it hit.
	// Like sync triggers, a 2xx acknowledgement means the downstream
	// accepted the run, not that reminders went out.
	TriggerReminder(ctx context.Context, req ReminderRequest) (endpoint string, err error)
}

// ReminderService dispatches the scheduled invoice reminder functions.
// The downstream function owns the scan-and-send logic; dispatch here is
// fire-and-forget under a lease so overlapping schedulers never
// double-send a reminder run.
type ReminderService struct {
	logRepo   sync.LogRepository
	credsRepo sync.CredentialsRepository
	lease     DispatchLease
	gateway   ReminderGateway
	logger    *zap.Logger
}

// NewReminderService creates a new ReminderService
func NewReminderService(
	logRepo sync.LogRepository,
	credsRepo sync.CredentialsRepository,
	lease DispatchLease,
	gateway ReminderGateway,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		logRepo:   logRepo,
		credsRepo: credsRepo,
		lease:     lease,
		gateway:   gateway,
		logger:    logger,
	}
}

// CheckInvoiceReminders asks the downstream function to scan for invoices
// whose reminder schedule is due
func (s *ReminderService) CheckInvoiceReminders(ctx context.Context) error {
	return s.dispatch(ctx, ReminderCheck)
}

// SendReminderEmails asks the downstream function to send the reminder
// emails the check pass queued
func (s *ReminderService) SendReminderEmails(ctx context.Context) error {
	return s.dispatch(ctx, ReminderEmails)
}

func (s *ReminderService) dispatch(ctx context.Context, kind ReminderKind) error {
	creds, err := s.credsRepo.FindActive(ctx)
	if err != nil {
		return shared.NewDomainError("NO_CREDENTIALS", "No active ERP credentials configured")
	}

	leaseKey := "reminder:lease:" + string(kind)
	now := nowFunc()
	idempotencyKey := uuid.New().String()

	acquired, err := s.lease.Acquire(ctx, leaseKey, leaseTTL)
	if err != nil {
		s.appendLog(ctx, kind, sync.OutcomeFailed, "", idempotencyKey, "lease error: "+err.Error(), now)
		return err
	}
	if !acquired {
		s.appendLog(ctx, kind, sync.OutcomeSkipped, "", idempotencyKey, "lease held by another dispatcher", now)
		return nil
	}
	defer func() {
		if err := s.lease.Release(ctx, leaseKey); err != nil {
			s.logger.Warn("lease release failed",
				zap.String("kind", string(kind)),
				zap.Error(err))
		}
	}()

	endpoint, err := s.gateway.TriggerReminder(ctx, ReminderRequest{
		Kind:           kind,
		BaseURL:        creds.BaseURL,
		Tenant:         creds.Tenant,
		Username:       creds.Username,
		Password:       creds.Password,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		s.appendLog(ctx, kind, sync.OutcomeFailed, endpoint, idempotencyKey, err.Error(), now)
		s.logger.Warn("reminder dispatch failed",
			zap.String("kind", string(kind)),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return err
	}

	s.appendLog(ctx, kind, sync.OutcomeDispatched, endpoint, idempotencyKey, "", now)
	s.logger.Info("reminder dispatched",
		zap.String("kind", string(kind)),
		zap.String("endpoint", endpoint))
	return nil
}

// appendLog records the dispatch in the shared sync log. Reminder runs and
// entity syncs share the table; the kind column holds both vocabularies.
func (s *ReminderService) appendLog(ctx context.Context, kind ReminderKind, outcome sync.LogOutcome, endpoint, idempotencyKey, detail string, at time.Time) {
	entry := sync.NewSyncLog(sync.EntityKind(kind), outcome, endpoint, idempotencyKey, detail, at, nowFunc().Sub(at))
	if err := s.logRepo.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append sync log",
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}
