package scheduler

import (
	"context"
	"time"

	"github.com/arflow/backend/internal/application/receivable"
	appsync "github.com/arflow/backend/internal/application/sync"
	"go.uber.org/zap"
)

// EscalationSweeper flags overdue or untouched open invoices red
type EscalationSweeper interface {
	Sweep(ctx context.Context) (*receivable.SweepResult, error)
}

// EmailFiler processes pending inbound emails
type EmailFiler interface {
	ProcessPending(ctx context.Context, limit int) (int, error)
}

// LogPruner deletes sync dispatch logs past retention
type LogPruner interface {
	PruneLogs(ctx context.Context, retention time.Duration) (int64, error)
}

// DriftChecker cross-checks payment applications against headers
type DriftChecker interface {
	CheckPaymentDrift(ctx context.Context) (*appsync.DriftReport, error)
}

// ReminderDispatcher fires the downstream reminder functions
type ReminderDispatcher interface {
	CheckInvoiceReminders(ctx context.Context) error
	SendReminderEmails(ctx context.Context) error
}

// MaintenanceExecutor routes maintenance jobs to their application services
type MaintenanceExecutor struct {
	sweeper   EscalationSweeper
	filer     EmailFiler
	pruner    LogPruner
	checker   DriftChecker
	reminders ReminderDispatcher
	logger    *zap.Logger

	pendingEmailBatch int
	logRetention      time.Duration
}

// NewMaintenanceExecutor creates a new MaintenanceExecutor
func NewMaintenanceExecutor(
	sweeper EscalationSweeper,
	filer EmailFiler,
	pruner LogPruner,
	checker DriftChecker,
	reminders ReminderDispatcher,
	pendingEmailBatch int,
	logRetention time.Duration,
	logger *zap.Logger,
) *MaintenanceExecutor {
	if pendingEmailBatch <= 0 {
		pendingEmailBatch = 50
	}
	if logRetention <= 0 {
		logRetention = 30 * 24 * time.Hour
	}
	return &MaintenanceExecutor{
		sweeper:           sweeper,
		filer:             filer,
		pruner:            pruner,
		checker:           checker,
		reminders:         reminders,
		logger:            logger,
		pendingEmailBatch: pendingEmailBatch,
		logRetention:      logRetention,
	}
}

// Execute runs one maintenance job
func (e *MaintenanceExecutor) Execute(ctx context.Context, job *Job) error {
	switch job.Kind {
	case JobKindEscalationSweep:
		result, err := e.sweeper.Sweep(ctx)
		if err != nil {
			return err
		}
		e.logger.Info("escalation sweep finished",
			zap.Int("examined", result.Examined),
			zap.Int("escalated", result.Escalated),
			zap.Int("conflicts", result.Conflicts),
		)
		return nil

	case JobKindEmailFiling:
		processed, err := e.filer.ProcessPending(ctx, e.pendingEmailBatch)
		if err != nil {
			return err
		}
		if processed > 0 {
			e.logger.Info("pending emails filed", zap.Int("processed", processed))
		}
		return nil

	case JobKindLogPruning:
		_, err := e.pruner.PruneLogs(ctx, e.logRetention)
		return err

	case JobKindDriftCheck:
		report, err := e.checker.CheckPaymentDrift(ctx)
		if err != nil {
			return err
		}
		if report.DriftingCount > 0 {
			e.logger.Warn("payment applications drifting from headers",
				zap.Int("checked", report.CheckedPayments),
				zap.Int("drifting", report.DriftingCount),
			)
		}
		return nil

	case JobKindReminderCheck:
		return e.reminders.CheckInvoiceReminders(ctx)

	case JobKindReminderEmails:
		return e.reminders.SendReminderEmails(ctx)
	}

	return ErrUnknownJobKind
}

// Ensure MaintenanceExecutor implements JobExecutor
var _ JobExecutor = (*MaintenanceExecutor)(nil)
