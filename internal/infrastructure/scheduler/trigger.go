package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// nowFunc is stubbed in tests
var nowFunc = time.Now

// TriggerConfig holds the cron expressions for recurring maintenance work
type TriggerConfig struct {
	EscalationSchedule    string // overdue invoice sweep
	FilingSchedule        string // pending inbound email pass
	PruneSchedule         string // sync log retention
	DriftSchedule         string // payment application health check
	ReminderCheckSchedule string // downstream due-reminder scan
	ReminderEmailSchedule string // downstream reminder email send

	// CheckInterval is how often the trigger compares the clock against
	// the schedules. Anything coarser than a minute misses firings.
	CheckInterval time.Duration
}

// DefaultTriggerConfig returns default trigger configuration
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		EscalationSchedule:    "*/5 * * * *",
		FilingSchedule:        "* * * * *",
		PruneSchedule:         "0 3 * * *",
		DriftSchedule:         "30 * * * *",
		ReminderCheckSchedule: "0 * * * *",
		ReminderEmailSchedule: "15 8 * * *",
		CheckInterval:         time.Minute,
	}
}

// MaintenanceTrigger submits maintenance jobs when their cron schedules fire
type MaintenanceTrigger struct {
	config    TriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	schedules map[JobKind]*CronSpec

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastFired map[JobKind]string // minute each kind last fired, "2006-01-02 15:04"
}

// NewMaintenanceTrigger creates a new maintenance trigger
func NewMaintenanceTrigger(config TriggerConfig, scheduler *Scheduler, logger *zap.Logger) (*MaintenanceTrigger, error) {
	defaults := DefaultTriggerConfig()
	if config.EscalationSchedule == "" {
		config.EscalationSchedule = defaults.EscalationSchedule
	}
	if config.FilingSchedule == "" {
		config.FilingSchedule = defaults.FilingSchedule
	}
	if config.PruneSchedule == "" {
		config.PruneSchedule = defaults.PruneSchedule
	}
	if config.DriftSchedule == "" {
		config.DriftSchedule = defaults.DriftSchedule
	}
	if config.ReminderCheckSchedule == "" {
		config.ReminderCheckSchedule = defaults.ReminderCheckSchedule
	}
	if config.ReminderEmailSchedule == "" {
		config.ReminderEmailSchedule = defaults.ReminderEmailSchedule
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = defaults.CheckInterval
	}

	specs := map[JobKind]string{
		JobKindEscalationSweep: config.EscalationSchedule,
		JobKindEmailFiling:     config.FilingSchedule,
		JobKindLogPruning:      config.PruneSchedule,
		JobKindDriftCheck:      config.DriftSchedule,
		JobKindReminderCheck:   config.ReminderCheckSchedule,
		JobKindReminderEmails:  config.ReminderEmailSchedule,
	}

	schedules := make(map[JobKind]*CronSpec, len(specs))
	for kind, spec := range specs {
		parsed, err := ParseCronSpec(spec)
		if err != nil {
			return nil, err
		}
		schedules[kind] = parsed
	}

	return &MaintenanceTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
		schedules: schedules,
		lastFired: make(map[JobKind]string),
	}, nil
}

// Start starts the trigger loop
func (t *MaintenanceTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Maintenance trigger started",
		zap.String("escalation_schedule", t.config.EscalationSchedule),
		zap.String("filing_schedule", t.config.FilingSchedule),
		zap.Duration("check_interval", t.config.CheckInterval),
	)

	return nil
}

// Stop stops the trigger loop
func (t *MaintenanceTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Maintenance trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop checks the schedules every tick
func (t *MaintenanceTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.checkAndFire()
		}
	}
}

// checkAndFire submits a job for every schedule matching the current
// minute. Each kind fires at most once per minute.
func (t *MaintenanceTrigger) checkAndFire() {
	now := nowFunc()
	currentMinute := now.Format("2006-01-02 15:04")

	for kind, spec := range t.schedules {
		if !spec.Matches(now) {
			continue
		}

		t.mu.Lock()
		if t.lastFired[kind] == currentMinute {
			t.mu.Unlock()
			continue
		}
		t.lastFired[kind] = currentMinute
		t.mu.Unlock()

		if err := t.scheduler.Submit(kind); err != nil {
			t.logger.Error("Failed to submit maintenance job",
				zap.String("kind", string(kind)),
				zap.Error(err),
			)
		}
	}
}
