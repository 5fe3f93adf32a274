package scheduler

import (
	"context"
	"sync"
	"time"

	appsync "github.com/arflow/backend/internal/application/sync"
	"go.uber.org/zap"
)

// SyncDispatcher fires due sync entities downstream
type SyncDispatcher interface {
	Poll(ctx context.Context) (*appsync.PollResult, error)
}

// SyncPoller drives the ERP sync dispatcher on a fixed interval
type SyncPoller struct {
	dispatcher SyncDispatcher
	interval   time.Duration
	logger     *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSyncPoller creates a new sync poller
func NewSyncPoller(dispatcher SyncDispatcher, interval time.Duration, logger *zap.Logger) *SyncPoller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SyncPoller{
		dispatcher: dispatcher,
		interval:   interval,
		logger:     logger,
	}
}

// Start starts the poll loop
func (p *SyncPoller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.runLoop(ctx)

	p.logger.Info("Sync poller started",
		zap.Duration("interval", p.interval),
	)

	return nil
}

// Stop stops the poll loop
func (p *SyncPoller) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Sync poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop polls the dispatcher until the context is cancelled
func (p *SyncPoller) runLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce runs one dispatch pass
func (p *SyncPoller) pollOnce(ctx context.Context) {
	result, err := p.dispatcher.Poll(ctx)
	if err != nil {
		p.logger.Error("sync poll failed", zap.Error(err))
		return
	}

	if result.Due > 0 {
		p.logger.Info("sync poll finished",
			zap.Int("due", result.Due),
			zap.Int("dispatched", result.Dispatched),
			zap.Int("skipped", result.Skipped),
			zap.Int("failed", result.Failed),
		)
	}
}
