package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	appsync "github.com/arflow/backend/internal/application/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubDispatcher counts polls
type stubDispatcher struct {
	polls atomic.Int32
	err   error
}

func (d *stubDispatcher) Poll(_ context.Context) (*appsync.PollResult, error) {
	d.polls.Add(1)
	if d.err != nil {
		return nil, d.err
	}
	return &appsync.PollResult{Due: 1, Dispatched: 1}, nil
}

func TestSyncPoller(t *testing.T) {
	t.Run("polls the dispatcher on the interval", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		poller := NewSyncPoller(dispatcher, 10*time.Millisecond, zap.NewNop())

		require.NoError(t, poller.Start(context.Background()))

		assert.Eventually(t, func() bool {
			return dispatcher.polls.Load() >= 2
		}, time.Second, 5*time.Millisecond)

		require.NoError(t, poller.Stop(context.Background()))
	})

	t.Run("keeps polling after a dispatcher error", func(t *testing.T) {
		dispatcher := &stubDispatcher{err: errors.New("no credentials")}
		poller := NewSyncPoller(dispatcher, 10*time.Millisecond, zap.NewNop())

		require.NoError(t, poller.Start(context.Background()))

		assert.Eventually(t, func() bool {
			return dispatcher.polls.Load() >= 2
		}, time.Second, 5*time.Millisecond)

		require.NoError(t, poller.Stop(context.Background()))
	})

	t.Run("double start and stop are no-ops", func(t *testing.T) {
		dispatcher := &stubDispatcher{}
		poller := NewSyncPoller(dispatcher, time.Minute, zap.NewNop())

		require.NoError(t, poller.Start(context.Background()))
		require.NoError(t, poller.Start(context.Background()))
		assert.NoError(t, poller.Stop(context.Background()))
		assert.NoError(t, poller.Stop(context.Background()))
	})

	t.Run("defaults a non-positive interval", func(t *testing.T) {
		poller := NewSyncPoller(&stubDispatcher{}, 0, zap.NewNop())
		assert.Equal(t, time.Minute, poller.interval)
	})
}
