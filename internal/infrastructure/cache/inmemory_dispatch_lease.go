package cache

import (
	"context"
	"sync"
	"time"

	appsync "github.com/arflow/backend/internal/application/sync"
)

// InMemoryDispatchLease implements the sync dispatch lease with a local map.
// This is suitable for single-instance deployments and for testing; it does
// not coordinate across processes.
type InMemoryDispatchLease struct {
	mu     sync.Mutex
	leases map[string]time.Time
}

// NewInMemoryDispatchLease creates a new in-memory dispatch lease
func NewInMemoryDispatchLease() *InMemoryDispatchLease {
	return &InMemoryDispatchLease{
		leases: make(map[string]time.Time),
	}
}

// Acquire takes the lease when it is free or its previous holder expired
func (l *InMemoryDispatchLease) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expiry, held := l.leases[key]; held && now.Before(expiry) {
		return false, nil
	}

	l.leases[key] = now.Add(ttl)
	return true, nil
}

// Release frees the lease immediately
func (l *InMemoryDispatchLease) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.leases, key)
	return nil
}

// Ensure InMemoryDispatchLease implements DispatchLease
var _ appsync.DispatchLease = (*InMemoryDispatchLease)(nil)
