package lock

import (
	"context"
	"sync"

	"guardianmed/internal/domain/service"

	"github.com/pkg/errors"
)

// memoryLocker serializes per key within one process. Slots are reference
// counted and dropped when no holder or waiter remains.
type memoryLocker struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	sem  chan struct{}
	refs int
}

// NewMemoryLocker returns an in-process AccountLocker for single-instance deployments.
func NewMemoryLocker() service.AccountLocker {
	return &memoryLocker{slots: make(map[string]*lockSlot)}
}

func (l *memoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	slot := l.acquireSlot(key)

	select {
	case slot.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(key, slot)

		return nil, errors.Wrap(ctx.Err(), "timed out waiting for account lock")
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			<-slot.sem
			l.releaseSlot(key, slot)
		})
	}, nil
}

func (l *memoryLocker) acquireSlot(key string) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{sem: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++

	return slot
}

func (l *memoryLocker) releaseSlot(key string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}
