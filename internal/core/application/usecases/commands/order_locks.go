package commands

import (
	"context"
	"sync"
)

// orderLocks serializes work per order id in the order lock was called.
// Each caller waits for the channel of the caller queued before it.
type orderLocks struct {
	mu    sync.Mutex
	tails map[string]chan struct{}
}

func newOrderLocks() *orderLocks {
	return &orderLocks{tails: make(map[string]chan struct{})}
}

// lock blocks until every earlier caller for id has unlocked and returns
// the matching unlock function. When ctx is done first, lock returns its
// error and the caller's place in the queue is released once its
// predecessor unlocks.
func (l *orderLocks) lock(ctx context.Context, id string) (func(), error) {
	mine := make(chan struct{})

	l.mu.Lock()
	prev := l.tails[id]
	l.tails[id] = mine
	l.mu.Unlock()

	unlock := func() {
		l.mu.Lock()
		if l.tails[id] == mine {
			delete(l.tails, id)
		}
		l.mu.Unlock()
		close(mine)
	}

	if prev == nil {
		return unlock, nil
	}

	select {
	case <-prev:
		return unlock, nil
	case <-ctx.Done():
		go func() {
			<-prev
			unlock()
		}()
		return nil, ctx.Err()
	}
}

func (l *orderLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tails)
}
