package commands

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderLocks_FIFO(t *testing.T) {
	locks := newOrderLocks()
	unlock, err := locks.lock(t.Context(), "1")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		order []int
		wg    sync.WaitGroup
	)
	for i := range 5 {
		before := tail(locks, "1")
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locks.lock(context.Background(), "1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			release()
		}()
		// goroutine i must be queued before i+1 starts
		require.Eventually(t, func() bool { return tail(locks, "1") != before }, time.Second, time.Millisecond)
	}

	unlock()
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.Equal(t, 0, locks.len())
}

func TestOrderLocks_IndependentIDs(t *testing.T) {
	locks := newOrderLocks()
	unlockA, err := locks.lock(t.Context(), "a")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		unlockB, err := locks.lock(context.Background(), "b")
		if assert.NoError(t, err) {
			unlockB()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b waited for a")
	}
	unlockA()
	assert.Equal(t, 0, locks.len())
}

func TestOrderLocks_CancelledWaiterKeepsQueue(t *testing.T) {
	locks := newOrderLocks()
	unlock, err := locks.lock(t.Context(), "1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	waiting := make(chan error, 1)
	go func() {
		_, err := locks.lock(ctx, "1")
		waiting <- err
	}()
	first := tail(locks, "1")
	require.Eventually(t, func() bool { return tail(locks, "1") != first }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-waiting:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled waiter is still blocked")
	}

	acquired := make(chan struct{})
	go func() {
		release, err := locks.lock(context.Background(), "1")
		if assert.NoError(t, err) {
			release()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("lock acquired while the first holder still holds it")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("queue stalled behind the cancelled waiter")
	}
	assert.Eventually(t, func() bool { return locks.len() == 0 }, time.Second, time.Millisecond)
}

func tail(l *orderLocks, id string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tails[id]
}
