package taskpool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskQueueOffer(t *testing.T) {
	q := NewTaskQueue(2)

	assert.True(t, q.Offer(func() {}))
	assert.True(t, q.Offer(func() {}))
	assert.False(t, q.Offer(func() {}), "offer into a full queue must fail")

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, 2, q.Cap())
}

func TestTaskQueueDefaultCapacity(t *testing.T) {
	assert.Equal(t, 100, NewTaskQueue(0).Cap())
	assert.Equal(t, 100, NewTaskQueue(-5).Cap())
}

func TestTaskQueueForceWaitsForSpace(t *testing.T) {
	q := NewTaskQueue(1)
	require.True(t, q.Offer(func() {}))

	go func() {
		time.Sleep(50 * time.Millisecond)
		<-q.Chan()
	}()

	start := time.Now()
	err := q.Force(context.Background(), func() {}, time.Second)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	assert.Equal(t, 1, q.Len())
}

func TestTaskQueueForceTimeout(t *testing.T) {
	q := NewTaskQueue(1)
	require.True(t, q.Offer(func() {}))

	start := time.Now()
	err := q.Force(context.Background(), func() {}, 120*time.Millisecond)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrQueueFull)
	assert.GreaterOrEqual(t, elapsed, 120*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
	assert.Equal(t, 1, q.Len(), "a timed-out force must not enqueue the task")
}

func TestTaskQueueForceCancelled(t *testing.T) {
	q := NewTaskQueue(1)
	require.True(t, q.Offer(func() {}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	err := q.Force(ctx, func() {}, time.Second)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, q.Len())
}

func TestTaskQueueClose(t *testing.T) {
	q := NewTaskQueue(1)
	q.Close()
	q.Close() // idempotent

	assert.False(t, q.Offer(func() {}))
	assert.ErrorIs(t, q.Force(context.Background(), func() {}, time.Millisecond), ErrQueueClosed)

	_, ok := <-q.Chan()
	assert.False(t, ok, "channel must be closed")
}
