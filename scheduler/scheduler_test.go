package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodicTask(t *testing.T) {
	var counter int32

	task := func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	}

	pt := New("test", 100*time.Millisecond, task, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pt.Start(ctx, true)
	assert.True(t, pt.IsRunning())

	time.Sleep(350 * time.Millisecond)

	pt.Stop()
	assert.False(t, pt.IsRunning())

	assert.GreaterOrEqual(t, atomic.LoadInt32(&counter), int32(3))

	// Verify counter didn't increment after stop
	finalCount := atomic.LoadInt32(&counter)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, finalCount, atomic.LoadInt32(&counter))
}

func TestPeriodicTask_StopBeforeStart(t *testing.T) {
	pt := New("test", 100*time.Millisecond, func(ctx context.Context) {}, nil)
	pt.Stop() // Should not panic
	assert.False(t, pt.IsRunning())
}

func TestPeriodicTask_DoubleStart(t *testing.T) {
	var counter int32
	pt := New("test", time.Hour, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	}, nil)

	ctx := context.Background()
	pt.Start(ctx, true)
	pt.Start(ctx, true)
	defer pt.Stop()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&counter) >= 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counter))
}

func TestPeriodicTask_Trigger(t *testing.T) {
	var counter int32
	pt := New("test", 0, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	}, nil)

	pt.Start(context.Background(), false)
	defer pt.Stop()

	pt.Trigger()
	assert.Eventually(t, func() bool { return atomic.LoadInt32(&counter) == 1 }, time.Second, 10*time.Millisecond)
}

func TestPeriodicTask_PanicDoesNotStopSchedule(t *testing.T) {
	var counter int32
	pt := New("test", 20*time.Millisecond, func(ctx context.Context) {
		if atomic.AddInt32(&counter, 1) == 1 {
			panic("boom")
		}
	}, nil)

	pt.Start(context.Background(), true)
	defer pt.Stop()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&counter) >= 3 }, time.Second, 10*time.Millisecond)
}

func TestPeriodicTask_ContextCancellation(t *testing.T) {
	var counter int32
	pt := New("test", 20*time.Millisecond, func(ctx context.Context) {
		atomic.AddInt32(&counter, 1)
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	pt.Start(ctx, false)
	cancel()

	time.Sleep(60 * time.Millisecond)
	stopped := atomic.LoadInt32(&counter)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&counter))
	pt.Stop()
}
