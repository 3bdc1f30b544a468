package clock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleReportsTrueElapsedAndKeepsAnchor(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	period := time.Second
	sched := newSchedule(start, period)

	// Four punctual firings.
	for i := 1; i <= 4; i++ {
		elapsed, wait := sched.fire(start.Add(time.Duration(i) * period))
		require.Equal(t, period, elapsed)
		require.Equal(t, period, wait)
	}

	// The fifth firing is 1200ms late.
	fifth := start.Add(6200 * time.Millisecond)
	elapsed, wait := sched.fire(fifth)
	assert.Equal(t, 2200*time.Millisecond, elapsed)
	assert.Equal(t, time.Duration(0), wait, "sixth deadline (6000ms) is already due")
	assert.Equal(t, start.Add(6*period), sched.deadline)

	// The sixth fires immediately and the seventh returns to the grid.
	sixth := fifth.Add(5 * time.Millisecond)
	elapsed, wait = sched.fire(sixth)
	assert.Equal(t, 5*time.Millisecond, elapsed)
	assert.Equal(t, start.Add(7*period).Sub(sixth), wait)
}

func TestScheduleJitterDoesNotAccumulate(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	period := 100 * time.Millisecond
	sched := newSchedule(start, period)

	now := start
	var total time.Duration
	wait := period
	for i := 0; i < 1000; i++ {
		// Every wake-up lands 7ms after it was asked for.
		now = now.Add(wait + 7*time.Millisecond)
		var elapsed time.Duration
		elapsed, wait = sched.fire(now)
		total += elapsed
	}

	assert.Equal(t, now.Sub(start), total)
	drift := now.Sub(start.Add(1000 * period))
	assert.LessOrEqual(t, drift, 7*time.Millisecond)
}

func TestScheduleSuspendedProcessYieldsOneLargeDelta(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sched := newSchedule(start, time.Second)

	elapsed, wait := sched.fire(start.Add(time.Hour))
	assert.Equal(t, time.Hour, elapsed)
	assert.Equal(t, time.Duration(0), wait)
}

func TestScheduleClampsBackwardsTime(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sched := newSchedule(start, time.Second)

	elapsed, _ := sched.fire(start.Add(-time.Second))
	assert.Equal(t, time.Duration(0), elapsed)
}

func TestIntervalFiresAndStops(t *testing.T) {
	interval := New()
	var ticks atomic.Int64
	var mu sync.Mutex
	var total time.Duration

	begin := time.Now()
	interval.Start(5*time.Millisecond, func(elapsed time.Duration) {
		mu.Lock()
		total += elapsed
		mu.Unlock()
		ticks.Add(1)
	})
	require.True(t, interval.Running())

	assert.Eventually(t, func() bool { return ticks.Load() >= 5 }, time.Second, time.Millisecond)

	interval.Stop()
	wall := time.Since(begin)
	require.False(t, interval.Running())

	stopped := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load(), "no callback after Stop returned")

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, total, wall)
}

func TestIntervalStartIsIdempotent(t *testing.T) {
	interval := New()
	var first, second atomic.Int64

	interval.Start(5*time.Millisecond, func(time.Duration) { first.Add(1) })
	interval.Start(5*time.Millisecond, func(time.Duration) { second.Add(1) })

	assert.Eventually(t, func() bool { return first.Load() >= 2 }, time.Second, time.Millisecond)
	interval.Stop()
	assert.Zero(t, second.Load())
}

func TestIntervalStopWithoutStartIsNoop(t *testing.T) {
	interval := New()
	interval.Stop()
	interval.Stop()
	assert.False(t, interval.Running())
}

func TestIntervalRestartsAfterStop(t *testing.T) {
	interval := New()
	var ticks atomic.Int64
	onTick := func(time.Duration) { ticks.Add(1) }

	interval.Start(5*time.Millisecond, onTick)
	assert.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)
	interval.Stop()

	before := ticks.Load()
	interval.Start(5*time.Millisecond, onTick)
	assert.Eventually(t, func() bool { return ticks.Load() > before }, time.Second, time.Millisecond)
	interval.Stop()
}

func TestIntervalStopFromAnotherGoroutine(t *testing.T) {
	interval := New()
	var ticks atomic.Int64
	interval.Start(time.Millisecond, func(time.Duration) {
		ticks.Add(1)
		time.Sleep(2 * time.Millisecond)
	})
	assert.Eventually(t, func() bool { return ticks.Load() >= 1 }, time.Second, time.Millisecond)

	done := make(chan struct{})
	go func() {
		interval.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
	stopped := ticks.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, ticks.Load())
}

func TestWithNowUsesInjectedSource(t *testing.T) {
	var calls atomic.Int64
	base := time.Now()
	interval := New(WithNow(func() time.Time {
		return base.Add(time.Duration(calls.Add(1)) * time.Second)
	}))

	elapsed := make(chan time.Duration, 1)
	interval.Start(time.Millisecond, func(d time.Duration) {
		select {
		case elapsed <- d:
		default:
		}
	})
	defer interval.Stop()

	select {
	case got := <-elapsed:
		assert.Equal(t, time.Second, got)
	case <-time.After(time.Second):
		t.Fatal("no tick")
	}
}
