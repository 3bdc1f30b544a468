package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticktock/internal/core/model"
)

func newStopwatch(t *testing.T) *Stopwatch {
	t.Helper()
	watch := New(model.StopwatchConfig{TickInterval: 5 * time.Millisecond})
	t.Cleanup(watch.Close)
	return watch
}

func TestTickAccumulatesOnlyWhileRunning(t *testing.T) {
	watch := newStopwatch(t)

	watch.Tick(time.Second)
	assert.Equal(t, time.Duration(0), watch.Snapshot().Elapsed)

	// Mark running without starting the clock so only manual ticks count.
	watch.mu.Lock()
	watch.state.Running = true
	watch.mu.Unlock()

	watch.Tick(1200 * time.Millisecond)
	watch.Tick(300 * time.Millisecond)
	watch.Tick(-time.Second)
	assert.Equal(t, 1500*time.Millisecond, watch.Snapshot().Elapsed)
}

func TestResetClearsAndStops(t *testing.T) {
	watch := newStopwatch(t)
	watch.Start()
	watch.Tick(time.Second)

	watch.Reset()
	state := watch.Snapshot()
	assert.Equal(t, time.Duration(0), state.Elapsed)
	assert.False(t, state.Running)
}

func TestPauseIsIdempotent(t *testing.T) {
	watch := newStopwatch(t)
	watch.Start()
	watch.Pause()
	once := watch.Snapshot()
	watch.Pause()
	assert.Equal(t, once, watch.Snapshot())
}

func TestToggle(t *testing.T) {
	watch := newStopwatch(t)
	watch.Toggle()
	assert.True(t, watch.Snapshot().Running)
	watch.Toggle()
	assert.False(t, watch.Snapshot().Running)
}

func TestClockAccumulatesRealTime(t *testing.T) {
	watch := newStopwatch(t)
	begin := time.Now()
	watch.Start()

	assert.Eventually(t, func() bool {
		return watch.Snapshot().Elapsed >= 20*time.Millisecond
	}, time.Second, time.Millisecond)

	watch.Pause()
	wall := time.Since(begin)
	paused := watch.Snapshot()
	assert.LessOrEqual(t, paused.Elapsed, wall)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, paused, watch.Snapshot())
}

func TestElapsedNeverDecreases(t *testing.T) {
	watch := newStopwatch(t)
	updates := watch.Subscribe(256)
	watch.Start()
	time.Sleep(40 * time.Millisecond)
	watch.Pause()

	var last time.Duration
	for {
		select {
		case state := <-updates:
			require.GreaterOrEqual(t, state.Elapsed, last)
			last = state.Elapsed
		default:
			return
		}
	}
}
