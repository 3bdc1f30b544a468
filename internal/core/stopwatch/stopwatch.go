package stopwatch

import (
	"sync"
	"time"

	"ticktock/internal/core/clock"
	"ticktock/internal/core/model"
)

// State is a stopwatch reading.
type State struct {
	Elapsed time.Duration
	Running bool
}

// Stopwatch accumulates real elapsed time while running.
type Stopwatch struct {
	lifecycle sync.Mutex
	mu        sync.Mutex
	config    model.StopwatchConfig
	state     State
	clock     *clock.Interval
	events    []chan State
}

// New creates a stopped stopwatch at zero.
func New(config model.StopwatchConfig) *Stopwatch {
	return &Stopwatch{
		config: config.WithDefaults(),
		clock:  clock.New(),
	}
}

// Subscribe registers a channel receiving the state after every change.
func (watch *Stopwatch) Subscribe(buffer int) <-chan State {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan State, buffer)
	watch.mu.Lock()
	watch.events = append(watch.events, ch)
	watch.mu.Unlock()
	return ch
}

// Snapshot returns the current reading.
func (watch *Stopwatch) Snapshot() State {
	watch.mu.Lock()
	defer watch.mu.Unlock()
	return watch.state
}

// Start begins accumulating. Calling it while running is a no-op.
func (watch *Stopwatch) Start() {
	watch.lifecycle.Lock()
	defer watch.lifecycle.Unlock()
	watch.startLocked()
}

// Pause stops accumulating and keeps the reading.
func (watch *Stopwatch) Pause() {
	watch.lifecycle.Lock()
	defer watch.lifecycle.Unlock()
	watch.pauseLocked()
}

// Toggle flips between Start and Pause.
func (watch *Stopwatch) Toggle() {
	watch.lifecycle.Lock()
	defer watch.lifecycle.Unlock()

	if watch.Snapshot().Running {
		watch.pauseLocked()
		return
	}
	watch.startLocked()
}

// Reset stops the stopwatch and clears the reading.
func (watch *Stopwatch) Reset() {
	watch.lifecycle.Lock()
	defer watch.lifecycle.Unlock()

	watch.clock.Stop()
	watch.mu.Lock()
	watch.state = State{}
	watch.emitLocked()
	watch.mu.Unlock()
}

// Tick adds elapsed to the reading while running.
func (watch *Stopwatch) Tick(elapsed time.Duration) {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if !watch.state.Running || elapsed <= 0 {
		return
	}
	watch.state.Elapsed += elapsed
	watch.emitLocked()
}

// Close stops the clock and closes subscriber channels.
func (watch *Stopwatch) Close() {
	watch.lifecycle.Lock()
	watch.clock.Stop()
	watch.lifecycle.Unlock()

	watch.mu.Lock()
	events := watch.events
	watch.events = nil
	watch.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (watch *Stopwatch) startLocked() {
	if !watch.setRunning(true) {
		return
	}
	watch.clock.Start(watch.config.TickInterval, func(elapsed time.Duration) {
		watch.Tick(elapsed)
	})
}

func (watch *Stopwatch) pauseLocked() {
	watch.setRunning(false)
	watch.clock.Stop()
}

func (watch *Stopwatch) setRunning(running bool) bool {
	watch.mu.Lock()
	defer watch.mu.Unlock()

	if watch.state.Running == running {
		return false
	}
	watch.state.Running = running
	watch.emitLocked()
	return true
}

func (watch *Stopwatch) emitLocked() {
	for _, ch := range watch.events {
		select {
		case ch <- watch.state:
		default:
		}
	}
}
