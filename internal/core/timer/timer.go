package timer

import (
	"fmt"
	"time"
)

// Status is the lifecycle position of a timer.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusPaused   Status = "paused"
	StatusFinished Status = "finished"
)

// State is a single countdown. Transitions return a new value and never
// mutate the receiver.
type State struct {
	ID        string
	Name      string
	Initial   time.Duration
	Remaining time.Duration
	Running   bool
}

// New creates an idle countdown of the given length.
func New(duration time.Duration, name string) (State, error) {
	if duration <= 0 {
		return State{}, fmt.Errorf("new timer %q: %w", name, ErrInvalidDuration)
	}
	return State{
		Name:      name,
		Initial:   duration,
		Remaining: duration,
	}, nil
}

// Status derives the lifecycle position from the fields.
func (state State) Status() Status {
	switch {
	case state.Remaining <= 0:
		return StatusFinished
	case state.Running:
		return StatusRunning
	case state.Remaining == state.Initial:
		return StatusIdle
	default:
		return StatusPaused
	}
}

// Start marks the timer running. A finished timer stays stopped until reset.
func (state State) Start() State {
	if state.Remaining > 0 {
		state.Running = true
	}
	return state
}

// Pause stops the timer from consuming ticks.
func (state State) Pause() State {
	state.Running = false
	return state
}

// Toggle flips between Start and Pause.
func (state State) Toggle() State {
	if state.Running {
		return state.Pause()
	}
	return state.Start()
}

// Advance consumes delta while running. expired is true only for the advance
// that takes Remaining from above zero to zero or below; that advance clamps
// Remaining to zero and stops the timer.
func (state State) Advance(delta time.Duration) (next State, expired bool) {
	if !state.Running || delta <= 0 {
		return state, false
	}
	before := state.Remaining
	state.Remaining -= delta
	if before > 0 && state.Remaining <= 0 {
		state.Remaining = 0
		state.Running = false
		return state, true
	}
	return state, false
}

// Reset restores the configured length and stops the timer.
func (state State) Reset() State {
	state.Remaining = state.Initial
	state.Running = false
	return state
}

// Edit changes the length and label. A stopped timer is resynchronized to the
// new length; a running one keeps counting, bounded by the new length.
func (state State) Edit(duration time.Duration, name string) (State, error) {
	if duration <= 0 {
		return state, fmt.Errorf("edit timer %q: %w", state.ID, ErrInvalidDuration)
	}
	state.Initial = duration
	state.Name = name
	if !state.Running {
		state.Remaining = duration
	} else if state.Remaining > duration {
		state.Remaining = duration
	}
	return state, nil
}

// Elapsed reports how much of the countdown has been consumed.
func (state State) Elapsed() time.Duration {
	return state.Initial - state.Remaining
}
