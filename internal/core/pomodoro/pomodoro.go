package pomodoro

import (
	"fmt"
	"sync"
	"time"

	"ticktock/internal/core/clock"
	"ticktock/internal/core/model"
	"ticktock/internal/core/timer"
)

// Controller is a state machine that alternates work and break phases.
type Controller struct {
	lifecycle sync.Mutex
	mu        sync.Mutex
	config    model.PomodoroConfig
	state     State
	residual  time.Duration
	clock     *clock.Interval
	events    []chan Event
	now       func() time.Time
}

// New creates a paused Controller at the start of a work phase.
func New(config model.PomodoroConfig) *Controller {
	controller := &Controller{
		config: config.WithDefaults(),
		clock:  clock.New(),
		now:    time.Now,
	}
	controller.resetLocked()
	return controller
}

// Subscribe registers a new observer channel.
func (controller *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	controller.mu.Lock()
	controller.events = append(controller.events, ch)
	controller.mu.Unlock()
	return ch
}

// Snapshot returns the current state.
func (controller *Controller) Snapshot() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.state
}

// Cues returns the cue preferences attached to expiry events.
func (controller *Controller) Cues() model.CueConfig {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.config.Cues
}

// Start resumes the countdown of the active phase.
func (controller *Controller) Start() {
	controller.lifecycle.Lock()
	defer controller.lifecycle.Unlock()
	controller.startLocked()
}

// Pause freezes the countdown.
func (controller *Controller) Pause() {
	controller.lifecycle.Lock()
	defer controller.lifecycle.Unlock()
	controller.pauseLocked()
}

// Toggle flips between Start and Pause.
func (controller *Controller) Toggle() {
	controller.lifecycle.Lock()
	defer controller.lifecycle.Unlock()

	if controller.Snapshot().Running {
		controller.pauseLocked()
		return
	}
	controller.startLocked()
}

// Skip ends the active phase immediately. It never emits EventExpired.
func (controller *Controller) Skip() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.flipLocked(0)
	controller.residual = 0
	controller.emitLocked(Event{Type: EventPhaseChange})
}

// Reset returns to a paused work phase with the configured default lengths.
func (controller *Controller) Reset() {
	controller.lifecycle.Lock()
	defer controller.lifecycle.Unlock()

	controller.clock.Stop()
	controller.mu.Lock()
	controller.resetLocked()
	controller.emitLocked(Event{Type: EventStateChange})
	controller.mu.Unlock()
}

// SetDuration sets the length of phase in minutes, capped at the maximum.
// Editing the active phase while paused restarts its countdown.
func (controller *Controller) SetDuration(phase Phase, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("set %s duration to %d minutes: %w", phase, minutes, timer.ErrInvalidDuration)
	}

	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.setDurationLocked(phase, model.ClampMinutes(minutes))
	controller.emitLocked(Event{Type: EventStateChange})
	return nil
}

// AdjustDuration adds delta minutes to phase, clamped to the allowed range.
func (controller *Controller) AdjustDuration(phase Phase, delta int) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	minutes := model.ClampMinutes(controller.state.Minutes(phase) + delta)
	controller.setDurationLocked(phase, minutes)
	controller.emitLocked(Event{Type: EventStateChange})
}

// SetAlarm enables or disables the audible cue on expiry.
func (controller *Controller) SetAlarm(enabled bool) {
	controller.mu.Lock()
	controller.config.Cues.Alarm = enabled
	controller.mu.Unlock()
}

// SetVibration enables or disables the haptic cue on expiry.
func (controller *Controller) SetVibration(enabled bool) {
	controller.mu.Lock()
	controller.config.Cues.Vibration = enabled
	controller.mu.Unlock()
}

// UpdateConfig replaces the defaults and cues and applies the new phase
// lengths with the same rules as SetDuration.
func (controller *Controller) UpdateConfig(config model.PomodoroConfig) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.config = config.WithDefaults()
	controller.setDurationLocked(PhaseWork, controller.config.WorkMinutes)
	controller.setDurationLocked(PhaseBreak, controller.config.BreakMinutes)
	controller.emitLocked(Event{Type: EventStateChange})
}

// Tick consumes elapsed while running. Sub-second remainders are carried so
// no time is lost to rounding; every phase boundary crossed emits exactly one
// EventExpired.
func (controller *Controller) Tick(elapsed time.Duration) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if !controller.state.Running || elapsed <= 0 {
		return
	}

	controller.residual += elapsed
	whole := int(controller.residual / time.Second)
	if whole == 0 {
		return
	}
	controller.residual -= time.Duration(whole) * time.Second
	controller.state.RemainingSec -= whole

	for controller.state.RemainingSec <= 0 {
		controller.flipLocked(-controller.state.RemainingSec)
		controller.emitLocked(Event{
			Type:    EventExpired,
			Alarm:   controller.config.Cues.Alarm,
			Vibrate: controller.config.Cues.Vibration,
		})
	}
	controller.emitLocked(Event{Type: EventTick})
}

// Close stops the clock and closes observers.
func (controller *Controller) Close() {
	controller.lifecycle.Lock()
	controller.clock.Stop()
	controller.lifecycle.Unlock()

	controller.mu.Lock()
	events := controller.events
	controller.events = nil
	controller.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (controller *Controller) startLocked() {
	controller.mu.Lock()
	if controller.state.Running {
		controller.mu.Unlock()
		return
	}
	controller.state.Running = true
	period := controller.config.TickInterval
	controller.emitLocked(Event{Type: EventStateChange})
	controller.mu.Unlock()

	controller.clock.Start(period, func(elapsed time.Duration) {
		controller.Tick(elapsed)
	})
}

func (controller *Controller) pauseLocked() {
	controller.mu.Lock()
	wasRunning := controller.state.Running
	controller.state.Running = false
	if wasRunning {
		controller.emitLocked(Event{Type: EventStateChange})
	}
	controller.mu.Unlock()

	controller.clock.Stop()
}

// flipLocked switches to the other phase with overshoot already consumed.
func (controller *Controller) flipLocked(overshootSec int) {
	controller.state.Phase = controller.state.Phase.Other()
	controller.state.RemainingSec = controller.state.Minutes(controller.state.Phase)*60 - overshootSec
}

func (controller *Controller) setDurationLocked(phase Phase, minutes int) {
	if phase == PhaseBreak {
		controller.state.BreakMinutes = minutes
	} else {
		controller.state.WorkMinutes = minutes
	}
	if phase == controller.state.Phase && !controller.state.Running {
		controller.state.RemainingSec = minutes * 60
		controller.residual = 0
	}
}

func (controller *Controller) resetLocked() {
	controller.state = State{
		Phase:        PhaseWork,
		WorkMinutes:  controller.config.WorkMinutes,
		BreakMinutes: controller.config.BreakMinutes,
		RemainingSec: controller.config.WorkMinutes * 60,
	}
	controller.residual = 0
}

func (controller *Controller) emitLocked(event Event) {
	event.State = controller.state
	if event.At.IsZero() {
		event.At = controller.now()
	}
	for _, ch := range controller.events {
		select {
		case ch <- event:
		default:
		}
	}
}
