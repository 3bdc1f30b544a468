package pomodoro

import "time"

// Phase is one half of the work/break cycle.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Other returns the phase that follows p.
func (phase Phase) Other() Phase {
	if phase == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// State is a snapshot of the cycle.
type State struct {
	Phase        Phase
	WorkMinutes  int
	BreakMinutes int
	RemainingSec int
	Running      bool
}

// Minutes returns the configured length of phase.
func (state State) Minutes(phase Phase) int {
	if phase == PhaseBreak {
		return state.BreakMinutes
	}
	return state.WorkMinutes
}

// Remaining returns RemainingSec as a duration.
func (state State) Remaining() time.Duration {
	return time.Duration(state.RemainingSec) * time.Second
}

// EventType defines the type of Controller event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventStateChange EventType = "state_change"
	EventPhaseChange EventType = "phase_change"
	EventExpired     EventType = "expired"
)

// Event represents a Controller update for observers. Alarm and Vibrate are
// only meaningful on EventExpired.
type Event struct {
	Type    EventType
	State   State
	Alarm   bool
	Vibrate bool
	At      time.Time
}
