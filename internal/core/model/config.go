package model

import "time"

// Default tick cadences. The stopwatch shows tenths, so it ticks faster.
const (
	DefaultStopwatchTick = 100 * time.Millisecond
	DefaultTimersTick    = 100 * time.Millisecond
	DefaultPomodoroTick  = 250 * time.Millisecond
)

// Pomodoro phase bounds in minutes.
const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
	MinPhaseMinutes     = 1
	MaxPhaseMinutes     = 60
)

// Timer ID defaults.
const (
	DefaultIDLength      = 16
	DefaultMaxIDAttempts = 64
)

// StopwatchConfig contains runtime settings for the stopwatch.
type StopwatchConfig struct {
	TickInterval time.Duration
}

// TimersConfig contains runtime settings for the timer registry.
type TimersConfig struct {
	TickInterval  time.Duration
	IDLength      int
	MaxIDAttempts int
}

// CueConfig selects which cues accompany an expiry.
type CueConfig struct {
	Alarm     bool
	Vibration bool
}

// PomodoroConfig contains runtime settings for the work/break cycle.
type PomodoroConfig struct {
	WorkMinutes  int
	BreakMinutes int
	TickInterval time.Duration
	Cues         CueConfig
}

// WithDefaults fills zero values.
func (config StopwatchConfig) WithDefaults() StopwatchConfig {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultStopwatchTick
	}
	return config
}

// WithDefaults fills zero values.
func (config TimersConfig) WithDefaults() TimersConfig {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTimersTick
	}
	if config.IDLength <= 0 {
		config.IDLength = DefaultIDLength
	}
	if config.MaxIDAttempts <= 0 {
		config.MaxIDAttempts = DefaultMaxIDAttempts
	}
	return config
}

// WithDefaults fills zero values and clamps phase lengths.
func (config PomodoroConfig) WithDefaults() PomodoroConfig {
	if config.WorkMinutes <= 0 {
		config.WorkMinutes = DefaultWorkMinutes
	}
	if config.BreakMinutes <= 0 {
		config.BreakMinutes = DefaultBreakMinutes
	}
	config.WorkMinutes = ClampMinutes(config.WorkMinutes)
	config.BreakMinutes = ClampMinutes(config.BreakMinutes)
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultPomodoroTick
	}
	return config
}

// ClampMinutes bounds a phase length to [MinPhaseMinutes, MaxPhaseMinutes].
func ClampMinutes(minutes int) int {
	if minutes < MinPhaseMinutes {
		return MinPhaseMinutes
	}
	if minutes > MaxPhaseMinutes {
		return MaxPhaseMinutes
	}
	return minutes
}
