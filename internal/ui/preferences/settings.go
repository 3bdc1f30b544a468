package preferences

import (
	"time"

	"ticktock/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes  int
	BreakMinutes int
	Alarm        bool
	Vibration    bool

	NewTimerDuration time.Duration
	NewTimerName     string
	NewTimersRunning bool

	StopwatchTick time.Duration
	TimersTick    time.Duration
	PomodoroTick  time.Duration
}

// DefaultSettings returns default settings for ticktock.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:      model.DefaultWorkMinutes,
		BreakMinutes:     model.DefaultBreakMinutes,
		Alarm:            true,
		Vibration:        true,
		NewTimerDuration: 5 * time.Minute,
		NewTimerName:     "New Timer",
		NewTimersRunning: false,
		StopwatchTick:    model.DefaultStopwatchTick,
		TimersTick:       model.DefaultTimersTick,
		PomodoroTick:     model.DefaultPomodoroTick,
	}
}

// PomodoroConfig converts settings to the pomodoro controller config.
func (settings Settings) PomodoroConfig() model.PomodoroConfig {
	return model.PomodoroConfig{
		WorkMinutes:  settings.WorkMinutes,
		BreakMinutes: settings.BreakMinutes,
		TickInterval: settings.PomodoroTick,
		Cues: model.CueConfig{
			Alarm:     settings.Alarm,
			Vibration: settings.Vibration,
		},
	}.WithDefaults()
}

// TimersConfig converts settings to the timer registry config.
func (settings Settings) TimersConfig() model.TimersConfig {
	return model.TimersConfig{TickInterval: settings.TimersTick}.WithDefaults()
}

// StopwatchConfig converts settings to the stopwatch config.
func (settings Settings) StopwatchConfig() model.StopwatchConfig {
	return model.StopwatchConfig{TickInterval: settings.StopwatchTick}.WithDefaults()
}
