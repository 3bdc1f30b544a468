// Package screens holds the desktop views for the stopwatch, the timer list
// and the pomodoro cycle.
package screens

import (
	"fmt"

	"ticktock/internal/core/clockface"
	"ticktock/internal/core/model"
	"ticktock/internal/core/pomodoro"
	"ticktock/internal/core/registry"
	"ticktock/internal/core/timer"
	"ticktock/internal/ui/alert"
)

func toggleLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Start"
}

// PhaseLabel is the banner shown under the pomodoro clock.
func PhaseLabel(phase pomodoro.Phase) string {
	if phase == pomodoro.PhaseBreak {
		return "RESTING"
	}
	return "WORKING"
}

// SkipLabel names the skip action for the active phase.
func SkipLabel(phase pomodoro.Phase) string {
	if phase == pomodoro.PhaseBreak {
		return "Skip Break"
	}
	return "Skip to Break"
}

// StatusLine is the one-line pomodoro summary used by the tray.
func StatusLine(state pomodoro.State) string {
	return fmt.Sprintf("%s %s", PhaseLabel(state.Phase), clockface.FormatSeconds(state.RemainingSec))
}

func timerTitle(state timer.State) string {
	return fmt.Sprintf("%s (%s)", state.Name, clockface.Format(state.Initial, false))
}

// PomodoroCue converts an expiry event into an alert. Other events yield a
// silent cue.
func PomodoroCue(event pomodoro.Event) alert.Cue {
	if event.Type != pomodoro.EventExpired {
		return alert.Cue{}
	}
	message := "Time for a break."
	if event.State.Phase == pomodoro.PhaseWork {
		message = "Break is over, back to work."
	}
	return alert.Cue{
		Title:   "Pomodoro",
		Message: message,
		Alarm:   event.Alarm,
		Vibrate: event.Vibrate,
	}
}

// TimerCues converts the expiries of one registry tick into alerts.
func TimerCues(event registry.Event, cues model.CueConfig) []alert.Cue {
	if len(event.Expired) == 0 {
		return nil
	}
	names := make(map[string]string, len(event.Timers))
	for _, state := range event.Timers {
		names[state.ID] = state.Name
	}
	out := make([]alert.Cue, 0, len(event.Expired))
	for _, id := range event.Expired {
		out = append(out, alert.Cue{
			Title:   "Timer finished",
			Message: fmt.Sprintf("%s is done.", names[id]),
			Alarm:   cues.Alarm,
			Vibrate: cues.Vibration,
		})
	}
	return out
}
