package screens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticktock/internal/core/model"
	"ticktock/internal/core/pomodoro"
	"ticktock/internal/core/registry"
	"ticktock/internal/core/timer"
)

func TestPhaseLabels(t *testing.T) {
	assert.Equal(t, "WORKING", PhaseLabel(pomodoro.PhaseWork))
	assert.Equal(t, "RESTING", PhaseLabel(pomodoro.PhaseBreak))
	assert.Equal(t, "Skip to Break", SkipLabel(pomodoro.PhaseWork))
	assert.Equal(t, "Skip Break", SkipLabel(pomodoro.PhaseBreak))
	assert.Equal(t, "Pause", toggleLabel(true))
	assert.Equal(t, "Start", toggleLabel(false))
}

func TestStatusLine(t *testing.T) {
	line := StatusLine(pomodoro.State{Phase: pomodoro.PhaseBreak, RemainingSec: 299})
	assert.Equal(t, "RESTING 4:59", line)
}

func TestTimerTitle(t *testing.T) {
	assert.Equal(t, "Tea (5:00)", timerTitle(timer.State{Name: "Tea", Initial: 5 * time.Minute}))
}

func TestPomodoroCue(t *testing.T) {
	assert.True(t, PomodoroCue(pomodoro.Event{Type: pomodoro.EventTick, Alarm: true}).Silent())

	cue := PomodoroCue(pomodoro.Event{
		Type:  pomodoro.EventExpired,
		State: pomodoro.State{Phase: pomodoro.PhaseBreak},
		Alarm: true,
	})
	assert.False(t, cue.Silent())
	assert.Equal(t, "Time for a break.", cue.Message)

	cue = PomodoroCue(pomodoro.Event{
		Type:    pomodoro.EventExpired,
		State:   pomodoro.State{Phase: pomodoro.PhaseWork},
		Vibrate: true,
	})
	assert.Equal(t, "Break is over, back to work.", cue.Message)
	assert.False(t, cue.Alarm)
}

func TestTimerCues(t *testing.T) {
	assert.Nil(t, TimerCues(registry.Event{}, model.CueConfig{Alarm: true}))

	cues := TimerCues(registry.Event{
		Timers:  []timer.State{{ID: "a", Name: "Tea"}, {ID: "b", Name: "Eggs"}},
		Expired: []string{"b"},
	}, model.CueConfig{Alarm: true})
	require.Len(t, cues, 1)
	assert.Equal(t, "Eggs is done.", cues[0].Message)
	assert.True(t, cues[0].Alarm)
}
