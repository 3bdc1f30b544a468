package terminal

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticktock/internal/core/model"
	"ticktock/internal/core/pomodoro"
	"ticktock/internal/core/registry"
	"ticktock/internal/core/stopwatch"
	"ticktock/internal/core/timer"
)

func newModel(t *testing.T) (*Model, *int) {
	return newModelWithCues(t, model.CueConfig{Alarm: true})
}

func newModelWithCues(t *testing.T, cues model.CueConfig) (*Model, *int) {
	t.Helper()
	watch := stopwatch.New(model.StopwatchConfig{})
	timers := registry.New(model.TimersConfig{})
	controller := pomodoro.New(model.PomodoroConfig{Cues: cues})
	t.Cleanup(func() {
		watch.Close()
		timers.Close()
		controller.Close()
	})

	rings := 0
	m := NewModel(Sources{
		Stopwatch: watch,
		Timers:    timers,
		Pomodoro:  controller,
	}, TimerDefaults{Duration: 3 * time.Minute, Name: "Tea"}, func() { rings++ })
	return m, &rings
}

func press(m *Model, key string) {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m.Update(msg)
}

func TestTabCyclesViews(t *testing.T) {
	m, _ := newModel(t)
	assert.Equal(t, ViewStopwatch, m.Current())
	press(m, "tab")
	assert.Equal(t, ViewTimers, m.Current())
	press(m, "tab")
	assert.Equal(t, ViewPomodoro, m.Current())
	press(m, "tab")
	assert.Equal(t, ViewStopwatch, m.Current())
}

func TestQuitKey(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStopwatchKeys(t *testing.T) {
	m, _ := newModel(t)
	press(m, " ")
	assert.True(t, m.sources.Stopwatch.Snapshot().Running)
	press(m, "r")
	assert.Equal(t, stopwatch.State{}, m.sources.Stopwatch.Snapshot())
}

func TestTimerKeys(t *testing.T) {
	m, _ := newModel(t)
	press(m, "tab")

	press(m, "a")
	press(m, "a")
	require.Equal(t, 2, m.sources.Timers.Len())
	assert.Equal(t, 1, m.selected)

	press(m, "k")
	assert.Equal(t, 0, m.selected)
	press(m, "k")
	assert.Equal(t, 0, m.selected)

	first := m.timers[0].ID
	press(m, "+")
	state, err := m.sources.Timers.Get(first)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Minute, state.Initial)

	press(m, " ")
	state, _ = m.sources.Timers.Get(first)
	assert.True(t, state.Running)

	press(m, "d")
	assert.Equal(t, 1, m.sources.Timers.Len())
	_, err = m.sources.Timers.Get(first)
	assert.ErrorIs(t, err, timer.ErrNotFound)
}

func TestTimerKeysWithoutTimersAreIgnored(t *testing.T) {
	m, _ := newModel(t)
	press(m, "tab")
	press(m, " ")
	press(m, "d")
	press(m, "j")
	assert.Equal(t, 0, m.sources.Timers.Len())
	assert.Empty(t, m.notice)
}

func TestPomodoroKeys(t *testing.T) {
	m, _ := newModel(t)
	press(m, "tab")
	press(m, "tab")

	press(m, "+")
	press(m, "]")
	state := m.sources.Pomodoro.Snapshot()
	assert.Equal(t, 26, state.WorkMinutes)
	assert.Equal(t, 6, state.BreakMinutes)

	press(m, "s")
	assert.Equal(t, pomodoro.PhaseBreak, m.sources.Pomodoro.Snapshot().Phase)

	press(m, "r")
	state = m.sources.Pomodoro.Snapshot()
	assert.Equal(t, pomodoro.PhaseWork, state.Phase)
	assert.Equal(t, 25, state.WorkMinutes)
}

func TestExpiryRingsAndShowsNotice(t *testing.T) {
	m, rings := newModel(t)

	m.Update(pomodoroMsg{event: pomodoro.Event{
		Type:  pomodoro.EventExpired,
		State: pomodoro.State{Phase: pomodoro.PhaseBreak, RemainingSec: 300},
		Alarm: true,
	}})
	assert.Equal(t, 1, *rings)
	assert.Contains(t, m.notice, "time for a break")

	m.Update(pomodoroMsg{event: pomodoro.Event{Type: pomodoro.EventExpired}})
	assert.Equal(t, 1, *rings)

	m.Update(timersMsg{event: registry.Event{
		Timers:  []timer.State{{ID: "x", Name: "Eggs"}},
		Expired: []string{"x"},
	}})
	assert.Equal(t, 2, *rings)
	assert.Contains(t, m.notice, "Eggs")
}

func TestTimerExpiryIsQuietWithAlarmOff(t *testing.T) {
	m, rings := newModelWithCues(t, model.CueConfig{Vibration: true})

	m.Update(timersMsg{event: registry.Event{
		Timers:  []timer.State{{ID: "x", Name: "Eggs"}},
		Expired: []string{"x"},
	}})
	assert.Equal(t, 0, *rings)
	assert.Contains(t, m.notice, "Eggs")
}

func TestQueuedEventDoesNotUndoKeyPress(t *testing.T) {
	m, _ := newModel(t)
	press(m, "tab")
	press(m, "a")
	before := m.sources.Timers.Snapshot()
	require.Len(t, before, 1)

	queued := registry.Event{Timers: before, At: time.Now().Add(-time.Second)}
	press(m, "d")
	require.Empty(t, m.timers)

	m.Update(timersMsg{event: queued})
	assert.Empty(t, m.timers)

	m.Update(timersMsg{event: registry.Event{Timers: before, At: time.Now().Add(time.Second)}})
	assert.Len(t, m.timers, 1)
}

func TestPomodoroViewShowsRemaining(t *testing.T) {
	m, _ := newModel(t)
	press(m, "tab")
	press(m, "tab")

	m.cycle.RemainingSec = 61
	assert.Contains(t, m.View(), "1:01")
}
