package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticktock/internal/ui/preferences"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", settingsFileName)
	settings := preferences.DefaultSettings()
	settings.WorkMinutes = 50
	settings.BreakMinutes = 10
	settings.Alarm = false
	settings.NewTimerDuration = 90 * time.Second
	settings.NewTimerName = "Tea"
	settings.NewTimersRunning = true
	settings.TimersTick = 250 * time.Millisecond

	require.NoError(t, SaveSettingsFile(path, settings))
	loaded, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadIgnoresOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	raw := []byte(`
pomodoro:
  work_minutes: 0
  break_minutes: 90
timers:
  default_seconds: -5
ticks:
  stopwatch_ms: 50
`)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.WorkMinutes, settings.WorkMinutes)
	assert.Equal(t, defaults.BreakMinutes, settings.BreakMinutes)
	assert.Equal(t, defaults.NewTimerDuration, settings.NewTimerDuration)
	assert.Equal(t, defaults.Alarm, settings.Alarm)
	assert.Equal(t, 50*time.Millisecond, settings.StopwatchTick)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("pomodoro: [unclosed"), 0o644))

	settings, err := LoadSettingsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}
