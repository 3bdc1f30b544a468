package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ticktock/internal/core/model"
	"ticktock/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Pomodoro yamlPomodoro `yaml:"pomodoro"`
	Timers   yamlTimers   `yaml:"timers"`
	Ticks    yamlTicks    `yaml:"ticks"`
}

type yamlPomodoro struct {
	WorkMinutes  int   `yaml:"work_minutes"`
	BreakMinutes int   `yaml:"break_minutes"`
	Alarm        *bool `yaml:"alarm"`
	Vibration    *bool `yaml:"vibration"`
}

type yamlTimers struct {
	DefaultSeconds int    `yaml:"default_seconds"`
	DefaultName    string `yaml:"default_name"`
	StartRunning   bool   `yaml:"start_running"`
}

type yamlTicks struct {
	StopwatchMillis int `yaml:"stopwatch_ms"`
	TimersMillis    int `yaml:"timers_ms"`
	PomodoroMillis  int `yaml:"pomodoro_ms"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from an explicit path.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to an explicit path.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	alarm, vibration := settings.Alarm, settings.Vibration
	fileData := yamlSettings{
		Pomodoro: yamlPomodoro{
			WorkMinutes:  settings.WorkMinutes,
			BreakMinutes: settings.BreakMinutes,
			Alarm:        &alarm,
			Vibration:    &vibration,
		},
		Timers: yamlTimers{
			DefaultSeconds: int(settings.NewTimerDuration / time.Second),
			DefaultName:    settings.NewTimerName,
			StartRunning:   settings.NewTimersRunning,
		},
		Ticks: yamlTicks{
			StopwatchMillis: int(settings.StopwatchTick / time.Millisecond),
			TimersMillis:    int(settings.TimersTick / time.Millisecond),
			PomodoroMillis:  int(settings.PomodoroTick / time.Millisecond),
		},
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns the settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if validMinutes(fileData.Pomodoro.WorkMinutes) {
		settings.WorkMinutes = fileData.Pomodoro.WorkMinutes
	}
	if validMinutes(fileData.Pomodoro.BreakMinutes) {
		settings.BreakMinutes = fileData.Pomodoro.BreakMinutes
	}
	if fileData.Pomodoro.Alarm != nil {
		settings.Alarm = *fileData.Pomodoro.Alarm
	}
	if fileData.Pomodoro.Vibration != nil {
		settings.Vibration = *fileData.Pomodoro.Vibration
	}

	if fileData.Timers.DefaultSeconds > 0 {
		settings.NewTimerDuration = time.Duration(fileData.Timers.DefaultSeconds) * time.Second
	}
	if fileData.Timers.DefaultName != "" {
		settings.NewTimerName = fileData.Timers.DefaultName
	}
	settings.NewTimersRunning = fileData.Timers.StartRunning

	if fileData.Ticks.StopwatchMillis > 0 {
		settings.StopwatchTick = time.Duration(fileData.Ticks.StopwatchMillis) * time.Millisecond
	}
	if fileData.Ticks.TimersMillis > 0 {
		settings.TimersTick = time.Duration(fileData.Ticks.TimersMillis) * time.Millisecond
	}
	if fileData.Ticks.PomodoroMillis > 0 {
		settings.PomodoroTick = time.Duration(fileData.Ticks.PomodoroMillis) * time.Millisecond
	}
}

func validMinutes(minutes int) bool {
	return minutes >= model.MinPhaseMinutes && minutes <= model.MaxPhaseMinutes
}
