// Package main provides the ticktock entrypoint.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ticktock/internal/storage"
	"ticktock/internal/ui/preferences"
)

const appName = "ticktock"

var (
	configPath   string
	workMinutes  int
	breakMinutes int
	noAlarm      bool
	timerMinutes int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          appName,
		Short:        "Stopwatch, countdown timers and pomodoro",
		SilenceUsage: true,
		RunE:         runDesktopCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "settings file (default: user config dir)")
	flags.IntVar(&workMinutes, "work", 0, "pomodoro work length in minutes")
	flags.IntVar(&breakMinutes, "break", 0, "pomodoro break length in minutes")
	flags.BoolVar(&noAlarm, "no-alarm", false, "disable the alarm cue")
	flags.IntVar(&timerMinutes, "timer", 0, "length of newly added timers in minutes")

	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newCountdownCmd())

	return rootCmd
}

// loadSettings reads the settings file and applies explicitly set flags.
func loadSettings(cmd *cobra.Command) (preferences.Settings, error) {
	var (
		settings preferences.Settings
		err      error
	)
	if configPath != "" {
		settings, err = storage.LoadSettingsFile(configPath)
	} else {
		settings, err = storage.LoadSettings(appName)
	}
	if err != nil {
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("work") {
		settings.WorkMinutes = workMinutes
	}
	if flags.Changed("break") {
		settings.BreakMinutes = breakMinutes
	}
	if flags.Changed("no-alarm") {
		settings.Alarm = !noAlarm
	}
	if flags.Changed("timer") {
		if timerMinutes <= 0 {
			return settings, fmt.Errorf("--timer must be positive, got %d", timerMinutes)
		}
		settings.NewTimerDuration = time.Duration(timerMinutes) * time.Minute
	}
	return settings, nil
}

func saveSettings(settings preferences.Settings) {
	var err error
	if configPath != "" {
		err = storage.SaveSettingsFile(configPath, settings)
	} else {
		err = storage.SaveSettings(appName, settings)
	}
	if err != nil {
		log.Printf("save settings: %v", err)
	}
}
