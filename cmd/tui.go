package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ticktock/internal/core/pomodoro"
	"ticktock/internal/core/registry"
	"ticktock/internal/core/stopwatch"
	"ticktock/internal/ui/terminal"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run ticktock in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUICmd,
	}
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	watch := stopwatch.New(settings.StopwatchConfig())
	timers := registry.New(settings.TimersConfig())
	controller := pomodoro.New(settings.PomodoroConfig())
	defer func() {
		watch.Close()
		timers.Close()
		controller.Close()
	}()

	sources := terminal.Sources{
		Stopwatch:      watch,
		Timers:         timers,
		Pomodoro:       controller,
		PomodoroEvents: controller.Subscribe(eventBuffer),
		TimerEvents:    timers.Subscribe(eventBuffer),
	}
	timers.Start()

	model := terminal.NewModel(sources, terminal.TimerDefaults{
		Duration: settings.NewTimerDuration,
		Name:     settings.NewTimerName,
		Running:  settings.NewTimersRunning,
	}, ringBell)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func ringBell() {
	_, _ = fmt.Fprint(os.Stderr, "\a")
}
