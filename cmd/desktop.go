package main

import (
	"errors"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"

	"ticktock/internal/core/pomodoro"
	"ticktock/internal/core/registry"
	"ticktock/internal/core/stopwatch"
	"ticktock/internal/platform"
	"ticktock/internal/ui/alert"
	"ticktock/internal/ui/preferences"
	"ticktock/internal/ui/screens"
	"ticktock/internal/ui/tray"
)

const eventBuffer = 32

func runDesktopCmd(cmd *cobra.Command, _ []string) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v", err)
			if err := platform.Activate(appName); err != nil {
				log.Printf("activate running instance: %v", err)
			}
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()
	log.Printf("single instance: holding %s", guard.Address())

	settings, err := loadSettings(cmd)
	if err != nil {
		log.Printf("%v, using defaults", err)
	}

	watch := stopwatch.New(settings.StopwatchConfig())
	timers := registry.New(settings.TimersConfig())
	controller := pomodoro.New(settings.PomodoroConfig())
	timers.Start()
	defer func() {
		watch.Close()
		timers.Close()
		controller.Close()
	}()

	fyneApp := app.NewWithID("dev.ticktock.app")
	fyneApp.SetIcon(theme.HistoryIcon())

	mainWindow := fyneApp.NewWindow("ticktock")
	alertWindow := alert.New(fyneApp)

	stopwatchView := screens.NewStopwatch(watch)
	timersView := screens.NewTimers(timers, mainWindow, timerDefaults(settings))
	pomodoroView := screens.NewPomodoro(controller)

	mainWindow.SetContent(container.NewAppTabs(
		container.NewTabItemWithIcon("Stopwatch", theme.HistoryIcon(), stopwatchView.Content()),
		container.NewTabItemWithIcon("Timers", theme.ListIcon(), timersView.Content()),
		container.NewTabItemWithIcon("Pomodoro", theme.MediaPlayIcon(), pomodoroView.Content()),
	))
	mainWindow.Resize(fyne.NewSize(420, 520))

	showMain := func() {
		mainWindow.Show()
		mainWindow.RequestFocus()
	}
	guard.Serve(func() {
		fyne.Do(showMain)
	})
	alertWindow.SetOnDismiss(showMain)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		controller.UpdateConfig(settings.PomodoroConfig())
		timersView.SetDefaults(timerDefaults(settings))
		saveSettings(settings)
	})

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        showMain,
			OnPreferences: prefsWindow.Show,
			OnToggle:      controller.Toggle,
			OnSkip:        controller.Skip,
			OnReset:       controller.Reset,
			OnQuit:        fyneApp.Quit,
		})
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	stopwatchView.Follow(watch.Subscribe(eventBuffer))
	timersView.Follow(timers.Subscribe(eventBuffer))
	pomodoroView.Follow(controller.Subscribe(eventBuffer), func(event pomodoro.Event) {
		if trayManager != nil {
			trayManager.SetRunning(event.State.Running)
			trayManager.SetWorkPhase(event.State.Phase == pomodoro.PhaseWork)
			trayManager.SetStatus(screens.StatusLine(event.State))
		}
		alertWindow.Show(screens.PomodoroCue(event))
	})

	timerAlerts := timers.Subscribe(eventBuffer)
	go func() {
		for event := range timerAlerts {
			cues := screens.TimerCues(event, controller.Cues())
			if len(cues) == 0 {
				continue
			}
			fyne.Do(func() {
				for _, cue := range cues {
					alertWindow.Show(cue)
				}
			})
		}
	}()

	mainWindow.Show()
	fyneApp.Run()
	return nil
}

func timerDefaults(settings preferences.Settings) screens.TimerDefaults {
	return screens.TimerDefaults{
		Duration: settings.NewTimerDuration,
		Name:     settings.NewTimerName,
		Running:  settings.NewTimersRunning,
	}
}
