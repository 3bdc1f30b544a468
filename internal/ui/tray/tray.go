package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggle      func()
	OnSkip        func()
	OnReset       func()
	OnQuit        func()
}

// Manager handles system tray state for the pomodoro cycle.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	skipItem    *fyne.MenuItem
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "ready",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))
	manager.skipItem = fyne.NewMenuItem("Skip to Break", invoke(&manager.callbacks.OnSkip))

	manager.refresh()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refresh()
}

// SetRunning updates the start/pause item and the tray icon.
func (manager *Manager) SetRunning(running bool) {
	if manager.running == running {
		return
	}
	manager.running = running
	manager.refresh()
}

// SetWorkPhase updates the skip item label.
func (manager *Manager) SetWorkPhase(work bool) {
	label := "Skip Break"
	if work {
		label = "Skip to Break"
	}
	if manager.skipItem.Label == label {
		return
	}
	manager.skipItem.Label = label
	manager.refresh()
}

func (manager *Manager) refresh() {
	status := manager.statusLabel
	if !manager.running {
		status = fmt.Sprintf("%s (paused)", status)
		manager.toggleItem.Label = "Start"
	} else {
		manager.toggleItem.Label = "Pause"
	}
	manager.statusItem.Label = fmt.Sprintf("Pomodoro: %s", status)

	if manager.app == nil {
		return
	}
	if manager.running {
		manager.app.SetSystemTrayIcon(theme.MediaPlayIcon())
	} else {
		manager.app.SetSystemTrayIcon(theme.MediaPauseIcon())
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("ticktock",
		manager.statusItem,
		manager.toggleItem,
		manager.skipItem,
		fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}

func invoke(callback *func()) func() {
	return func() {
		if *callback != nil {
			(*callback)()
		}
	}
}
