package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	workMinutes  *widget.Entry
	breakMinutes *widget.Entry
	alarm        *widget.Check
	vibration    *widget.Check
	timerMinutes *widget.Entry
	timerName    *widget.Entry
	autoStart    *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("ticktock Settings")

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		workMinutes:  widget.NewEntry(),
		breakMinutes: widget.NewEntry(),
		alarm:        widget.NewCheck("Play alarm when a phase ends", nil),
		vibration:    widget.NewCheck("Vibrate when a phase ends", nil),
		timerMinutes: widget.NewEntry(),
		timerName:    widget.NewEntry(),
		autoStart:    widget.NewCheck("Start new timers immediately", nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Pomodoro", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), prefs.workMinutes, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break"), prefs.breakMinutes, widget.NewLabel("min")),
		prefs.alarm,
		prefs.vibration,
		widget.NewLabelWithStyle("Timers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("New timer length"), prefs.timerMinutes, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("New timer name"), prefs.timerName),
		prefs.autoStart,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 360))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workMinutes.SetText(strconv.Itoa(settings.WorkMinutes))
	prefs.breakMinutes.SetText(strconv.Itoa(settings.BreakMinutes))
	prefs.alarm.SetChecked(settings.Alarm)
	prefs.vibration.SetChecked(settings.Vibration)
	prefs.timerMinutes.SetText(fmt.Sprintf("%d", int(settings.NewTimerDuration.Minutes())))
	prefs.timerName.SetText(settings.NewTimerName)
	prefs.autoStart.SetChecked(settings.NewTimersRunning)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workMinutes.Text); ok {
		settings.WorkMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.breakMinutes.Text); ok {
		settings.BreakMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.timerMinutes.Text); ok {
		settings.NewTimerDuration = time.Duration(minutes) * time.Minute
	}
	if prefs.timerName.Text != "" {
		settings.NewTimerName = prefs.timerName.Text
	}
	settings.Alarm = prefs.alarm.Checked
	settings.Vibration = prefs.vibration.Checked
	settings.NewTimersRunning = prefs.autoStart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
