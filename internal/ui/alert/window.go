package alert

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Cue describes one expiry that collaborators should announce.
type Cue struct {
	Title   string
	Message string
	Alarm   bool
	Vibrate bool
}

// Silent reports whether the cue has nothing to announce.
func (cue Cue) Silent() bool {
	return !cue.Alarm && !cue.Vibrate
}

// Window is a small undecorated alert shown when a countdown expires.
type Window struct {
	app          fyne.App
	window       fyne.Window
	titleLabel   *canvas.Text
	messageLabel *canvas.Text
	onDismiss    func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden alert window.
func New(app fyne.App) *Window {
	window := app.NewWindow("ticktock")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	titleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 99, B: 71, A: 255})
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	messageLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	messageLabel.TextSize = 15

	alert := &Window{
		app:          app,
		window:       window,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
	}

	dismiss := widget.NewButton("Dismiss", alert.dismiss)
	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: 217})
	content := container.NewPadded(container.NewVBox(
		titleLabel,
		messageLabel,
		layout.NewSpacer(),
		container.NewHBox(layout.NewSpacer(), dismiss),
	))
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(320, 140))
	window.CenterOnScreen()

	return alert
}

// SetOnDismiss registers a handler run when the user closes the alert.
func (alert *Window) SetOnDismiss(handler func()) {
	alert.onDismiss = handler
}

// Show announces cue. Silent cues are ignored. Must run on the fyne thread.
func (alert *Window) Show(cue Cue) {
	if cue.Silent() {
		return
	}
	if cue.Alarm {
		alert.app.SendNotification(fyne.NewNotification(cue.Title, cue.Message))
	}
	alert.titleLabel.Text = cue.Title
	alert.titleLabel.Refresh()
	alert.messageLabel.Text = cue.Message
	alert.messageLabel.Refresh()
	alert.window.Show()
	if cue.Vibrate {
		alert.window.RequestFocus()
	}
}

// Hide closes the alert without running the dismiss handler.
func (alert *Window) Hide() {
	alert.window.Hide()
}

func (alert *Window) dismiss() {
	alert.window.Hide()
	if alert.onDismiss != nil {
		alert.onDismiss()
	}
}
