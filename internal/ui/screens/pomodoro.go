package screens

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"ticktock/internal/core/clockface"
	"ticktock/internal/core/pomodoro"
)

var (
	workColor  = color.NRGBA{R: 186, G: 73, B: 73, A: 255}
	breakColor = color.NRGBA{R: 56, G: 133, B: 138, A: 255}
)

// Pomodoro renders the work/break cycle.
type Pomodoro struct {
	controller   *pomodoro.Controller
	background   *canvas.Rectangle
	clock        *canvas.Text
	phase        *canvas.Text
	toggle       *widget.Button
	skip         *widget.Button
	workMinutes  *widget.Label
	breakMinutes *widget.Label
	alarm        *widget.Check
	vibration    *widget.Check
	content      fyne.CanvasObject
}

// NewPomodoro builds the pomodoro tab.
func NewPomodoro(controller *pomodoro.Controller) *Pomodoro {
	view := &Pomodoro{
		controller:   controller,
		background:   canvas.NewRectangle(workColor),
		clock:        canvas.NewText("", color.White),
		phase:        canvas.NewText("", color.White),
		workMinutes:  widget.NewLabel(""),
		breakMinutes: widget.NewLabel(""),
	}
	view.clock.TextSize = 64
	view.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clock.Alignment = fyne.TextAlignCenter
	view.phase.TextSize = 32
	view.phase.TextStyle = fyne.TextStyle{Bold: true}
	view.phase.Alignment = fyne.TextAlignCenter

	view.toggle = widget.NewButton("", controller.Toggle)
	view.skip = widget.NewButton("", controller.Skip)
	reset := widget.NewButton("Reset", controller.Reset)

	cues := controller.Cues()
	view.alarm = widget.NewCheck("Alarm", controller.SetAlarm)
	view.alarm.SetChecked(cues.Alarm)
	view.vibration = widget.NewCheck("Vibration", controller.SetVibration)
	view.vibration.SetChecked(cues.Vibration)

	settings := container.NewVBox(
		view.durationRow("Work", pomodoro.PhaseWork, view.workMinutes),
		view.durationRow("Break", pomodoro.PhaseBreak, view.breakMinutes),
		container.NewCenter(container.NewHBox(view.alarm, view.vibration)),
	)

	body := container.NewVBox(
		widget.NewLabelWithStyle("Pomo-do-it", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		settings,
		widget.NewSeparator(),
		view.clock,
		view.phase,
		container.NewCenter(container.NewHBox(view.toggle, view.skip, reset)),
	)
	view.content = container.NewStack(view.background, container.NewPadded(body))
	view.render(controller.Snapshot())
	return view
}

// Content returns the tab body.
func (view *Pomodoro) Content() fyne.CanvasObject {
	return view.content
}

// Follow renders every event until the channel closes. onEvent, when set, runs
// on the fyne thread after rendering.
func (view *Pomodoro) Follow(events <-chan pomodoro.Event, onEvent func(pomodoro.Event)) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				view.render(event.State)
				if onEvent != nil {
					onEvent(event)
				}
			})
		}
	}()
}

func (view *Pomodoro) durationRow(label string, phase pomodoro.Phase, value *widget.Label) fyne.CanvasObject {
	less := widget.NewButton("-", func() { view.controller.AdjustDuration(phase, -1) })
	more := widget.NewButton("+", func() { view.controller.AdjustDuration(phase, 1) })
	return container.NewCenter(container.NewHBox(widget.NewLabel(label), less, value, more))
}

func (view *Pomodoro) render(state pomodoro.State) {
	view.clock.Text = clockface.FormatSeconds(state.RemainingSec)
	view.clock.Refresh()
	view.phase.Text = PhaseLabel(state.Phase)
	view.phase.Refresh()

	if state.Phase == pomodoro.PhaseBreak {
		view.background.FillColor = breakColor
	} else {
		view.background.FillColor = workColor
	}
	view.background.Refresh()

	view.toggle.SetText(toggleLabel(state.Running))
	view.skip.SetText(SkipLabel(state.Phase))
	view.workMinutes.SetText(strconv.Itoa(state.WorkMinutes) + " min")
	view.breakMinutes.SetText(strconv.Itoa(state.BreakMinutes) + " min")
}
