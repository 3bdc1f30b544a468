package screens

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"ticktock/internal/core/clockface"
	"ticktock/internal/core/stopwatch"
)

// Stopwatch renders a stopwatch with tenths.
type Stopwatch struct {
	watch   *stopwatch.Stopwatch
	clock   *canvas.Text
	toggle  *widget.Button
	content fyne.CanvasObject
}

// NewStopwatch builds the stopwatch tab.
func NewStopwatch(watch *stopwatch.Stopwatch) *Stopwatch {
	view := &Stopwatch{
		watch: watch,
		clock: canvas.NewText("", color.White),
	}
	view.clock.TextSize = 64
	view.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clock.Alignment = fyne.TextAlignCenter

	view.toggle = widget.NewButton("", watch.Toggle)
	reset := widget.NewButton("Reset", watch.Reset)

	view.content = container.NewVBox(
		widget.NewLabelWithStyle("Stopwatch", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		view.clock,
		container.NewCenter(container.NewHBox(view.toggle, reset)),
	)
	view.render(watch.Snapshot())
	return view
}

// Content returns the tab body.
func (view *Stopwatch) Content() fyne.CanvasObject {
	return view.content
}

// Follow renders every update from events until the channel closes.
func (view *Stopwatch) Follow(events <-chan stopwatch.State) {
	go func() {
		for state := range events {
			fyne.Do(func() {
				view.render(state)
			})
		}
	}()
}

func (view *Stopwatch) render(state stopwatch.State) {
	view.clock.Text = clockface.Format(state.Elapsed, true)
	view.clock.Refresh()
	view.toggle.SetText(toggleLabel(state.Running))
}
