package screens

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"ticktock/internal/core/clockface"
	"ticktock/internal/core/registry"
	"ticktock/internal/core/timer"
)

// TimerDefaults seeds the add form.
type TimerDefaults struct {
	Duration time.Duration
	Name     string
	Running  bool
}

// Timers renders the timer list with add and edit controls.
type Timers struct {
	registry *registry.Registry
	window   fyne.Window
	defaults TimerDefaults
	timers   []timer.State
	selected string
	list     *widget.List
	name     *widget.Entry
	minutes  *widget.Entry
	save     *widget.Button
	content  fyne.CanvasObject
}

// NewTimers builds the timers tab. window is used as the parent for error dialogs.
func NewTimers(timers *registry.Registry, window fyne.Window, defaults TimerDefaults) *Timers {
	view := &Timers{
		registry: timers,
		window:   window,
		name:     widget.NewEntry(),
		minutes:  widget.NewEntry(),
	}
	view.name.SetPlaceHolder("Name")
	view.minutes.SetPlaceHolder("Minutes")

	view.list = widget.NewList(
		func() int { return len(view.timers) },
		view.newRow,
		view.updateRow,
	)
	view.list.OnSelected = func(index widget.ListItemID) {
		if index < 0 || index >= len(view.timers) {
			return
		}
		state := view.timers[index]
		view.selected = state.ID
		view.name.SetText(state.Name)
		view.minutes.SetText(strconv.Itoa(int(state.Initial / time.Minute)))
		view.save.Enable()
	}
	view.list.OnUnselected = func(widget.ListItemID) {
		view.selected = ""
		view.save.Disable()
	}

	add := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), view.handleAdd)
	view.save = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), view.handleEdit)
	view.save.Disable()

	form := container.NewBorder(nil, nil, nil, container.NewHBox(add, view.save),
		container.NewGridWithColumns(2, view.name, view.minutes))

	view.content = container.NewBorder(
		widget.NewLabelWithStyle("Timers", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		form, nil, nil, view.list,
	)
	view.SetDefaults(defaults)
	view.render(timers.Snapshot())
	return view
}

// Content returns the tab body.
func (view *Timers) Content() fyne.CanvasObject {
	return view.content
}

// SetDefaults replaces the add form defaults.
func (view *Timers) SetDefaults(defaults TimerDefaults) {
	view.defaults = defaults
	if view.selected == "" {
		view.name.SetText(defaults.Name)
		view.minutes.SetText(strconv.Itoa(int(defaults.Duration / time.Minute)))
	}
}

// Follow renders every tick from events until the channel closes.
func (view *Timers) Follow(events <-chan registry.Event) {
	go func() {
		for event := range events {
			fyne.Do(func() {
				view.render(event.Timers)
			})
		}
	}()
}

func (view *Timers) refresh() {
	view.render(view.registry.Snapshot())
}

func (view *Timers) render(timers []timer.State) {
	view.timers = timers
	view.list.Refresh()
}

func (view *Timers) newRow() fyne.CanvasObject {
	title := widget.NewLabel("")
	clock := widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true, Bold: true})
	toggle := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	reset := widget.NewButtonWithIcon("", theme.MediaReplayIcon(), nil)
	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), nil)
	return container.NewHBox(title, layout.NewSpacer(), clock, toggle, reset, remove)
}

func (view *Timers) updateRow(index widget.ListItemID, object fyne.CanvasObject) {
	if index < 0 || index >= len(view.timers) {
		return
	}
	state := view.timers[index]
	row := object.(*fyne.Container)
	title := row.Objects[0].(*widget.Label)
	clock := row.Objects[2].(*widget.Label)
	toggle := row.Objects[3].(*widget.Button)
	reset := row.Objects[4].(*widget.Button)
	remove := row.Objects[5].(*widget.Button)

	title.SetText(timerTitle(state))
	clock.SetText(clockface.Format(state.Remaining, false))

	id := state.ID
	if state.Status() == timer.StatusFinished {
		toggle.SetIcon(theme.MediaStopIcon())
		toggle.OnTapped = func() { view.apply(view.registry.ResetTimer(id)) }
	} else {
		if state.Running {
			toggle.SetIcon(theme.MediaPauseIcon())
		} else {
			toggle.SetIcon(theme.MediaPlayIcon())
		}
		toggle.OnTapped = func() { view.apply(view.registry.ToggleTimer(id)) }
	}

	if state.Elapsed() > 0 {
		reset.Show()
	} else {
		reset.Hide()
	}
	reset.OnTapped = func() { view.apply(view.registry.ResetTimer(id)) }
	remove.OnTapped = func() { view.report(view.registry.Delete(id)) }
}

func (view *Timers) handleAdd() {
	duration, ok := view.formDuration()
	if !ok {
		return
	}
	name := view.name.Text
	if name == "" {
		name = view.defaults.Name
	}
	_, err := view.registry.Add(duration, name, view.defaults.Running)
	view.report(err)
}

func (view *Timers) handleEdit() {
	if view.selected == "" {
		return
	}
	duration, ok := view.formDuration()
	if !ok {
		return
	}
	view.apply(view.registry.EditTimer(view.selected, duration, view.name.Text))
	view.list.UnselectAll()
}

func (view *Timers) formDuration() (time.Duration, bool) {
	minutes, err := strconv.Atoi(view.minutes.Text)
	if err != nil || minutes <= 0 {
		view.report(timer.ErrInvalidDuration)
		return 0, false
	}
	return time.Duration(minutes) * time.Minute, true
}

func (view *Timers) apply(_ timer.State, err error) {
	view.report(err)
}

func (view *Timers) report(err error) {
	if err != nil && view.window != nil {
		dialog.ShowError(err, view.window)
	}
	view.refresh()
}
