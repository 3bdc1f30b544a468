// Package terminal provides the Bubble Tea frontend for the stopwatch, the
// timer list and the pomodoro cycle.
package terminal

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ticktock/internal/core/clockface"
	"ticktock/internal/core/pomodoro"
	"ticktock/internal/core/registry"
	"ticktock/internal/core/stopwatch"
	"ticktock/internal/core/timer"
)

const refreshInterval = 100 * time.Millisecond

// View selects the visible screen.
type View int

const (
	ViewStopwatch View = iota
	ViewTimers
	ViewPomodoro
	viewCount
)

func (view View) String() string {
	switch view {
	case ViewTimers:
		return "Timers"
	case ViewPomodoro:
		return "Pomodoro"
	default:
		return "Stopwatch"
	}
}

// TimerDefaults seeds timers added with the add key.
type TimerDefaults struct {
	Duration time.Duration
	Name     string
	Running  bool
}

// Sources bundles the engine components rendered by the model.
type Sources struct {
	Stopwatch      *stopwatch.Stopwatch
	Timers         *registry.Registry
	Pomodoro       *pomodoro.Controller
	PomodoroEvents <-chan pomodoro.Event
	TimerEvents    <-chan registry.Event
}

type refreshMsg time.Time

type pomodoroMsg struct {
	event pomodoro.Event
}

type timersMsg struct {
	event registry.Event
}

// Model implements the Bubble Tea interface.
type Model struct {
	sources  Sources
	defaults TimerDefaults
	ring     func()
	now      func() time.Time

	view     View
	selected int
	notice   string
	width    int
	height   int

	watch       stopwatch.State
	timers      []timer.State
	cycle       pomodoro.State
	refreshedAt time.Time
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Padding(0, 1)
	activeTab     = tabStyle.Bold(true).Foreground(lipgloss.Color("#F0F0F0")).Underline(true)
	clockStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	workStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6347"))
	breakStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#38858A"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	finishedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a terminal model. ring is called for every expiry that
// asks for an alarm and may be nil.
func NewModel(sources Sources, defaults TimerDefaults, ring func()) *Model {
	m := &Model{
		sources:  sources,
		defaults: defaults,
		ring:     ring,
		now:      time.Now,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		scheduleRefresh(),
		waitForPomodoro(m.sources.PomodoroEvents),
		waitForTimers(m.sources.TimerEvents),
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case refreshMsg:
		m.refresh()
		return m, scheduleRefresh()
	case pomodoroMsg:
		m.handlePomodoro(msg.event)
		return m, waitForPomodoro(m.sources.PomodoroEvents)
	case timersMsg:
		m.handleTimers(msg.event)
		return m, waitForTimers(m.sources.TimerEvents)
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.view {
	case ViewTimers:
		body = m.renderTimers()
	case ViewPomodoro:
		body = m.renderPomodoro()
	default:
		body = m.renderStopwatch()
	}

	sections := []string{m.renderTabs(), "", body, ""}
	if m.notice != "" {
		sections = append(sections, m.notice)
	}
	sections = append(sections, footerStyle.Render(m.help()))
	content := strings.Join(sections, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Current returns the visible view.
func (m *Model) Current() View {
	return m.view
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "tab":
		m.view = (m.view + 1) % viewCount
	case "shift+tab":
		m.view = (m.view + viewCount - 1) % viewCount
	case "esc":
		m.notice = ""
	default:
		switch m.view {
		case ViewStopwatch:
			m.stopwatchKey(key)
		case ViewTimers:
			m.timersKey(key)
		case ViewPomodoro:
			m.pomodoroKey(key)
		}
	}
	m.refresh()
	return nil
}

func (m *Model) stopwatchKey(key string) {
	watch := m.sources.Stopwatch
	switch key {
	case " ":
		watch.Toggle()
	case "r":
		watch.Reset()
	}
}

func (m *Model) timersKey(key string) {
	timers := m.sources.Timers
	switch key {
	case "a":
		_, err := timers.Add(m.defaults.Duration, m.defaults.Name, m.defaults.Running)
		m.report(err)
		m.selected = timers.Len() - 1
		return
	case "j", "down":
		m.moveSelection(1)
		return
	case "k", "up":
		m.moveSelection(-1)
		return
	}

	id, ok := m.selectedID()
	if !ok {
		return
	}
	switch key {
	case " ":
		state, err := timers.Get(id)
		if err == nil && state.Status() == timer.StatusFinished {
			_, err = timers.ResetTimer(id)
		} else if err == nil {
			_, err = timers.ToggleTimer(id)
		}
		m.report(err)
	case "r":
		_, err := timers.ResetTimer(id)
		m.report(err)
	case "d":
		m.report(timers.Delete(id))
	case "+", "=":
		m.adjustTimer(id, time.Minute)
	case "-":
		m.adjustTimer(id, -time.Minute)
	}
}

func (m *Model) pomodoroKey(key string) {
	controller := m.sources.Pomodoro
	switch key {
	case " ":
		controller.Toggle()
	case "r":
		controller.Reset()
	case "s":
		controller.Skip()
	case "+", "=":
		controller.AdjustDuration(pomodoro.PhaseWork, 1)
	case "-":
		controller.AdjustDuration(pomodoro.PhaseWork, -1)
	case "]":
		controller.AdjustDuration(pomodoro.PhaseBreak, 1)
	case "[":
		controller.AdjustDuration(pomodoro.PhaseBreak, -1)
	}
}

func (m *Model) adjustTimer(id string, delta time.Duration) {
	state, err := m.sources.Timers.Get(id)
	if err != nil {
		m.report(err)
		return
	}
	duration := state.Initial + delta
	if duration <= 0 {
		return
	}
	_, err = m.sources.Timers.EditTimer(id, duration, state.Name)
	m.report(err)
}

func (m *Model) moveSelection(delta int) {
	if len(m.timers) == 0 {
		m.selected = 0
		return
	}
	m.selected = min(max(m.selected+delta, 0), len(m.timers)-1)
}

func (m *Model) selectedID() (string, bool) {
	if m.selected < 0 || m.selected >= len(m.timers) {
		return "", false
	}
	return m.timers[m.selected].ID, true
}

func (m *Model) handlePomodoro(event pomodoro.Event) {
	if m.fresh(event.At) {
		m.cycle = event.State
	}
	if event.Type != pomodoro.EventExpired {
		return
	}
	if event.State.Phase == pomodoro.PhaseBreak {
		m.notice = workStyle.Render("Work phase over, time for a break.")
	} else {
		m.notice = breakStyle.Render("Break is over, back to work.")
	}
	if event.Alarm {
		m.ringBell()
	}
}

func (m *Model) handleTimers(event registry.Event) {
	if m.fresh(event.At) {
		m.timers = event.Timers
		m.clampSelection()
	}
	if len(event.Expired) == 0 {
		return
	}
	names := make([]string, 0, len(event.Expired))
	for _, id := range event.Expired {
		for _, state := range event.Timers {
			if state.ID == id {
				names = append(names, state.Name)
			}
		}
	}
	m.notice = finishedStyle.Render(fmt.Sprintf("Done: %s", strings.Join(names, ", ")))
	if m.sources.Pomodoro != nil && m.sources.Pomodoro.Cues().Alarm {
		m.ringBell()
	}
}

// fresh reports whether an event was published after the last snapshot read.
func (m *Model) fresh(at time.Time) bool {
	return !at.Before(m.refreshedAt)
}

func (m *Model) ringBell() {
	if m.ring != nil {
		m.ring()
	}
}

func (m *Model) report(err error) {
	if err != nil {
		m.notice = finishedStyle.Render(err.Error())
	}
}

func (m *Model) refresh() {
	m.refreshedAt = m.now()
	if m.sources.Stopwatch != nil {
		m.watch = m.sources.Stopwatch.Snapshot()
	}
	if m.sources.Timers != nil {
		m.timers = m.sources.Timers.Snapshot()
		m.clampSelection()
	}
	if m.sources.Pomodoro != nil {
		m.cycle = m.sources.Pomodoro.Snapshot()
	}
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.timers) {
		m.selected = len(m.timers) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, viewCount)
	for view := ViewStopwatch; view < viewCount; view++ {
		style := tabStyle
		if view == m.view {
			style = activeTab
		}
		tabs = append(tabs, style.Render(view.String()))
	}
	return titleStyle.Render("ticktock") + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderStopwatch() string {
	state := "paused"
	if m.watch.Running {
		state = "running"
	}
	return clockStyle.Render(clockface.Format(m.watch.Elapsed, true)) + "  " + state
}

func (m *Model) renderTimers() string {
	if len(m.timers) == 0 {
		return "No timers. Press a to add one."
	}
	lines := make([]string, 0, len(m.timers))
	for index, state := range m.timers {
		line := fmt.Sprintf("%-20s %8s  %s", state.Name, clockface.Format(state.Remaining, false), state.Status())
		switch {
		case state.Status() == timer.StatusFinished:
			line = finishedStyle.Render(line)
		case index == m.selected:
			line = selectedStyle.Render(line)
		}
		if index == m.selected {
			line = "> " + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPomodoro() string {
	phase := workStyle.Render("WORKING")
	if m.cycle.Phase == pomodoro.PhaseBreak {
		phase = breakStyle.Render("RESTING")
	}
	status := "paused"
	if m.cycle.Running {
		status = "running"
	}
	return strings.Join([]string{
		phase,
		clockStyle.Render(clockface.Format(m.cycle.Remaining(), false)) + "  " + status,
		fmt.Sprintf("work %d min  break %d min", m.cycle.WorkMinutes, m.cycle.BreakMinutes),
	}, "\n")
}

func (m *Model) help() string {
	switch m.view {
	case ViewTimers:
		return "tab view  a add  j/k select  space start/pause  r reset  +/- length  d delete  q quit"
	case ViewPomodoro:
		return "tab view  space start/pause  s skip  r reset  +/- work  [/] break  q quit"
	default:
		return "tab view  space start/pause  r reset  q quit"
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(at time.Time) tea.Msg {
		return refreshMsg(at)
	})
}

func waitForPomodoro(events <-chan pomodoro.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return pomodoroMsg{event: event}
	}
}

func waitForTimers(events <-chan registry.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return timersMsg{event: event}
	}
}
