package registry

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"ticktock/internal/core/clock"
	"ticktock/internal/core/model"
	"ticktock/internal/core/timer"
)

// Event is published once per tick with the registry contents after the tick.
type Event struct {
	Timers  []timer.State
	Expired []string
	Elapsed time.Duration
	At      time.Time
}

// Option customizes a Registry.
type Option func(*Registry)

// WithIDGenerator replaces the random id source.
func WithIDGenerator(generator IDGenerator) Option {
	return func(registry *Registry) {
		if generator != nil {
			registry.nextID = generator
		}
	}
}

// WithClock replaces the tick source.
func WithClock(interval *clock.Interval) Option {
	return func(registry *Registry) {
		if interval != nil {
			registry.clock = interval
		}
	}
}

// Registry owns a set of countdowns and advances all running ones together.
type Registry struct {
	mu     sync.RWMutex
	config model.TimersConfig
	timers map[string]timer.State
	order  []string
	nextID IDGenerator
	clock  *clock.Interval
	events []chan Event
	now    func() time.Time
}

// New creates an empty registry. Call Start to begin ticking.
func New(config model.TimersConfig, options ...Option) *Registry {
	config = config.WithDefaults()
	registry := &Registry{
		config: config,
		timers: make(map[string]timer.State),
		nextID: RandomIDs(config.IDLength),
		clock:  clock.New(),
		now:    time.Now,
	}
	for _, option := range options {
		option(registry)
	}
	return registry
}

// Start begins advancing running timers on the registry's own clock.
func (registry *Registry) Start() {
	registry.clock.Start(registry.config.TickInterval, func(elapsed time.Duration) {
		registry.Tick(elapsed)
	})
}

// Stop halts ticking. Timers keep their state and running flags.
func (registry *Registry) Stop() {
	registry.clock.Stop()
}

// Close stops ticking and closes all subscriber channels.
func (registry *Registry) Close() {
	registry.clock.Stop()

	registry.mu.Lock()
	events := registry.events
	registry.events = nil
	registry.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Subscribe registers a channel that receives one Event per tick. Events are
// dropped for subscribers whose buffer is full.
func (registry *Registry) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	registry.mu.Lock()
	registry.events = append(registry.events, ch)
	registry.mu.Unlock()
	return ch
}

// Add creates a timer and returns its id.
func (registry *Registry) Add(duration time.Duration, name string, running bool) (string, error) {
	state, err := timer.New(duration, name)
	if err != nil {
		return "", err
	}
	if running {
		state = state.Start()
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	id, err := registry.freshIDLocked()
	if err != nil {
		return "", err
	}
	state.ID = id
	registry.timers[id] = state
	registry.order = append(registry.order, id)
	return id, nil
}

// Update replaces the stored timer. Fields the caller does not set are not
// carried over. A state with nothing remaining is stored as finished.
func (registry *Registry) Update(id string, state timer.State) error {
	if state.Initial <= 0 {
		return fmt.Errorf("update timer %q: %w", id, timer.ErrInvalidDuration)
	}
	state.ID = id
	if state.Remaining > state.Initial {
		state.Remaining = state.Initial
	}
	if state.Remaining <= 0 {
		state.Remaining = 0
		state.Running = false
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.timers[id]; !ok {
		return fmt.Errorf("update timer %q: %w", id, timer.ErrNotFound)
	}
	registry.timers[id] = state
	return nil
}

// Delete removes a timer.
func (registry *Registry) Delete(id string) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.timers[id]; !ok {
		return fmt.Errorf("delete timer %q: %w", id, timer.ErrNotFound)
	}
	delete(registry.timers, id)
	registry.order = slices.DeleteFunc(registry.order, func(candidate string) bool {
		return candidate == id
	})
	return nil
}

// Get returns a copy of one timer.
func (registry *Registry) Get(id string) (timer.State, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	state, ok := registry.timers[id]
	if !ok {
		return timer.State{}, fmt.Errorf("get timer %q: %w", id, timer.ErrNotFound)
	}
	return state, nil
}

// Snapshot returns all timers in insertion order.
func (registry *Registry) Snapshot() []timer.State {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.snapshotLocked()
}

// Len returns the number of timers.
func (registry *Registry) Len() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.timers)
}

// StartTimer sets a timer running.
func (registry *Registry) StartTimer(id string) (timer.State, error) {
	return registry.modify(id, "start", func(state timer.State) (timer.State, error) {
		return state.Start(), nil
	})
}

// PauseTimer stops a timer from consuming ticks.
func (registry *Registry) PauseTimer(id string) (timer.State, error) {
	return registry.modify(id, "pause", func(state timer.State) (timer.State, error) {
		return state.Pause(), nil
	})
}

// ToggleTimer flips a timer between running and paused.
func (registry *Registry) ToggleTimer(id string) (timer.State, error) {
	return registry.modify(id, "toggle", func(state timer.State) (timer.State, error) {
		return state.Toggle(), nil
	})
}

// ResetTimer restores a timer to its configured length.
func (registry *Registry) ResetTimer(id string) (timer.State, error) {
	return registry.modify(id, "reset", func(state timer.State) (timer.State, error) {
		return state.Reset(), nil
	})
}

// EditTimer changes a timer's length and label.
func (registry *Registry) EditTimer(id string, duration time.Duration, name string) (timer.State, error) {
	return registry.modify(id, "edit", func(state timer.State) (timer.State, error) {
		return state.Edit(duration, name)
	})
}

// Tick advances every running timer by elapsed as one unit and returns the
// ids that expired during this tick.
func (registry *Registry) Tick(elapsed time.Duration) []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	var expired []string
	for _, id := range registry.order {
		state := registry.timers[id]
		if !state.Running {
			continue
		}
		next, fired := state.Advance(elapsed)
		registry.timers[id] = next
		if fired {
			expired = append(expired, id)
		}
	}

	registry.emitLocked(Event{
		Timers:  registry.snapshotLocked(),
		Expired: expired,
		Elapsed: elapsed,
		At:      registry.now(),
	})
	return expired
}

func (registry *Registry) modify(id, op string, change func(timer.State) (timer.State, error)) (timer.State, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	state, ok := registry.timers[id]
	if !ok {
		return timer.State{}, fmt.Errorf("%s timer %q: %w", op, id, timer.ErrNotFound)
	}
	next, err := change(state)
	if err != nil {
		return state, err
	}
	registry.timers[id] = next
	return next, nil
}

func (registry *Registry) freshIDLocked() (string, error) {
	for attempt := 0; attempt < registry.config.MaxIDAttempts; attempt++ {
		id := registry.nextID()
		if id == "" {
			continue
		}
		if _, taken := registry.timers[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("add timer after %d attempts: %w", registry.config.MaxIDAttempts, timer.ErrIDGenerationExhausted)
}

func (registry *Registry) snapshotLocked() []timer.State {
	snapshot := make([]timer.State, 0, len(registry.order))
	for _, id := range registry.order {
		snapshot = append(snapshot, registry.timers[id])
	}
	return snapshot
}

// emitLocked gives every subscriber its own copy of the timer list.
func (registry *Registry) emitLocked(event Event) {
	for _, ch := range registry.events {
		delivered := event
		delivered.Timers = slices.Clone(event.Timers)
		delivered.Expired = slices.Clone(event.Expired)
		select {
		case ch <- delivered:
		default:
		}
	}
}
