package clock

import (
	"sync"
	"time"
)

// DefaultPeriod is used when Start receives a non-positive period.
const DefaultPeriod = time.Second

// TickFunc receives the real time elapsed since the previous firing.
type TickFunc func(elapsed time.Duration)

// Option customizes an Interval.
type Option func(*Interval)

// WithNow replaces the time source used to measure elapsed time.
func WithNow(now func() time.Time) Option {
	return func(interval *Interval) {
		if now != nil {
			interval.now = now
		}
	}
}

// Interval fires a callback on a grid anchored at its start time and reports
// the true elapsed time between firings, so late wake-ups neither shift the
// grid nor lose time.
type Interval struct {
	mu      sync.Mutex
	now     func() time.Time
	stopCh  chan struct{}
	done    chan struct{}
	running bool
}

// New creates a stopped Interval.
func New(options ...Option) *Interval {
	interval := &Interval{now: time.Now}
	for _, option := range options {
		option(interval)
	}
	return interval
}

// Start begins firing onTick roughly every period. It is a no-op while the
// interval is already running.
func (interval *Interval) Start(period time.Duration, onTick TickFunc) {
	if period <= 0 {
		period = DefaultPeriod
	}

	interval.mu.Lock()
	if interval.running {
		interval.mu.Unlock()
		return
	}
	interval.running = true
	interval.stopCh = make(chan struct{})
	interval.done = make(chan struct{})
	stopCh, done := interval.stopCh, interval.done
	interval.mu.Unlock()

	go interval.run(newSchedule(interval.now(), period), onTick, stopCh, done)
}

// Stop halts firing. Once Stop returns, onTick is not invoked again.
// Stop must not be called from inside onTick.
func (interval *Interval) Stop() {
	interval.mu.Lock()
	if !interval.running {
		interval.mu.Unlock()
		return
	}
	interval.running = false
	close(interval.stopCh)
	done := interval.done
	interval.mu.Unlock()

	<-done
}

// Running reports whether the interval is started.
func (interval *Interval) Running() bool {
	interval.mu.Lock()
	defer interval.mu.Unlock()
	return interval.running
}

func (interval *Interval) run(sched *schedule, onTick TickFunc, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	timer := time.NewTimer(sched.period)
	defer timer.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-timer.C:
		}

		select {
		case <-stopCh:
			return
		default:
		}

		elapsed, wait := sched.fire(interval.now())
		timer.Reset(wait)
		onTick(elapsed)
	}
}

// schedule is the drift-free bookkeeping behind Interval.
type schedule struct {
	period   time.Duration
	anchor   time.Time
	deadline time.Time
	last     time.Time
}

func newSchedule(start time.Time, period time.Duration) *schedule {
	return &schedule{
		period:   period,
		anchor:   start,
		deadline: start.Add(period),
		last:     start,
	}
}

// fire records a wake-up at now. It returns the time since the previous
// wake-up and the wait until the next deadline on the anchored grid.
func (sched *schedule) fire(now time.Time) (elapsed, wait time.Duration) {
	elapsed = now.Sub(sched.last)
	if elapsed < 0 {
		elapsed = 0
	}
	sched.last = now
	sched.deadline = sched.deadline.Add(sched.period)
	wait = sched.deadline.Sub(now)
	if wait < 0 {
		wait = 0
	}
	return elapsed, wait
}
