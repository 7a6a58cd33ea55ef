package core

import (
	"sync"
	"time"
)

// DefaultInterval is used when a Loop is given a non-positive interval.
const DefaultInterval = 500 * time.Millisecond

// Loop runs a callback repeatedly, scheduling each run only after the
// previous one has finished. A Loop can be started and stopped any number of
// times; Stop cancels the pending run and invalidates any callback that has
// already been handed to the runtime timer.
type Loop struct {
	fn func()

	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	token    uint64
	running  bool
}

// NewLoop constructs a stopped Loop that calls fn every interval.
func NewLoop(interval time.Duration, fn func()) *Loop {
	l := &Loop{fn: fn}
	l.SetInterval(interval)
	return l
}

// SetInterval changes the delay between runs. The new value applies from the
// next scheduled run.
func (l *Loop) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	l.mu.Lock()
	l.interval = interval
	l.mu.Unlock()
}

// Interval returns the current delay between runs.
func (l *Loop) Interval() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.interval
}

// Start schedules the first run. It is a no-op when already running.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	l.running = true
	l.token++
	l.scheduleLocked(l.token)
}

// Stop cancels the pending run. A callback that is already executing
// finishes, but nothing is scheduled after it.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	l.token++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// Running reports whether the loop is scheduled to keep firing.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) scheduleLocked(token uint64) {
	l.timer = time.AfterFunc(l.interval, func() { l.fire(token) })
}

func (l *Loop) fire(token uint64) {
	if !l.live(token) {
		return
	}
	l.fn()

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running && l.token == token {
		l.scheduleLocked(token)
	}
}

func (l *Loop) live(token uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running && l.token == token
}
