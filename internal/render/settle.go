package render

import (
	"sync"
	"time"
)

// DefaultSettleDelay is the quiet period after the last resize event.
const DefaultSettleDelay = 300 * time.Millisecond

// Timer is a pending delayed call.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

// RealAfterFunc wraps time.AfterFunc.
func RealAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Settler debounces resize events. Every Poke marks a resize in progress and
// restarts the quiet period; when the period elapses the resizing flag is
// cleared and onSettle runs once.
type Settler struct {
	mu       sync.Mutex
	delay    time.Duration
	after    AfterFunc
	onSettle func()

	resizing bool
	stopped  bool
	timer    Timer
	token    uint64
}

// NewSettler creates a settler. A zero delay selects DefaultSettleDelay and a
// nil after selects RealAfterFunc.
func NewSettler(delay time.Duration, after AfterFunc, onSettle func()) *Settler {
	if delay <= 0 {
		delay = DefaultSettleDelay
	}
	if after == nil {
		after = RealAfterFunc
	}
	return &Settler{delay: delay, after: after, onSettle: onSettle}
}

// Poke records a resize event. It does nothing after Stop.
func (s *Settler) Poke() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.resizing = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.token++
	token := s.token
	s.timer = s.after(s.delay, func() { s.fire(token) })
}

func (s *Settler) fire(token uint64) {
	s.mu.Lock()
	if token != s.token || !s.resizing {
		// Superseded by a later Poke, or stopped.
		s.mu.Unlock()
		return
	}
	s.resizing = false
	s.timer = nil
	fn := s.onSettle
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Resizing reports whether a resize is in progress.
func (s *Settler) Resizing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resizing
}

// Stop cancels a pending settle without running onSettle. Later Pokes are
// ignored.
func (s *Settler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.token++
	s.resizing = false
	s.stopped = true
}
