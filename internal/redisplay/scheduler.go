// Package redisplay debounces the per-surface redraw that follows a page
// change.
//
// Each surface gets an independent one-shot timer; scheduling again for the
// same surface before its timer fires cancels the pending request, so only
// the most recent (surface, page) pair is ever delivered. The delay exists to
// let the viewer's rendering pipeline settle after a page change, not to
// batch surfaces together.
package redisplay

import (
	"sync"
	"time"

	"github.com/dshills/pagesync/internal/surface"
)

// DefaultDelay is the redisplay delay used when none is configured.
const DefaultDelay = time.Millisecond

// Timer is the cancellation handle of a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the callback was prevented
	// from running.
	Stop() bool
}

// AfterFunc schedules fn to run after d and returns its cancellation handle.
// Implementations must not invoke fn synchronously from within AfterFunc.
type AfterFunc func(d time.Duration, fn func()) Timer

// stdAfter schedules on the runtime timer heap.
func stdAfter(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type pending struct {
	timer Timer
}

// Scheduler owns the pending redisplay timers, at most one per surface
// identity.
type Scheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	after   AfterFunc
	waiting map[surface.ID]*pending
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithAfterFunc replaces the timer source. Tests use this to fire timers
// deterministically without sleeping.
func WithAfterFunc(after AfterFunc) Option {
	return func(s *Scheduler) {
		s.after = after
	}
}

// NewScheduler creates a scheduler with the given debounce delay. A delay
// of zero or below falls back to DefaultDelay.
func NewScheduler(delay time.Duration, opts ...Option) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	s := &Scheduler{
		delay:   delay,
		after:   stdAfter,
		waiting: make(map[surface.ID]*pending),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule arranges for fn(page) to run after the debounce delay if s is
// still live when the timer fires. A pending request for the same surface is
// cancelled and replaced. A dead surface at fire time is a silent drop.
func (sc *Scheduler) Schedule(s surface.Surface, page int, fn func(page int)) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	id := s.ID()
	if old, ok := sc.waiting[id]; ok {
		old.timer.Stop()
	}

	p := &pending{}
	p.timer = sc.after(sc.delay, func() {
		sc.fire(id, p, s, page, fn)
	})
	sc.waiting[id] = p
}

// fire delivers one scheduled redisplay unless it has been superseded.
func (sc *Scheduler) fire(id surface.ID, p *pending, s surface.Surface, page int, fn func(int)) {
	sc.mu.Lock()
	current, ok := sc.waiting[id]
	if !ok || current != p {
		// Replaced or cancelled after this timer was already committed.
		sc.mu.Unlock()
		return
	}
	delete(sc.waiting, id)
	sc.mu.Unlock()

	if !s.Live() {
		return
	}
	fn(page)
}

// Cancel drops the pending redisplay for a surface, if any.
func (sc *Scheduler) Cancel(id surface.ID) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	p, ok := sc.waiting[id]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(sc.waiting, id)
	return true
}

// Stop cancels every pending redisplay.
func (sc *Scheduler) Stop() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	for id, p := range sc.waiting {
		p.timer.Stop()
		delete(sc.waiting, id)
	}
}

// Pending returns the number of surfaces with a scheduled redisplay.
func (sc *Scheduler) Pending() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return len(sc.waiting)
}

// Delay returns the configured debounce delay.
func (sc *Scheduler) Delay() time.Duration {
	return sc.delay
}
