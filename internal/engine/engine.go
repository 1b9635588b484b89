package engine

import (
	"fmt"

	"github.com/dshills/pagesync/internal/hook"
	"github.com/dshills/pagesync/internal/logging"
	"github.com/dshills/pagesync/internal/redisplay"
	"github.com/dshills/pagesync/internal/surface"
	"github.com/dshills/pagesync/internal/viewer"
)

// hookPriority places sync hooks in the framework band, below system hooks.
const hookPriority = 500

// Lister reports the live surfaces currently showing a buffer. Implemented
// by the host window system; the engine re-queries it on every pass rather
// than caching surfaces.
type Lister interface {
	Surfaces(buffer string) []surface.Surface
}

// Engine coordinates page synchronization across the surfaces of a document
// buffer.
type Engine struct {
	registry *viewer.Registry
	hooks    *hook.Manager
	guard    *Guard
	sched    *redisplay.Scheduler
	lister   Lister
	step     int
	log      *logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log *logging.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithPageStep sets the page offset between adjacent windows. Values below 1
// are ignored.
func WithPageStep(step int) Option {
	return func(e *Engine) {
		if step >= 1 {
			e.step = step
		}
	}
}

// New creates an engine and installs its guard as the hook manager's gate.
func New(registry *viewer.Registry, hooks *hook.Manager, sched *redisplay.Scheduler, lister Lister, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		hooks:    hooks,
		guard:    NewGuard(),
		sched:    sched,
		lister:   lister,
		step:     1,
		log:      logging.Discard,
	}
	for _, opt := range opts {
		opt(e)
	}
	hooks.SetGate(e.guard.Enabled)
	return e
}

// hookName returns the hook identifier for a mode.
func hookName(mode string) string {
	return "pagesync:" + mode
}

// Enable installs the navigation hook for a document mode. It reports false
// if no viewer is registered for the mode.
func (e *Engine) Enable(mode string) bool {
	v, ok := e.registry.Lookup(mode)
	if !ok {
		e.log.Debug("enable skipped, mode %q not registered", mode)
		return false
	}

	triggers := make(map[string]bool, len(v.TriggerActions()))
	for _, action := range v.TriggerActions() {
		triggers[action] = true
	}

	e.hooks.Register(hook.NewFunc(hookName(mode), hookPriority, func(ev hook.NavEvent) {
		if ev.Mode != mode || !triggers[ev.Action] {
			return
		}
		if err := e.Sync(ev); err != nil {
			e.log.Error("sync pass failed: %v", err)
		}
	}))
	return true
}

// Disable removes the navigation hook for a document mode.
func (e *Engine) Disable(mode string) bool {
	return e.hooks.Unregister(hookName(mode))
}

// Enabled reports whether synchronization is enabled for a mode.
func (e *Engine) Enabled(mode string) bool {
	return e.hooks.Registered(hookName(mode))
}

// AutoEnable is the host callback for a buffer of the given mode becoming
// visible: it enables synchronization if the mode is registered and not
// already enabled.
func (e *Engine) AutoEnable(mode string) bool {
	if e.Enabled(mode) {
		return true
	}
	return e.Enable(mode)
}

// Sync runs one synchronization pass for the navigation described by ev.
//
// Precondition failures (unsupported mode, fewer than two live surfaces,
// trigger not in the observed list) are silent no-ops, checked before any
// hook state is touched. A returned error means the viewer integration
// misbehaved; nothing was navigated in that case either.
func (e *Engine) Sync(ev hook.NavEvent) error {
	if ev.Surface == nil {
		return nil
	}

	v, ok := e.registry.Lookup(ev.Mode)
	if !ok {
		e.log.Debug("sync skipped, mode %q not registered", ev.Mode)
		return nil
	}

	buffer := ev.Surface.Buffer()
	var live []surface.Surface
	for _, s := range e.lister.Surfaces(buffer) {
		if s.Live() {
			live = append(live, s)
		}
	}
	if len(live) < 2 {
		e.log.Debug("sync skipped, %d live surface(s) for buffer %q", len(live), buffer)
		return nil
	}

	ordered := surface.Order(live)
	trigger := -1
	for i, s := range ordered {
		if s.ID() == ev.Surface.ID() {
			trigger = i
			break
		}
	}
	if trigger < 0 {
		// Surface list changed under us; retry on the next navigation.
		e.log.Debug("sync skipped, trigger %q not in surface list", ev.Surface.ID())
		return nil
	}

	currentPage, err := v.CurrentPage(ev.Surface)
	if err != nil {
		return fmt.Errorf("read current page of %q: %w", ev.Surface.ID(), err)
	}
	maxPage, err := v.MaxPage(ev.Surface)
	if err != nil {
		return fmt.Errorf("read max page of %q: %w", ev.Surface.ID(), err)
	}

	targets, err := Staircase(len(ordered), trigger, currentPage, maxPage, e.step)
	if err != nil {
		return fmt.Errorf("compute targets for buffer %q: %w", buffer, err)
	}

	return e.guard.Do(ev.Mode, func() error {
		e.apply(v, ordered, trigger, targets)
		return nil
	})
}

// apply moves every out-of-date, non-triggering surface to its target page
// and schedules its debounced redisplay. Failures are isolated per surface.
func (e *Engine) apply(v viewer.Viewer, ordered []surface.Surface, trigger int, targets []int) {
	for i, s := range ordered {
		if i == trigger {
			continue
		}
		if !s.Live() {
			e.log.Debug("skip %q, surface died during pass", s.ID())
			continue
		}

		page, err := v.CurrentPage(s)
		if err != nil {
			e.log.Warn("skip %q, read current page: %v", s.ID(), err)
			continue
		}
		if page == targets[i] {
			continue
		}

		if err := v.GotoPage(s, targets[i]); err != nil {
			// Navigation failed; do not schedule a redisplay for it.
			e.log.Warn("skip %q, goto page %d: %v", s.ID(), targets[i], err)
			continue
		}

		target := targets[i]
		moved := s
		e.sched.Schedule(moved, target, func(page int) {
			if err := v.Redisplay(moved, page); err != nil {
				e.log.Debug("redisplay %q at page %d: %v", moved.ID(), page, err)
			}
		})
	}
}
