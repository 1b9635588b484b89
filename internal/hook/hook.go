// Package hook provides the navigation hook layer: callbacks that run after a
// tracked navigation operation completes on a surface.
//
// The sync engine registers one hook per enabled document mode. Hook
// execution is gated per mode so that a synchronization pass can suppress its
// own mode's hooks while it applies pages, preventing the GotoPage calls it
// makes from re-triggering the pass.
package hook

import "github.com/dshills/pagesync/internal/surface"

// NavEvent describes one completed navigation operation.
type NavEvent struct {
	// Action is the namespaced operation name (e.g. "pager.pageNext").
	Action string

	// Surface is the viewport the operation ran on.
	Surface surface.Surface

	// Mode is the document mode of the buffer the surface shows.
	Mode string
}

// NavHook is called after a navigation operation completes.
type NavHook interface {
	// Name returns a unique identifier for this hook.
	Name() string

	// Priority returns the hook priority. Higher values run first.
	Priority() int

	// AfterNavigation is called after a tracked navigation operation.
	AfterNavigation(ev NavEvent)
}

// Func wraps a function as a NavHook.
type Func struct {
	name     string
	priority int
	fn       func(NavEvent)
}

// NewFunc creates a new Func hook.
func NewFunc(name string, priority int, fn func(NavEvent)) *Func {
	return &Func{
		name:     name,
		priority: priority,
		fn:       fn,
	}
}

// Name implements NavHook.
func (f *Func) Name() string { return f.name }

// Priority implements NavHook.
func (f *Func) Priority() int { return f.priority }

// AfterNavigation implements NavHook.
func (f *Func) AfterNavigation(ev NavEvent) {
	if f.fn != nil {
		f.fn(ev)
	}
}
