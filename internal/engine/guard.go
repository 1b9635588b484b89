package engine

import "sync"

// Guard tracks which document modes currently have their navigation hooks
// suppressed.
//
// A synchronization pass disables its mode for the duration of the apply
// loop so the GotoPage calls it makes cannot re-trigger the pass. Overlapping
// passes for one mode are prevented structurally by this suppression, not by
// a lock around the pass itself.
type Guard struct {
	mu       sync.Mutex
	disabled map[string]bool
}

// NewGuard creates a guard with every mode enabled.
func NewGuard() *Guard {
	return &Guard{
		disabled: make(map[string]bool),
	}
}

// Enabled reports whether hooks for mode may run. Wired into the hook
// manager as its gate.
func (g *Guard) Enabled(mode string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.disabled[mode]
}

// Do runs fn with hooks for mode suppressed. The mode is re-enabled on every
// exit path, including a panic inside fn.
func (g *Guard) Do(mode string, fn func() error) error {
	g.set(mode, true)
	defer g.set(mode, false)
	return fn()
}

func (g *Guard) set(mode string, suppressed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if suppressed {
		g.disabled[mode] = true
	} else {
		delete(g.disabled, mode)
	}
}
