package viewer

import (
	"sort"
	"sync"
)

// Registry maps document-mode identifiers to viewers. Exactly one viewer
// serves a mode at a time; registering a mode again replaces the previous
// viewer. A mode with no registered viewer is unsupported and the sync
// engine treats navigation in it as a no-op.
type Registry struct {
	mu      sync.RWMutex
	viewers map[string]Viewer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		viewers: make(map[string]Viewer),
	}
}

// Register adds a viewer under its mode identifier, replacing any viewer
// previously registered for that mode.
func (r *Registry) Register(v Viewer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewers[v.Mode()] = v
}

// Lookup returns the viewer for a mode.
func (r *Registry) Lookup(mode string) (Viewer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.viewers[mode]
	return v, ok
}

// Unregister removes the viewer for a mode.
func (r *Registry) Unregister(mode string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.viewers[mode]; !ok {
		return false
	}
	delete(r.viewers, mode)
	return true
}

// Modes returns the registered mode identifiers, sorted.
func (r *Registry) Modes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modes := make([]string, 0, len(r.viewers))
	for mode := range r.viewers {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}
