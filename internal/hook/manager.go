package hook

import (
	"sort"
	"sync"
)

// Gate decides whether hooks may run for a document mode. The sync guard
// supplies one so that hooks are suppressed while a pass is applying pages.
type Gate func(mode string) bool

// Manager manages navigation hooks with priority-based ordering.
type Manager struct {
	mu    sync.RWMutex
	hooks []NavHook
	gate  Gate
}

// NewManager creates a new hook manager.
func NewManager() *Manager {
	return &Manager{
		hooks: make([]NavHook, 0),
	}
}

// SetGate installs the per-mode execution gate. A nil gate means hooks
// always run.
func (m *Manager) SetGate(gate Gate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gate = gate
}

// Register adds a hook. Hooks are sorted by priority (higher runs first).
// Registering a hook with an existing name replaces the old one.
func (m *Manager) Register(h NavHook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.hooks {
		if existing.Name() == h.Name() {
			m.hooks[i] = h
			m.sortHooks()
			return
		}
	}

	m.hooks = append(m.hooks, h)
	m.sortHooks()
}

// Unregister removes a hook by name.
func (m *Manager) Unregister(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, h := range m.hooks {
		if h.Name() == name {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// Registered reports whether a hook with the given name is installed.
func (m *Manager) Registered(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, h := range m.hooks {
		if h.Name() == name {
			return true
		}
	}
	return false
}

// Run invokes all hooks for the event in priority order. If the gate rejects
// the event's mode, no hooks run.
func (m *Manager) Run(ev NavEvent) {
	m.mu.RLock()
	gate := m.gate
	hooks := make([]NavHook, len(m.hooks))
	copy(hooks, m.hooks)
	m.mu.RUnlock()

	if gate != nil && !gate(ev.Mode) {
		return
	}

	for _, h := range hooks {
		h.AfterNavigation(ev)
	}
}

// Count returns the number of registered hooks.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// Names returns the names of all hooks in execution order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.hooks))
	for i, h := range m.hooks {
		names[i] = h.Name()
	}
	return names
}

// Clear removes all hooks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = m.hooks[:0]
}

// sortHooks sorts hooks by priority descending (higher first).
func (m *Manager) sortHooks() {
	sort.SliceStable(m.hooks, func(i, j int) bool {
		return m.hooks[i].Priority() > m.hooks[j].Priority()
	})
}
