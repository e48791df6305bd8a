// Package command implements the process-wide command enablement
// registry. Widgets consult it when drawing and dispatching; the
// application idle cycle broadcasts CommandSetChanged whenever the
// enabled set differs from the previous cycle's snapshot.
//
// The registry is the only state intentionally shared across sessions.
// It is created at package init, read and written throughout the
// process lifetime, and never torn down mid-run.
package command

import "sync"

// ID identifies a command
type ID uint16

// Reserved command identifiers. User commands start at UserBase.
const (
	None ID = iota
	Quit
	Close
	OK
	Cancel
	Yes
	No

	// CommandSetChanged is broadcast by the application idle cycle
	// when the enabled set changed since the previous cycle
	CommandSetChanged

	UserBase ID = 100
)

// Set is a snapshot of disabled command ids
type Set map[ID]struct{}

// Equal reports whether two snapshots disable the same ids
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Registry tracks enabled state per command id. Unknown ids are
// enabled; only disabled ids are stored. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	disabled Set
}

// NewRegistry creates an empty registry (everything enabled)
func NewRegistry() *Registry {
	return &Registry{disabled: make(Set)}
}

// Enable marks id enabled
func (r *Registry) Enable(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.disabled, id)
}

// Disable marks id disabled
func (r *Registry) Disable(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled[id] = struct{}{}
}

// IsEnabled reports whether id is enabled. Ids never seen are enabled.
func (r *Registry) IsEnabled(id ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, off := r.disabled[id]
	return !off
}

// Snapshot returns a copy of the disabled set for later comparison
func (r *Registry) Snapshot() Set {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(Set, len(r.disabled))
	for id := range r.disabled {
		out[id] = struct{}{}
	}
	return out
}

// defaultRegistry is the process-wide instance
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// Enable marks id enabled in the process-wide registry
func Enable(id ID) { defaultRegistry.Enable(id) }

// Disable marks id disabled in the process-wide registry
func Disable(id ID) { defaultRegistry.Disable(id) }

// IsEnabled reports enabled state in the process-wide registry
func IsEnabled(id ID) bool { return defaultRegistry.IsEnabled(id) }

// Snapshot snapshots the process-wide registry
func Snapshot() Set { return defaultRegistry.Snapshot() }
