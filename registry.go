package elicit

import (
	"sort"
	"sync"
)

// DisableRegistry tracks origins whose elicitation prompts are suppressed.
// A "cancel and never ask again" resolution records the origin here; later
// requests from it resolve as cancelled without prompting. Safe for
// concurrent use.
type DisableRegistry struct {
	mu       sync.Mutex
	disabled map[string]struct{}
}

// NewDisableRegistry builds an empty registry.
func NewDisableRegistry() *DisableRegistry {
	return &DisableRegistry{disabled: make(map[string]struct{})}
}

// Disable suppresses future prompts from origin.
func (r *DisableRegistry) Disable(origin string) {
	if origin == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled[origin] = struct{}{}
}

// Enable lifts a suppression.
func (r *DisableRegistry) Enable(origin string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.disabled, origin)
}

// Disabled reports whether origin is suppressed.
func (r *DisableRegistry) Disabled(origin string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.disabled[origin]
	return ok
}

// List returns the suppressed origins in sorted order.
func (r *DisableRegistry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.disabled))
	for origin := range r.disabled {
		out = append(out, origin)
	}
	sort.Strings(out)
	return out
}
