package shell

import (
	"fmt"
	"sort"

	"github.com/picobox/picobox/core/proc"
)

// Entry describes one applet: its name, a one line summary for help listings
// and the function that implements it.
type Entry struct {
	Name  string
	Short string
	Proc  proc.Func
}

// Registry maps applet names to their implementations. It is populated once
// at startup and read-only afterwards; it is passed explicitly to whoever
// needs it rather than living in package state.
type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry. Registering the same name again replaces the
// previous entry rather than duplicating it.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("register: empty applet name")
	}
	if e.Proc == nil {
		return fmt.Errorf("register %q: nil applet function", e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// Find looks up an applet by exact name.
func (r *Registry) Find(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Walk visits every entry in name order.
func (r *Registry) Walk(fn func(Entry)) {
	for _, name := range r.Names() {
		fn(r.entries[name])
	}
}

// Len returns the number of registered applets.
func (r *Registry) Len() int {
	return len(r.entries)
}
