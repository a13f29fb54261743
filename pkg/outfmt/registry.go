package outfmt

import (
	"fmt"
	"strings"
	"sync"
)

// Registry holds the available output formats. Formats are kept in
// registration order. Duplicate ids or names are not rejected; lookups
// resolve to the earliest matching registration, so callers that care must
// keep ids and names unique themselves.
type Registry struct {
	mu      sync.RWMutex
	formats []Format
}

// NewRegistry creates an empty format registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a format to the registry. It fails only for a nil
// format or an empty name.
func (r *Registry) Register(f Format) error {
	if f == nil {
		return fmt.Errorf("registering format: nil format")
	}

	if f.Name() == "" {
		return fmt.Errorf("registering format id %d: empty name", f.ID())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.formats = append(r.formats, f)

	return nil
}

// Unregister removes the earliest registered format whose id matches f's.
// It is a no-op when no such format is registered.
func (r *Registry) Unregister(f Format) {
	if f == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, entry := range r.formats {
		if entry.ID() == f.ID() {
			r.formats = append(r.formats[:i], r.formats[i+1:]...)
			return
		}
	}
}

// ByID returns the earliest registered format with the given id.
func (r *Registry) ByID(id FormatID) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.formats {
		if f.ID() == id {
			return f, true
		}
	}

	return nil, false
}

// ByName returns the earliest registered format with the given name.
// Matching is exact and case-sensitive.
func (r *Registry) ByName(name string) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.formats {
		if f.Name() == name {
			return f, true
		}
	}

	return nil, false
}

// Names returns the registered format names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formats))
	for _, f := range r.formats {
		names = append(names, f.Name())
	}

	return names
}

// JoinNames returns all registered names joined by sep, with no trailing
// separator. An empty registry yields an empty string.
func (r *Registry) JoinNames(sep string) string {
	return strings.Join(r.Names(), sep)
}

// Len returns the number of registered formats.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.formats)
}
