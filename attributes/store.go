// Package attributes holds a nested attribute tree addressed by dotted paths
// and the bus that announces changes to it.
package attributes

import (
	"sort"
	"strings"
)

// Separator splits a path into segments
const Separator = "."

// ValueCloner is implemented by stored values that hold references, so the
// store can keep its own copy on write and in snapshots.
type ValueCloner interface {
	CloneValue() any
}

// Store is a nested map[string]any tree addressed by dot-delimited paths.
// Every non-silent write emits one event on the bus named after the exact path.
//
// Store is not safe for concurrent use; owners serialize access.
type Store struct {
	root map[string]any
	bus  *Bus
}

// NewStore creates an empty store that signals changes on bus.
// A nil bus gets a private one.
func NewStore(bus *Bus) *Store {
	if bus == nil {
		bus = NewBus()
	}
	return &Store{
		root: make(map[string]any),
		bus:  bus,
	}
}

// Bus returns the bus the store emits on
func (s *Store) Bus() *Bus {
	return s.bus
}

// Get resolves path segment by segment.
// Returns false if any segment is absent or an intermediate node is not a mapping.
func (s *Store) Get(path string) (any, bool) {
	segments := strings.Split(path, Separator)

	var node any = s.root
	for _, segment := range segments {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[segment]
		if !ok {
			return nil, false
		}
	}

	return node, true
}

// GetString returns the value at path if it is a string
func (s *Store) GetString(path string) (string, bool) {
	v, ok := s.Get(path)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Set writes value at path and emits path with the new value
func (s *Store) Set(path string, value any) *Store {
	s.assign(path, value)
	s.bus.Emit(path, value)
	return s
}

// SetSilent writes value at path without emitting
func (s *Store) SetSilent(path string, value any) *Store {
	s.assign(path, value)
	return s
}

// SetAll applies every path/value pair in ascending path order.
// Unless silent, each pair emits its own event.
func (s *Store) SetAll(values map[string]any, silent bool) *Store {
	paths := make([]string, 0, len(values))
	for path := range values {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if silent {
			s.SetSilent(path, values[path])
		} else {
			s.Set(path, values[path])
		}
	}

	return s
}

// Snapshot returns a deep copy of the whole tree
func (s *Store) Snapshot() map[string]any {
	return cloneMap(s.root)
}

// assign creates missing intermediate mappings and replaces scalar
// intermediates with fresh ones.
func (s *Store) assign(path string, value any) {
	segments := strings.Split(path, Separator)

	node := s.root
	for _, segment := range segments[:len(segments)-1] {
		next, ok := node[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[segment] = next
		}
		node = next
	}

	node[segments[len(segments)-1]] = cloneValue(value)
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case ValueCloner:
		return val.CloneValue()
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}
