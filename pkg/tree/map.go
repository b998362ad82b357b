package tree

import (
	"fmt"
	"strings"
)

// Map is an insertion-ordered string-keyed map.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Len returns the number of keys
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Has reports whether key is present
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the value for key
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. An existing key keeps its original position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key if present
func (m *Map) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Pop removes key and returns its value
func (m *Map) Pop(key string) (any, bool) {
	v, ok := m.Get(key)
	if ok {
		m.Delete(key)
	}
	return v, ok
}

// Each calls fn for every entry in order until fn returns false
func (m *Map) Each(fn func(key string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a shallow copy
func (m *Map) Clone() *Map {
	out := NewMap()
	m.Each(func(k string, v any) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Plain converts the map, recursively, into map[string]any and []any values.
func (m *Map) Plain() map[string]any {
	out := make(map[string]any, m.Len())
	m.Each(func(k string, v any) bool {
		out[k] = plain(v)
		return true
	})
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case *Map:
		return t.Plain()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	default:
		return v
	}
}

// String renders the map in key order, mainly for logs and test failures.
func (m *Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	m.Each(func(k string, v any) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %v", k, v)
		return true
	})
	b.WriteByte('}')
	return b.String()
}
