package value

import (
	"iter"
	"slices"
)

// Entry is a single key/value pair in a [Mapping].
type Entry struct {
	Key   string // The mapping key
	Value any    // The value stored under Key
}

// Mapping is an ordered collection of key/value pairs with unique keys.
//
// Iteration order is insertion order. The zero value is an empty mapping ready to use.
type Mapping struct {
	index   map[string]int // Key -> position in entries
	entries []Entry        // Entries in insertion order
}

// NewMapping returns a [Mapping] populated with entries, in order.
//
// A repeated key replaces the earlier value in place, exactly as [Mapping.Set] would.
func NewMapping(entries ...Entry) *Mapping {
	m := &Mapping{}
	for _, entry := range entries {
		m.Set(entry.Key, entry.Value)
	}

	return m
}

// Set stores value under key.
//
// A new key is appended to the end of the mapping, an existing key keeps its position
// and has its value replaced.
func (m *Mapping) Set(key string, value any) {
	if m.index == nil {
		m.index = make(map[string]int)
	}

	if i, ok := m.index[key]; ok {
		m.entries[i].Value = value
		return
	}

	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key and whether it was present.
func (m *Mapping) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}

	i, ok := m.index[key]
	if !ok {
		return nil, false
	}

	return m.entries[i].Value, true
}

// Len returns the number of entries in the mapping.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}

// All returns an iterator over the mapping's key/value pairs in insertion order.
func (m *Mapping) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}

		for _, entry := range m.entries {
			if !yield(entry.Key, entry.Value) {
				return
			}
		}
	}
}

// Keys returns the mapping's keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.Len())
	for key := range m.All() {
		keys = append(keys, key)
	}

	return keys
}

// Entries returns a copy of the mapping's entries in insertion order.
func (m *Mapping) Entries() []Entry {
	if m == nil {
		return nil
	}

	return slices.Clone(m.entries)
}
