// Package immutable provides a persistent, insertion-ordered string-keyed map.
package immutable

// Map is an insertion-ordered map from string keys to values.
// The zero value is an empty map. Every update returns a new Map and never
// touches the receiver, so a Map may be shared freely between snapshots.
type Map[V any] struct {
	keys   []string
	values map[string]V
}

// Len returns the number of entries.
func (m Map[V]) Len() int {
	return len(m.keys)
}

// Get returns the value stored under key.
func (m Map[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m Map[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// With returns a copy of m with key set to v. A new key is appended to the
// iteration order; an existing key keeps its position.
func (m Map[V]) With(key string, v V) Map[V] {
	values := make(map[string]V, len(m.values)+1)
	for k, old := range m.values {
		values[k] = old
	}

	keys := m.keys
	if _, exists := m.values[key]; !exists {
		keys = make([]string, len(m.keys), len(m.keys)+1)
		copy(keys, m.keys)
		keys = append(keys, key)
	}
	values[key] = v

	return Map[V]{keys: keys, values: values}
}

// Without returns a copy of m with key removed. Removing an absent key
// returns m unchanged.
func (m Map[V]) Without(key string) Map[V] {
	if _, exists := m.values[key]; !exists {
		return m
	}

	values := make(map[string]V, len(m.values)-1)
	for k, v := range m.values {
		if k != key {
			values[k] = v
		}
	}

	keys := make([]string, 0, len(m.keys)-1)
	for _, k := range m.keys {
		if k != key {
			keys = append(keys, k)
		}
	}

	return Map[V]{keys: keys, values: values}
}

// Keys returns the keys in insertion order.
func (m Map[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in key insertion order.
func (m Map[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.values[k])
	}
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m Map[V]) Range(fn func(key string, v V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}
