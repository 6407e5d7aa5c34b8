// SPDX-License-Identifier: MIT

package frame

// Meta is an ordered, string-keyed mapping from metadata key to a
// string, number, or bool value. Insertion order is preserved so that
// "first wins" merge policies are deterministic regardless of Go's
// randomized map iteration.
type Meta struct {
	keys   []string
	values map[string]any
}

// NewMeta returns an empty, ready-to-use Meta.
func NewMeta() *Meta {
	return &Meta{values: make(map[string]any)}
}

// Set assigns key=value, appending key to the iteration order on first
// insertion. Re-setting an existing key keeps its original position.
func (m *Meta) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *Meta) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the metadata keys in insertion order. The returned slice
// must not be mutated by callers.
func (m *Meta) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *Meta) Len() int {
	return len(m.keys)
}

// Clone returns a deep copy safe for independent mutation.
func (m *Meta) Clone() *Meta {
	c := &Meta{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]any, len(m.values)),
	}
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// Map returns a plain map snapshot of the metadata, for callers that only
// need membership/equality and don't care about order (e.g. test
// assertions against an expected map literal).
func (m *Meta) Map() map[string]any {
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
