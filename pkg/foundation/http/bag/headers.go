package bag

import (
	"fmt"
	"strings"
)

// Headers is a case-insensitive header container. Names are normalised to lower case with
// dashes, so "HTTP_X_FORWARDED_FOR" style keys and "X-Forwarded-For" resolve to the same entry.
type Headers struct {
	keys   []string
	values map[string][]string
}

// NewHeaders builds a header container. Values may be strings, string slices or anything
// printable with %v.
func NewHeaders(m map[string]any) *Headers {
	h := &Headers{values: make(map[string][]string, len(m))}

	for _, k := range sortedKeys(m) {
		switch v := m[k].(type) {
		case []string:
			h.Set(k, v...)
		case string:
			h.Set(k, v)
		case nil:
			h.Set(k)
		default:
			h.Set(k, fmt.Sprint(v))
		}
	}

	return h
}

func normalize(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// Get returns the first value of the header, or def when it is absent or empty.
func (h *Headers) Get(key, def string) string {
	v, ok := h.values[normalize(key)]
	if !ok || len(v) == 0 {
		return def
	}

	return v[0]
}

// Values returns every value of the header.
func (h *Headers) Values(key string) []string {
	return h.values[normalize(key)]
}

// Has reports whether the header is present.
func (h *Headers) Has(key string) bool {
	_, ok := h.values[normalize(key)]
	return ok
}

// Set replaces the values of the header.
func (h *Headers) Set(key string, values ...string) {
	key = normalize(key)

	if _, ok := h.values[key]; !ok {
		h.keys = append(h.keys, key)
	}

	h.values[key] = values
}

// Remove deletes the header.
func (h *Headers) Remove(key string) {
	key = normalize(key)

	if _, ok := h.values[key]; !ok {
		return
	}

	delete(h.values, key)

	for i, k := range h.keys {
		if k == key {
			h.keys = append(h.keys[:i], h.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the normalised header names in insertion order.
func (h *Headers) Keys() []string {
	keys := make([]string, len(h.keys))
	copy(keys, h.keys)

	return keys
}

// All returns a copy of the headers.
func (h *Headers) All() map[string][]string {
	m := make(map[string][]string, len(h.values))
	for k, v := range h.values {
		m[k] = append([]string(nil), v...)
	}

	return m
}

// Clone returns an independent copy of the headers.
func (h *Headers) Clone() *Headers {
	return &Headers{keys: h.Keys(), values: h.All()}
}
