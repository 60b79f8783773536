// Package bag provides the keyed containers a request is assembled from: parameters, server variables,
// headers and uploaded files.
package bag

import (
	"sort"
	"strconv"
	"strings"
)

// Parameters is a keyed container of request values. Keys are unique and kept in insertion order
// for iteration; lookups report absence explicitly so that a stored value equal to a caller's
// default is never confused with a missing key.
type Parameters struct {
	keys   []string
	values map[string]any
}

// NewParameters wraps m in a new container. Go maps carry no order, so the initial keys are sorted.
func NewParameters(m map[string]any) *Parameters {
	p := &Parameters{values: make(map[string]any, len(m))}

	for _, k := range sortedKeys(m) {
		p.Set(k, m[k])
	}

	return p
}

// Lookup returns the value stored under key and whether it was found.
// With deep set, a key such as "foo[bar][0]" walks into nested maps and slices.
func (p *Parameters) Lookup(key string, deep bool) (any, bool) {
	if !deep || !strings.Contains(key, "[") {
		v, ok := p.values[key]
		return v, ok
	}

	root, segments, ok := splitPath(key)
	if !ok {
		return nil, false
	}

	v, ok := p.values[root]
	if !ok {
		return nil, false
	}

	for _, s := range segments {
		if v, ok = index(v, s); !ok {
			return nil, false
		}
	}

	return v, true
}

// Get returns the value for key, or def when the key is absent.
func (p *Parameters) Get(key string, def any) any {
	if v, ok := p.Lookup(key, false); ok {
		return v
	}

	return def
}

// GetDeep is Get with path lookup into nested values.
func (p *Parameters) GetDeep(key string, def any) any {
	if v, ok := p.Lookup(key, true); ok {
		return v
	}

	return def
}

// GetString returns the value for key when it is a string, or def otherwise.
func (p *Parameters) GetString(key, def string) string {
	switch v := p.Get(key, nil).(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[len(v)-1]
		}
	}

	return def
}

// GetInt returns the value for key converted to an int, or def when it is absent or not numeric.
func (p *Parameters) GetInt(key string, def int) int {
	switch v := p.Get(key, nil).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}

	return def
}

// GetBool returns the value for key interpreted as a boolean. "1", "true", "on" and "yes" are true.
func (p *Parameters) GetBool(key string, def bool) bool {
	switch v := p.Get(key, nil).(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "on", "yes":
			return true
		case "0", "false", "off", "no", "":
			return false
		}
	}

	return def
}

// Has reports whether key is present.
func (p *Parameters) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Set stores value under key. New keys are appended to the iteration order.
func (p *Parameters) Set(key string, value any) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}

	p.values[key] = value
}

// Remove deletes key from the container.
func (p *Parameters) Remove(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}

	delete(p.values, key)

	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in iteration order.
func (p *Parameters) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)

	return keys
}

// All returns a copy of the stored values.
func (p *Parameters) All() map[string]any {
	m := make(map[string]any, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}

	return m
}

// Count returns the number of stored keys.
func (p *Parameters) Count() int {
	return len(p.keys)
}

// Replace discards every stored value and stores m instead.
func (p *Parameters) Replace(m map[string]any) {
	p.keys = nil
	p.values = make(map[string]any, len(m))

	p.Add(m)
}

// Add merges m into the container, overwriting existing keys.
func (p *Parameters) Add(m map[string]any) {
	for _, k := range sortedKeys(m) {
		p.Set(k, m[k])
	}
}

// Clone returns an independent copy of the container. Nested values are shared.
func (p *Parameters) Clone() *Parameters {
	c := &Parameters{
		keys:   make([]string, len(p.keys)),
		values: make(map[string]any, len(p.values)),
	}

	copy(c.keys, p.keys)

	for k, v := range p.values {
		c.values[k] = v
	}

	return c
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// splitPath splits "root[a][b]" into "root" and ["a", "b"]. Malformed paths report false.
func splitPath(path string) (root string, segments []string, ok bool) {
	open := strings.IndexByte(path, '[')
	root = path[:open]

	rest := path[open:]
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, false
		}

		seg := rest[1:end]
		if seg == "" || strings.ContainsAny(seg, "[") {
			return "", nil, false
		}

		segments = append(segments, seg)
		rest = rest[end+1:]
	}

	return root, segments, true
}

func index(v any, seg string) (any, bool) {
	switch c := v.(type) {
	case map[string]any:
		r, ok := c[seg]
		return r, ok
	case map[string]string:
		r, ok := c[seg]
		return r, ok
	case []any:
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 && i < len(c) {
			return c[i], true
		}
	case []string:
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 && i < len(c) {
			return c[i], true
		}
	}

	return nil, false
}
