// Package session provides the session a request can carry. The request only holds a reference;
// the store that owns a session decides when it is loaded and saved.
package session

import "context"

// Session is a keyed store of values that outlives a single request.
type Session interface {
	ID() string
	Get(name string, def any) any
	Set(name string, value any)
	Has(name string) bool
	All() map[string]any
	Remove(name string) any
	Clear()
	Save(ctx context.Context) error
}
