package http

// lazy is a value computed at most once. It stays computed until reset.
type lazy[T any] struct {
	value    T
	computed bool
}

func (l *lazy[T]) get(compute func() T) T {
	if !l.computed {
		l.value = compute()
		l.computed = true
	}

	return l.value
}

func (l *lazy[T]) set(v T) {
	l.value = v
	l.computed = true
}

func (l *lazy[T]) reset() {
	var zero T

	l.value = zero
	l.computed = false
}
