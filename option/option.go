// Package option provides an explicit present-or-absent value wrapper.
package option

// Option holds either a value or nothing. The zero Option is absent.
type Option[T any] struct {
	value   T
	present bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// FromString returns None for an empty string and Some otherwise.
func FromString(s string) Option[string] {
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

// IsPresent reports whether the Option holds a value.
func (o Option[T]) IsPresent() bool {
	return o.present
}

// Get returns the held value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// OrElse returns the held value, or def when absent.
func (o Option[T]) OrElse(def T) T {
	if !o.present {
		return def
	}
	return o.value
}

// IfPresent calls fn with the held value, if any.
func (o Option[T]) IfPresent(fn func(T)) {
	if o.present {
		fn(o.value)
	}
}
