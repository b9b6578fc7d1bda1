package types

import "reflect"

// Opt is an optional value of type T.
// The zero Opt is unset. Unset and set-to-zero are distinct states,
// which URI components rely on: an absent query renders nothing while
// an empty query still renders its "?" delimiter.
type Opt[T any] struct {
	val T
	ok  bool
}

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] { return Opt[T]{val: v, ok: true} }

// None returns an unset Opt.
func None[T any]() Opt[T] { return Opt[T]{} }

// IsSet reports whether the Opt holds a value.
func (o Opt[T]) IsSet() bool { return o.ok }

// Get returns the held value and whether it is set.
func (o Opt[T]) Get() (T, bool) { return o.val, o.ok }

// Val returns the held value or the zero value when unset.
func (o Opt[T]) Val() T { return o.val }

// Equal reports whether two Opt values are both unset or hold equal values.
func (o Opt[T]) Equal(other Opt[T]) bool {
	return o.ok == other.ok && reflect.DeepEqual(o.val, other.val)
}

// Or returns the held value or def when unset.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.val
	}
	return def
}
