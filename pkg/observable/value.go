// Package observable provides a value cell with a two-phase mutation model.
//
// A Value holds a committed baseline and a current value. Provisional edits change
// the current value only; they can be made permanent with Set or discarded with
// Rollback. Every change is pushed synchronously to the subscribed listeners.
//
// Listener arguments depend on the kind of change:
//
//	Set(v)            -> (new, old)
//	SetProvisional(v) -> (committed, draft)
//	Rollback()        -> (committed, committed)
//	Subscribe(fn)     -> (current, current)
//
// The order is swapped between Set and SetProvisional; listeners use it to tell a
// draft from a final value.
package observable

import (
	"github.com/aretw0/introspection"
)

// Listener receives a pair of values on every change. See the package doc for the
// meaning of a and b.
type Listener[T any] func(a, b T)

// Value is an observable cell with provisional (dirty) state.
// It is not safe for concurrent use; all mutations are expected on one goroutine.
type Value[T comparable] struct {
	current   T
	committed T
	dirty     bool
	listeners []Listener[T]
}

// New creates a clean Value holding initial.
func New[T comparable](initial T) *Value[T] {
	return &Value[T]{
		current:   initial,
		committed: initial,
	}
}

// Subscribe registers fn and invokes it once with (current, current).
// There is no unsubscribe: listeners live as long as the Value.
func (v *Value[T]) Subscribe(fn Listener[T]) {
	v.listeners = append(v.listeners, fn)
	fn(v.current, v.current)
}

// Get returns the current (possibly provisional) value.
func (v *Value[T]) Get() T {
	return v.current
}

// Committed returns the rollback target.
func (v *Value[T]) Committed() T {
	return v.committed
}

// IsDirty reports whether a provisional edit is pending.
func (v *Value[T]) IsDirty() bool {
	return v.dirty
}

// Listeners returns the number of registered listeners.
func (v *Value[T]) Listeners() int {
	return len(v.listeners)
}

// Set commits next unconditionally and makes it the rollback target. When next
// equals the current value no listener is notified, but a pending provisional
// edit still becomes the committed value.
func (v *Value[T]) Set(next T) {
	v.dirty = false
	if v.current == next {
		v.committed = next
		return
	}
	old := v.current
	v.current = next
	v.committed = next
	v.notify(next, old)
}

// SetProvisional writes a draft value. The first draft since the last commit or
// rollback snapshots the current value as the rollback target.
func (v *Value[T]) SetProvisional(draft T) {
	if !v.dirty {
		v.committed = v.current
		v.dirty = true
	}
	v.current = draft
	v.notify(v.committed, v.current)
}

// Rollback restores the committed value. It is a no-op on a clean Value.
func (v *Value[T]) Rollback() {
	if !v.dirty {
		return
	}
	v.current = v.committed
	v.notify(v.current, v.current)
	v.dirty = false
}

// notify walks a snapshot of the listener list; listeners added during delivery
// are not called for this change.
func (v *Value[T]) notify(a, b T) {
	listeners := v.listeners[:len(v.listeners):len(v.listeners)]
	for _, fn := range listeners {
		fn(a, b)
	}
}

// ValueState exposes internal state for observability.
type ValueState struct {
	Dirty     bool `json:"dirty"`
	Listeners int  `json:"listeners"`
}

// State implements introspection.Introspectable.
func (v *Value[T]) State() any {
	return ValueState{
		Dirty:     v.dirty,
		Listeners: len(v.listeners),
	}
}

// ComponentType implements introspection.Component.
func (v *Value[T]) ComponentType() string {
	return "observable"
}

var _ introspection.Introspectable = (*Value[int])(nil)
var _ introspection.Component = (*Value[int])(nil)
