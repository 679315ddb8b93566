// Package observable provides change-notifying value holders. A Value
// notifies its subscribers on every Set; derived values created with Map are
// recomputed from their source instead of being mutated directly.
package observable

import "sync"

// Readable is the read side of an observed value.
type Readable[T any] interface {
	Get() T
	// Version increases by one on every change and lets consumers detect
	// that the held value was replaced without comparing it.
	Version() uint64
	Subscribe(fn func(T)) (cancel func())
}

// Value holds a T and notifies subscribers after each Set. Subscribers run
// synchronously on the setter's goroutine, outside the lock.
type Value[T any] struct {
	mu      sync.RWMutex
	val     T
	version uint64
	subs    map[uint64]func(T)
	nextID  uint64
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{val: initial, subs: map[uint64]func(T){}}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.val
}

func (v *Value[T]) Version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.version
}

func (v *Value[T]) Set(val T) {
	v.Update(func(T) (T, bool) { return val, true })
}

// Update replaces the value with fn's result when fn reports a change. The
// read and the write happen under one lock, so concurrent updates never
// interleave.
func (v *Value[T]) Update(fn func(cur T) (T, bool)) {
	v.mu.Lock()
	next, changed := fn(v.val)
	if !changed {
		v.mu.Unlock()
		return
	}
	v.val = next
	v.version++
	subs := make([]func(T), 0, len(v.subs))
	for _, sub := range v.subs {
		subs = append(subs, sub)
	}
	v.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
}

func (v *Value[T]) Subscribe(fn func(T)) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

// Map derives a read-only value from src. The result is computed eagerly and
// recomputed every time src changes.
func Map[S, T any](src Readable[S], fn func(S) T) Readable[T] {
	out := NewValue(fn(src.Get()))
	src.Subscribe(func(s S) {
		out.Set(fn(s))
	})
	return out
}
