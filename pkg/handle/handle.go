// Package handle hands out opaque 64-bit handles for values owned on the Go
// side. A handle stays valid until it is removed; removing bumps the slot's
// generation, so stale and double-removed handles are detected instead of
// aliasing whatever reuses the slot.
package handle

import (
	"errors"
	"fmt"
	"sync"
)

// Handle layout, high to low: kind (8 bits), generation (24 bits),
// slot index + 1 (32 bits). Zero is never issued.
type Handle uint64

const Null Handle = 0

// Kind tags handles so one registry rejects handles issued by another.
type Kind uint8

const (
	genBits  = 24
	genMask  = 1<<genBits - 1
	maxSlots = 1<<32 - 1
)

var ErrInvalid = errors.New("invalid handle")

func pack(k Kind, gen uint32, slot int) Handle {
	return Handle(uint64(k)<<56 | uint64(gen&genMask)<<32 | uint64(slot+1))
}

func (h Handle) Kind() Kind { return Kind(h >> 56) }

func (h Handle) generation() uint32 { return uint32(h>>32) & genMask }

func (h Handle) slot() int { return int(uint32(h)) - 1 }

func (h Handle) String() string { return fmt.Sprintf("%#016x", uint64(h)) }

type entry[T any] struct {
	val  T
	gen  uint32
	live bool
}

// Registry owns the values behind one kind of handle. It is safe for
// concurrent use across different handles.
type Registry[T any] struct {
	mu    sync.Mutex
	kind  Kind
	slots []entry[T]
	free  []int
	live  int
}

func NewRegistry[T any](kind Kind) *Registry[T] {
	return &Registry[T]{kind: kind}
}

// Insert stores v and returns its handle.
func (r *Registry[T]) Insert(v T) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	var slot int
	if n := len(r.free); n > 0 {
		slot = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		if uint64(len(r.slots)) >= maxSlots {
			panic("handle: registry exhausted")
		}
		slot = len(r.slots)
		r.slots = append(r.slots, entry[T]{})
	}
	e := &r.slots[slot]
	e.val = v
	e.live = true
	r.live++
	return pack(r.kind, e.gen, slot)
}

// Get returns the value behind h without transferring ownership.
func (r *Registry[T]) Get(h Handle) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.lookup(h)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.val, nil
}

// Remove invalidates h and returns the value it owned.
func (r *Registry[T]) Remove(h Handle) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	e, err := r.lookup(h)
	if err != nil {
		return zero, err
	}
	v := e.val
	e.val = zero
	e.live = false
	e.gen = (e.gen + 1) & genMask
	r.free = append(r.free, h.slot())
	r.live--
	return v, nil
}

// Len reports the number of live handles.
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

func (r *Registry[T]) lookup(h Handle) (*entry[T], error) {
	switch {
	case h == Null:
		return nil, fmt.Errorf("%w: null", ErrInvalid)
	case h.Kind() != r.kind:
		return nil, fmt.Errorf("%w: %s has kind %d, want %d", ErrInvalid, h, h.Kind(), r.kind)
	}
	slot := h.slot()
	if slot < 0 || slot >= len(r.slots) {
		return nil, fmt.Errorf("%w: %s was never issued", ErrInvalid, h)
	}
	e := &r.slots[slot]
	if !e.live || e.gen != h.generation() {
		return nil, fmt.Errorf("%w: %s is closed", ErrInvalid, h)
	}
	return e, nil
}
