// Package property provides the typed storage cells that introspectable
// application objects are built from. A Value is a read-write cell with
// exchange semantics; a Computed is a read-only property backed by a
// function. Both satisfy Source, the read capability the introspection
// layer requires from any leaf.
// See docs/ARCHITECTURE.md § Property Wrapper.
package property

import "sync"

// Source is the read capability of a property. Every leaf payload handed
// to the introspection layer must provide it.
type Source[T any] interface {
	// Read returns the current value by copy.
	Read() T
}

// Value is a read-write property cell. The zero Value holds the zero
// value of T and is ready to use. Read and Exchange are individually
// safe for concurrent use; no atomicity is promised across a
// read-then-write pair.
type Value[T any] struct {
	mu  sync.Mutex
	val T
}

// NewValue returns a Value initialized to v.
func NewValue[T any](v T) *Value[T] {
	return &Value[T]{val: v}
}

// Read returns the current value.
func (p *Value[T]) Read() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.val
}

// Exchange replaces the current value with v and returns the previous
// value.
func (p *Value[T]) Exchange(v T) T {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.val
	p.val = v
	return old
}

// Set replaces the current value, discarding the previous one.
func (p *Value[T]) Set(v T) {
	p.Exchange(v)
}

// Computed is a read-only property backed by a function. It is used for
// values that are derived on demand rather than stored, such as a
// measured voltage or an uptime counter.
type Computed[T any] struct {
	read func() T
}

// NewComputed returns a Computed that calls read on every Read. read
// must not be nil.
func NewComputed[T any](read func() T) Computed[T] {
	if read == nil {
		panic("property: NewComputed with nil read function")
	}
	return Computed[T]{read: read}
}

// Read returns the current derived value.
func (p *Computed[T]) Read() T {
	return p.read()
}
