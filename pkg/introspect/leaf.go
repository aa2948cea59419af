package introspect

import (
	"reflect"
	"sync"

	"github.com/mesh-intelligence/probe/pkg/property"
	"github.com/mesh-intelligence/probe/pkg/textconv"
)

// Scalar is the set of value types a leaf property may hold. The
// approximation terms admit named types, so a device enum declared as
// `type MotorState uint8` converts through its underlying integer.
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Leaf descriptors are shared singletons: one per (value type, access
// mode), built on first use and identity-stable for the rest of the
// process. Handles compare descriptors by identity, so every leaf of
// the same type and mode must reference the same instance.
var (
	leafMu   sync.Mutex
	rwLeaves = map[reflect.Type]*TypeInfo{}
	roLeaves = map[reflect.Type]*TypeInfo{}
)

func leafKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ReadWriteLeaf returns the shared descriptor for a read-write leaf of
// type T. The handle payload must be a *property.Value[T].
func ReadWriteLeaf[T Scalar]() *TypeInfo {
	leafMu.Lock()
	defer leafMu.Unlock()

	key := leafKey[T]()
	if ti, ok := rwLeaves[key]; ok {
		return ti
	}
	ti := &TypeInfo{
		getString: readLeaf[T],
		setString: writeLeaf[T],
	}
	rwLeaves[key] = ti
	return ti
}

// ReadOnlyLeaf returns the shared descriptor for a read-only leaf of
// type T. The handle payload must satisfy property.Source[T].
func ReadOnlyLeaf[T Scalar]() *TypeInfo {
	leafMu.Lock()
	defer leafMu.Unlock()

	key := leafKey[T]()
	if ti, ok := roLeaves[key]; ok {
		return ti
	}
	ti := &TypeInfo{
		getString: readLeaf[T],
	}
	roLeaves[key] = ti
	return ti
}

// readLeaf reads the wrapped value and formats it into buf.
func readLeaf[T Scalar](h *Introspectable, buf []byte) (int, bool) {
	src, ok := h.payload.(property.Source[T])
	if !ok {
		return 0, false
	}
	return textconv.Format(buf, src.Read(), textconv.Options{})
}

// writeLeaf parses buf and exchanges the wrapped value. A parse failure
// mutates nothing.
func writeLeaf[T Scalar](h *Introspectable, buf []byte) bool {
	cell, ok := h.payload.(*property.Value[T])
	if !ok {
		return false
	}
	var v T
	if !textconv.Parse(buf, &v, textconv.Options{}) {
		return false
	}
	cell.Exchange(v)
	return true
}
