package introspect

import (
	"fmt"

	"github.com/mesh-intelligence/probe/pkg/property"
)

// NewTypeInfo builds the descriptor for a structural type from its
// property table. Table order is the lookup scan order and otherwise
// insignificant. It panics on a duplicate name; tables are authored
// statically, so a duplicate is a programming error.
func NewTypeInfo(props ...PropertyInfo) *TypeInfo {
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		if seen[p.Name] {
			panic(fmt.Sprintf("introspect: duplicate property name %q", p.Name))
		}
		seen[p.Name] = true
	}
	return &TypeInfo{properties: props}
}

// Attr returns the table entry for a structural member of Obj. get
// selects the member from the object the handle references; info is the
// member's descriptor. The *Obj and *Sub signatures keep payloads
// pointer-shaped, which is what makes traversal allocation-free.
func Attr[Obj, Sub any](name string, get func(*Obj) *Sub, info *TypeInfo) PropertyInfo {
	return PropertyInfo{
		Name:     name,
		TypeInfo: info,
		Getter: func(h *Introspectable) {
			h.payload = get(h.payload.(*Obj))
		},
	}
}

// ValueAttr returns the table entry for a read-write leaf member backed
// by a property.Value cell.
func ValueAttr[Obj any, T Scalar](name string, get func(*Obj) *property.Value[T]) PropertyInfo {
	return PropertyInfo{
		Name:     name,
		TypeInfo: ReadWriteLeaf[T](),
		Getter: func(h *Introspectable) {
			h.payload = get(h.payload.(*Obj))
		},
	}
}

// ReadOnlyAttr returns the table entry for a leaf member that is
// exposed read-only even though it is backed by a writable cell.
func ReadOnlyAttr[Obj any, T Scalar](name string, get func(*Obj) *property.Value[T]) PropertyInfo {
	return PropertyInfo{
		Name:     name,
		TypeInfo: ReadOnlyLeaf[T](),
		Getter: func(h *Introspectable) {
			h.payload = get(h.payload.(*Obj))
		},
	}
}

// ComputedAttr returns the table entry for a read-only leaf member
// backed by a property.Computed.
func ComputedAttr[Obj any, T Scalar](name string, get func(*Obj) *property.Computed[T]) PropertyInfo {
	return PropertyInfo{
		Name:     name,
		TypeInfo: ReadOnlyLeaf[T](),
		Getter: func(h *Introspectable) {
			h.payload = get(h.payload.(*Obj))
		},
	}
}
