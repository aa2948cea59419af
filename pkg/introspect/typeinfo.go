// Package introspect lets a caller navigate a dotted attribute path
// (such as "axis0.motor.velocity") through a tree of named, typed
// properties on an application object, and read or write the reached
// leaf as text, without knowing the object's concrete type.
//
// The machinery is built from three pieces: PropertyInfo (one named
// member), TypeInfo (the immutable member table of one concrete type,
// shared process-wide), and Introspectable (a small type-erased handle
// that is repositioned in place as the path is walked). Descriptor
// tables are authored once per type with NewTypeInfo and the Attr
// helpers; leaf descriptors are shared generic singletons.
// See docs/ARCHITECTURE.md § Introspection Core.
package introspect

// PropertyInfo describes one named member of a type: the member name,
// a getter that repositions a handle to reference the member, and the
// member's own descriptor (nil if the member type has no table).
//
// PropertyInfo values are built once at table-authoring time and never
// mutated. Within one TypeInfo every Name is unique.
type PropertyInfo struct {
	Name string

	// Getter repositions the handle's payload in place to reference
	// this member of the object the handle currently references. It
	// does not touch the handle's descriptor; traversal does that.
	Getter func(*Introspectable)

	// TypeInfo is the member's descriptor, or nil if the member's type
	// exposes no properties.
	TypeInfo *TypeInfo
}

// TypeInfo is the immutable runtime descriptor of one concrete type:
// its property table plus optional text-conversion hooks. One shared
// instance exists per described type; handles compare descriptors by
// identity.
type TypeInfo struct {
	properties []PropertyInfo

	// Conversion hooks. Nil means unsupported: structural nodes carry
	// neither, read-only leaves carry only getString.
	getString func(*Introspectable, []byte) (int, bool)
	setString func(*Introspectable, []byte) bool
}

// Lookup returns the property table entry whose name matches the given
// bytes exactly, or nil if there is none. The match is length-exact:
// "vel" never matches a stored "velocity" and vice versa.
func (t *TypeInfo) Lookup(name []byte) *PropertyInfo {
	for i := range t.properties {
		if p := &t.properties[i]; string(name) == p.Name {
			return p
		}
	}
	return nil
}

// Properties returns the property table. Callers must not modify it.
func (t *TypeInfo) Properties() []PropertyInfo {
	return t.properties
}

// IsLeaf reports whether the described type has no named members.
func (t *TypeInfo) IsLeaf() bool {
	return len(t.properties) == 0
}

// CanRead reports whether the described type supports reading its value
// as text.
func (t *TypeInfo) CanRead() bool {
	return t.getString != nil
}

// CanWrite reports whether the described type supports writing its
// value from text.
func (t *TypeInfo) CanWrite() bool {
	return t.setString != nil
}
