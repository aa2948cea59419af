package introspect

import "bytes"

// Introspectable wraps a reference to an application object together
// with the object's runtime descriptor. The payload is always a small
// pointer-shaped value (a pointer to the object, or a pointer to one of
// its property cells); the handle never owns what it references.
//
// The zero Introspectable is invalid. Handles are values: traversal
// works on a copy and repositions it in place rather than allocating.
type Introspectable struct {
	payload  any
	typeInfo *TypeInfo
}

// New returns a root handle for obj described by info.
func New[Obj any](obj *Obj, info *TypeInfo) Introspectable {
	return Introspectable{payload: obj, typeInfo: info}
}

// As returns the handle's payload as type P. It reports false if the
// payload is not a P. Intended for custom getters and tests; normal
// access goes through GetString and SetString.
func As[P any](i Introspectable) (P, bool) {
	p, ok := i.payload.(P)
	return p, ok
}

// GetChild returns a handle for the attribute named by path, which may
// consist of multiple dot-separated parts. The path ends at the first
// NUL byte or the end of the slice, whichever comes first.
//
// If any part fails to resolve the returned handle is invalid, and no
// parts after the failing one are evaluated. A separator as the last
// path byte introduces a final empty part, which matches nothing. An
// empty path returns a copy of the receiver. Traversal does not
// allocate.
func (i Introspectable) GetChild(path []byte) Introspectable {
	current := i

	end := len(path)
	if n := bytes.IndexByte(path, 0); n >= 0 {
		end = n
	}

	begin := 0
	for begin < end && current.typeInfo != nil {
		tokenEnd := end
		if n := bytes.IndexByte(path[begin:end], '.'); n >= 0 {
			tokenEnd = begin + n
		}

		if prop := current.typeInfo.Lookup(path[begin:tokenEnd]); prop != nil {
			prop.Getter(&current)
			current.typeInfo = prop.TypeInfo
		} else {
			current.typeInfo = nil
		}

		// A trailing separator means one more, empty token; it fails
		// like any other unknown name.
		if tokenEnd+1 == end {
			current.typeInfo = nil
		}

		begin = tokenEnd + 1
	}

	return current
}

// Child is GetChild for a string path.
func (i Introspectable) Child(path string) Introspectable {
	return i.GetChild([]byte(path))
}

// IsValid reports whether the handle references a described attribute.
// A handle becomes invalid when a path lookup fails and stays invalid.
func (i Introspectable) IsValid() bool {
	return i.typeInfo != nil
}

// Type returns the handle's descriptor, or nil if the handle is
// invalid.
func (i Introspectable) Type() *TypeInfo {
	return i.typeInfo
}

// GetString writes the referenced value as text into buf and returns
// the number of bytes written. It reports false if the handle is
// invalid, the attribute is structural, or buf is too small; buf
// contents are unspecified on failure.
func (i Introspectable) GetString(buf []byte) (int, bool) {
	if i.typeInfo == nil || i.typeInfo.getString == nil {
		return 0, false
	}
	return i.typeInfo.getString(&i, buf)
}

// SetString parses buf as text and writes the result into the
// referenced value. It reports false, leaving the value untouched, if
// the handle is invalid, the attribute is structural or read-only, or
// buf does not parse as the attribute's type.
func (i Introspectable) SetString(buf []byte) bool {
	if i.typeInfo == nil || i.typeInfo.setString == nil {
		return false
	}
	return i.typeInfo.setString(&i, buf)
}
