package introspect

import "testing"

func TestLookupExactLength(t *testing.T) {
	info := NewTypeInfo(
		PropertyInfo{Name: "foo", Getter: func(*Introspectable) {}},
		PropertyInfo{Name: "foobar", Getter: func(*Introspectable) {}},
	)

	tests := []struct {
		name string
		want string // "" means not found
	}{
		{"foo", "foo"},
		{"foobar", "foobar"},
		{"foob", ""},
		{"fo", ""},
		{"foobarbaz", ""},
		{"", ""},
		{"bar", ""},
	}
	for _, tt := range tests {
		got := info.Lookup([]byte(tt.name))
		if tt.want == "" {
			if got != nil {
				t.Errorf("Lookup(%q) = %q, want nil", tt.name, got.Name)
			}
			continue
		}
		if got == nil {
			t.Errorf("Lookup(%q) = nil, want %q", tt.name, tt.want)
		} else if got.Name != tt.want {
			t.Errorf("Lookup(%q) = %q, want %q", tt.name, got.Name, tt.want)
		}
	}
}

func TestLookupEmptyTable(t *testing.T) {
	info := NewTypeInfo()
	if got := info.Lookup([]byte("anything")); got != nil {
		t.Errorf("Lookup on empty table = %v, want nil", got)
	}
	if !info.IsLeaf() {
		t.Error("empty table IsLeaf() = false, want true")
	}
}

func TestNewTypeInfoDuplicateNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewTypeInfo with duplicate names did not panic")
		}
	}()
	NewTypeInfo(
		PropertyInfo{Name: "x"},
		PropertyInfo{Name: "x"},
	)
}

func TestCapabilityFlags(t *testing.T) {
	structural := rigTypeInfo()
	if structural.CanRead() || structural.CanWrite() {
		t.Error("structural descriptor reports conversion support")
	}
	if structural.IsLeaf() {
		t.Error("structural descriptor IsLeaf() = true")
	}

	rw := ReadWriteLeaf[float32]()
	if !rw.CanRead() || !rw.CanWrite() {
		t.Error("read-write leaf missing conversion support")
	}
	if !rw.IsLeaf() {
		t.Error("read-write leaf IsLeaf() = false")
	}

	ro := ReadOnlyLeaf[float32]()
	if !ro.CanRead() {
		t.Error("read-only leaf cannot read")
	}
	if ro.CanWrite() {
		t.Error("read-only leaf reports write support")
	}
}

func TestLeafSingletonIdentity(t *testing.T) {
	if ReadWriteLeaf[float32]() != ReadWriteLeaf[float32]() {
		t.Error("ReadWriteLeaf[float32] returned distinct instances")
	}
	if ReadOnlyLeaf[int32]() != ReadOnlyLeaf[int32]() {
		t.Error("ReadOnlyLeaf[int32] returned distinct instances")
	}
	if ReadWriteLeaf[float32]() == ReadOnlyLeaf[float32]() {
		t.Error("read-write and read-only descriptors share an instance")
	}
	if any(ReadWriteLeaf[int32]()) == any(ReadWriteLeaf[int64]()) {
		t.Error("descriptors of distinct types share an instance")
	}
}
