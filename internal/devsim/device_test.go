package devsim

import (
	"testing"
	"time"

	"github.com/mesh-intelligence/probe/pkg/introspect"
)

func getString(t *testing.T, h introspect.Introspectable, path string) string {
	t.Helper()
	leaf := h.Child(path)
	if !leaf.IsValid() {
		t.Fatalf("Child(%q) is invalid", path)
	}
	buf := make([]byte, 64)
	n, ok := leaf.GetString(buf)
	if !ok {
		t.Fatalf("GetString(%q) failed", path)
	}
	return string(buf[:n])
}

func TestDeviceDefaults(t *testing.T) {
	h := NewDevice().Introspectable()
	tests := []struct {
		path, want string
	}{
		{"enabled", "false"},
		{"axis0.state", "0"},
		{"axis0.motor.current_limit", "10"},
		{"axis0.motor.pole_pairs", "7"},
		{"axis1.encoder.cpr", "8192"},
	}
	for _, tt := range tests {
		if got := getString(t, h, tt.path); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDeviceSerialIsStable(t *testing.T) {
	d := NewDevice()
	h := d.Introspectable()
	first := getString(t, h, "serial_number")
	if first == "0" {
		t.Error("serial_number is zero")
	}
	if again := getString(t, h, "serial_number"); again != first {
		t.Errorf("serial_number changed between reads: %q then %q", first, again)
	}
	if other := getString(t, NewDevice().Introspectable(), "serial_number"); other == first {
		t.Error("two devices share a serial number")
	}
}

func TestWritableAndReadOnlyPaths(t *testing.T) {
	d := NewDevice()
	h := d.Introspectable()

	if !h.Child("axis0.motor.velocity").SetString([]byte("3.5")) {
		t.Fatal("write to velocity failed")
	}
	if got := d.Axis0.Motor.Velocity.Read(); got != 3.5 {
		t.Errorf("velocity cell = %v, want 3.5", got)
	}

	if h.Child("axis0.motor.pole_pairs").SetString([]byte("11")) {
		t.Error("write to read-only pole_pairs succeeded")
	}
	if h.Child("vbus_voltage").SetString([]byte("12")) {
		t.Error("write to computed vbus_voltage succeeded")
	}
}

func TestAxesShareDescriptorsNotState(t *testing.T) {
	d := NewDevice()
	h := d.Introspectable()

	a0 := h.Child("axis0.motor.velocity")
	a1 := h.Child("axis1.motor.velocity")
	if a0.Type() != a1.Type() {
		t.Error("axis motors do not share a leaf descriptor")
	}

	if !a0.SetString([]byte("2")) {
		t.Fatal("write to axis0 velocity failed")
	}
	if got := d.Axis1.Motor.Velocity.Read(); got != 0 {
		t.Errorf("axis1 velocity = %v after axis0 write, want 0", got)
	}
}

func TestStepIntegratesPosition(t *testing.T) {
	d := NewDevice()
	d.Enabled.Set(true)
	d.Axis0.State.Set(AxisClosedLoop)
	d.Axis0.Motor.Velocity.Set(2) // turns/s

	for i := 0; i < 10; i++ {
		d.Step(100 * time.Millisecond)
	}
	got := d.Axis0.Encoder.Position.Read()
	if got < 1.99 || got > 2.01 {
		t.Errorf("position after 1s at 2 turns/s = %v, want ~2", got)
	}

	// Idle axis does not move.
	if pos := d.Axis1.Encoder.Position.Read(); pos != 0 {
		t.Errorf("idle axis1 position = %v, want 0", pos)
	}
}

func TestStepRespectsEnabled(t *testing.T) {
	d := NewDevice()
	d.Axis0.State.Set(AxisClosedLoop)
	d.Axis0.Motor.Velocity.Set(5)
	d.Step(time.Second)
	if pos := d.Axis0.Encoder.Position.Read(); pos != 0 {
		t.Errorf("disabled device integrated position to %v, want 0", pos)
	}
}

func TestTreeEnumeration(t *testing.T) {
	var paths []string
	introspect.Walk(TypeInfo(), func(path string, info *introspect.TypeInfo) {
		paths = append(paths, path)
	})

	want := map[string]bool{
		"serial_number":             true,
		"vbus_voltage":              true,
		"uptime_ms":                 true,
		"enabled":                   true,
		"axis0.motor.velocity":      true,
		"axis1.motor.velocity":      true,
		"axis0.encoder.position":    true,
		"axis1.motor.current_limit": true,
	}
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		seen[p] = true
	}
	for p := range want {
		if !seen[p] {
			t.Errorf("Walk did not visit %q", p)
		}
	}
}
