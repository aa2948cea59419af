// Package devsim provides a simulated motor-controller device: an
// application object tree wired out of property cells, plus the static
// descriptor tables that expose the tree to the introspection layer.
// It stands in for real firmware in the probe server and in tests.
// See docs/ARCHITECTURE.md § Device Simulator.
package devsim

import (
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/probe/pkg/introspect"
	"github.com/mesh-intelligence/probe/pkg/property"
)

// AxisState enumerates the axis control states.
type AxisState uint8

const (
	AxisIdle        AxisState = 0
	AxisCalibrating AxisState = 1
	AxisClosedLoop  AxisState = 8
)

// Motor is the per-axis motor model.
type Motor struct {
	// Velocity is the commanded velocity in turns/s.
	Velocity property.Value[float32]
	// CurrentLimit is the phase current limit in amps.
	CurrentLimit property.Value[float32]
	// PolePairs is a hardware constant, exposed read-only.
	PolePairs property.Value[uint8]
}

// Encoder is the per-axis encoder model.
type Encoder struct {
	// Position is the estimated position in turns, driven by the
	// simulation step.
	Position property.Value[float32]
	// CPR is counts per revolution.
	CPR property.Value[int32]
}

// Axis groups one motor/encoder pair and its control state.
type Axis struct {
	State   property.Value[AxisState]
	Motor   Motor
	Encoder Encoder
}

// Device is the root application object.
type Device struct {
	serial uint64
	start  time.Time
	steps  atomic.Int64

	SerialNumber property.Computed[uint64]
	VbusVoltage  property.Computed[float32]
	UptimeMs     property.Computed[int64]
	Enabled      property.Value[bool]

	Axis0 Axis
	Axis1 Axis
}

// NewDevice returns a Device with a random serial number and default
// hardware constants.
func NewDevice() *Device {
	d := &Device{start: time.Now()}
	u := uuid.New()
	d.serial = binary.BigEndian.Uint64(u[:8])

	d.SerialNumber = property.NewComputed(func() uint64 { return d.serial })
	d.VbusVoltage = property.NewComputed(d.vbusVoltage)
	d.UptimeMs = property.NewComputed(func() int64 {
		return time.Since(d.start).Milliseconds()
	})

	for _, a := range []*Axis{&d.Axis0, &d.Axis1} {
		a.Motor.CurrentLimit.Set(10)
		a.Motor.PolePairs.Set(7)
		a.Encoder.CPR.Set(8192)
	}
	return d
}

// Introspectable returns a root handle for the device.
func (d *Device) Introspectable() introspect.Introspectable {
	return introspect.New(d, deviceInfo)
}

// TypeInfo returns the device's root descriptor, for tree enumeration.
func TypeInfo() *introspect.TypeInfo {
	return deviceInfo
}

// Descriptor tables. One static instance per type, shared by both axes.
var motorInfo = introspect.NewTypeInfo(
	introspect.ValueAttr("velocity", func(m *Motor) *property.Value[float32] { return &m.Velocity }),
	introspect.ValueAttr("current_limit", func(m *Motor) *property.Value[float32] { return &m.CurrentLimit }),
	introspect.ReadOnlyAttr("pole_pairs", func(m *Motor) *property.Value[uint8] { return &m.PolePairs }),
)

var encoderInfo = introspect.NewTypeInfo(
	introspect.ReadOnlyAttr("position", func(e *Encoder) *property.Value[float32] { return &e.Position }),
	introspect.ValueAttr("cpr", func(e *Encoder) *property.Value[int32] { return &e.CPR }),
)

var axisInfo = introspect.NewTypeInfo(
	introspect.ValueAttr("state", func(a *Axis) *property.Value[AxisState] { return &a.State }),
	introspect.Attr("motor", func(a *Axis) *Motor { return &a.Motor }, motorInfo),
	introspect.Attr("encoder", func(a *Axis) *Encoder { return &a.Encoder }, encoderInfo),
)

var deviceInfo = introspect.NewTypeInfo(
	introspect.ComputedAttr("serial_number", func(d *Device) *property.Computed[uint64] { return &d.SerialNumber }),
	introspect.ComputedAttr("vbus_voltage", func(d *Device) *property.Computed[float32] { return &d.VbusVoltage }),
	introspect.ComputedAttr("uptime_ms", func(d *Device) *property.Computed[int64] { return &d.UptimeMs }),
	introspect.ValueAttr("enabled", func(d *Device) *property.Value[bool] { return &d.Enabled }),
	introspect.Attr("axis0", func(d *Device) *Axis { return &d.Axis0 }, axisInfo),
	introspect.Attr("axis1", func(d *Device) *Axis { return &d.Axis1 }, axisInfo),
)
