package introspect

import (
	"github.com/mesh-intelligence/probe/pkg/property"
)

// Test fixture: a two-level rig with read-write, read-only, computed,
// and enum-typed leaves.
//
//	rig
//	├── enabled        bool      (rw)
//	├── step_count     int32     (ro, backed by writable cell)
//	└── motor
//	    ├── velocity   float32   (rw)
//	    ├── state      rigState  (rw, named uint8)
//	    └── temperature float32  (computed)

type rigState uint8

const (
	rigIdle    rigState = 0
	rigClosed  rigState = 2
	rigRunning rigState = 8
)

type testMotor struct {
	Velocity    property.Value[float32]
	State       property.Value[rigState]
	Temperature property.Computed[float32]
}

type testRig struct {
	Enabled   property.Value[bool]
	StepCount property.Value[int32]
	Motor     testMotor
}

func newTestRig() *testRig {
	rig := &testRig{}
	rig.Motor.Temperature = property.NewComputed(func() float32 { return 21.5 })
	return rig
}

func motorTypeInfo() *TypeInfo {
	return NewTypeInfo(
		ValueAttr("velocity", func(m *testMotor) *property.Value[float32] { return &m.Velocity }),
		ValueAttr("state", func(m *testMotor) *property.Value[rigState] { return &m.State }),
		ComputedAttr("temperature", func(m *testMotor) *property.Computed[float32] { return &m.Temperature }),
	)
}

func rigTypeInfo() *TypeInfo {
	return NewTypeInfo(
		ValueAttr("enabled", func(r *testRig) *property.Value[bool] { return &r.Enabled }),
		ReadOnlyAttr("step_count", func(r *testRig) *property.Value[int32] { return &r.StepCount }),
		Attr("motor", func(r *testRig) *testMotor { return &r.Motor }, motorTypeInfo()),
	)
}

func newRigHandle() (Introspectable, *testRig) {
	rig := newTestRig()
	return New(rig, rigTypeInfo()), rig
}
