package devsim

import (
	"context"
	"math"
	"time"
)

// vbusVoltage models a nominal 24 V bus with a small ripple tied to the
// step counter, so watchers see the value move.
func (d *Device) vbusVoltage() float32 {
	ripple := 0.05 * math.Sin(float64(d.steps.Load())/10)
	return float32(24.0 + ripple)
}

// Step advances the simulation by dt: each axis in closed-loop control
// integrates its commanded velocity into the encoder position.
func (d *Device) Step(dt time.Duration) {
	d.steps.Add(1)
	for _, a := range []*Axis{&d.Axis0, &d.Axis1} {
		if !d.Enabled.Read() || a.State.Read() != AxisClosedLoop {
			continue
		}
		pos := a.Encoder.Position.Read()
		pos += a.Motor.Velocity.Read() * float32(dt.Seconds())
		a.Encoder.Position.Set(pos)
	}
}

// Run steps the simulation at the given interval until ctx is done.
func (d *Device) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Step(interval)
		}
	}
}
