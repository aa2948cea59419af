// End-to-end tests of the property API: path traversal, text
// conversion, and error mapping through the HTTP transport.
package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/probe/internal/client"
	"github.com/mesh-intelligence/probe/internal/devsim"
)

func TestReadWriteRoundTrip(t *testing.T) {
	c, dev := newStack(t)
	ctx := context.Background()

	stored, err := c.Set(ctx, "axis0.motor.velocity", "1.75")
	require.NoError(t, err)
	assert.Equal(t, "1.75", stored)

	got, err := c.Get(ctx, "axis0.motor.velocity")
	require.NoError(t, err)
	assert.Equal(t, "1.75", got)

	// The write went through to the underlying cell.
	assert.Equal(t, float32(1.75), dev.Axis0.Motor.Velocity.Read())
}

func TestEnumPropertyRoundTrip(t *testing.T) {
	c, dev := newStack(t)
	ctx := context.Background()

	// Axis state is a named uint8; its text form is the underlying
	// integer value.
	stored, err := c.Set(ctx, "axis0.state", "8")
	require.NoError(t, err)
	assert.Equal(t, "8", stored)
	assert.Equal(t, devsim.AxisClosedLoop, dev.Axis0.State.Read())

	got, err := c.Get(ctx, "axis0.state")
	require.NoError(t, err)
	assert.Equal(t, "8", got)
}

func TestDeepPathTraversal(t *testing.T) {
	c, dev := newStack(t)
	dev.Axis1.Encoder.CPR.Set(2048)

	got, err := c.Get(context.Background(), "axis1.encoder.cpr")
	require.NoError(t, err)
	assert.Equal(t, "2048", got)
}

func TestUnknownPathsAreUnknownEverywhere(t *testing.T) {
	c, _ := newStack(t)
	ctx := context.Background()

	for _, path := range []string{
		"nope",
		"axis0.nope",
		"axis0.motor.velocity.nope", // past a leaf
		"axis0..motor",              // empty token
		"axis0.motor.",              // trailing separator
	} {
		_, err := c.Get(ctx, path)
		assert.ErrorIs(t, err, client.ErrUnknownPath, "path %q", path)
	}
}

func TestWriteRejections(t *testing.T) {
	c, dev := newStack(t)
	ctx := context.Background()
	before := dev.Axis0.Motor.PolePairs.Read()

	_, err := c.Set(ctx, "axis0.motor.pole_pairs", "9")
	assert.ErrorIs(t, err, client.ErrNotSupported, "read-only leaf")

	_, err = c.Set(ctx, "axis0.motor", "1")
	assert.ErrorIs(t, err, client.ErrNotSupported, "structural node")

	_, err = c.Set(ctx, "axis0.motor.velocity", "not-a-number")
	assert.ErrorIs(t, err, client.ErrNotSupported, "unparsable value")

	// Nothing was mutated by the rejected writes.
	assert.Equal(t, before, dev.Axis0.Motor.PolePairs.Read())
	assert.Equal(t, float32(0), dev.Axis0.Motor.Velocity.Read())
}

func TestListMatchesDescriptorTree(t *testing.T) {
	c, _ := newStack(t)

	summaries, err := c.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, summaries)

	byPath := map[string]bool{}
	for _, s := range summaries {
		byPath[s.Path] = true
	}
	for _, want := range []string{
		"serial_number",
		"vbus_voltage",
		"enabled",
		"axis0.state",
		"axis0.motor.velocity",
		"axis1.encoder.position",
	} {
		assert.True(t, byPath[want], "listing is missing %q", want)
	}
}
