// Save a device's configuration to the snapshot store, mutate the
// device, then restore and verify the writable values come back.
package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/probe/internal/client"
	"github.com/mesh-intelligence/probe/internal/snapshot"
)

func TestSnapshotSaveRestore(t *testing.T) {
	c, dev := newStack(t)
	ctx := context.Background()

	store, err := snapshot.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	// Put the device in a known configuration and capture it, the same
	// way `probe snapshot save` does: every readable leaf.
	_, err = c.Set(ctx, "axis0.motor.velocity", "2.5")
	require.NoError(t, err)
	_, err = c.Set(ctx, "axis0.motor.current_limit", "15")
	require.NoError(t, err)

	summaries, err := c.List(ctx)
	require.NoError(t, err)

	values := map[string]string{}
	for _, s := range summaries {
		if !s.Leaf || !s.Readable {
			continue
		}
		v, err := c.Get(ctx, s.Path)
		require.NoError(t, err)
		values[s.Path] = v
	}

	id, err := store.Save("baseline", values)
	require.NoError(t, err)

	// Drift away from the captured state.
	_, err = c.Set(ctx, "axis0.motor.velocity", "0")
	require.NoError(t, err)
	_, err = c.Set(ctx, "axis0.motor.current_limit", "5")
	require.NoError(t, err)

	// Restore by name. Read-only leaves (serial number, uptime, encoder
	// position) were captured too; writing them back is rejected and
	// must be skipped, not fail the restore.
	snap, err := store.Find("baseline")
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID)

	saved, err := store.Values(snap.ID)
	require.NoError(t, err)
	require.Equal(t, values, saved)

	restored, skipped := 0, 0
	for path, value := range saved {
		_, err := c.Set(ctx, path, value)
		switch {
		case err == nil:
			restored++
		case errors.Is(err, client.ErrNotSupported):
			skipped++
		default:
			t.Fatalf("restore %s: %v", path, err)
		}
	}
	assert.NotZero(t, restored)
	assert.NotZero(t, skipped, "read-only leaves should be skipped")

	assert.Equal(t, float32(2.5), dev.Axis0.Motor.Velocity.Read())
	assert.Equal(t, float32(15), dev.Axis0.Motor.CurrentLimit.Read())
}

func TestSnapshotListAndDelete(t *testing.T) {
	store, err := snapshot.Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	first, err := store.Save("alpha", map[string]string{"enabled": "false"})
	require.NoError(t, err)
	_, err = store.Save("beta", map[string]string{"enabled": "true"})
	require.NoError(t, err)

	snaps, err := store.List()
	require.NoError(t, err)
	require.Len(t, snaps, 2)

	require.NoError(t, store.Delete(first))

	snaps, err = store.List()
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "beta", snaps[0].Name)

	_, err = store.Find("alpha")
	assert.ErrorIs(t, err, snapshot.ErrNotFound)
}
