// Snapshot commands: save, list, restore, and delete named captures of
// the server's writable property values.
package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/probe/internal/client"
	"github.com/mesh-intelligence/probe/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save and restore device configuration snapshots",
	Long: `Snapshot captures the current value of every readable leaf property
into a local database, so a device configuration can be restored later.

Snapshots are stored in the data directory (see --data-dir).`,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Capture the current property values under a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotSave,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotList,
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <name-or-id>",
	Short: "Write a snapshot's values back to the device",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotRestore,
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <name-or-id>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotDelete,
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
}

// openStore opens the snapshot store in the resolved data directory.
func openStore() (*snapshot.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	store, err := snapshot.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return store, nil
}

// captureValues reads every readable leaf of the server's tree.
func captureValues(ctx context.Context, c *client.Client) (map[string]string, error) {
	summaries, err := c.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	values := map[string]string{}
	for _, s := range summaries {
		if !s.Leaf || !s.Readable {
			continue
		}
		value, err := c.Get(ctx, s.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.Path, err)
		}
		values[s.Path] = value
	}
	return values, nil
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	name := args[0]

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	values, err := captureValues(cmd.Context(), newClient())
	if err != nil {
		return err
	}

	id, err := store.Save(name, values)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if flagJSON {
		return printJSON(map[string]any{"id": id, "name": name, "values": len(values)})
	}
	fmt.Printf("saved snapshot %q (%s, %d values)\n", name, id, len(values))
	return nil
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	snapshots, err := store.List()
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	if flagJSON {
		return printJSON(snapshots)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tCREATED\tVALUES")
	for _, s := range snapshots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			s.Name, s.ID, s.CreatedAt.Local().Format(time.RFC3339), s.ValueCount)
	}
	return w.Flush()
}

func runSnapshotRestore(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Find(args[0])
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			return fmt.Errorf("no snapshot named %q", args[0])
		}
		return fmt.Errorf("find snapshot: %w", err)
	}

	values, err := store.Values(snap.ID)
	if err != nil {
		return fmt.Errorf("load snapshot values: %w", err)
	}

	// Read-only leaves are captured but cannot be written back; count
	// them as skipped rather than failing the restore.
	c := newClient()
	restored, skipped := 0, 0
	for path, value := range values {
		_, err := c.Set(cmd.Context(), path, value)
		switch {
		case err == nil:
			restored++
		case errors.Is(err, client.ErrNotSupported), errors.Is(err, client.ErrUnknownPath):
			skipped++
		default:
			return fmt.Errorf("restore %s: %w", path, err)
		}
	}

	if flagJSON {
		return printJSON(map[string]any{"id": snap.ID, "restored": restored, "skipped": skipped})
	}
	fmt.Printf("restored snapshot %q: %d values written, %d skipped\n", snap.Name, restored, skipped)
	return nil
}

func runSnapshotDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Find(args[0])
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			return fmt.Errorf("no snapshot named %q", args[0])
		}
		return fmt.Errorf("find snapshot: %w", err)
	}
	if err := store.Delete(snap.ID); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}

	fmt.Printf("deleted snapshot %q (%s)\n", snap.Name, snap.ID)
	return nil
}
