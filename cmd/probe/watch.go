// Watch command: streams a property value until interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/probe/internal/client"
	"github.com/mesh-intelligence/probe/internal/server"
)

var flagWatchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Stream a property value",
	Long: `Watch samples the property at the given dotted path at a fixed
interval and prints each sample until interrupted.

Example:
  probe watch axis0.encoder.position --interval 100ms`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 500*time.Millisecond, "sampling interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newClient().Watch(ctx, path, flagWatchInterval, func(u server.Update) error {
		if flagJSON {
			return printJSON(u)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s = %s\n",
			u.At.Format(time.RFC3339), u.Path, u.Value)
		return nil
	})
	switch {
	case errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, client.ErrUnknownPath):
		return fmt.Errorf("unknown property path %q (try \"probe list\")", path)
	case errors.Is(err, client.ErrNotSupported):
		return fmt.Errorf("property %q has no readable value", path)
	}
	return err
}
