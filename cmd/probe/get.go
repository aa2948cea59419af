// Get command: reads one property value by dotted path.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/probe/internal/client"
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Read a property value",
	Long: `Get reads the value of the property at the given dotted path.

Example:
  probe get axis0.motor.velocity
  probe get vbus_voltage`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	path := args[0]

	value, err := newClient().Get(cmd.Context(), path)
	if err != nil {
		if errors.Is(err, client.ErrUnknownPath) {
			return fmt.Errorf("unknown property path %q (try \"probe list\")", path)
		}
		if errors.Is(err, client.ErrNotSupported) {
			return fmt.Errorf("property %q has no readable value", path)
		}
		return fmt.Errorf("get property: %w", err)
	}

	return printValue(path, value)
}
