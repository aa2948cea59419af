// Set command: writes one property value by dotted path.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/probe/internal/client"
)

var setCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Write a property value",
	Long: `Set writes a value to the property at the given dotted path and
prints the stored value in its canonical text form.

Example:
  probe set axis0.motor.velocity 2.5
  probe set enabled true`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	path, value := args[0], args[1]

	stored, err := newClient().Set(cmd.Context(), path, value)
	if err != nil {
		if errors.Is(err, client.ErrUnknownPath) {
			return fmt.Errorf("unknown property path %q (try \"probe list\")", path)
		}
		if errors.Is(err, client.ErrNotSupported) {
			return fmt.Errorf("property %q rejected %q (read-only, or not a valid value)", path, value)
		}
		return fmt.Errorf("set property: %w", err)
	}

	return printValue(path, stored)
}
