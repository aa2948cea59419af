// Version command for the probe CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/probe/pkg/probe"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the probe version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("probe", probe.Version)
	},
}
