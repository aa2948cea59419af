// List command: prints the property tree of the server.
package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagLeavesOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the property tree",
	Long: `List prints every property path the server exposes, with its access
mode: rw (read-write), ro (read-only), or - (structural node).`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagLeavesOnly, "leaves", false, "list only leaf properties")
}

func runList(cmd *cobra.Command, args []string) error {
	summaries, err := newClient().List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list properties: %w", err)
	}

	if flagLeavesOnly {
		leaves := summaries[:0]
		for _, s := range summaries {
			if s.Leaf {
				leaves = append(leaves, s)
			}
		}
		summaries = leaves
	}

	if flagJSON {
		return printJSON(summaries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, s := range summaries {
		mode := "-"
		switch {
		case s.Readable && s.Writable:
			mode = "rw"
		case s.Readable:
			mode = "ro"
		}
		fmt.Fprintf(w, "%s\t%s\n", s.Path, mode)
	}
	return w.Flush()
}
