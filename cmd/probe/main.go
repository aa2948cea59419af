// Package main provides the probe CLI: a server that exposes a
// device's property tree over HTTP, and client commands to read, write,
// watch, and snapshot properties by dotted path.
// See docs/ARCHITECTURE.md § CLI and Client.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
