// Output helpers shared by the probe subcommands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printValue prints a single property value, as JSON when --json is
// set and as the bare value otherwise.
func printValue(path, value string) error {
	if flagJSON {
		return printJSON(map[string]string{"path": path, "value": value})
	}
	fmt.Println(value)
	return nil
}
