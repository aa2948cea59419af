// Package probe holds module-level metadata shared by the CLI and the
// build tooling.
package probe

// Version is the probe release version.
const Version = "0.1.0"
