// Package version carries build-time identification.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String formats the full build identification line.
func String() string {
	return fmt.Sprintf("sevenseg-reader %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
