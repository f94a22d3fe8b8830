// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the one-line version banner printed by --version.
func String() string {
	return fmt.Sprintf("flattag version %s (commit: %s, built: %s)", Version, Commit, Date)
}
