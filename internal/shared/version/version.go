// Package version exposes build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// String renders the metadata for the version command and the startup log line.
func String() string {
	return fmt.Sprintf("tracker %s (commit %s, built %s, %s)", Version, Commit, BuildDate, runtime.Version())
}
