// Package version carries the build metadata shown in the About dialog.
package version

// Stamped at release time via -ldflags "-X ...". Dev builds keep the
// defaults.
var (
	// Version is the semantic version of this build.
	Version = "0.1.0"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"
)
