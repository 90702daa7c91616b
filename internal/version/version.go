// Package version holds build metadata for the lifegrid binary.
// The values are stamped at link time via -ldflags; the defaults
// identify an unstamped development build.
package version

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// GitSHA identifies the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is when the binary was linked.
	BuildTime = "unknown"
)
