// Package version exposes build information injected at link time.
package version

//nolint:gochecknoglobals // Set through -ldflags at build time.
var (
	// Version is the released version.
	Version = "0.1.0"
	// Commit is the source revision.
	Commit = "none"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Short returns the version alone.
func Short() string {
	return Version
}

// Full returns the version with commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
