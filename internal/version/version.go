// Package version carries build metadata stamped at link time.
package version

// Version is overridden via -ldflags on release builds.
var Version = "dev"
