// Package version holds the build version, set with -ldflags "-X .../internal/version.Version=v1.2.3".
package version

// Version is the application version.
var Version = "dev"
