// Package version holds the application version, overridable at build time.
package version

// Version is set via -ldflags "-X cheff-guio/internal/version.Version=..."
var Version = "dev"
