package version

import (
	_ "embed"
	"strings"
)

// Version information embedded from VERSION file
// This package provides centralized version management for the toolset.
// The VERSION file lives alongside this package and is embedded at compile time.

//go:embed VERSION
var versionRaw string

// Version is the current version of the toolset, trimmed of whitespace.
// The convert and scan actions share the same version number.
var Version = strings.TrimSpace(versionRaw)

// Get returns the current version string.
// This is a convenience function for accessing the Version variable.
func Get() string {
	return Version
}
