// Package version pins the tool version reported by --version.
package version

// Version is overridable at link time.
var Version = "1.0.0"
