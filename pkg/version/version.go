// Package version reports the version of the deeppath-mcp binary.
package version

import "runtime/debug"

// Version is overridden at build time with
// -ldflags "-X github.com/deeppath/deeppath-mcp/pkg/version.Version=v1.2.3"
var Version = ""

const defaultVersion = "1.0.0"

// GetVersion returns the version of the binary.
// Precedence: ldflags value > module version from build info > default.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return defaultVersion
}
