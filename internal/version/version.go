package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build metadata injected via -ldflags "-X .../version.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// isDev reports whether no release metadata was stamped in. A binary built
// with `go install module@version` still carries its module version.
func isDev() bool {
	if Version != "dev" {
		return false
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		Version = bi.Main.Version
		return false
	}
	return true
}

// Short is shown in the TUI header.
func Short() string {
	if isDev() {
		return "noted dev"
	}
	return "noted " + Version
}

// Long is printed by `noted version`.
func Long() string {
	if isDev() {
		return fmt.Sprintf("noted dev (%s/%s)", runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("noted %s (commit: %s, built: %s, %s/%s)",
		Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
