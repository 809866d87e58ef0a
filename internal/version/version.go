// Package version reports the nmcr build version.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set via ldflags:
// go build -ldflags "-X git.home.luguber.info/inful/nmcr/internal/version.Version=v0.3.0".
var (
	Version   = "unknown"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version. When no ldflags were
// given, the module version and VCS revision recorded by the go tool are used.
func String() string {
	v, commit := Version, GitCommit
	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "unknown" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
		if commit == "unknown" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			}
		}
	}
	return fmt.Sprintf("nmcr %s (commit %s, built %s)", v, commit, BuildTime)
}
