// Package version holds the build metadata printed by `runlog version`.
package version

import "runtime"

var (
	// AppName is the name of the binary.
	AppName = "runlog"
	// Version is overridden at build time with -ldflags -X.
	Version = "DEV"
	// BuildDate is set at build time. Empty when unknown.
	BuildDate = "" // YYYY-MM-DD
	// CommitHash is set at build time. Empty when unknown.
	CommitHash = ""
)

// VersionInfo formats the build metadata together with the Go runtime version.
func VersionInfo() string {
	return versionString(Version, BuildDate, CommitHash, runtime.Version())
}

func versionString(version, buildDate, commit, goVersion string) string {
	out := AppName + " " + version
	if buildDate != "" {
		out += " (" + buildDate + ")"
	}
	if commit != "" {
		out += ", commit " + commit
	}
	return out + ", Go Version: " + goVersion
}
