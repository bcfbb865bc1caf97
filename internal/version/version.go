// Package version carries the build metadata reported by docforge --version.
package version

// Stamped at release time via -ldflags; defaults identify a source build.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the release version, git commit, and build date.
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}
