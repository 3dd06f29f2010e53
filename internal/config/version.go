package config

import "fmt"

// Build metadata, injected via -ldflags at release time. Defaults identify
// a local development build.
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the release version.
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp.
func GetBuild() string {
	return Build
}

// GetGitCommit returns the git commit hash the binary was built from.
func GetGitCommit() string {
	return GitCommit
}

// GetFullVersion returns the version annotated with build metadata, suitable
// for the -version flag.
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}
