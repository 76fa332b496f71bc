// Package version provides centralized version management for modernish.
// It supports semantic versioning and build-time injection.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build information that can be set at compile time via -ldflags.
var (
	// Version is the semantic version of the application.
	Version = "0.1.0"

	// GitCommit is the git commit hash when the binary was built.
	GitCommit = "unknown"

	// BuildDate is the date when the binary was built.
	BuildDate = "unknown"
)

// Info represents comprehensive version information.
type Info struct {
	Version   string          `json:"version"`
	GitCommit string          `json:"gitCommit"`
	BuildDate string          `json:"buildDate"`
	GoVersion string          `json:"goVersion"`
	Platform  string          `json:"platform"`
	SemVer    *semver.Version `json:"-"`
}

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// Get returns full version information. The SemVer field is nil when the
// version string does not parse.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
	if sv, err := semver.NewVersion(Version); err == nil {
		info.SemVer = sv
	}
	return info
}

// IsValid reports whether the current version string is valid semver.
func IsValid() bool {
	_, err := semver.NewVersion(Version)
	return err == nil
}

// String returns a one-line human-readable version description.
func (i Info) String() string {
	return fmt.Sprintf("modernish v%s (%s, built %s, %s, %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
