package version

import (
	"fmt"
	"strings"
)

var (
	// GitCommit is the git commit that was compiled, filled in by the
	// build.
	GitCommit string

	// Version is the main version number that is being run at the moment.
	Version = "0.1.0"

	// VersionPrerelease is a pre-release marker. An empty string means a
	// final release; anything else is a pre-release such as "dev" or "rc1".
	VersionPrerelease = "dev"
)

// VersionInfo holds the pieces of a build's version.
type VersionInfo struct {
	Revision          string
	Version           string
	VersionPrerelease string
}

// GetVersion returns the version info for this build.
func GetVersion() *VersionInfo {
	return &VersionInfo{
		Revision:          GitCommit,
		Version:           Version,
		VersionPrerelease: VersionPrerelease,
	}
}

// VersionNumber formats the bare version, including any pre-release marker.
func (v *VersionInfo) VersionNumber() string {
	version := v.Version
	if v.VersionPrerelease != "" {
		version = fmt.Sprintf("%s-%s", version, v.VersionPrerelease)
	}
	return version
}

// FullVersionNumber formats the version for human output, optionally with
// the git revision.
func (v *VersionInfo) FullVersionNumber(rev bool) string {
	var versionString strings.Builder

	fmt.Fprintf(&versionString, "Fleet v%s", v.Version)
	if v.VersionPrerelease != "" {
		fmt.Fprintf(&versionString, "-%s", v.VersionPrerelease)
	}
	if rev && v.Revision != "" {
		fmt.Fprintf(&versionString, " (%s)", v.Revision)
	}

	return versionString.String()
}
