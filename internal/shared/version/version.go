// Package version carries build identity and semantic version comparison.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String returns the human-readable build identity.
func String() string {
	return fmt.Sprintf("flowboard %s (commit %s, built %s)", Version, Commit, Date)
}

// Normalize ensures a version string has the "v" prefix semver expects.
func Normalize(version string) string {
	if version == "" {
		return ""
	}
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// HasNewerVersion reports whether latestVersion is newer than
// currentVersion. Non-semver current versions (dev builds) always suggest
// an update; a non-semver latest never does.
func HasNewerVersion(currentVersion, latestVersion string) bool {
	if latestVersion == "" {
		return false
	}
	if currentVersion == "" || currentVersion == "dev" {
		return true
	}

	current := Normalize(currentVersion)
	latest := Normalize(latestVersion)

	if !semver.IsValid(current) {
		return true
	}
	if !semver.IsValid(latest) {
		return false
	}

	return semver.Compare(current, latest) < 0
}
