package core

import (
	_ "embed"
	"fmt"
	"strings"

	version "github.com/hashicorp/go-version"
)

//go:embed version
var clientVersion string

// MinimumAPIVersion is the oldest EP API release this client is known to work with.
const MinimumAPIVersion = "0.2.0"

func ClientVersion() string {
	return strings.TrimSpace(clientVersion)
}

// versionKeys are the status fields that may carry the API version, in lookup order.
var versionKeys = []string{"version", "api_version", "app_version"}

// APIVersionFromStatus extracts the API version from a status response.
// The second return value is false when no version field is present.
func APIVersionFromStatus(status Record) (string, bool) {
	for _, key := range versionKeys {
		if v, ok := status[key]; ok && v != nil {
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// CheckVersionCompat compares apiVersion with minVersion (MinimumAPIVersion when empty).
// It returns *VersionIncompatibleError when the API is older.
func CheckVersionCompat(apiVersion, minVersion string) error {
	if minVersion == "" {
		minVersion = MinimumAPIVersion
	}
	current, err := version.NewVersion(apiVersion)
	if err != nil {
		return &ValidationError{Field: "version", Message: fmt.Sprintf("invalid version format: %s", apiVersion)}
	}
	minimum, err := version.NewVersion(minVersion)
	if err != nil {
		return &ValidationError{Field: "version", Message: fmt.Sprintf("invalid version format: %s", minVersion)}
	}
	if current.Core().LessThan(minimum.Core()) {
		return &VersionIncompatibleError{APIVersion: apiVersion, MinimumVersion: minVersion}
	}
	return nil
}
