package synthex

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the current SDK version.
//
// This version follows semantic versioning (https://semver.org/).
const Version = "0.2.0"

// APIVersion is the Synthex API version this SDK was built against.
const APIVersion = "1.0.0"

// APIVersionRange is the semver constraint of server versions this SDK
// is expected to work with.
const APIVersionRange = ">=1.0.0-0, <2.0.0-0"

// IsCompatible reports whether a server reporting version falls within
// [APIVersionRange]. A leading "v" is accepted. Empty or unparsable
// versions are not compatible.
func IsCompatible(version string) bool {
	v, err := semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(APIVersionRange)
	if err != nil {
		return false
	}
	return c.Check(v)
}
