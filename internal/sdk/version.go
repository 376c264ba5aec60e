package sdk

import "strings"

const (
	// TagPrefix precedes the numeric identifier in release tags.
	TagPrefix = "wasi-sdk-"

	// LatestVersion asks the resolver to pick the newest published release.
	LatestVersion = "latest"
)

// VersionSpec couples a dotted version number with the release tag it belongs to.
type VersionSpec struct {
	// Version is the dotted number embedded in artifact filenames (e.g. "25.0").
	Version string
	// Tag is the release identifier in the download URL path (e.g. "wasi-sdk-25").
	Tag string
}

// Normalize converts a user-supplied dotted version into a version/tag pair.
// A trailing ".0" is dropped from the tag only, and the version always
// carries at least one dot:
//
//	"25"   -> ("25.0", "wasi-sdk-25")
//	"25.0" -> ("25.0", "wasi-sdk-25")
//	"25.1" -> ("25.1", "wasi-sdk-25.1")
func Normalize(version string) VersionSpec {
	return VersionSpec{
		Version: ensureDotted(version),
		Tag:     TagPrefix + strings.TrimSuffix(version, ".0"),
	}
}

// FromTag derives the spec for a release tag returned by the releases API.
func FromTag(tag string) VersionSpec {
	return VersionSpec{
		Version: ensureDotted(strings.TrimPrefix(tag, TagPrefix)),
		Tag:     tag,
	}
}

// ensureDotted appends ".0" to versions published without a minor component.
func ensureDotted(version string) string {
	if !strings.Contains(version, ".") {
		return version + ".0"
	}

	return version
}
