package sdk

import (
	"fmt"
	"strings"
)

// DefaultDownloadBaseURL is where release artifacts are published.
const DefaultDownloadBaseURL = "https://github.com/WebAssembly/wasi-sdk/releases/download"

// ArtifactURL builds the download URL for a release artifact.
// Pattern: {base}/{tag}/wasi-sdk-{version}-{arch}-{os}.tar.gz
//
// "Darwin" is published as "macos"; any other platform name is lowercased
// as-is. Arch and platform are not validated: a combination with no
// published artifact yields a URL that 404s at fetch time.
func ArtifactURL(version, tag, arch, platform string) string {
	return ArtifactURLAt(DefaultDownloadBaseURL, version, tag, arch, platform)
}

// ArtifactURLAt is ArtifactURL against a non-default base URL (mirrors, tests).
func ArtifactURLAt(baseURL, version, tag, arch, platform string) string {
	if baseURL == "" {
		baseURL = DefaultDownloadBaseURL
	}

	osName := strings.ToLower(platform)
	if platform == "Darwin" {
		osName = "macos"
	}

	return fmt.Sprintf("%s/%s/wasi-sdk-%s-%s-%s.tar.gz", baseURL, tag, version, arch, osName)
}
