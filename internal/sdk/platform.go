package sdk

import "runtime"

// Host reports the machine architecture and platform name of the current
// process using the conventions of the artifact naming scheme:
// "x86_64"/"arm64" for the architecture and uname-style "Linux"/"Darwin"
// for the platform.
func Host() (arch, platform string) {
	return hostArch(runtime.GOARCH), hostPlatform(runtime.GOOS)
}

// hostArch maps Go GOARCH values to release artifact architecture names.
// Unknown values pass through untouched and fail later at fetch time.
func hostArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "arm64"
	case "386":
		return "i686"
	default:
		return goarch
	}
}

// hostPlatform maps Go GOOS values to uname-style platform names.
func hostPlatform(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "darwin":
		return "Darwin"
	case "windows":
		return "Windows"
	default:
		return goos
	}
}
