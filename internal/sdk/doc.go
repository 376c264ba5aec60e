// Package sdk models WASI SDK releases: version and tag normalization,
// artifact URL construction, host platform naming, and resolution of the
// "latest" token via the GitHub releases API.
package sdk
