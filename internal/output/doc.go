// Package output verifies the expected post-install layout and appends
// derived path and environment variables to flat key=value files, the
// format GitHub Actions reads for $GITHUB_PATH and $GITHUB_ENV.
package output
