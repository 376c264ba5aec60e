// Package installer runs the install pipeline: it resolves the requested
// version into a release tag, builds the artifact URL for the current
// machine, downloads and extracts the archive with the top directory
// stripped, verifies the installed layout and writes CI output files.
//
// The pipeline is strictly sequential and every failure is fatal; nothing
// is retried or rolled back.
package installer
