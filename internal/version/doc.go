// Package version exposes build metadata injected at build time via ldflags
// and a cobra subcommand for printing it.
package version
