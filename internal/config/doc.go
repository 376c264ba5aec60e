// Package config defines the install settings and provides helpers to load
// and save them in YAML format and to apply environment variable overrides.
//
// Precedence, lowest to highest: built-in defaults, the optional settings
// file, command-line flags, INPUT_ environment variables.
package config
