// Package archive downloads release artifacts to temporary files and
// extracts gzip-compressed tar archives with the leading path segment
// stripped, making the archive's internal top-level directory transparent
// to the installer.
package archive
