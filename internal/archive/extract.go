package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ExtractTarGz unpacks a gzip-compressed tar archive into destDir, dropping
// the leading path segment of every entry (like tar --strip-components=1).
//
// Entries whose path has a single segment, such as the archive's top-level
// directory, are skipped entirely: the stripped path would be empty.
// Already-extracted entries are not rolled back when a later one fails.
func ExtractTarGz(archivePath, destDir string) error {
	archiveFile, err := os.Open(filepath.Clean(archivePath))
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	defer func() {
		_ = archiveFile.Close()
	}()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return fmt.Errorf("create gzip reader: %w", err)
	}

	defer func() {
		_ = gzipReader.Close()
	}()

	// Anchor all member paths on an absolute destination so the escape
	// check below works for relative destinations like ".".
	destAbs, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("resolve dest dir: %w", err)
	}

	if err = os.MkdirAll(destAbs, 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tarReader := tar.NewReader(gzipReader)

	for {
		header, err := tarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}

		name, ok := stripLeadingSegment(header.Name)
		if !ok {
			continue
		}

		if err = extractMember(tarReader, header, destAbs, name); err != nil {
			return err
		}
	}

	return nil
}

// extractMember writes a single archive member under the absolute destination.
func extractMember(tarReader *tar.Reader, header *tar.Header, destAbs, name string) error {
	target := filepath.Join(destAbs, filepath.FromSlash(name))

	// Reject members whose stripped path escapes the destination.
	if !strings.HasPrefix(target, destAbs+string(os.PathSeparator)) {
		return fmt.Errorf("illegal file path: %s", header.Name)
	}

	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", target, err)
		}

	case tar.TypeReg:
		if err := writeRegularFile(tarReader, header, target); err != nil {
			return err
		}

	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create parent dir for %s: %w", target, err)
		}

		if err := os.Symlink(header.Linkname, target); err != nil {
			return fmt.Errorf("create symlink %s: %w", target, err)
		}

	default:
		// Skip other types (char devices, block devices, etc.).
	}

	return nil
}

// writeRegularFile copies a regular member's contents to the target path,
// preserving the mode recorded in the archive.
func writeRegularFile(tarReader *tar.Reader, header *tar.Header, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	outFile, err := os.OpenFile(filepath.Clean(target), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err = io.Copy(outFile, tarReader); err != nil {
		_ = outFile.Close()

		return fmt.Errorf("write file %s: %w", target, err)
	}

	if err = outFile.Close(); err != nil {
		return fmt.Errorf("close file %s: %w", target, err)
	}

	return nil
}

// stripLeadingSegment removes the first path component of a tar member name.
// The second return value is false when nothing remains after stripping.
func stripLeadingSegment(name string) (string, bool) {
	parts := strings.Split(strings.TrimSuffix(name, "/"), "/")
	if len(parts) < 2 {
		return "", false
	}

	return path.Join(parts[1:]...), true
}
