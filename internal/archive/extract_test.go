package archive

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// tarEntry describes one synthetic archive member.
type tarEntry struct {
	name     string
	typeflag byte
	body     string
	linkname string
}

// writeTarGz produces a tar.gz file from the provided entries.
func writeTarGz(t *testing.T, entries []tarEntry) string {
	t.Helper()

	var buf bytes.Buffer

	gzipWriter := gzip.NewWriter(&buf)
	tarWriter := tar.NewWriter(gzipWriter)

	for _, entry := range entries {
		header := &tar.Header{
			Name:     entry.name,
			Typeflag: entry.typeflag,
			Mode:     0o755,
			Size:     int64(len(entry.body)),
			Linkname: entry.linkname,
		}
		require.NoError(t, tarWriter.WriteHeader(header))

		if entry.typeflag == tar.TypeReg {
			_, err := tarWriter.Write([]byte(entry.body))
			require.NoError(t, err)
		}
	}

	require.NoError(t, tarWriter.Close())
	require.NoError(t, gzipWriter.Close())

	path := filepath.Join(t.TempDir(), "archive.tar.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	return path
}

// TestExtractTarGzStripsLeadingSegment checks the strip-components behavior.
func TestExtractTarGzStripsLeadingSegment(t *testing.T) {
	t.Parallel()

	archivePath := writeTarGz(t, []tarEntry{
		{name: "root/", typeflag: tar.TypeDir},
		{name: "root/a/", typeflag: tar.TypeDir},
		{name: "root/a/b.txt", typeflag: tar.TypeReg, body: "b"},
		{name: "root/c.txt", typeflag: tar.TypeReg, body: "c"},
	})

	destDir := t.TempDir()
	require.NoError(t, ExtractTarGz(archivePath, destDir))

	contents, err := os.ReadFile(filepath.Join(destDir, "a", "b.txt"))
	require.NoError(t, err)
	require.Equal(t, "b", string(contents))

	contents, err = os.ReadFile(filepath.Join(destDir, "c.txt"))
	require.NoError(t, err)
	require.Equal(t, "c", string(contents))

	// The top-level directory itself must not reappear under the destination.
	_, err = os.Stat(filepath.Join(destDir, "root"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestExtractTarGzSkipsSingleSegmentEntries ensures bare top-level members
// are dropped rather than extracted with an empty name.
func TestExtractTarGzSkipsSingleSegmentEntries(t *testing.T) {
	t.Parallel()

	archivePath := writeTarGz(t, []tarEntry{
		{name: "README", typeflag: tar.TypeReg, body: "top-level"},
	})

	destDir := t.TempDir()
	require.NoError(t, ExtractTarGz(archivePath, destDir))

	members, err := os.ReadDir(destDir)
	require.NoError(t, err)
	require.Empty(t, members)
}

// TestExtractTarGzSymlink checks symlink members are recreated.
func TestExtractTarGzSymlink(t *testing.T) {
	t.Parallel()

	archivePath := writeTarGz(t, []tarEntry{
		{name: "root/c.txt", typeflag: tar.TypeReg, body: "c"},
		{name: "root/link", typeflag: tar.TypeSymlink, linkname: "c.txt"},
	})

	destDir := t.TempDir()
	require.NoError(t, ExtractTarGz(archivePath, destDir))

	target, err := os.Readlink(filepath.Join(destDir, "link"))
	require.NoError(t, err)
	require.Equal(t, "c.txt", target)
}

// TestExtractTarGzRejectsTraversal ensures members escaping the destination fail.
func TestExtractTarGzRejectsTraversal(t *testing.T) {
	t.Parallel()

	archivePath := writeTarGz(t, []tarEntry{
		{name: "root/../../evil.txt", typeflag: tar.TypeReg, body: "evil"},
	})

	destDir := t.TempDir()
	require.Error(t, ExtractTarGz(archivePath, destDir))
}

// TestExtractTarGzCreatesDestDir checks the destination tree is created on demand.
func TestExtractTarGzCreatesDestDir(t *testing.T) {
	t.Parallel()

	archivePath := writeTarGz(t, []tarEntry{
		{name: "root/c.txt", typeflag: tar.TypeReg, body: "c"},
	})

	destDir := filepath.Join(t.TempDir(), "nested", "install")
	require.NoError(t, ExtractTarGz(archivePath, destDir))

	_, err := os.Stat(filepath.Join(destDir, "c.txt"))
	require.NoError(t, err)
}

// TestExtractTarGzNotAnArchive rejects files that are not gzip data.
func TestExtractTarGzNotAnArchive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	require.Error(t, ExtractTarGz(path, t.TempDir()))
}

// TestStripLeadingSegment covers the member name rewriting rule.
func TestStripLeadingSegment(t *testing.T) {
	t.Parallel()

	name, ok := stripLeadingSegment("root/a/b.txt")
	require.True(t, ok)
	require.Equal(t, "a/b.txt", name)

	name, ok = stripLeadingSegment("root/c.txt")
	require.True(t, ok)
	require.Equal(t, "c.txt", name)

	_, ok = stripLeadingSegment("root")
	require.False(t, ok)

	_, ok = stripLeadingSegment("root/")
	require.False(t, ok)
}
