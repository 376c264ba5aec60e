package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	errClangMissing   = errors.New("clang not found")
	errSysrootMissing = errors.New("sysroot not found")
)

// appendFilePermissions is used when an output file has to be created first.
const appendFilePermissions = 0o644

// Paths locates the artifacts expected under a completed install.
type Paths struct {
	// InstallDir is the root the archive was extracted into.
	InstallDir string
	// Clang is the path to the clang driver inside the install.
	Clang string
	// Sysroot is the path to the WASI sysroot inside the install.
	Sysroot string
}

// Inspect verifies the expected post-install layout under installDir and
// returns the derived paths. A missing clang binary or sysroot directory
// is a fatal postcondition failure for the installer.
func Inspect(installDir string) (*Paths, error) {
	clang := filepath.Join(installDir, "bin", "clang")

	info, err := os.Stat(clang)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w at %s", errClangMissing, clang)
	}

	sysroot := filepath.Join(installDir, "share", "wasi-sysroot")

	info, err = os.Stat(sysroot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w at %s", errSysrootMissing, sysroot)
	}

	return &Paths{
		InstallDir: installDir,
		Clang:      clang,
		Sysroot:    sysroot,
	}, nil
}

// WriteOutputs appends generic path outputs in the key=value format
// consumed by CI systems.
func WriteOutputs(path string, paths *Paths, version string) error {
	return appendLines(path, []string{
		"wasi-sdk-path=" + paths.InstallDir,
		"wasi-sdk-version=" + version,
		"clang-path=" + paths.Clang,
		"sysroot-path=" + paths.Sysroot,
	})
}

// WriteEnvironment appends environment variable assignments, including
// compiler invocations with the sysroot flag baked in.
func WriteEnvironment(path string, paths *Paths, version string) error {
	return appendLines(path, []string{
		"WASI_SDK_PATH=" + paths.InstallDir,
		"WASI_SDK_VERSION=" + version,
		fmt.Sprintf("CC=%s --sysroot=%s", paths.Clang, paths.Sysroot),
		fmt.Sprintf("CXX=%s++ --sysroot=%s", paths.Clang, paths.Sysroot),
	})
}

// appendLines appends newline-terminated lines to the file,
// creating it when missing. Writes are append-only: earlier contents
// and concurrent writers are left alone.
func appendLines(path string, lines []string) error {
	file, err := os.OpenFile(filepath.Clean(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, appendFilePermissions)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	for _, line := range lines {
		if _, err = file.WriteString(line + "\n"); err != nil {
			_ = file.Close()

			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return nil
}
