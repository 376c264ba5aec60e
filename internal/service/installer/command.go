package installer

import (
	"context"
	"fmt"
	"os"

	"github.com/oshokin/wasi-sdk-setup/internal/archive"
	"github.com/oshokin/wasi-sdk-setup/internal/config"
	"github.com/oshokin/wasi-sdk-setup/internal/logger"
	"github.com/oshokin/wasi-sdk-setup/internal/output"
	"github.com/oshokin/wasi-sdk-setup/internal/sdk"
)

// Options are inputs accepted by the installer entry point.
// Blank fields fall back to the settings file and then to built-in defaults.
type Options struct {
	// ConfigPath is the optional path to a settings YAML file.
	ConfigPath string
	// Version is the SDK version to install ("latest" or a dotted number).
	Version string
	// InstallDir is the destination directory for the extracted SDK.
	InstallDir string
	// OutputFile receives generic path outputs (e.g. $GITHUB_PATH).
	OutputFile string
	// EnvFile receives environment variable assignments (e.g. $GITHUB_ENV).
	EnvFile string
}

// runner holds the state for a single install execution.
// It is intentionally unexported—call Run(ctx, Options) from callers.
type runner struct {
	cfg  *config.Config  // Effective settings after merging file, flags and environment.
	spec sdk.VersionSpec // Resolved version/tag pair.
	url  string          // Artifact URL for this machine.
}

// Run executes the install pipeline and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "wasi-sdk-setup")

	r, err := newRunner(opts)
	if err != nil {
		return err
	}

	if err = r.run(ctx); err != nil {
		logger.ErrorKV(ctx, "Install failed", "error", err)
		return err
	}

	logger.Info(ctx, "Install completed")

	return nil
}

// newRunner merges the settings file, flag values and environment overrides
// into the effective configuration.
func newRunner(opts *Options) (*runner, error) {
	cfg := config.Default()

	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if opts.Version != "" {
		cfg.Version = opts.Version
	}

	if opts.InstallDir != "" {
		cfg.InstallDir = opts.InstallDir
	}

	if opts.OutputFile != "" {
		cfg.OutputFile = opts.OutputFile
	}

	if opts.EnvFile != "" {
		cfg.EnvFile = opts.EnvFile
	}

	cfg.ApplyEnvironment()

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return &runner{cfg: cfg}, nil
}

// run executes the workflow for this runner instance:
// 1) Resolve the version token into a version/tag pair.
// 2) Build the artifact URL for this machine.
// 3) Download the archive and extract it with the top directory stripped.
// 4) Verify the installed layout and write the output files.
func (r *runner) run(ctx context.Context) error {
	if err := r.resolveVersion(ctx); err != nil {
		return fmt.Errorf("resolve version: %w", err)
	}

	r.buildArtifactURL(ctx)

	if err := r.install(ctx); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	if err := r.writeVariables(ctx); err != nil {
		return fmt.Errorf("write variables: %w", err)
	}

	return nil
}

// resolveVersion turns the configured version token into a concrete spec,
// asking the releases API when the token is "latest".
func (r *runner) resolveVersion(ctx context.Context) error {
	resolver := sdk.NewResolver(
		sdk.WithBaseURL(r.cfg.APIBaseURL),
		sdk.WithToken(r.cfg.Token),
	)

	spec, err := resolver.Resolve(ctx, r.cfg.Version)
	if err != nil {
		return err
	}

	r.spec = spec
	logger.InfoKV(ctx, "Resolved version", "version", spec.Version, "tag", spec.Tag)

	return nil
}

// buildArtifactURL derives the download URL from the spec and this machine.
func (r *runner) buildArtifactURL(ctx context.Context) {
	arch, platform := sdk.Host()
	r.url = sdk.ArtifactURLAt(r.cfg.DownloadBaseURL, r.spec.Version, r.spec.Tag, arch, platform)

	logger.DebugKV(ctx, "Built artifact URL",
		"url", r.url, "arch", arch, "platform", platform)
}

// install downloads the archive to a temporary file and extracts it into
// the install directory with the leading path segment stripped.
func (r *runner) install(ctx context.Context) error {
	logger.InfoKV(ctx, "Downloading archive", "url", r.url)

	archivePath, err := archive.NewFetcher(nil).Download(ctx, r.url)
	if err != nil {
		return err
	}

	// The temporary archive is removed even when extraction fails;
	// already-extracted members are not rolled back.
	defer func() {
		_ = os.Remove(archivePath)
	}()

	logger.InfoKV(ctx, "Downloaded archive", "path", archivePath)

	if err = archive.ExtractTarGz(archivePath, r.cfg.InstallDir); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Extracted archive", "dir", r.cfg.InstallDir)

	return nil
}

// writeVariables verifies the installed layout and appends the derived
// values to the configured output files, when any are configured.
func (r *runner) writeVariables(ctx context.Context) error {
	paths, err := output.Inspect(r.cfg.InstallDir)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Clang executable", "path", paths.Clang)
	logger.InfoKV(ctx, "WASI sysroot", "path", paths.Sysroot)

	if r.cfg.OutputFile != "" {
		logger.InfoKV(ctx, "Writing output variables", "path", r.cfg.OutputFile)

		if err = output.WriteOutputs(r.cfg.OutputFile, paths, r.spec.Version); err != nil {
			return err
		}
	}

	if r.cfg.EnvFile != "" {
		logger.InfoKV(ctx, "Writing environment variables", "path", r.cfg.EnvFile)

		if err = output.WriteEnvironment(r.cfg.EnvFile, paths, r.spec.Version); err != nil {
			return err
		}
	}

	return nil
}
