package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/wasi-sdk-setup/internal/logger"
	"github.com/oshokin/wasi-sdk-setup/internal/service/installer"
	"github.com/oshokin/wasi-sdk-setup/internal/version"
)

var (
	// configPath to the optional settings YAML file.
	configPath string

	// sdkVersion is the SDK version to install.
	sdkVersion string

	// installDir is the destination directory.
	installDir string

	// outputFile receives generic path outputs.
	outputFile string

	// envFile receives environment variable assignments.
	envFile string

	// verbosity is the repeatable -v counter.
	verbosity int

	// rootCmd represents the base command for installing the WASI SDK.
	rootCmd = &cobra.Command{
		Use:   "wasi-sdk-setup",
		Short: "Install a version of the WASI SDK",
		Long: "Download a WASI SDK release archive, extract it into the install " +
			"directory with the top-level folder stripped, and append the derived " +
			"paths to CI output files.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			logger.SetLevel(logger.LevelForVerbosity(verbosity))

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &installer.Options{
				ConfigPath: configPath,
				Version:    sdkVersion,
				InstallDir: installDir,
				OutputFile: outputFile,
				EnvFile:    envFile,
			}

			return installer.Run(ctx, options)
		},
	}
)

// Execute runs the wasi-sdk-setup CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVar(&sdkVersion, "version", "",
		`SDK version to install (e.g. "25.0"); defaults to the latest release`)
	rootCmd.Flags().StringVarP(&installDir, "install-dir", "d", "",
		"directory to install to; defaults to the current directory")
	rootCmd.Flags().StringVar(&outputFile, "output-file", "",
		"append output variables to this .env-like file (e.g. $GITHUB_PATH)")
	rootCmd.Flags().StringVar(&envFile, "env-file", "",
		"append a wasi-sdk environment to this .env-like file (e.g. $GITHUB_ENV)")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to settings file")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "increase the logging level")
}
