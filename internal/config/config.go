package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the install parameters for a single run.
type Config struct {
	// Version is the SDK version to install ("latest" or a dotted number like "25.0").
	Version string `yaml:"version"`
	// InstallDir is the destination directory for the extracted SDK.
	InstallDir string `yaml:"install_dir"`
	// OutputFile receives generic path outputs (e.g. $GITHUB_PATH). Empty disables it.
	OutputFile string `yaml:"output_file"`
	// EnvFile receives environment variable assignments (e.g. $GITHUB_ENV). Empty disables it.
	EnvFile string `yaml:"env_file"`
	// APIBaseURL overrides the releases API endpoint, for mirrors. Empty means GitHub.
	APIBaseURL string `yaml:"api_base_url"`
	// DownloadBaseURL overrides the artifact download endpoint, for mirrors. Empty means GitHub.
	DownloadBaseURL string `yaml:"download_base_url"`
	// Token authenticates the release lookup. Set at runtime from the
	// environment and never persisted to YAML.
	Token string `yaml:"-"`
}

const (
	// DefaultVersion installs the most recent published release.
	DefaultVersion = "latest"

	// DefaultInstallDir is the destination used when none is given.
	DefaultInstallDir = "."

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Environment variable names honored by ApplyEnvironment. The INPUT_ names
// follow the GitHub Action input convention.
const (
	// EnvVersion overrides the version flag.
	EnvVersion = "INPUT_VERSION"
	// EnvInstallDir overrides the install directory flag.
	EnvInstallDir = "INPUT_INSTALL_DIR"
	// EnvAddToPath redirects the output files to EnvPathFile/EnvEnvFile when "true".
	EnvAddToPath = "INPUT_ADD_TO_PATH"
	// EnvPathFile is the workflow path file provided by the CI runner.
	EnvPathFile = "GITHUB_PATH"
	// EnvEnvFile is the workflow environment file provided by the CI runner.
	EnvEnvFile = "GITHUB_ENV"
	// EnvToken authenticates the release lookup.
	EnvToken = "GITHUB_TOKEN"
)

// errConfigIsNotSet is returned when a nil configuration is provided.
var errConfigIsNotSet = errors.New("configuration is not set")

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	return &Config{
		Version:    DefaultVersion,
		InstallDir: DefaultInstallDir,
	}
}

// Load reads configuration from the provided YAML path and validates it.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults for blank fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}

	if cfg.InstallDir == "" {
		cfg.InstallDir = DefaultInstallDir
	}

	return nil
}

// ApplyEnvironment applies the GitHub Action style overrides: INPUT_ values
// replace the configured ones, and INPUT_ADD_TO_PATH=true redirects the
// output files to the workflow-provided paths when those are set.
func (c *Config) ApplyEnvironment() {
	if v, ok := os.LookupEnv(EnvVersion); ok {
		c.Version = v
	}

	if v, ok := os.LookupEnv(EnvInstallDir); ok {
		c.InstallDir = v
	}

	if strings.EqualFold(os.Getenv(EnvAddToPath), "true") {
		if v, ok := os.LookupEnv(EnvPathFile); ok {
			c.OutputFile = v
		}

		if v, ok := os.LookupEnv(EnvEnvFile); ok {
			c.EnvFile = v
		}
	}

	if v, ok := os.LookupEnv(EnvToken); ok {
		c.Token = v
	}
}
