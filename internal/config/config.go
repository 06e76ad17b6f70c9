package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Workspace settings
	RootPath     string
	ManifestName string
	SourceDir    string
	TestsDir     string

	// Paths to skip inside a project when walking the workspace
	PathsToIgnore []string

	// External tools and output locations
	Tools Tools

	// Command flags
	Flags Flags
}

// Tools configures the external collaborators. Every field can be
// overridden from the environment or from the root's .env file.
type Tools struct {
	Cargo       string `env:"RUSTCOV_CARGO" env-default:"cargo"`
	Kcov        string `env:"RUSTCOV_KCOV" env-default:"kcov"`
	Opener      string `env:"RUSTCOV_OPENER" env-default:"xdg-open"`
	RustFlags   string `env:"RUSTCOV_RUSTFLAGS" env-default:"-C link-dead-code"`
	BuildDir    string `env:"RUSTCOV_BUILD_DIR" env-default:"target/debug"`
	CoverageDir string `env:"RUSTCOV_COVERAGE_DIR" env-default:"target/coverage"`
	ScratchDir  string `env:"RUSTCOV_SCRATCH_DIR" env-default:"target/coverage-runs"`
}

// Flags holds command-line flags
type Flags struct {
	NoBrowser   bool
	PrintReport string
	EnableLog   bool
	NameFilter  string
	TestCases   bool
	Table       bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		RootPath:     DefaultRootPath,
		ManifestName: DefaultManifestName,
		SourceDir:    DefaultSourceDir,
		TestsDir:     DefaultTestsDir,
		Tools: Tools{
			Cargo:       "cargo",
			Kcov:        "kcov",
			Opener:      "xdg-open",
			RustFlags:   "-C link-dead-code",
			BuildDir:    "target/debug",
			CoverageDir: "target/coverage",
			ScratchDir:  "target/coverage-runs",
		},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// LoadEnv reads the root's .env file, if any, and then applies RUSTCOV_*
// environment variables to the tool settings. Variables already set in the
// process environment win over the .env file.
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.RootPath, DefaultEnvFile)
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envPath, err)
	}
	if err := cleanenv.ReadEnv(&c.Tools); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// SetRoot sets the workspace root, made absolute so external tools and the
// report paths agree regardless of the process working directory
func (c *Config) SetRoot(root string) error {
	if root == "" {
		root = DefaultRootPath
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root %s: %w", root, err)
	}
	c.RootPath = abs
	return nil
}

// resolve joins p to the root unless it is already absolute
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.RootPath, p)
}

// GetBuildDir returns the directory holding {name}-{hash} test binaries
func (c *Config) GetBuildDir() string {
	return c.resolve(c.Tools.BuildDir)
}

// GetCoverageDir returns the final merged report directory
func (c *Config) GetCoverageDir() string {
	return c.resolve(c.Tools.CoverageDir)
}

// GetScratchDir returns the directory holding per-artifact kcov runs
func (c *Config) GetScratchDir() string {
	return c.resolve(c.Tools.ScratchDir)
}

// GetSummaryPath returns the merged machine-readable summary
func (c *Config) GetSummaryPath() string {
	return filepath.Join(c.GetCoverageDir(), filepath.FromSlash(DefaultSummaryPath))
}

// GetReportIndex returns the merged HTML report entry point
func (c *Config) GetReportIndex() string {
	return filepath.Join(c.GetCoverageDir(), DefaultReportIndex)
}
