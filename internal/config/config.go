// Package config holds the adapter's configuration: defaults, .env and flag
// overrides, and the per-run concurrency bound resolution.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for one adapter instance. It is passed
// explicitly into every operation that needs it rather than read from an
// ambient store.
type Config struct {
	// Workspace settings
	WorkspaceRoot string

	// Harness settings
	CTestPath   string
	BuildDir    string // May contain substitution tokens; empty means unset
	BuildConfig string

	// Tree settings
	Delimiter string

	// Execution settings
	ParallelJobs  int // 0 = autodetect, negative = serialize
	ExtraLoadArgs []string
	ExtraRunArgs  []string

	// Debug settings
	DebugConfig string // Name of a custom launch configuration, if any

	// Command flags
	Flags Flags
}

// Flags holds command-line flags applied on top of the defaults.
type Flags struct {
	ParallelJobs  int
	BuildDir      string
	BuildConfig   string
	Delimiter     string
	CTestPath     string
	DebugConfig   string
	ExtraLoadArgs []string
	ExtraRunArgs  []string
	Review        bool
	Verbose       bool
}

// New creates a Config with defaults, applying .env overrides when present.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		CTestPath:    DefaultCTestPath,
		BuildDir:     DefaultBuildDir,
		BuildConfig:  DefaultBuildConfig,
		Delimiter:    DefaultDelimiter,
		ParallelJobs: DefaultParallelJobs,
		DebugConfig:  DefaultDebugConfig,
	}
	if wd, err := os.Getwd(); err == nil {
		cfg.WorkspaceRoot = wd
	}

	if v := os.Getenv("CTA_CTEST_PATH"); v != "" {
		cfg.CTestPath = v
	}
	if v := os.Getenv("CTA_BUILD_DIR"); v != "" {
		cfg.BuildDir = v
	}
	if v := os.Getenv("CTA_BUILD_CONFIG"); v != "" {
		cfg.BuildConfig = v
	}
	if v := os.Getenv("CTA_DELIMITER"); v != "" {
		cfg.Delimiter = v
	}
	if v := os.Getenv("CTA_PARALLEL_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ParallelJobs = n
		}
	}
	if v := os.Getenv("CTA_DEBUG_CONFIG"); v != "" {
		cfg.DebugConfig = v
	}

	return cfg
}

// Load creates a config and applies flag overrides.
func Load(flags Flags) *Config {
	cfg := New()
	cfg.ApplyFlags(flags)
	return cfg
}

// ApplyFlags records the flags and applies their overrides on top of the
// current values.
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.ParallelJobs != 0 {
		c.ParallelJobs = flags.ParallelJobs
	}
	if flags.BuildDir != "" {
		c.BuildDir = flags.BuildDir
	}
	if flags.BuildConfig != "" {
		c.BuildConfig = flags.BuildConfig
	}
	if flags.Delimiter != "" {
		c.Delimiter = flags.Delimiter
	}
	if flags.CTestPath != "" {
		c.CTestPath = flags.CTestPath
	}
	if flags.DebugConfig != "" {
		c.DebugConfig = flags.DebugConfig
	}
	if len(flags.ExtraLoadArgs) > 0 {
		c.ExtraLoadArgs = flags.ExtraLoadArgs
	}
	if len(flags.ExtraRunArgs) > 0 {
		c.ExtraRunArgs = flags.ExtraRunArgs
	}
}

// BuildDirIsDefault reports whether the build directory was never configured.
// A missing test cache is only swallowed silently in that case.
func (c *Config) BuildDirIsDefault() bool {
	return c.BuildDir == DefaultBuildDir
}
