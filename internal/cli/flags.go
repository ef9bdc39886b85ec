package cli

import "cta/internal/config"

// Flags holds command-line flags.
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

// ToConfigFlags converts CLI flags to config flags.
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ParallelJobs:  f.ParallelJobs,
		BuildDir:      f.BuildDir,
		BuildConfig:   f.BuildConfig,
		Delimiter:     f.Delimiter,
		CTestPath:     f.CTestPath,
		DebugConfig:   f.DebugConfig,
		ExtraLoadArgs: f.ExtraLoadArgs,
		ExtraRunArgs:  f.ExtraRunArgs,
		Review:        f.Review,
		Verbose:       f.Verbose,
	}
}
