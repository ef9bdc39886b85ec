package commands

import (
	"os"

	"cta/internal/adapter"
	"cta/internal/cli"
	"cta/internal/config"
	"cta/internal/ctest"
	"cta/internal/debugger"
	"cta/internal/ui"
	"cta/internal/vars"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Commands holds all CLI commands.
type Commands struct {
	Run   *RunCommand
	List  *ListCommand
	Debug *DebugCommand
}

// NewCommands creates all commands with dependencies.
func NewCommands(cfg *config.Config) *Commands {
	formatter := ui.NewFormatter()
	review := ui.NewReview()

	return &Commands{
		Run:   NewRunCommand(cfg, formatter, review),
		List:  NewListCommand(cfg, formatter),
		Debug: NewDebugCommand(cfg),
	}
}

// Register registers all commands with cobra.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		cfg.ApplyFlags(flags.ToConfigFlags())
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [id...]",
		Short:   "Run tests or suites",
		Long:    "Discover tests via the harness and execute the requested ids with bounded concurrency. Without arguments the whole registry runs.",
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	runCmd.Flags().IntVarP(&flags.ParallelJobs, "jobs", "j", 0, "Concurrency bound (0 = autodetect, negative = serialize)")
	runCmd.Flags().StringArrayVar(&flags.ExtraRunArgs, "extra-run-arg", nil, "Extra argument passed to every test run (repeatable)")
	runCmd.Flags().BoolVar(&flags.Review, "review", false, "Open the interactive failure viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List discovered tests",
		Long:    "Discover tests via the harness and print the suite tree without executing anything.",
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(listCmd)

	// Debug command
	debugCmd := &cobra.Command{
		Use:     "debug <id>",
		Short:   "Derive a debug launch configuration for a single test",
		Long:    "Resolve the test descriptor and print the launch configuration a host debugger would receive. Suite ids are rejected.",
		Args:    cobra.ExactArgs(1),
		RunE:    c.Debug.Execute,
		PreRunE: applyFlags,
	}
	debugCmd.Flags().StringVar(&flags.DebugConfig, "debug-config", "", "Name of a custom launch configuration")
	rootCmd.AddCommand(debugCmd)

	// Shared discovery flags
	for _, cmd := range []*cobra.Command{runCmd, listCmd, debugCmd} {
		cmd.Flags().StringVarP(&flags.BuildDir, "build-dir", "b", "", "Build directory containing the test cache (supports ${workspaceFolder})")
		cmd.Flags().StringVar(&flags.BuildConfig, "build-config", "", "Build configuration passed to the harness (e.g. Debug, Release)")
		cmd.Flags().StringVarP(&flags.Delimiter, "delimiter", "d", "", "Delimiter splitting test names into suites")
		cmd.Flags().StringVar(&flags.CTestPath, "ctest-path", "", "Path to the ctest binary")
		cmd.Flags().StringArrayVar(&flags.ExtraLoadArgs, "extra-load-arg", nil, "Extra argument passed to test discovery (repeatable)")
	}
}

// newLogger builds the CLI logger; verbose enables debug output.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// newAdapter wires an adapter around the concrete harness collaborators. The
// CLI has no host command provider or settings store, so those stay nil.
func newAdapter(cfg *config.Config, launcher debugger.Launcher, log zerolog.Logger) *adapter.Adapter {
	resolver := vars.NewResolver(cfg.WorkspaceRoot, nil)
	loader := ctest.NewLoader(log)
	executor := ctest.NewExecutor(log)
	return adapter.New(cfg, nil, loader, executor, launcher, resolver, ctest.DeriveDebugConfig, log)
}
