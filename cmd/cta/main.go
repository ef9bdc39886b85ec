package main

import (
	"fmt"
	"os"

	"cta/internal/cli"
	"cta/internal/cli/commands"
	"cta/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "cta",
		Short:   "CTest explorer adapter",
		Long:    `A bridge between a test-explorer contract and CTest. Discovers tests from a CMake build tree, runs them with bounded concurrency and streams per-test results, with cooperative cancellation and per-test debug launch derivation.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
