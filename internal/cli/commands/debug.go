package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"cta/internal/config"
	"cta/internal/debugger"
	"cta/internal/domain"

	"github.com/spf13/cobra"
)

// DebugCommand handles the debug command.
type DebugCommand struct {
	config *config.Config
}

// NewDebugCommand creates a new DebugCommand.
func NewDebugCommand(cfg *config.Config) *DebugCommand {
	return &DebugCommand{config: cfg}
}

// Execute runs the command.
func (dc *DebugCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := newLogger(dc.config.Flags.Verbose)

	id := args[0]
	if nid := domain.ParseNodeID(id, dc.config.Delimiter); nid.Kind != domain.KindLeaf {
		return fmt.Errorf("only single tests can be debugged, %q is a suite", id)
	}

	a := newAdapter(dc.config, printLauncher{}, log)
	defer a.Dispose()

	loadCh := a.LoadEvents()
	a.Load(ctx)
	if err := loadError(loadCh); err != nil {
		return err
	}
	if _, ok := a.Registry().Lookup(id); !ok {
		return fmt.Errorf("unknown test id %q", id)
	}

	a.Debug(ctx, id)
	return nil
}

// printLauncher is the CLI's debug sink: it renders the launch configuration
// a host debugger would receive instead of starting a session.
type printLauncher struct{}

func (printLauncher) Launch(ctx context.Context, configName string, cfg debugger.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if configName != "" {
		fmt.Printf("using launch configuration %q as base\n", configName)
	}
	fmt.Println(string(data))
	return nil
}
