package commands

import (
	"cta/internal/config"
	"cta/internal/ui"

	"github.com/spf13/cobra"
)

// ListCommand handles the list command.
type ListCommand struct {
	config    *config.Config
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand.
func NewListCommand(cfg *config.Config, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{config: cfg, formatter: formatter}
}

// Execute runs the command.
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := newLogger(lc.config.Flags.Verbose)

	a := newAdapter(lc.config, printLauncher{}, log)
	defer a.Dispose()

	loadCh := a.LoadEvents()
	a.Load(ctx)
	if err := loadError(loadCh); err != nil {
		return err
	}

	lc.formatter.PrintTree(a.Tree())
	return nil
}
