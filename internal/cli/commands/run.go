package commands

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"cta/internal/config"
	"cta/internal/domain"
	"cta/internal/events"
	"cta/internal/registry"
	"cta/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command.
type RunCommand struct {
	config    *config.Config
	formatter *ui.Formatter
	review    *ui.Review
}

// NewRunCommand creates a new RunCommand.
func NewRunCommand(cfg *config.Config, formatter *ui.Formatter, review *ui.Review) *RunCommand {
	return &RunCommand{config: cfg, formatter: formatter, review: review}
}

// Execute runs the command.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := newLogger(rc.config.Flags.Verbose)

	a := newAdapter(rc.config, printLauncher{}, log)
	defer a.Dispose()

	loadCh := a.LoadEvents()
	runCh := a.RunEvents()
	retireCh := a.RetireEvents()

	a.Load(ctx)
	if err := loadError(loadCh); err != nil {
		return err
	}
	reg := a.Registry()
	if reg.Len() == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	ids := args
	if len(ids) == 0 {
		ids = []string{domain.RootID}
	}

	// Ctrl-C cancels cooperatively: in-flight tests are signalled, untouched
	// ones retire.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		if _, ok := <-sigCh; ok {
			a.Cancel()
		}
	}()

	progress := ui.NewProgressBar(expectedLeaves(reg, ids, rc.config.Delimiter))
	summary := &ui.Summary{}
	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		completed := 0
		for {
			select {
			case <-retireCh:
				summary.Retired++
				continue
			case ev := <-runCh:
				switch ev.Kind {
				case events.TestPassed:
					summary.Passed++
					completed++
				case events.TestFailed:
					summary.Failed++
					completed++
					summary.Failures = append(summary.Failures, ui.Failure{ID: ev.ID, Message: ev.Message})
				case events.TestErrored:
					summary.Errored++
					completed++
					summary.Failures = append(summary.Failures, ui.Failure{ID: ev.ID, Message: ev.Message, Errored: true})
				case events.TestSkipped:
					summary.Skipped++
					completed++
				case events.RunFinished:
					return
				default:
					continue
				}
				progress.Update(completed, summary.Passed, summary.Failed+summary.Errored)
			}
		}
	}()

	start := time.Now()
	a.Run(ctx, ids)
	<-consumed
	progress.Finish()

	for {
		select {
		case <-retireCh:
			summary.Retired++
			continue
		default:
		}
		break
	}

	rc.formatter.PrintSummary(summary, time.Since(start))
	if rc.config.Flags.Review {
		if err := rc.review.Show(summary); err != nil {
			return err
		}
	} else {
		rc.formatter.PrintFailures(summary)
	}

	if failed := summary.Failed + summary.Errored; failed > 0 {
		return fmt.Errorf("%d of %d tests failed", failed, summary.Total())
	}
	return nil
}

// loadError drains the buffered load events and surfaces a failed discovery.
func loadError(ch <-chan events.LoadEvent) error {
	for {
		select {
		case ev := <-ch:
			if ev.Kind == events.LoadFinished && ev.Err != "" {
				return fmt.Errorf("load failed: %s", ev.Err)
			}
			continue
		default:
		}
		return nil
	}
}

// expectedLeaves counts the leaves the requested ids resolve to, for sizing
// the progress bar.
func expectedLeaves(reg *registry.Registry, ids []string, delimiter string) int {
	total := 0
	for _, id := range ids {
		switch nid := domain.ParseNodeID(id, delimiter); nid.Kind {
		case domain.KindRoot:
			total += reg.Len()
		case domain.KindSuite:
			total += len(reg.WithPrefix(nid.Prefix))
		case domain.KindLeaf:
			total++
		}
	}
	return total
}
