// Package ui renders the CLI surface: the suite tree, run progress, the run
// summary and the interactive failure review.
package ui

import (
	"fmt"
	"strings"
	"time"

	"cta/internal/tree"

	"github.com/fatih/color"
)

// Failure is one failed or errored test kept for the summary and the review.
type Failure struct {
	ID      string
	Message string
	Errored bool // True when the executor faulted rather than the test failing
}

// Summary aggregates one run's terminal events.
type Summary struct {
	Passed   int
	Failed   int
	Errored  int
	Skipped  int
	Retired  int
	Failures []Failure
}

// Total returns the number of tests that reached a terminal event.
func (s *Summary) Total() int {
	return s.Passed + s.Failed + s.Errored + s.Skipped
}

// Formatter prints colored output for the CLI commands.
type Formatter struct{}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintTree renders the suite hierarchy with indentation.
func (f *Formatter) PrintTree(root *tree.SuiteNode) {
	if len(root.Children) == 0 {
		color.Yellow("No tests discovered")
		return
	}
	f.printSuite(root, 0)
}

func (f *Formatter) printSuite(suite *tree.SuiteNode, depth int) {
	indent := strings.Repeat("  ", depth)
	if depth > 0 {
		color.Cyan("%s%s", indent, suite.Label)
	}
	for _, child := range suite.Children {
		switch node := child.(type) {
		case *tree.SuiteNode:
			f.printSuite(node, depth+1)
		case *tree.TestNode:
			fmt.Printf("%s  %s\n", indent, node.Label)
		}
	}
}

// PrintSummary renders the end-of-run statistics.
func (f *Formatter) PrintSummary(summary *Summary, duration time.Duration) {
	fmt.Println()
	color.Green("passed:  %d", summary.Passed)
	if summary.Failed > 0 {
		color.Red("failed:  %d", summary.Failed)
	}
	if summary.Errored > 0 {
		color.Red("errored: %d", summary.Errored)
	}
	if summary.Skipped > 0 {
		color.Yellow("skipped: %d", summary.Skipped)
	}
	if summary.Retired > 0 {
		color.Yellow("retired: %d (cancelled before running)", summary.Retired)
	}
	fmt.Printf("total:   %d in %s\n", summary.Total(), duration.Round(time.Millisecond))
}

// PrintFailures renders each failure's captured output.
func (f *Formatter) PrintFailures(summary *Summary) {
	for _, failure := range summary.Failures {
		fmt.Println()
		if failure.Errored {
			color.Red("ERRORED %s", failure.ID)
		} else {
			color.Red("FAILED %s", failure.ID)
		}
		if msg := strings.TrimSpace(failure.Message); msg != "" {
			fmt.Println(msg)
		}
	}
}
