package ui

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Review displays the current run's failures in an interactive TUI: the
// failed tests on the left, the selected test's captured output on the
// right. Results are in-memory only; nothing is persisted.
type Review struct{}

// NewReview creates a Review.
func NewReview() *Review {
	return &Review{}
}

// Show runs the viewer until the user quits with q or Escape. A run without
// failures prints a confirmation instead of opening the viewer.
func (r *Review) Show(summary *Summary) error {
	if len(summary.Failures) == 0 {
		color.Green("✓ No test failures")
		return nil
	}

	app := tview.NewApplication()

	output := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetScrollable(true)
	output.SetBorder(true).SetTitle(" Output ")

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetBorder(true).SetTitle(" Failures ")

	show := func(index int) {
		if index < 0 || index >= len(summary.Failures) {
			return
		}
		failure := summary.Failures[index]
		header := "[red]FAILED[white]"
		if failure.Errored {
			header = "[red]ERRORED[white]"
		}
		output.SetText(fmt.Sprintf("%s %s\n\n%s", header,
			tview.Escape(failure.ID), tview.Escape(failure.Message)))
		output.ScrollToBeginning()
	}

	for i, failure := range summary.Failures {
		list.AddItem(fmt.Sprintf("[yellow]%d.[white] %s", i+1, tview.Escape(failure.ID)), "", 0, nil)
	}
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		show(index)
	})
	show(0)

	flex := tview.NewFlex().
		AddItem(list, 0, 1, true).
		AddItem(output, 0, 2, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			if app.GetFocus() == list {
				app.SetFocus(output)
			} else {
				app.SetFocus(list)
			}
			return nil
		}
		return event
	})

	return app.SetRoot(flex, true).Run()
}
