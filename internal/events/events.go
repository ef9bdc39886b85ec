// Package events defines the typed notifications the adapter emits towards
// the host UI, one emitter per category: load lifecycle, run lifecycle and
// out-of-band retire notifications.
package events

import "cta/internal/tree"

// LoadKind distinguishes load lifecycle notifications.
type LoadKind int

const (
	// LoadStarted fires when discovery begins.
	LoadStarted LoadKind = iota
	// LoadFinished fires when discovery ends, with either a tree or an error.
	LoadFinished
)

// LoadEvent is one load lifecycle notification.
type LoadEvent struct {
	Kind LoadKind
	Tree *tree.SuiteNode // Set on LoadFinished when discovery succeeded
	Err  string          // Set on LoadFinished when discovery failed
}

// RunKind distinguishes run lifecycle notifications.
type RunKind int

const (
	// RunStarted fires once before any work of a run.
	RunStarted RunKind = iota
	// RunFinished fires once after every requested id was processed.
	RunFinished
	// SuiteRunning fires before any leaf of a suite fan-out.
	SuiteRunning
	// SuiteCompleted fires after every leaf of a suite fan-out settled.
	SuiteCompleted
	// TestRunning fires when a leaf's subprocess was scheduled.
	TestRunning
	// TestPassed fires for a zero exit code, with captured output attached.
	TestPassed
	// TestFailed fires for a non-zero exit code, with captured output attached.
	TestFailed
	// TestErrored fires when invoking the executor faulted.
	TestErrored
	// TestSkipped fires for a requested leaf id absent from the registry.
	TestSkipped
)

// RunEvent is one run lifecycle notification.
type RunEvent struct {
	Kind    RunKind
	RunID   string   // Identifies the run; set on RunStarted and RunFinished
	IDs     []string // Requested ids; set on RunStarted
	ID      string   // Suite or test id the event concerns
	Message string   // Captured output or error description
}

// RetireEvent marks an id whose prior result is stale because a scheduled
// run was abandoned before reaching it.
type RetireEvent struct {
	ID string
}
