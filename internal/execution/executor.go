// Package execution contains the run-time core: the bounded-concurrency
// scheduler, the admission primitive, the in-flight process tracker and the
// contracts of the external discovery and execution collaborators.
package execution

import (
	"context"
	"errors"

	"cta/internal/domain"
)

// ErrCacheNotFound marks a build tree with no test cache yet: either nothing
// was configured there or the directory is not a native build at all. The
// caller swallows it when the build directory was never configured.
var ErrCacheNotFound = errors.New("test cache not found")

// Loader discovers tests by invoking the native harness in the build tree.
type Loader interface {
	// Load returns the ordered list of discovered tests. A build tree with
	// no test cache yet is reported via ErrCacheNotFound.
	Load(ctx context.Context, toolPath, buildDir, buildConfig string, extraArgs []string) ([]domain.TestDescriptor, error)
}

// Process is one in-flight native test run.
type Process interface {
	// Wait blocks until the subprocess settles. A non-zero exit code is a
	// normal result, not an error.
	Wait(ctx context.Context) (domain.RunResult, error)
	// Kill asks the subprocess to terminate. Fire-and-forget; whether and
	// when the process honors the signal is up to it.
	Kill()
}

// Executor schedules native test subprocesses.
type Executor interface {
	Schedule(ctx context.Context, toolPath string, test domain.TestDescriptor, extraArgs []string) (Process, error)
}
