package ctest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"cta/internal/domain"
	"cta/internal/execution"

	"github.com/rs/zerolog"
)

// Executor spawns one subprocess per leaf test. Descriptors carrying their
// own command run it directly; descriptors without one (NOT_AVAILABLE
// listings) run through the harness with an exact-name regex instead.
type Executor struct {
	log zerolog.Logger
}

// NewExecutor creates an Executor.
func NewExecutor(log zerolog.Logger) *Executor {
	return &Executor{log: log.With().Str("component", "executor").Logger()}
}

// Schedule starts the test's subprocess and returns its handle. The process
// is already running when Schedule returns, so it can be signalled before
// Wait is called.
func (e *Executor) Schedule(ctx context.Context, toolPath string, test domain.TestDescriptor, extraArgs []string) (execution.Process, error) {
	var cmd *exec.Cmd
	if test.Command != "" {
		args := append(append([]string{}, test.Args...), extraArgs...)
		cmd = exec.CommandContext(ctx, test.Command, args...)
	} else {
		args := append([]string{"--tests-regex", "^" + test.Name + "$"}, extraArgs...)
		cmd = exec.CommandContext(ctx, toolPath, args...)
	}
	cmd.Dir = test.WorkingDir
	cmd.Env = os.Environ()

	proc := &process{cmd: cmd}
	cmd.Stdout = &proc.output
	cmd.Stderr = &proc.output

	e.log.Debug().Str("test", test.Name).Str("command", cmd.Path).Msg("spawning")
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return proc, nil
}

// process is one live native run.
type process struct {
	cmd    *exec.Cmd
	output bytes.Buffer
}

// Wait blocks until the subprocess exits. A non-zero exit code comes back as
// a normal result with the captured output attached; only failures to run
// the process at all are errors.
func (p *process) Wait(ctx context.Context) (domain.RunResult, error) {
	err := p.cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return domain.RunResult{}, err
		}
	}
	return domain.RunResult{
		Code:   p.cmd.ProcessState.ExitCode(),
		Output: p.output.String(),
	}, nil
}

// Kill signals the subprocess to terminate. Fire-and-forget.
func (p *process) Kill() {
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
}
