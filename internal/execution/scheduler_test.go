package execution

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cta/internal/config"
	"cta/internal/domain"
	"cta/internal/events"
	"cta/internal/registry"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProcess struct {
	result  domain.RunResult
	err     error
	release chan struct{} // Wait blocks until closed, when set
	onStart func()
}

func (f *fakeProcess) Wait(ctx context.Context) (domain.RunResult, error) {
	if f.onStart != nil {
		f.onStart()
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func (f *fakeProcess) Kill() {}

type fakeExecutor struct {
	mu        sync.Mutex
	processes map[string]*fakeProcess
	scheduled []string
	fail      map[string]error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{processes: map[string]*fakeProcess{}, fail: map[string]error{}}
}

func (f *fakeExecutor) Schedule(ctx context.Context, toolPath string, test domain.TestDescriptor, extraArgs []string) (Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, test.Name)
	if err := f.fail[test.Name]; err != nil {
		return nil, err
	}
	if proc, ok := f.processes[test.Name]; ok {
		return proc, nil
	}
	return &fakeProcess{}, nil
}

func (f *fakeExecutor) scheduledNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scheduled...)
}

type harness struct {
	scheduler *Scheduler
	executor  *fakeExecutor
	tracker   *Tracker
	runEvents <-chan events.RunEvent
	retires   <-chan events.RetireEvent
	cancelled atomic.Bool
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	h := &harness{executor: newFakeExecutor(), tracker: NewTracker()}
	run := events.NewEmitter[events.RunEvent]()
	retire := events.NewEmitter[events.RetireEvent]()
	h.runEvents = run.Subscribe()
	h.retires = retire.Subscribe()
	h.scheduler = NewScheduler(cfg, nil, h.executor, h.tracker, run, retire,
		h.cancelled.Load, zerolog.Nop())
	return h
}

func drainRunEvents(ch <-chan events.RunEvent) []events.RunEvent {
	var collected []events.RunEvent
	for {
		select {
		case ev := <-ch:
			collected = append(collected, ev)
		default:
			return collected
		}
	}
}

func kinds(evs []events.RunEvent) []events.RunKind {
	out := make([]events.RunKind, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Kind)
	}
	return out
}

func TestScheduler_RunLeaf(t *testing.T) {
	cfg := &config.Config{ParallelJobs: 1}
	h := newHarness(t, cfg)
	h.executor.processes["t1"] = &fakeProcess{result: domain.RunResult{Code: 0, Output: "ok\n"}}
	reg := registry.New([]domain.TestDescriptor{{Name: "t1", Command: "/bin/t1"}})

	h.scheduler.Run(context.Background(), []string{"t1"}, reg)

	evs := drainRunEvents(h.runEvents)
	require.Len(t, evs, 4)
	assert.Equal(t, []events.RunKind{
		events.RunStarted, events.TestRunning, events.TestPassed, events.RunFinished,
	}, kinds(evs))
	assert.Equal(t, "ok\n", evs[2].Message)
	assert.NotEmpty(t, evs[0].RunID)
	assert.Equal(t, []string{"t1"}, evs[0].IDs)
	assert.Zero(t, h.tracker.Len(), "tracker entry must be removed once the leaf settles")
}

func TestScheduler_FailedLeafCarriesOutput(t *testing.T) {
	cfg := &config.Config{ParallelJobs: 1}
	h := newHarness(t, cfg)
	h.executor.processes["t1"] = &fakeProcess{result: domain.RunResult{Code: 3, Output: "assertion failed\n"}}
	reg := registry.New([]domain.TestDescriptor{{Name: "t1"}})

	h.scheduler.Run(context.Background(), []string{"t1"}, reg)

	evs := drainRunEvents(h.runEvents)
	require.Len(t, evs, 4)
	assert.Equal(t, events.TestFailed, evs[2].Kind)
	assert.Equal(t, "assertion failed\n", evs[2].Message)
}

func TestScheduler_UnknownLeafSkipped(t *testing.T) {
	cfg := &config.Config{ParallelJobs: 1}
	h := newHarness(t, cfg)
	reg := registry.New([]domain.TestDescriptor{{Name: "t1"}})

	h.scheduler.Run(context.Background(), []string{"missing"}, reg)

	evs := drainRunEvents(h.runEvents)
	require.Len(t, evs, 3)
	assert.Equal(t, events.TestSkipped, evs[1].Kind)
	assert.Equal(t, "missing", evs[1].ID)
	assert.Empty(t, h.executor.scheduledNames(), "skipped ids must never reach the executor")
}

func TestScheduler_ScheduleFaultScopedToLeaf(t *testing.T) {
	cfg := &config.Config{ParallelJobs: 1, Delimiter: "/"}
	h := newHarness(t, cfg)
	h.executor.fail["a/t1"] = errors.New("binary not found")
	reg := registry.New([]domain.TestDescriptor{{Name: "a/t1"}, {Name: "a/t2"}})

	h.scheduler.Run(context.Background(), []string{"a/*"}, reg)

	evs := drainRunEvents(h.runEvents)
	var errored, passed int
	for _, ev := range evs {
		switch ev.Kind {
		case events.TestErrored:
			errored++
			assert.Equal(t, "binary not found", ev.Message)
		case events.TestPassed:
			passed++
		}
	}
	assert.Equal(t, 1, errored)
	assert.Equal(t, 1, passed, "a fault in one leaf must not abort its siblings")
	assert.Equal(t, events.SuiteCompleted, evs[len(evs)-2].Kind)
	assert.Equal(t, events.RunFinished, evs[len(evs)-1].Kind)
}

func TestScheduler_SuiteBoundsConcurrency(t *testing.T) {
	cfg := &config.Config{ParallelJobs: 2, Delimiter: "/"}
	h := newHarness(t, cfg)

	var inFlight, maxInFlight atomic.Int32
	release := make(chan struct{})
	for _, name := range []string{"s/t1", "s/t2", "s/t3"} {
		h.executor.processes[name] = &fakeProcess{
			release: release,
			onStart: func() {
				n := inFlight.Add(1)
				for {
					max := maxInFlight.Load()
					if n <= max || maxInFlight.CompareAndSwap(max, n) {
						break
					}
				}
			},
		}
	}
	reg := registry.New([]domain.TestDescriptor{{Name: "s/t1"}, {Name: "s/t2"}, {Name: "s/t3"}})

	done := make(chan struct{})
	go func() {
		h.scheduler.Run(context.Background(), []string{"s/*"}, reg)
		close(done)
	}()

	// Give the fan-out time to saturate the bound before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not finish")
	}

	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))

	evs := drainRunEvents(h.runEvents)
	require.Equal(t, events.RunStarted, evs[0].Kind)
	require.Equal(t, events.SuiteRunning, evs[1].Kind)
	terminal := 0
	for _, ev := range evs {
		if ev.Kind == events.TestPassed || ev.Kind == events.TestFailed {
			terminal++
		}
	}
	assert.Equal(t, 3, terminal, "every leaf emits a terminal event")
	assert.Equal(t, events.SuiteCompleted, evs[len(evs)-2].Kind)
	assert.Equal(t, events.RunFinished, evs[len(evs)-1].Kind)
}

func TestScheduler_RootRunsWholeRegistry(t *testing.T) {
	cfg := &config.Config{ParallelJobs: 1}
	h := newHarness(t, cfg)
	reg := registry.New([]domain.TestDescriptor{{Name: "t1"}, {Name: "t2"}})

	h.scheduler.Run(context.Background(), []string{domain.RootID}, reg)

	assert.Equal(t, []string{"t1", "t2"}, h.executor.scheduledNames())
}

func TestScheduler_CancelRetiresUnstartedLeaves(t *testing.T) {
	cfg := &config.Config{ParallelJobs: 1, Delimiter: "/"}
	h := newHarness(t, cfg)

	started := make(chan struct{})
	release := make(chan struct{})
	h.executor.processes["s/t1"] = &fakeProcess{
		result:  domain.RunResult{Code: 0},
		release: release,
		onStart: func() { close(started) },
	}
	reg := registry.New([]domain.TestDescriptor{{Name: "s/t1"}, {Name: "s/t2"}, {Name: "s/t3"}})

	done := make(chan struct{})
	go func() {
		h.scheduler.Run(context.Background(), []string{"s/*"}, reg)
		close(done)
	}()

	<-started
	h.cancelled.Store(true)
	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not finish")
	}

	var retired []string
	for {
		select {
		case ev := <-h.retires:
			retired = append(retired, ev.ID)
			continue
		default:
		}
		break
	}
	assert.ElementsMatch(t, []string{"s/t2", "s/t3"}, retired)

	evs := drainRunEvents(h.runEvents)
	terminal := map[string]events.RunKind{}
	for _, ev := range evs {
		switch ev.Kind {
		case events.TestPassed, events.TestFailed, events.TestErrored:
			terminal[ev.ID] = ev.Kind
		}
	}
	// The already-started leaf still reaches a terminal event; retired ones
	// never emit running/passed/failed.
	assert.Equal(t, map[string]events.RunKind{"s/t1": events.TestPassed}, terminal)
	assert.Equal(t, events.RunFinished, evs[len(evs)-1].Kind)
}

func TestScheduler_SequentialSuites(t *testing.T) {
	cfg := &config.Config{ParallelJobs: 4, Delimiter: "/"}
	h := newHarness(t, cfg)
	reg := registry.New([]domain.TestDescriptor{{Name: "a/t1"}, {Name: "b/t2"}})

	h.scheduler.Run(context.Background(), []string{"a/*", "b/*"}, reg)

	evs := drainRunEvents(h.runEvents)
	var suiteOrder []string
	for _, ev := range evs {
		if ev.Kind == events.SuiteRunning || ev.Kind == events.SuiteCompleted {
			suiteOrder = append(suiteOrder, ev.ID)
		}
	}
	assert.Equal(t, []string{"a/*", "a/*", "b/*", "b/*"}, suiteOrder,
		"sibling suites run sequentially relative to each other")
}
