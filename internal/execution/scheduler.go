package execution

import (
	"context"

	"cta/internal/config"
	"cta/internal/domain"
	"cta/internal/events"
	"cta/internal/registry"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Scheduler resolves requested ids to concrete leaf tests and executes them
// with a bounded degree of concurrency, emitting lifecycle events per test
// and per suite. Ids are processed sequentially in the given order; only the
// leaves of one suite fan-out run concurrently.
type Scheduler struct {
	cfg       *config.Config
	settings  config.Settings
	executor  Executor
	tracker   *Tracker
	run       *events.Emitter[events.RunEvent]
	retire    *events.Emitter[events.RetireEvent]
	cancelled func() bool
	log       zerolog.Logger
}

// NewScheduler creates a Scheduler. The cancelled func is consulted before
// every leaf; once it reports true no further leaves are started.
func NewScheduler(
	cfg *config.Config,
	settings config.Settings,
	executor Executor,
	tracker *Tracker,
	run *events.Emitter[events.RunEvent],
	retire *events.Emitter[events.RetireEvent],
	cancelled func() bool,
	log zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		cfg:       cfg,
		settings:  settings,
		executor:  executor,
		tracker:   tracker,
		run:       run,
		retire:    retire,
		cancelled: cancelled,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Run executes the requested ids. Test failures are normal outcomes, not
// scheduler failures; any fault escaping the run loop is swallowed so the
// consumer always observes RunFinished.
func (s *Scheduler) Run(ctx context.Context, ids []string, reg *registry.Registry) {
	runID := uuid.NewString()
	s.run.Publish(events.RunEvent{Kind: events.RunStarted, RunID: runID, IDs: ids})
	defer s.run.Publish(events.RunEvent{Kind: events.RunFinished, RunID: runID})
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("run loop fault")
		}
	}()

	for _, id := range ids {
		nid := domain.ParseNodeID(id, s.cfg.Delimiter)
		switch nid.Kind {
		case domain.KindRoot:
			s.runSuite(ctx, id, reg.All())
		case domain.KindSuite:
			s.runSuite(ctx, id, reg.WithPrefix(nid.Prefix))
		case domain.KindLeaf:
			test, ok := reg.Lookup(nid.Name)
			if !ok {
				s.run.Publish(events.RunEvent{Kind: events.TestSkipped, ID: id})
				continue
			}
			s.runLeaf(ctx, test)
		}
	}
}

// runSuite fans the suite's leaves out over the running set: admission in
// registry order, at most the resolved number of jobs in flight, completion
// order unconstrained. Suite events strictly bracket all leaf events.
func (s *Scheduler) runSuite(ctx context.Context, id string, leaves []domain.TestDescriptor) {
	s.run.Publish(events.RunEvent{Kind: events.SuiteRunning, ID: id})
	defer s.run.Publish(events.RunEvent{Kind: events.SuiteCompleted, ID: id})

	// Re-resolved per suite run, picking up live setting changes.
	jobs := config.ResolveParallelJobs(s.cfg, s.settings)
	s.log.Debug().Str("suite", id).Int("jobs", jobs).Int("leaves", len(leaves)).Msg("suite fan-out")

	set := NewRunningSet(jobs)
	for _, leaf := range leaves {
		leaf := leaf
		set.Go(func() {
			s.runLeaf(ctx, leaf)
		})
	}
	set.Wait()
}

// runLeaf executes one leaf to a terminal event: Retire when cancellation
// was observed before the start, Errored on an executor fault, otherwise
// Passed or Failed by exit code with captured output attached. The tracker
// entry is removed unconditionally once the leaf settles.
func (s *Scheduler) runLeaf(ctx context.Context, test domain.TestDescriptor) {
	if s.cancelled() {
		s.retire.Publish(events.RetireEvent{ID: test.Name})
		return
	}

	s.run.Publish(events.RunEvent{Kind: events.TestRunning, ID: test.Name})

	proc, err := s.executor.Schedule(ctx, s.cfg.CTestPath, test, s.cfg.ExtraRunArgs)
	if err != nil {
		s.run.Publish(events.RunEvent{Kind: events.TestErrored, ID: test.Name, Message: err.Error()})
		return
	}
	s.tracker.Add(test.Name, proc)
	defer s.tracker.Remove(test.Name)

	result, err := proc.Wait(ctx)
	if err != nil {
		s.run.Publish(events.RunEvent{Kind: events.TestErrored, ID: test.Name, Message: err.Error()})
		return
	}

	kind := events.TestPassed
	if !result.Passed() {
		kind = events.TestFailed
	}
	s.run.Publish(events.RunEvent{Kind: kind, ID: test.Name, Message: result.Output})
}
