// Package adapter is the top-level controller bridging the test-explorer
// contract onto the native harness: load, run, debug, cancel and dispose,
// serialized against a single state variable.
package adapter

import (
	"context"
	"errors"
	"sync"

	"cta/internal/config"
	"cta/internal/debugger"
	"cta/internal/domain"
	"cta/internal/events"
	"cta/internal/execution"
	"cta/internal/registry"
	"cta/internal/tree"
	"cta/internal/vars"

	"github.com/rs/zerolog"
)

// DeriveDebugConfig builds the per-test launch fragment for one descriptor.
type DeriveDebugConfig func(domain.TestDescriptor) debugger.Config

// Adapter coordinates the external collaborators and owns the registry, the
// process tracker and the event emitters.
type Adapter struct {
	cfg      *config.Config
	settings config.Settings
	loader   execution.Loader
	launcher debugger.Launcher
	resolver *vars.Resolver
	derive   DeriveDebugConfig

	mu       sync.Mutex
	state    State
	reg      *registry.Registry
	disposed bool

	tracker   *execution.Tracker
	holder    *debugger.Holder
	scheduler *execution.Scheduler

	loadEvents   *events.Emitter[events.LoadEvent]
	runEvents    *events.Emitter[events.RunEvent]
	retireEvents *events.Emitter[events.RetireEvent]

	log zerolog.Logger
}

// New wires an Adapter from its collaborators. settings, launcher and the
// resolver's command provider may come from the host; the loader and
// executor are the harness-facing side.
func New(
	cfg *config.Config,
	settings config.Settings,
	loader execution.Loader,
	executor execution.Executor,
	launcher debugger.Launcher,
	resolver *vars.Resolver,
	derive DeriveDebugConfig,
	log zerolog.Logger,
) *Adapter {
	a := &Adapter{
		cfg:          cfg,
		settings:     settings,
		loader:       loader,
		launcher:     launcher,
		resolver:     resolver,
		derive:       derive,
		reg:          registry.Empty(),
		tracker:      execution.NewTracker(),
		holder:       debugger.NewHolder(),
		loadEvents:   events.NewEmitter[events.LoadEvent](),
		runEvents:    events.NewEmitter[events.RunEvent](),
		retireEvents: events.NewEmitter[events.RetireEvent](),
		log:          log.With().Str("component", "adapter").Logger(),
	}
	a.scheduler = execution.NewScheduler(cfg, settings, executor, a.tracker,
		a.runEvents, a.retireEvents, a.isCancelled, log)
	return a
}

// LoadEvents returns a new subscription to load lifecycle notifications.
func (a *Adapter) LoadEvents() <-chan events.LoadEvent {
	return a.loadEvents.Subscribe()
}

// RunEvents returns a new subscription to run lifecycle notifications.
func (a *Adapter) RunEvents() <-chan events.RunEvent {
	return a.runEvents.Subscribe()
}

// RetireEvents returns a new subscription to retire notifications.
func (a *Adapter) RetireEvents() <-chan events.RetireEvent {
	return a.retireEvents.Subscribe()
}

// State returns the current execution state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Registry returns the descriptors of the most recent load.
func (a *Adapter) Registry() *registry.Registry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reg
}

// Tree builds the current suite tree from the registry.
func (a *Adapter) Tree() *tree.SuiteNode {
	return tree.Build(a.Registry().All(), a.cfg.Delimiter)
}

// Load discovers tests and replaces the registry wholesale. No-op unless
// idle. LoadFinished always carries either a tree or an error message; the
// distinguishable missing-cache failure is swallowed into an empty tree when
// the build directory was never configured.
func (a *Adapter) Load(ctx context.Context) {
	if !a.transition(StateIdle, StateLoading) {
		a.log.Debug().Stringer("state", a.State()).Msg("load ignored")
		return
	}
	defer a.setState(StateIdle)

	a.loadEvents.Publish(events.LoadEvent{Kind: events.LoadStarted})

	tests, err := a.discover(ctx)
	switch {
	case errors.Is(err, execution.ErrCacheNotFound) && a.cfg.BuildDirIsDefault():
		a.setRegistry(registry.Empty())
		a.loadEvents.Publish(events.LoadEvent{Kind: events.LoadFinished, Tree: a.Tree()})
	case err != nil:
		a.setRegistry(registry.Empty())
		a.log.Error().Err(err).Msg("load failed")
		a.loadEvents.Publish(events.LoadEvent{Kind: events.LoadFinished, Err: err.Error()})
	default:
		a.setRegistry(registry.New(tests))
		a.loadEvents.Publish(events.LoadEvent{Kind: events.LoadFinished, Tree: a.Tree()})
	}
}

// discover resolves the build directory and delegates to the loader.
func (a *Adapter) discover(ctx context.Context) ([]domain.TestDescriptor, error) {
	buildDir := a.cfg.BuildDir
	if buildDir == "" {
		buildDir = vars.WorkspaceToken
	}
	resolved, err := a.resolver.Resolve(ctx, buildDir)
	if err != nil {
		return nil, err
	}
	return a.loader.Load(ctx, a.cfg.CTestPath, resolved, a.cfg.BuildConfig, a.cfg.ExtraLoadArgs)
}

// Run executes the requested ids through the scheduler. No-op unless idle.
// The state returns to idle when the run drains, cancelled or not.
func (a *Adapter) Run(ctx context.Context, ids []string) {
	if !a.transition(StateIdle, StateRunning) {
		a.log.Debug().Stringer("state", a.State()).Msg("run ignored")
		return
	}
	defer a.setState(StateIdle)

	a.scheduler.Run(ctx, ids, a.Registry())
}

// Cancel stops a running execution: every tracked process is signalled and
// the state flips to cancelled, which the scheduler observes before starting
// further leaves. No-op unless running.
func (a *Adapter) Cancel() {
	if !a.transition(StateRunning, StateCancelled) {
		return
	}
	a.log.Debug().Msg("run cancelled")
	a.tracker.KillAll()
}

// Debug launches a debug session for a single leaf test. Suite and root ids
// are rejected as a no-op. Faults are logged, never propagated to the host.
func (a *Adapter) Debug(ctx context.Context, id string) {
	nid := domain.ParseNodeID(id, a.cfg.Delimiter)
	if nid.Kind != domain.KindLeaf {
		a.log.Warn().Str("id", id).Msg("only single tests can be debugged")
		return
	}
	test, ok := a.Registry().Lookup(nid.Name)
	if !ok {
		a.log.Warn().Str("id", id).Msg("unknown test id")
		return
	}

	a.holder.Set(a.derive(test))
	defer a.holder.Clear()

	launch := a.holder.Merge(debugger.DefaultConfig())
	if err := a.launcher.Launch(ctx, a.cfg.DebugConfig, launch); err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("debug session failed")
	}
}

// DebugHolder exposes the single-slot fragment store to the host's
// configuration-merge hook.
func (a *Adapter) DebugHolder() *debugger.Holder {
	return a.holder
}

// Dispose cancels any in-flight run and releases all emitter resources.
// Safe to call multiple times.
func (a *Adapter) Dispose() {
	a.Cancel()

	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.disposed = true
	a.mu.Unlock()

	a.loadEvents.Close()
	a.runEvents.Close()
	a.retireEvents.Close()
}

func (a *Adapter) isCancelled() bool {
	return a.State() == StateCancelled
}

// transition moves from one state to another atomically, reporting whether
// the move happened.
func (a *Adapter) transition(from, to State) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != from {
		return false
	}
	a.state = to
	return true
}

func (a *Adapter) setState(s State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = s
}

func (a *Adapter) setRegistry(reg *registry.Registry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reg = reg
}
