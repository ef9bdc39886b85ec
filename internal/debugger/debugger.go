// Package debugger holds the debug launch surface: the configuration
// fragment derived per test, the single-slot holder consulted by the
// configuration-merge hook, and the host launcher contract.
package debugger

import (
	"context"
	"sync"
)

// Config is the launch fragment for one debug session.
type Config struct {
	Name    string   `json:"name"`
	Type    string   `json:"type,omitempty"`
	Request string   `json:"request,omitempty"`
	Program string   `json:"program"`
	Args    []string `json:"args"`
	Cwd     string   `json:"cwd"`
}

// DefaultConfig is the built-in launch template used when no custom debug
// configuration is named.
func DefaultConfig() Config {
	return Config{Type: "cppdbg", Request: "launch"}
}

// Launcher starts a host debug session. configName selects a custom launch
// configuration by name; empty means the built-in default.
type Launcher interface {
	Launch(ctx context.Context, configName string, cfg Config) error
}

// Holder is the single-slot store for the per-test fragment, consulted by
// the configuration-merge hook while one debug session launches. Clearing it
// after every launch keeps stale overrides out of unrelated later sessions.
type Holder struct {
	mu  sync.Mutex
	cfg *Config
}

// NewHolder creates an empty Holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Set places the per-test fragment in the slot.
func (h *Holder) Set(cfg Config) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = &cfg
}

// Clear empties the slot.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cfg = nil
}

// Current returns the held fragment, if any.
func (h *Holder) Current() (Config, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cfg == nil {
		return Config{}, false
	}
	return *h.cfg, true
}

// Merge applies the held fragment onto a base configuration. With an empty
// slot the base passes through unchanged.
func (h *Holder) Merge(base Config) Config {
	held, ok := h.Current()
	if !ok {
		return base
	}
	merged := base
	merged.Name = held.Name
	merged.Program = held.Program
	merged.Args = held.Args
	merged.Cwd = held.Cwd
	return merged
}
