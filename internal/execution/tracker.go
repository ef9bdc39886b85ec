package execution

import "sync"

// Tracker records in-flight processes by test id so cancellation can reach
// them. Entries exist only between scheduling and settlement of one test and
// are removed unconditionally when the test settles.
type Tracker struct {
	mu    sync.Mutex
	procs map[string]Process
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{procs: make(map[string]Process)}
}

// Add records the process running the given test id.
func (t *Tracker) Add(id string, proc Process) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.procs[id] = proc
}

// Remove forgets the process for the given test id, if any.
func (t *Tracker) Remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.procs, id)
}

// KillAll signals every tracked process to terminate. Entries stay tracked
// until their owning test settles and removes them.
func (t *Tracker) KillAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, proc := range t.procs {
		proc.Kill()
	}
}

// Len returns the number of currently tracked processes.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.procs)
}
