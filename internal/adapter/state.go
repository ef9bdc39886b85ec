package adapter

// State is the adapter's process-wide execution state, guarding re-entrancy:
// Load and Run are no-ops outside StateIdle, Cancel is a no-op outside
// StateRunning.
type State int

const (
	// StateIdle means no load or run is in flight.
	StateIdle State = iota
	// StateLoading means a discovery pass is in flight.
	StateLoading
	// StateRunning means a run is in flight.
	StateRunning
	// StateCancelled means a run was cancelled and its in-flight work is
	// draining; the scheduler stops admitting new leaves.
	StateCancelled
)

// String returns the state's display name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}
