package execution

import "sync"

// RunningSet bounds the number of concurrently executing leaf tests. Go
// admits work in call order, blocking while the set is at capacity until at
// least one admitted task settles; Wait blocks until all admitted tasks
// settled. Membership is released when a task returns, never left dangling.
type RunningSet struct {
	slots chan struct{}
	wg    sync.WaitGroup
}

// NewRunningSet creates a RunningSet admitting at most capacity tasks at
// once. Capacity below 1 is treated as 1.
func NewRunningSet(capacity int) *RunningSet {
	if capacity < 1 {
		capacity = 1
	}
	return &RunningSet{slots: make(chan struct{}, capacity)}
}

// Go admits fn, blocking until a slot is free, then runs it on its own
// goroutine. The slot is released when fn returns, panics included.
func (s *RunningSet) Go(fn func()) {
	s.slots <- struct{}{}
	s.wg.Add(1)
	go func() {
		defer func() {
			<-s.slots
			s.wg.Done()
		}()
		fn()
	}()
}

// Wait blocks until every admitted task settled.
func (s *RunningSet) Wait() {
	s.wg.Wait()
}

// Len returns the number of tasks currently holding a slot.
func (s *RunningSet) Len() int {
	return len(s.slots)
}
