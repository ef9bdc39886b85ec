package execution

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunningSet_BoundsConcurrency(t *testing.T) {
	set := NewRunningSet(2)

	var inFlight, maxInFlight atomic.Int32
	for i := 0; i < 6; i++ {
		set.Go(func() {
			n := inFlight.Add(1)
			for {
				max := maxInFlight.Load()
				if n <= max || maxInFlight.CompareAndSwap(max, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
		})
	}
	set.Wait()

	assert.LessOrEqual(t, maxInFlight.Load(), int32(2))
	assert.Equal(t, int32(0), inFlight.Load())
	assert.Zero(t, set.Len())
}

func TestRunningSet_AdmissionOrder(t *testing.T) {
	set := NewRunningSet(1)

	var order []int
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		i := i
		set.Go(func() {
			// Capacity 1 serializes execution, so appends are ordered.
			order = append(order, i)
		})
	}
	go func() {
		set.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("running set did not drain")
	}
	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestRunningSet_ClampsCapacity(t *testing.T) {
	set := NewRunningSet(0)
	ran := false
	set.Go(func() { ran = true })
	set.Wait()
	assert.True(t, ran)
}
