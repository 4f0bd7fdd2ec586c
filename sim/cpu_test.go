package sim

import (
	"testing"
	"time"
)

// fast real-time settings so tests spend microseconds, not seconds
func newTestCPU(sliceLimit int64) *CPU {
	return NewCPU(0, 1000, sliceLimit, time.Millisecond)
}

func TestCPU_Execute_SliceBoundedByRemaining(t *testing.T) {
	// GIVEN a process needing 2 ticks on a CPU with slice limit 5
	c := newTestCPU(5)
	p := NewProcess("A", 2)

	// WHEN executed
	if !c.TryAcquire() {
		t.Fatal("fresh CPU not acquirable")
	}
	slice := c.Execute(p)

	// THEN the slice is the remaining need and the process completes
	if slice != 2 {
		t.Errorf("slice: got %d, want 2", slice)
	}
	if !p.Completed() {
		t.Errorf("process not completed, remaining=%d", p.Remaining)
	}
}

func TestCPU_Execute_SliceBoundedByLimit(t *testing.T) {
	// GIVEN a process needing 10 ticks on a CPU with slice limit 3
	c := newTestCPU(3)
	p := NewProcess("A", 10)

	// WHEN executed once
	c.TryAcquire()
	slice := c.Execute(p)

	// THEN only one slice of work happened and the process is partial
	if slice != 3 {
		t.Errorf("slice: got %d, want 3", slice)
	}
	if p.Remaining != 7 {
		t.Errorf("remaining: got %d, want 7", p.Remaining)
	}
	if p.Completed() {
		t.Errorf("partially executed process reported completed")
	}
}

func TestCPU_BusyFlag_ExclusiveAndReleased(t *testing.T) {
	c := newTestCPU(3)

	// GIVEN an acquired CPU
	if !c.TryAcquire() {
		t.Fatal("fresh CPU not acquirable")
	}
	if !c.Busy() {
		t.Error("acquired CPU not reported busy")
	}

	// THEN a second acquisition fails while held
	if c.TryAcquire() {
		t.Error("busy CPU acquired twice")
	}

	// WHEN a slice finishes, the CPU frees itself
	c.Execute(NewProcess("A", 1))
	if c.Busy() {
		t.Error("CPU still busy after Execute returned")
	}
	if !c.TryAcquire() {
		t.Error("released CPU not acquirable")
	}
}

func TestCPU_Stats_SlicesAlwaysRecorded_CompletionCounted(t *testing.T) {
	// GIVEN a burst-5 process run to completion in slice-3 dispatches
	c := newTestCPU(3)
	p := NewProcess("A", 5)

	c.TryAcquire()
	c.Execute(p) // 3 ticks, partial
	c.TryAcquire()
	c.Execute(p) // 2 ticks, completes

	// THEN both slices are recorded but only one completion is counted
	slices := c.ExecutionSlices()
	if len(slices) != 2 || slices[0] != 3 || slices[1] != 2 {
		t.Errorf("execution slices: got %v, want [3 2]", slices)
	}
	if got := c.CompletedCount(); got != 1 {
		t.Errorf("completed count: got %d, want 1", got)
	}
}

func TestCPU_Execute_ScalesDelayBySpeedFactor(t *testing.T) {
	// GIVEN a slow-motion CPU: 1 tick = 40ms at speed factor 2
	c := NewCPU(0, 2, 1, 40*time.Millisecond)
	p := NewProcess("A", 1)

	// WHEN one tick of work executes
	c.TryAcquire()
	start := time.Now()
	c.Execute(p)
	elapsed := time.Since(start)

	// THEN the real delay is about 40ms/2; generous bounds for CI jitter
	if elapsed < 10*time.Millisecond {
		t.Errorf("execution returned too quickly: %v", elapsed)
	}
	if elapsed > 200*time.Millisecond {
		t.Errorf("execution took too long: %v", elapsed)
	}
}
