// Models a single execution unit. A CPU holds at most one process at a time,
// runs it for a bounded slice, and reports how much work it did.

package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// CPU executes one process at a time for at most SliceLimit ticks per
// dispatch. The busy flag is claimed by the tick loop via TryAcquire before
// dispatch and cleared by Execute when the slice ends, so a busy CPU can
// never be reassigned. Execution delay is scaled down by SpeedFactor; the
// tick loop's own interval is deliberately not.
type CPU struct {
	ID          int
	SpeedFactor float64 // divisor compressing simulated ticks into real time
	SliceLimit  int64   // max ticks executed in one dispatch
	unit        time.Duration

	busy atomic.Bool

	mu        sync.Mutex
	completed int     // processes that finished on this CPU
	slices    []int64 // ticks executed per dispatch
}

// NewCPU creates an idle CPU. unit is the real-time length of one simulated
// tick before speed scaling.
func NewCPU(id int, speedFactor float64, sliceLimit int64, unit time.Duration) *CPU {
	return &CPU{
		ID:          id,
		SpeedFactor: speedFactor,
		SliceLimit:  sliceLimit,
		unit:        unit,
	}
}

// TryAcquire atomically claims the CPU for one dispatch. Returns false if it
// is already busy.
func (c *CPU) TryAcquire() bool {
	return c.busy.CompareAndSwap(false, true)
}

// Busy reports whether a process is currently assigned to this CPU.
func (c *CPU) Busy() bool {
	return c.busy.Load()
}

// Execute runs the process for min(Remaining, SliceLimit) ticks of simulated
// work, sleeping the speed-scaled real-time equivalent, then decrements the
// process's remaining need. The slice is recorded and the CPU released
// whether or not the process itself finished; an unfinished process must be
// returned to its originating queue by the caller. Returns the slice length.
//
// The caller must have claimed the CPU with TryAcquire.
func (c *CPU) Execute(p *Process) int64 {
	slice := min(p.Remaining, c.SliceLimit)
	logrus.Debugf("CPU %d starts executing process %s (remaining: %d ticks)", c.ID, p.ID, p.Remaining)

	time.Sleep(time.Duration(float64(slice) * float64(c.unit) / c.SpeedFactor))
	p.Remaining -= slice

	c.mu.Lock()
	c.slices = append(c.slices, slice)
	if p.Completed() {
		c.completed++
	}
	c.mu.Unlock()
	c.busy.Store(false)

	logrus.Debugf("CPU %d finished slice of process %s, remaining: %d ticks", c.ID, p.ID, p.Remaining)
	return slice
}

// CompletedCount returns how many processes ran to completion on this CPU.
func (c *CPU) CompletedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

// ExecutionSlices returns a copy of the per-dispatch slice lengths, in ticks.
func (c *CPU) ExecutionSlices() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, len(c.slices))
	copy(out, c.slices)
	return out
}
