// Logical simulation clock shared by the scheduler, queues, and feeder.

package sim

import "sync/atomic"

// Clock is the logical tick counter for a simulation run. The scheduler's
// tick loop is the only writer (one Advance per tick); queues and the feeder
// read it concurrently when stamping arrivals. Driving wait accounting off
// this counter instead of wall-clock time keeps the configurable CPU speed
// factor from skewing queue-wait statistics.
type Clock struct {
	ticks atomic.Int64
}

// Now returns the current tick.
func (c *Clock) Now() int64 {
	return c.ticks.Load()
}

// Advance moves the clock forward by one tick and returns the new value.
func (c *Clock) Advance() int64 {
	return c.ticks.Add(1)
}
