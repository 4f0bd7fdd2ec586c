package sim

import "time"

// WaitAccounting selects how queue wait times are stamped when a process is
// re-enqueued (Round-Robin carry-over, SJF losers, no-free-CPU fallback).
type WaitAccounting string

const (
	// WaitAccountingReset restamps on every enqueue: a wait sample covers
	// only the most recent queue residency. This is the historical behavior
	// and the default.
	WaitAccountingReset WaitAccounting = "reset"

	// WaitAccountingCumulative keeps the first-arrival stamp across
	// re-enqueues: a wait sample covers total time since first arrival.
	WaitAccountingCumulative WaitAccounting = "cumulative"
)

// Config groups scheduler construction parameters.
type Config struct {
	NumCPUs        int            // size of the CPU pool (must be > 0)
	TotalProcesses int            // processes the run must complete before terminating
	SpeedFactor    float64        // divisor applied to CPU execution delay (must be > 0)
	TimeQuantum    int64          // Round-Robin queue-level quantum, in ticks
	SliceLimit     int64          // max ticks a CPU executes per dispatch
	TickInterval   time.Duration  // real-time pause between tick-loop iterations (unscaled)
	TimeUnit       time.Duration  // real-time length of one simulated tick before speed scaling
	WaitAccounting WaitAccounting // wait stamping mode, see WaitAccounting
	Seed           int64          // master seed for deterministic feeder randomness
}

// DefaultConfig mirrors the simulation defaults of the interactive front end:
// 4 CPUs at 20x speedup, quantum 2, slice limit 3, 1-second ticks.
func DefaultConfig() Config {
	return Config{
		NumCPUs:        4,
		TotalProcesses: 44,
		SpeedFactor:    20,
		TimeQuantum:    2,
		SliceLimit:     3,
		TickInterval:   time.Second,
		TimeUnit:       time.Second,
		WaitAccounting: WaitAccountingReset,
		Seed:           42,
	}
}
