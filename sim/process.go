// Defines the Process struct that models a single schedulable process in the
// simulation. Tracks the original burst time and the execution still owed.

package sim

import "fmt"

// Process models a single process's lifecycle in the simulation.
// Each process has:
// - an immutable identity and original burst time (in ticks)
// - a remaining time, decremented only while a CPU holds the process exclusively
//
// Invariant: 0 <= Remaining <= BurstTime. A process leaves the system
// permanently once Remaining reaches 0. It may pass through a queue several
// times before that (Round-Robin carry-over, SJF losers, no-free-CPU
// fallback), but it is never held by two queues or CPUs at once.
type Process struct {
	ID        string // unique identifier, e.g. "Process_7"
	BurstTime int64  // total execution need in ticks, fixed at submission
	Remaining int64  // ticks of execution still owed

	// First tick at which the process was ever enqueued. Used by
	// cumulative wait accounting; zero-value safe (stamped on first enqueue).
	firstEnqueuedAt int64
	everEnqueued    bool
}

// NewProcess creates a process with its full burst still owed.
func NewProcess(id string, burst int64) *Process {
	return &Process{
		ID:        id,
		BurstTime: burst,
		Remaining: burst,
	}
}

// Completed reports whether the process has consumed its entire burst.
func (p *Process) Completed() bool {
	return p.Remaining == 0
}

func (p *Process) String() string {
	return fmt.Sprintf("%s(BT: %d, RT: %d)", p.ID, p.BurstTime, p.Remaining)
}
