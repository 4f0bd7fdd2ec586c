package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// SelectionPolicy picks the next process a priority queue should hand to CPU
// assignment. Select may return nil: the queue yields no process this tick
// (Round-Robin carry-over, or the queue emptied under the caller's feet).
// The tick loop is the only caller, one Select per non-empty queue per tick.
type SelectionPolicy interface {
	Select(q *PriorityQueue) *Process
}

// FIFOPolicy hands out the oldest process unchanged. No re-queueing: whatever
// progress the process has made, its current slice goes straight to a CPU.
type FIFOPolicy struct{}

func (FIFOPolicy) Select(q *PriorityQueue) *Process {
	return q.DequeueOldest()
}

// RoundRobinPolicy pops the oldest process and applies the queue-level time
// quantum. A process whose remaining need fits in one quantum is handed to
// CPU assignment (its current slice will finish it). Otherwise it consumes
// one quantum in-queue, is re-enqueued, and the level yields nothing this
// tick. The process resumes waiting rather than executing immediately.
//
// The quantum is deliberately distinct from the CPU slice limit: the quantum
// is this queue's admission decision, the slice limit bounds any single
// dispatch once a process does reach a CPU.
type RoundRobinPolicy struct {
	Quantum int64
}

func (rr RoundRobinPolicy) Select(q *PriorityQueue) *Process {
	p := q.DequeueOldest()
	if p.Remaining <= rr.Quantum {
		return p
	}
	p.Remaining -= rr.Quantum
	logrus.Debugf("process %s needs more time, %d ticks remain, staying in %s queue",
		p.ID, p.Remaining, q.Name)
	q.Enqueue(p)
	return nil
}

// SJFPolicy drains the level and picks the process with the smallest original
// burst time, ties broken by arrival order. The losers are re-enqueued in
// their original relative order (with fresh stamps under reset accounting).
type SJFPolicy struct{}

func (SJFPolicy) Select(q *PriorityQueue) *Process {
	procs := q.DrainAll()
	if len(procs) == 0 {
		return nil
	}
	best := 0
	for i, p := range procs {
		// strict < keeps the earliest arrival on ties
		if p.BurstTime < procs[best].BurstTime {
			best = i
		}
	}
	for i, p := range procs {
		if i != best {
			q.Enqueue(p)
		}
	}
	return procs[best]
}

// NewPolicy creates the SelectionPolicy for a scheduling algorithm. The
// quantum is only consulted by Round-Robin. Panics on unrecognized
// algorithms: queue construction is the engine's own doing, so an unknown
// algorithm is a programming error, not caller input.
func NewPolicy(alg Algorithm, quantum int64) SelectionPolicy {
	switch alg {
	case AlgorithmFIFO:
		return FIFOPolicy{}
	case AlgorithmRoundRobin:
		return RoundRobinPolicy{Quantum: quantum}
	case AlgorithmSJF:
		return SJFPolicy{}
	default:
		panic(fmt.Sprintf("unknown scheduling algorithm %q", alg))
	}
}
