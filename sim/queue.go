// Implements the PriorityQueue, one per priority level. Processes wait here
// in arrival order until the scheduler's tick loop selects them.

package sim

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Algorithm names the scheduling discipline governing a priority queue.
type Algorithm string

const (
	AlgorithmFIFO       Algorithm = "FIFO"
	AlgorithmRoundRobin Algorithm = "Round Robin"
	AlgorithmSJF        Algorithm = "SJF"
)

// queueEntry pairs a waiting process with the tick it was (re-)enqueued at.
// Keeping the stamp inside the entry ties the two sequences together by
// construction: they cannot drift out of alignment.
type queueEntry struct {
	proc       *Process
	enqueuedAt int64
}

// PriorityQueue holds the processes waiting at one priority level.
//
// A single mutex serializes every mutation, so Enqueue, DequeueOldest, and
// DrainAll are each atomic with respect to one another. Enqueue is called
// concurrently by the feeder, by the tick loop's no-free-CPU fallback, and by
// algorithm-internal re-queueing; the tick loop is the only dequeuer.
type PriorityQueue struct {
	Name      string
	Algorithm Algorithm

	clock      *Clock
	accounting WaitAccounting

	mu          sync.Mutex
	notEmpty    *sync.Cond
	entries     []queueEntry
	waitSamples []int64 // ticks spent waiting, recorded at each dequeue
}

// NewPriorityQueue creates an empty queue for one priority level.
func NewPriorityQueue(name string, alg Algorithm, clock *Clock, accounting WaitAccounting) *PriorityQueue {
	q := &PriorityQueue{
		Name:       name,
		Algorithm:  alg,
		clock:      clock,
		accounting: accounting,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends a process, stamped with the current logical tick.
//
// Under WaitAccountingReset (the default) every call restamps, so a later
// wait sample covers only the most recent residency. Under
// WaitAccountingCumulative a re-enqueued process keeps its first-arrival
// stamp, so samples measure total time since first arrival.
func (q *PriorityQueue) Enqueue(p *Process) {
	now := q.clock.Now()
	stamp := now
	if !p.everEnqueued {
		p.firstEnqueuedAt = now
		p.everEnqueued = true
	} else if q.accounting == WaitAccountingCumulative {
		stamp = p.firstEnqueuedAt
	}

	q.mu.Lock()
	q.entries = append(q.entries, queueEntry{proc: p, enqueuedAt: stamp})
	q.mu.Unlock()
	q.notEmpty.Signal()

	logrus.Debugf("[tick %07d] process %s added to %s queue", now, p, q.Name)
}

// DequeueOldest blocks until the queue holds at least one process, then
// removes and returns the oldest one, recording its wait time.
func (q *PriorityQueue) DequeueOldest() *Process {
	q.mu.Lock()
	for len(q.entries) == 0 {
		q.notEmpty.Wait()
	}
	e := q.entries[0]
	q.entries = q.entries[1:]
	wait := q.clock.Now() - e.enqueuedAt
	q.waitSamples = append(q.waitSamples, wait)
	q.mu.Unlock()

	logrus.Debugf("[tick %07d] process %s leaving %s queue, waited %d ticks",
		q.clock.Now(), e.proc, q.Name, wait)
	return e.proc
}

// DrainAll atomically removes every waiting process, oldest first, and
// records a wait sample for each. SJF selection uses this to see a consistent
// snapshot of the whole level. Returns nil when the queue is empty.
func (q *PriorityQueue) DrainAll() []*Process {
	now := q.clock.Now()

	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return nil
	}
	procs := make([]*Process, len(q.entries))
	for i, e := range q.entries {
		procs[i] = e.proc
		q.waitSamples = append(q.waitSamples, now-e.enqueuedAt)
	}
	q.entries = nil
	return procs
}

// Len returns the number of waiting processes.
func (q *PriorityQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// IsEmpty is advisory only: with concurrent producers the result may be stale
// by the time the caller acts on it. It is not a synchronization primitive;
// the tick loop tolerates the race by re-checking through selection.
func (q *PriorityQueue) IsEmpty() bool {
	return q.Len() == 0
}

// WaitSamples returns a copy of the recorded wait times, in ticks.
func (q *PriorityQueue) WaitSamples() []int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]int64, len(q.waitSamples))
	copy(out, q.waitSamples)
	return out
}

// AverageWait returns the mean recorded wait in ticks, or 0 when the queue
// never recorded a sample. A zero therefore means "no data", not a measured
// zero-tick wait.
func (q *PriorityQueue) AverageWait() float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.waitSamples) == 0 {
		return 0
	}
	samples := make([]float64, len(q.waitSamples))
	for i, w := range q.waitSamples {
		samples[i] = float64(w)
	}
	return stat.Mean(samples, nil)
}

func (q *PriorityQueue) String() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range q.entries {
		sb.WriteString(fmt.Sprint(e.proc))
		if i < len(q.entries)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
