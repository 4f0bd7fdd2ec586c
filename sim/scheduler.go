// The multi-level queue scheduler: owns the five priority queues and the CPU
// pool, and runs the tick loop that selects, dispatches, and samples state.

package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// PriorityLevels is the authoritative precedence order consumed every tick,
// highest priority first. Iteration never relies on map ordering.
var PriorityLevels = []string{
	"Real Time",
	"System",
	"Interactive",
	"Batch",
	"Low Priority",
}

// levelAlgorithms maps each priority level to its scheduling discipline.
var levelAlgorithms = map[string]Algorithm{
	"Real Time":    AlgorithmFIFO,
	"System":       AlgorithmRoundRobin,
	"Interactive":  AlgorithmSJF,
	"Batch":        AlgorithmFIFO,
	"Low Priority": AlgorithmRoundRobin,
}

// execResult is what a finished CPU dispatch reports back to the tick loop.
type execResult struct {
	proc  *Process
	level string // originating queue, for requeue of partial progress
	slice int64
}

// Scheduler coordinates process selection across the priority queues and
// dispatches work onto the CPU pool. Construct with NewScheduler, submit
// processes via ScheduleProcess or a concurrent feeder, then call Run.
type Scheduler struct {
	cfg      Config
	clock    *Clock
	queues   map[string]*PriorityQueue
	policies map[string]SelectionPolicy
	cpus     []*CPU
	rng      *PartitionedRNG

	// completed has a single writer: the tick loop, which drains results at
	// the start of every tick. Execution goroutines only send on results.
	completed int
	results   chan execResult

	metrics *Metrics
}

// NewScheduler builds the five fixed priority queues and the CPU pool from
// cfg. Validation of the numeric parameters is the caller's responsibility.
func NewScheduler(cfg Config) *Scheduler {
	if cfg.WaitAccounting == "" {
		cfg.WaitAccounting = WaitAccountingReset
	}
	s := &Scheduler{
		cfg:      cfg,
		clock:    &Clock{},
		queues:   make(map[string]*PriorityQueue, len(PriorityLevels)),
		policies: make(map[string]SelectionPolicy, len(PriorityLevels)),
		cpus:     make([]*CPU, cfg.NumCPUs),
		rng:      NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
		// every in-flight dispatch holds one CPU, so NumCPUs bounds the
		// number of undrained results
		results: make(chan execResult, cfg.NumCPUs),
		metrics: NewMetrics(cfg.NumCPUs),
	}
	for _, level := range PriorityLevels {
		alg := levelAlgorithms[level]
		s.queues[level] = NewPriorityQueue(level, alg, s.clock, cfg.WaitAccounting)
		s.policies[level] = NewPolicy(alg, cfg.TimeQuantum)
	}
	for i := range s.cpus {
		s.cpus[i] = NewCPU(i, cfg.SpeedFactor, cfg.SliceLimit, cfg.TimeUnit)
	}
	return s
}

// Clock exposes the run's logical tick counter.
func (s *Scheduler) Clock() *Clock {
	return s.clock
}

// RNG exposes the run's partitioned random source, seeded from Config.Seed.
func (s *Scheduler) RNG() *PartitionedRNG {
	return s.rng
}

// Queue returns the queue for a priority level, or nil if the level is
// unknown.
func (s *Scheduler) Queue(level string) *PriorityQueue {
	return s.queues[level]
}

// ScheduleProcess creates a process and enqueues it at the given priority
// level. The only error the engine can produce at runtime: an unknown
// priority name. Safe to call concurrently with Run.
func (s *Scheduler) ScheduleProcess(priority, name string, burst int64) error {
	q, ok := s.queues[priority]
	if !ok {
		return fmt.Errorf("unknown priority level %q; valid: %v", priority, PriorityLevels)
	}
	q.Enqueue(NewProcess(name, burst))
	return nil
}

// Run drives the tick loop until every queue is empty and all
// Config.TotalProcesses submitted processes have completed, then returns the
// accumulated artifacts. Each tick:
//
//  1. Drain completion reports: count finished processes, re-enqueue
//     partially executed ones at their originating level.
//  2. Visit the levels in fixed priority order; for each non-empty queue let
//     its policy select at most one ready process and dispatch it onto the
//     first free CPU in pool order. With no free CPU the process is
//     re-enqueued, not lost.
//  3. Record one busy/free sample per CPU and one length sample per queue,
//     after all levels have been processed, so every history sequence grows
//     by exactly one entry per tick.
//
// The tick interval paces the loop in real time and is deliberately not
// scaled by the CPU speed factor: ticks sample state, CPU slices determine
// actual progress. There is no cancellation; a started run always proceeds to
// natural completion.
func (s *Scheduler) Run() *Results {
	logrus.Infof("scheduler starting: %d CPUs, %d processes expected, quantum=%d, slice=%d, %s wait accounting",
		s.cfg.NumCPUs, s.cfg.TotalProcesses, s.cfg.TimeQuantum, s.cfg.SliceLimit, s.cfg.WaitAccounting)

	for {
		s.drainResults()

		for _, level := range PriorityLevels {
			q := s.queues[level]
			if q.IsEmpty() {
				continue
			}
			proc := s.policies[level].Select(q)
			if proc == nil {
				continue
			}
			if cpu := s.acquireFreeCPU(); cpu != nil {
				go s.execute(cpu, level, proc)
			} else {
				// wait-time accounting restarts here under reset mode
				q.Enqueue(proc)
			}
		}

		s.metrics.Sample(s.cpus, s.queues)
		tick := s.clock.Advance()

		if s.completed == s.cfg.TotalProcesses && s.allQueuesEmpty() {
			logrus.Infof("[tick %07d] all processes have been completed", tick)
			break
		}
		time.Sleep(s.cfg.TickInterval)
	}

	return s.metrics.Results(s)
}

// drainResults consumes every pending completion report without blocking.
func (s *Scheduler) drainResults() {
	for {
		select {
		case r := <-s.results:
			if r.proc.Completed() {
				s.completed++
				logrus.Debugf("[tick %07d] process %s completed (%d/%d)",
					s.clock.Now(), r.proc.ID, s.completed, s.cfg.TotalProcesses)
			} else {
				logrus.Debugf("[tick %07d] process %s preempted after %d-tick slice, back to %s",
					s.clock.Now(), r.proc.ID, r.slice, r.level)
				s.queues[r.level].Enqueue(r.proc)
			}
		default:
			return
		}
	}
}

// acquireFreeCPU claims the first free CPU in pool order (first-fit), or
// returns nil when all are busy.
func (s *Scheduler) acquireFreeCPU() *CPU {
	for _, c := range s.cpus {
		if c.TryAcquire() {
			return c
		}
	}
	return nil
}

// execute runs one dispatch on an already-acquired CPU and reports back.
// Runs as its own goroutine so the tick loop keeps sampling while any number
// of CPUs execute concurrently.
func (s *Scheduler) execute(cpu *CPU, level string, p *Process) {
	slice := cpu.Execute(p)
	s.results <- execResult{proc: p, level: level, slice: slice}
}

func (s *Scheduler) allQueuesEmpty() bool {
	for _, level := range PriorityLevels {
		if !s.queues[level].IsEmpty() {
			return false
		}
	}
	return true
}
