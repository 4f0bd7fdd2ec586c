package sim

import (
	"testing"
)

// feederConfig submits arrivals as fast as the interval math allows so tests
// don't wait on real pacing.
func feederConfig(total int, seed int64) *Scheduler {
	cfg := testConfig(1, total)
	cfg.Seed = seed
	return NewScheduler(cfg)
}

func drainAllQueues(s *Scheduler) map[string][]*Process {
	out := make(map[string][]*Process, len(PriorityLevels))
	for _, level := range PriorityLevels {
		out[level] = s.Queue(level).DrainAll()
	}
	return out
}

func TestAddProcesses_SubmitsExactlyTotal(t *testing.T) {
	// GIVEN a feeder asked for 30 arrivals
	s := feederConfig(30, 7)

	// WHEN it runs to completion (without the tick loop)
	AddProcesses(s, 30, 100000, 3, [2]int64{1, 10}, false)

	// THEN exactly 30 processes sit in the queues
	total := 0
	for _, level := range PriorityLevels {
		total += s.Queue(level).Len()
	}
	if total != 30 {
		t.Errorf("submitted processes: got %d, want 30", total)
	}
}

func TestAddProcesses_DefaultBurstWithoutFlag(t *testing.T) {
	// GIVEN the random-burst flag off
	s := feederConfig(25, 7)
	AddProcesses(s, 25, 100000, 4, [2]int64{1, 10}, false)

	// THEN every process carries the default burst, Interactive included
	for level, procs := range drainAllQueues(s) {
		for _, p := range procs {
			if p.BurstTime != 4 {
				t.Errorf("queue %s: process %s burst %d, want 4", level, p.ID, p.BurstTime)
			}
		}
	}
}

func TestAddProcesses_RandomInteractiveBurstInRange(t *testing.T) {
	// GIVEN random Interactive bursts from [1, 5] and default burst 100
	s := feederConfig(60, 11)
	AddProcesses(s, 60, 100000, 100, [2]int64{1, 5}, true)

	// THEN only Interactive deviates from the default, and stays in range
	for level, procs := range drainAllQueues(s) {
		for _, p := range procs {
			if level == "Interactive" {
				if p.BurstTime < 1 || p.BurstTime > 5 {
					t.Errorf("Interactive burst out of range: %d", p.BurstTime)
				}
			} else if p.BurstTime != 100 {
				t.Errorf("queue %s: process %s burst %d, want 100", level, p.ID, p.BurstTime)
			}
		}
	}
}

func TestAddProcesses_DeterministicForSeed(t *testing.T) {
	// GIVEN two feeders with the same seed
	s1 := feederConfig(40, 99)
	s2 := feederConfig(40, 99)
	AddProcesses(s1, 40, 100000, 3, [2]int64{1, 10}, true)
	AddProcesses(s2, 40, 100000, 3, [2]int64{1, 10}, true)

	// THEN per-queue process names and bursts match exactly
	q1 := drainAllQueues(s1)
	q2 := drainAllQueues(s2)
	for _, level := range PriorityLevels {
		a, b := q1[level], q2[level]
		if len(a) != len(b) {
			t.Fatalf("queue %s: %d vs %d processes across seeded runs", level, len(a), len(b))
		}
		for i := range a {
			if a[i].ID != b[i].ID || a[i].BurstTime != b[i].BurstTime {
				t.Errorf("queue %s[%d]: %v vs %v", level, i, a[i], b[i])
			}
		}
	}
}

func TestAddProcesses_ArrivalOrderNamesSequential(t *testing.T) {
	// Process names follow submission order regardless of queue placement
	s := feederConfig(5, 3)
	AddProcesses(s, 5, 100000, 2, [2]int64{1, 4}, false)

	seen := make(map[string]bool)
	for _, procs := range drainAllQueues(s) {
		for _, p := range procs {
			seen[p.ID] = true
		}
	}
	for _, want := range []string{"Process_1", "Process_2", "Process_3", "Process_4", "Process_5"} {
		if !seen[want] {
			t.Errorf("missing process %s in %v", want, seen)
		}
	}
}
