// Generates process arrivals over time and hands them to the scheduler.

package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// randomBurstLevel is the one priority level whose processes may draw a
// random burst time instead of the configured default.
const randomBurstLevel = "Interactive"

// AddProcesses feeds total processes into the scheduler, one every
// 1/perSecond real-time seconds (not scaled by the simulation speedup). Each
// arrival gets a uniformly random priority level; its burst time is
// defaultBurst, except Interactive arrivals draw uniformly from burstRange
// when randomInteractiveBurst is set.
//
// The sequence is finite and non-restartable. Run this concurrently with
// Scheduler.Run: the tick loop's termination condition depends on every fed
// process eventually completing. Randomness comes from the scheduler's
// partitioned RNG, so a fixed seed reproduces the arrival sequence exactly.
func AddProcesses(s *Scheduler, total int, perSecond float64, defaultBurst int64, burstRange [2]int64, randomInteractiveBurst bool) {
	interval := time.Duration(float64(time.Second) / perSecond)
	priorityRNG := s.RNG().ForSubsystem(SubsystemFeederPriority)
	burstRNG := s.RNG().ForSubsystem(SubsystemFeederBurst)

	for i := 0; i < total; i++ {
		time.Sleep(interval)

		name := fmt.Sprintf("Process_%d", i+1)
		priority := PriorityLevels[priorityRNG.Intn(len(PriorityLevels))]
		burst := defaultBurst
		if priority == randomBurstLevel && randomInteractiveBurst {
			burst = burstRange[0] + burstRNG.Int63n(burstRange[1]-burstRange[0]+1)
		}

		if err := s.ScheduleProcess(priority, name, burst); err != nil {
			// unreachable: priorities come from PriorityLevels itself
			logrus.Errorf("feeder: %v", err)
			return
		}
	}
	logrus.Infof("feeder: all %d processes submitted", total)
}
