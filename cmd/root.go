package cmd

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/andrzejjnk/MultiLevelQueueScheduling/sim"
)

var (
	// CLI flags for the scheduler engine
	seed           int64         // Seed for deterministic feeder randomness
	logLevel       string        // Log verbosity level
	numCPUs        int           // Number of CPUs in the pool
	totalProcesses int           // Total processes the run must complete
	speedFactor    float64       // Divisor compressing CPU execution time
	timeQuantum    int64         // Round-Robin queue-level quantum (ticks)
	sliceLimit     int64         // Max ticks a CPU executes per dispatch
	tickInterval   time.Duration // Real-time pause between tick-loop iterations
	timeUnit       time.Duration // Real-time length of one simulated tick
	waitAccounting string        // Wait stamping mode: reset or cumulative

	// CLI flags for arrival generation
	perSecond        float64 // Process arrivals per second
	burstTime        int64   // Default burst time (ticks)
	burstMin         int64   // Min random Interactive burst (ticks)
	burstMax         int64   // Max random Interactive burst (ticks)
	randomBurst      bool    // Draw Interactive bursts from [burst-min, burst-max]
	scenarioFilePath string  // Optional YAML scenario file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mlqs",
	Short: "Multi-level priority queue CPU scheduler simulation",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduler simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		accounting := sim.WaitAccounting(waitAccounting)
		if accounting != sim.WaitAccountingReset && accounting != sim.WaitAccountingCumulative {
			logrus.Fatalf("Invalid wait accounting mode %q; valid: reset, cumulative", waitAccounting)
		}

		cfg := sim.Config{
			NumCPUs:        numCPUs,
			TotalProcesses: totalProcesses,
			SpeedFactor:    speedFactor,
			TimeQuantum:    timeQuantum,
			SliceLimit:     sliceLimit,
			TickInterval:   tickInterval,
			TimeUnit:       timeUnit,
			WaitAccounting: accounting,
			Seed:           seed,
		}

		var scenario *sim.Scenario
		if scenarioFilePath != "" {
			scenario, err = sim.LoadScenario(scenarioFilePath)
			if err != nil {
				logrus.Fatalf("unable to read scenario: %v", err)
			}
			if err := scenario.Validate(); err != nil {
				logrus.Fatalf("invalid scenario: %v", err)
			}
			if scenario.Seed != 0 {
				cfg.Seed = scenario.Seed
			}
			cfg.TotalProcesses = scenario.TotalProcesses()
		}

		logrus.Infof("Starting simulation with %d CPUs, %d processes, speedup=%.0fx, quantum=%d, slice=%d",
			cfg.NumCPUs, cfg.TotalProcesses, cfg.SpeedFactor, cfg.TimeQuantum, cfg.SliceLimit)

		startTime := time.Now()
		s := sim.NewScheduler(cfg)

		if scenario != nil {
			for _, p := range scenario.Static {
				if err := s.ScheduleProcess(p.Priority, p.Name, p.Burst); err != nil {
					logrus.Fatalf("scheduling static process: %v", err)
				}
			}
			if f := scenario.Feeder; f != nil {
				go sim.AddProcesses(s, f.TotalProcesses, f.PerSecond, f.DefaultBurst,
					[2]int64{f.BurstMin, f.BurstMax}, f.RandomInteractiveBurst)
			}
		} else {
			go sim.AddProcesses(s, cfg.TotalProcesses, perSecond, burstTime,
				[2]int64{burstMin, burstMax}, randomBurst)
		}

		results := s.Run()
		results.Print(os.Stdout)

		logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for deterministic arrival generation")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Scheduler configs
	runCmd.Flags().IntVar(&numCPUs, "cpus", 4, "Number of CPUs in the pool")
	runCmd.Flags().IntVar(&totalProcesses, "processes", 44, "Total number of processes to feed and complete")
	runCmd.Flags().Float64Var(&speedFactor, "speed-factor", 20, "Divisor compressing simulated CPU execution into real time")
	runCmd.Flags().Int64Var(&timeQuantum, "time-quantum", 2, "Round-Robin queue-level time quantum (ticks)")
	runCmd.Flags().Int64Var(&sliceLimit, "slice-limit", 3, "Maximum ticks a CPU executes in one dispatch")
	runCmd.Flags().DurationVar(&tickInterval, "tick-interval", time.Second, "Real-time pause between scheduler ticks (unscaled)")
	runCmd.Flags().DurationVar(&timeUnit, "time-unit", time.Second, "Real-time length of one simulated tick before speed scaling")
	runCmd.Flags().StringVar(&waitAccounting, "wait-accounting", "reset", "Wait-time stamping on re-enqueue (reset, cumulative)")

	// Arrival generation configs
	runCmd.Flags().Float64Var(&perSecond, "rate", 10, "Process arrivals per second")
	runCmd.Flags().Int64Var(&burstTime, "burst-time", 3, "Default burst time (ticks)")
	runCmd.Flags().Int64Var(&burstMin, "burst-min", 1, "Minimum random Interactive burst time (ticks)")
	runCmd.Flags().Int64Var(&burstMax, "burst-max", 10, "Maximum random Interactive burst time (ticks)")
	runCmd.Flags().BoolVar(&randomBurst, "random-interactive-burst", false, "Draw Interactive burst times uniformly from [burst-min, burst-max]")
	runCmd.Flags().StringVar(&scenarioFilePath, "scenario", "", "YAML scenario file (static batch and/or feeder settings)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
