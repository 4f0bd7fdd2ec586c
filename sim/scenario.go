// YAML scenario files: a static batch of pre-specified processes, an optional
// feeder section, or both, loaded before a run starts.

package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is the top-level simulation input loaded from YAML via
// LoadScenario(path). Static processes are enqueued before the tick loop
// starts; the feeder section, when present, describes arrivals generated
// concurrently with the run.
type Scenario struct {
	Seed   int64               `yaml:"seed,omitempty"`
	Static []StaticProcessSpec `yaml:"static,omitempty"`
	Feeder *FeederSpec         `yaml:"feeder,omitempty"`
}

// StaticProcessSpec defines one pre-loaded process.
type StaticProcessSpec struct {
	Priority string `yaml:"priority"`
	Name     string `yaml:"name"`
	Burst    int64  `yaml:"burst"`
}

// FeederSpec configures timed arrival generation.
type FeederSpec struct {
	TotalProcesses         int     `yaml:"total_processes"`
	PerSecond              float64 `yaml:"per_second"`
	DefaultBurst           int64   `yaml:"default_burst"`
	BurstMin               int64   `yaml:"burst_min,omitempty"`
	BurstMax               int64   `yaml:"burst_max,omitempty"`
	RandomInteractiveBurst bool    `yaml:"random_interactive_burst,omitempty"`
}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks that all fields in the scenario are usable.
func (sc *Scenario) Validate() error {
	valid := make(map[string]bool, len(PriorityLevels))
	for _, level := range PriorityLevels {
		valid[level] = true
	}
	for i, p := range sc.Static {
		prefix := fmt.Sprintf("static[%d]", i)
		if !valid[p.Priority] {
			return fmt.Errorf("%s: unknown priority %q; valid: %v", prefix, p.Priority, PriorityLevels)
		}
		if p.Name == "" {
			return fmt.Errorf("%s: name must not be empty", prefix)
		}
		if p.Burst <= 0 {
			return fmt.Errorf("%s: burst must be positive, got %d", prefix, p.Burst)
		}
	}
	if f := sc.Feeder; f != nil {
		if f.TotalProcesses <= 0 {
			return fmt.Errorf("feeder: total_processes must be positive, got %d", f.TotalProcesses)
		}
		if f.PerSecond <= 0 {
			return fmt.Errorf("feeder: per_second must be positive, got %f", f.PerSecond)
		}
		if f.DefaultBurst <= 0 {
			return fmt.Errorf("feeder: default_burst must be positive, got %d", f.DefaultBurst)
		}
		if f.RandomInteractiveBurst {
			if f.BurstMin <= 0 || f.BurstMax < f.BurstMin {
				return fmt.Errorf("feeder: need 0 < burst_min <= burst_max with random_interactive_burst, got [%d, %d]",
					f.BurstMin, f.BurstMax)
			}
		}
	}
	return nil
}

// TotalProcesses returns how many processes the scenario will submit in
// total, static batch plus feeder arrivals.
func (sc *Scenario) TotalProcesses() int {
	total := len(sc.Static)
	if sc.Feeder != nil {
		total += sc.Feeder.TotalProcesses
	}
	return total
}
