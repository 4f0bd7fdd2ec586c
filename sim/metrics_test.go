package sim

import (
	"bytes"
	"testing"
	"time"
)

func metricsFixture() (*Metrics, []*CPU, map[string]*PriorityQueue) {
	clock := &Clock{}
	cpus := []*CPU{
		NewCPU(0, 1, 3, time.Millisecond),
		NewCPU(1, 1, 3, time.Millisecond),
	}
	queues := make(map[string]*PriorityQueue, len(PriorityLevels))
	for _, level := range PriorityLevels {
		queues[level] = NewPriorityQueue(level, levelAlgorithms[level], clock, WaitAccountingReset)
	}
	return NewMetrics(len(cpus)), cpus, queues
}

func TestMetrics_Sample_OneEntryPerTick(t *testing.T) {
	m, cpus, queues := metricsFixture()

	// WHEN sampling N times
	for i := 0; i < 5; i++ {
		m.Sample(cpus, queues)
	}

	// THEN every sequence holds exactly N entries
	if m.Ticks() != 5 {
		t.Errorf("ticks: got %d, want 5", m.Ticks())
	}
	for i := range cpus {
		if got := len(m.cpuUsage[i]); got != 5 {
			t.Errorf("CPU %d usage entries: got %d, want 5", i, got)
		}
	}
	for _, level := range PriorityLevels {
		if got := len(m.queueLengths[level]); got != 5 {
			t.Errorf("queue %s length entries: got %d, want 5", level, got)
		}
	}
}

func TestMetrics_Sample_CapturesBusyAndOccupancy(t *testing.T) {
	m, cpus, queues := metricsFixture()

	// GIVEN one busy CPU and one waiting process
	cpus[1].TryAcquire()
	queues["Batch"].Enqueue(NewProcess("A", 1))

	m.Sample(cpus, queues)

	if m.cpuUsage[0][0] != 0 || m.cpuUsage[1][0] != 1 {
		t.Errorf("usage sample: got [%d %d], want [0 1]", m.cpuUsage[0][0], m.cpuUsage[1][0])
	}
	if m.queueLengths["Batch"][0] != 1 {
		t.Errorf("Batch length sample: got %d, want 1", m.queueLengths["Batch"][0])
	}
	if m.queueLengths["System"][0] != 0 {
		t.Errorf("System length sample: got %d, want 0", m.queueLengths["System"][0])
	}
}

func TestResults_Print_Smoke(t *testing.T) {
	// A full run's results render without panicking and carry the headline
	s := NewScheduler(testConfig(1, 1))
	if err := s.ScheduleProcess("Batch", "P1", 1); err != nil {
		t.Fatal(err)
	}
	results := s.Run()

	var buf bytes.Buffer
	results.Print(&buf)

	out := buf.String()
	if !bytes.Contains(buf.Bytes(), []byte("Simulation Results")) {
		t.Errorf("report missing headline:\n%s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Low Priority")) {
		t.Errorf("report missing queue rows:\n%s", out)
	}
}
