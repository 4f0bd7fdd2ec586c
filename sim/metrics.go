// Tracks per-tick state samples and renders the final run report.

package sim

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// Metrics accumulates the per-tick history samples. Only the tick loop
// touches it, exactly once per tick, so no locking is needed; after N ticks
// every usage and length sequence holds exactly N entries.
type Metrics struct {
	cpuUsage     [][]int          // per CPU: 1 when busy, 0 when free, one entry per tick
	queueLengths map[string][]int // per queue: occupancy, one entry per tick
	ticks        int
}

// NewMetrics sizes the history sequences for a CPU pool and the fixed
// priority levels.
func NewMetrics(numCPUs int) *Metrics {
	m := &Metrics{
		cpuUsage:     make([][]int, numCPUs),
		queueLengths: make(map[string][]int, len(PriorityLevels)),
	}
	for _, level := range PriorityLevels {
		m.queueLengths[level] = []int{}
	}
	return m
}

// Sample records one busy/free bit per CPU and one length per queue. Called
// once per tick, after all priority levels have been processed.
func (m *Metrics) Sample(cpus []*CPU, queues map[string]*PriorityQueue) {
	for i, c := range cpus {
		busy := 0
		if c.Busy() {
			busy = 1
		}
		m.cpuUsage[i] = append(m.cpuUsage[i], busy)
	}
	for _, level := range PriorityLevels {
		m.queueLengths[level] = append(m.queueLengths[level], queues[level].Len())
	}
	m.ticks++
}

// Ticks returns how many samples have been recorded.
func (m *Metrics) Ticks() int {
	return m.ticks
}

// CPUStat summarizes one CPU's activity over a run.
type CPUStat struct {
	ID         int
	Completed  int     // processes that finished on this CPU
	Dispatches int     // execution slices the CPU ran
	BusyTicks  int     // sampled ticks where the CPU was busy
	Slices     []int64 // per-dispatch slice lengths, in ticks
}

// Results carries the three artifacts a run produces (per-CPU usage history,
// per-queue length history, and average wait per queue) plus run summary
// data. Consumers must treat a zero average wait as "no samples recorded",
// not as a measured zero-tick wait.
type Results struct {
	CPUUsage         [][]int
	QueueLengths     map[string][]int
	AverageWaitTimes map[string]float64

	Completed      int
	Ticks          int
	WaitAccounting WaitAccounting
	CPUStats       []CPUStat
}

// Results assembles the final artifacts from the scheduler's state. Called
// once, after the tick loop has exited and every dispatch has reported back.
func (m *Metrics) Results(s *Scheduler) *Results {
	r := &Results{
		CPUUsage:         m.cpuUsage,
		QueueLengths:     m.queueLengths,
		AverageWaitTimes: make(map[string]float64, len(PriorityLevels)),
		Completed:        s.completed,
		Ticks:            m.ticks,
		WaitAccounting:   s.cfg.WaitAccounting,
		CPUStats:         make([]CPUStat, len(s.cpus)),
	}
	for _, level := range PriorityLevels {
		r.AverageWaitTimes[level] = s.queues[level].AverageWait()
	}
	for i, c := range s.cpus {
		busy := 0
		for _, b := range m.cpuUsage[i] {
			busy += b
		}
		slices := c.ExecutionSlices()
		r.CPUStats[i] = CPUStat{
			ID:         c.ID,
			Completed:  c.CompletedCount(),
			Dispatches: len(slices),
			BusyTicks:  busy,
			Slices:     slices,
		}
	}
	return r
}

// Print renders a human-readable run report.
func (r *Results) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Results ===")
	fmt.Fprintf(w, "Completed Processes  : %d\n", r.Completed)
	fmt.Fprintf(w, "Elapsed Ticks        : %d\n", r.Ticks)
	fmt.Fprintf(w, "Wait Accounting      : %s\n", r.WaitAccounting)

	cpus := tablewriter.NewWriter(w)
	cpus.SetHeader([]string{"CPU", "Busy Ticks", "Utilization", "Dispatches", "Completed"})
	for _, st := range r.CPUStats {
		util := 0.0
		if r.Ticks > 0 {
			util = 100 * float64(st.BusyTicks) / float64(r.Ticks)
		}
		cpus.Append([]string{
			fmt.Sprint(st.ID),
			fmt.Sprint(st.BusyTicks),
			fmt.Sprintf("%.1f%%", util),
			fmt.Sprint(st.Dispatches),
			fmt.Sprint(st.Completed),
		})
	}
	cpus.Render()

	queues := tablewriter.NewWriter(w)
	queues.SetHeader([]string{"Queue", "Avg Wait (ticks)", "Final Length"})
	for _, level := range PriorityLevels {
		finalLen := 0
		if h := r.QueueLengths[level]; len(h) > 0 {
			finalLen = h[len(h)-1]
		}
		queues.Append([]string{
			level,
			fmt.Sprintf("%.2f", r.AverageWaitTimes[level]),
			fmt.Sprint(finalLen),
		})
	}
	queues.Render()
}
