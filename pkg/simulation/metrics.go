package simulation

import "github.com/sherine-k/schedsim/pkg/process"

// Summary aggregates the per-process results of one run
type Summary struct {
	Policy         string  `json:"policy" yaml:"policy"`
	Processes      int     `json:"processes" yaml:"processes"`
	AvgWaiting     float64 `json:"avgWaiting" yaml:"avgWaiting"`
	AvgTurnaround  float64 `json:"avgTurnaround" yaml:"avgTurnaround"`
	MaxWaiting     int     `json:"maxWaiting" yaml:"maxWaiting"`
	Makespan       int     `json:"makespan" yaml:"makespan"`
	IdleTime       int     `json:"idleTime" yaml:"idleTime"`
	CPUUtilization float64 `json:"cpuUtilization" yaml:"cpuUtilization"`
	Throughput     float64 `json:"throughput" yaml:"throughput"`
}

// Summarize computes averages over a completed batch
func Summarize(policy string, batch process.Batch, stats Stats) Summary {
	summary := Summary{
		Policy:    policy,
		Processes: len(batch),
		Makespan:  stats.Makespan,
		IdleTime:  stats.IdleTicks,
	}
	if len(batch) == 0 {
		return summary
	}

	var wait, turnaround, busy int
	for i := range batch {
		p := &batch[i]
		wait += p.WaitingTime
		turnaround += p.Turnaround()
		busy += p.BurstTime
		if p.WaitingTime > summary.MaxWaiting {
			summary.MaxWaiting = p.WaitingTime
		}
	}

	n := float64(len(batch))
	summary.AvgWaiting = float64(wait) / n
	summary.AvgTurnaround = float64(turnaround) / n
	if stats.Makespan > 0 {
		summary.CPUUtilization = float64(busy) / float64(stats.Makespan)
		summary.Throughput = n / float64(stats.Makespan)
	}
	return summary
}
