package simulation

import "github.com/sherine-k/schedsim/pkg/process"

// PolicySJF is the name of the non-preemptive shortest job first policy
const PolicySJF = "sjf"

// SJF dispatches the ready process with the shortest execution time.
// Ties go to the earliest arrival, then to the lowest id.
type SJF struct{}

// NewSJF creates a shortest job first policy
func NewSJF() *SJF {
	return &SJF{}
}

func (s *SJF) Name() string {
	return PolicySJF
}

// Age is a no-op: SJF never changes priorities.
func (s *SJF) Age(int, process.Batch, []int) []int {
	return nil
}

func (s *SJF) Prefer(a, b *process.Process) bool {
	if a.ExecutionTime != b.ExecutionTime {
		return a.ExecutionTime < b.ExecutionTime
	}
	return less(a, b)
}

// RunSJF schedules a copy of batch with non-preemptive shortest job first
func RunSJF(batch process.Batch, opts ...Option) (process.Batch, error) {
	return NewSimulator(NewSJF(), opts...).Run(batch)
}
