package simulation

import (
	"fmt"

	"github.com/sherine-k/schedsim/pkg/process"
)

// PolicyAging is the name of the priority scheduling with aging policy
const PolicyAging = "aging"

// Aging dispatches the ready process with the numerically highest priority.
//
// Every tick, each ready process that has waited at least threshold ticks since
// arrival has its priority value lowered by one, floored at 1. Selection favours
// the highest value, so aged processes become less competitive, not more.
// Flipping the comparison changes every golden schedule in aging_test.go.
type Aging struct {
	threshold int
}

// NewAging creates an aging policy. A threshold of 0 ages every ready process every tick.
func NewAging(threshold int) (*Aging, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: aging threshold must not be negative, got %d", ErrInvalidParameter, threshold)
	}
	return &Aging{threshold: threshold}, nil
}

func (a *Aging) Name() string {
	return PolicyAging
}

// Threshold returns the number of ticks a process waits before it starts aging
func (a *Aging) Threshold() int {
	return a.threshold
}

func (a *Aging) Age(now int, batch process.Batch, ready []int) []int {
	var changed []int
	for _, idx := range ready {
		p := &batch[idx]
		if now-p.ArrivalTime >= a.threshold && p.Priority > 1 {
			p.Priority--
			changed = append(changed, idx)
		}
	}
	return changed
}

func (a *Aging) Prefer(x, y *process.Process) bool {
	if x.Priority != y.Priority {
		return x.Priority > y.Priority
	}
	return less(x, y)
}

// RunAging schedules a copy of batch with priority scheduling and aging
func RunAging(batch process.Batch, threshold int, opts ...Option) (process.Batch, error) {
	policy, err := NewAging(threshold)
	if err != nil {
		return nil, err
	}
	return NewSimulator(policy, opts...).Run(batch)
}
