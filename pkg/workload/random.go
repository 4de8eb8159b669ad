package workload

import (
	"math/rand"

	"github.com/sherine-k/schedsim/pkg/config"
	"github.com/sherine-k/schedsim/pkg/process"
)

// Random draws every field uniformly from its inclusive range
type Random struct {
	rng       *rand.Rand
	count     int
	arrival   config.Range
	execution config.Range
	priority  config.Range
}

// NewRandom creates a seeded generator of count processes per batch
func NewRandom(seed int64, count int, arrival, execution, priority config.Range) *Random {
	return &Random{
		rng:       rand.New(rand.NewSource(seed)),
		count:     count,
		arrival:   arrival,
		execution: execution,
		priority:  priority,
	}
}

// Next generates a fresh batch with ids 1..count. Successive calls continue the
// same random sequence, so they return different batches.
func (r *Random) Next() (process.Batch, error) {
	for name, rg := range map[string]config.Range{"arrival": r.arrival, "execution": r.execution, "priority": r.priority} {
		if rg.Min > rg.Max {
			return nil, rangeError(name, rg)
		}
	}

	batch := make(process.Batch, 0, r.count)
	for i := 0; i < r.count; i++ {
		p, err := process.New(i+1, r.between(r.arrival), r.between(r.execution), r.between(r.priority))
		if err != nil {
			return nil, err
		}
		batch = append(batch, p)
	}
	return batch, nil
}

func (r *Random) between(rg config.Range) int {
	return rg.Min + r.rng.Intn(rg.Max-rg.Min+1)
}
