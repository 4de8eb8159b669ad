package simulation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherine-k/schedsim/pkg/process"
)

func randomBatch(t *testing.T, rng *rand.Rand, n int) process.Batch {
	t.Helper()
	batch := make(process.Batch, 0, n)
	for i := 0; i < n; i++ {
		p, err := process.New(i+1, rng.Intn(11), 1+rng.Intn(10), 1+rng.Intn(5))
		require.NoError(t, err)
		batch = append(batch, p)
	}
	return batch
}

func TestPolicies_Properties(t *testing.T) {
	policies := map[string]func(t *testing.T) Policy{
		"sjf":       func(*testing.T) Policy { return NewSJF() },
		"aging-0":   func(t *testing.T) Policy { return mustAging(t, 0) },
		"aging-2":   func(t *testing.T) Policy { return mustAging(t, 2) },
		"aging-5":   func(t *testing.T) Policy { return mustAging(t, 5) },
		"aging-100": func(t *testing.T) Policy { return mustAging(t, 100) },
	}

	for name, newPolicy := range policies {
		t.Run(name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			for round := 0; round < 50; round++ {
				batch := randomBatch(t, rng, 1+rng.Intn(12))

				sim := NewSimulator(newPolicy(t))
				result, err := sim.Run(batch)
				require.NoError(t, err)
				assertCompleted(t, batch, result)

				sumExec, maxArrival := 0, 0
				for _, p := range batch {
					sumExec += p.ExecutionTime
					if p.ArrivalTime > maxArrival {
						maxArrival = p.ArrivalTime
					}
				}
				stats := sim.GetStats()
				assert.LessOrEqual(t, stats.Ticks, sumExec+maxArrival)
				assert.Equal(t, len(batch), stats.Dispatches)
				assert.Equal(t, sumExec+stats.IdleTicks, stats.Makespan)

				order := dispatchOrder(sim.GetEvents())
				assert.ElementsMatch(t, batch.IDs(), order, "each process is dispatched exactly once")

				for _, in := range batch {
					p := mustFind(t, result, in.ID)
					assert.GreaterOrEqual(t, p.Priority, 1)
					assert.LessOrEqual(t, p.Priority, in.Priority, "priority never degrades")
				}
			}
		})
	}
}

func TestPolicies_NoOverlappingExecution(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		batch := randomBatch(t, rng, 8)
		for _, run := range []func(process.Batch) (process.Batch, error){
			func(b process.Batch) (process.Batch, error) { return RunSJF(b) },
			func(b process.Batch) (process.Batch, error) { return RunAging(b, 3) },
		} {
			result, err := run(batch)
			require.NoError(t, err)

			busy := map[int]int{}
			for _, p := range result {
				for tick := p.StartTime; tick < p.EndTime; tick++ {
					if other, ok := busy[tick]; ok {
						t.Fatalf("processes %d and %d both run at tick %d", other, p.ID, tick)
					}
					busy[tick] = p.ID
				}
			}
		}
	}
}
