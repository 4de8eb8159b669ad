package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherine-k/schedsim/pkg/process"
)

// newBatch builds a batch from {id, arrival, execution, priority} tuples
func newBatch(t *testing.T, specs ...[4]int) process.Batch {
	t.Helper()
	batch := make(process.Batch, 0, len(specs))
	for _, s := range specs {
		p, err := process.New(s[0], s[1], s[2], s[3])
		require.NoError(t, err)
		batch = append(batch, p)
	}
	return batch
}

func mustFind(t *testing.T, batch process.Batch, id int) *process.Process {
	t.Helper()
	p, ok := batch.Find(id)
	require.True(t, ok, "process %d not found", id)
	return p
}

// assertCompleted checks the terminal-state invariants of every process in result
func assertCompleted(t *testing.T, input, result process.Batch) {
	t.Helper()
	require.Len(t, result, len(input))
	assert.ElementsMatch(t, input.IDs(), result.IDs())

	for _, in := range input {
		p := mustFind(t, result, in.ID)
		assert.Equal(t, 0, p.ExecutionTime, "process %d not completed", p.ID)
		assert.GreaterOrEqual(t, p.StartTime, p.ArrivalTime, "process %d started before arrival", p.ID)
		assert.Equal(t, in.ExecutionTime, p.EndTime-p.StartTime, "process %d service time", p.ID)
		assert.Equal(t, p.StartTime-p.ArrivalTime, p.WaitingTime, "process %d waiting time", p.ID)
		assert.Equal(t, in.ExecutionTime, p.BurstTime)
	}
}

func dispatchOrder(events []Event) []int {
	var order []int
	for _, e := range events {
		if e.Type == EventTypeDispatched {
			order = append(order, e.ProcessID)
		}
	}
	return order
}
