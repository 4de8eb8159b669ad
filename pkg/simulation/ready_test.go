package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadySet_AdmitIsIdempotent(t *testing.T) {
	batch := newBatch(t,
		[4]int{1, 0, 3, 1},
		[4]int{2, 0, 2, 1},
		[4]int{3, 4, 1, 1},
	)
	ready := newReadySet(len(batch))

	assert.Equal(t, []int{0, 1}, ready.admit(batch, 0))
	assert.Empty(t, ready.admit(batch, 0))
	assert.Equal(t, []int{0, 1}, ready.members)

	assert.Equal(t, []int{2}, ready.admit(batch, 4))
	assert.Len(t, ready.members, 3)
}

func TestReadySet_SkipsCompleted(t *testing.T) {
	batch := newBatch(t, [4]int{1, 0, 3, 1}, [4]int{2, 0, 2, 1})
	batch[0].ExecutionTime = 0
	ready := newReadySet(len(batch))

	assert.Equal(t, []int{1}, ready.admit(batch, 10))
}

func TestReadySet_RemoveAndBest(t *testing.T) {
	batch := newBatch(t,
		[4]int{1, 0, 5, 1},
		[4]int{2, 0, 2, 1},
		[4]int{3, 0, 8, 1},
	)
	ready := newReadySet(len(batch))
	assert.Equal(t, -1, ready.best(batch, NewSJF().Prefer))

	ready.admit(batch, 0)
	best := ready.best(batch, NewSJF().Prefer)
	assert.Equal(t, 1, best)

	ready.remove(best)
	assert.Equal(t, []int{0, 2}, ready.members)
	assert.False(t, ready.queued[best])
	assert.Equal(t, 0, ready.best(batch, NewSJF().Prefer))

	ready.remove(0)
	ready.remove(2)
	assert.True(t, ready.empty())
}
