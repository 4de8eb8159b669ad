package simulation

import "github.com/sherine-k/schedsim/pkg/process"

// readySet tracks admitted processes by their index in the batch being simulated.
// Selection is done with a total order, so insertion order carries no meaning.
type readySet struct {
	members []int
	queued  []bool
}

func newReadySet(size int) *readySet {
	return &readySet{
		members: make([]int, 0, size),
		queued:  make([]bool, size),
	}
}

// admit adds every arrived, unfinished process that is not already queued and
// returns the indices it added. Calling it twice at the same time adds nothing.
func (r *readySet) admit(batch process.Batch, now int) []int {
	var added []int
	for i := range batch {
		if batch[i].ArrivalTime <= now && batch[i].ExecutionTime > 0 && !r.queued[i] {
			r.members = append(r.members, i)
			r.queued[i] = true
			added = append(added, i)
		}
	}
	return added
}

func (r *readySet) remove(idx int) {
	for k, m := range r.members {
		if m == idx {
			r.members = append(r.members[:k], r.members[k+1:]...)
			r.queued[idx] = false
			return
		}
	}
}

func (r *readySet) empty() bool {
	return len(r.members) == 0
}

// best returns the member preferred by prefer, or -1 when the set is empty
func (r *readySet) best(batch process.Batch, prefer func(a, b *process.Process) bool) int {
	selected := -1
	for _, idx := range r.members {
		if selected == -1 || prefer(&batch[idx], &batch[selected]) {
			selected = idx
		}
	}
	return selected
}
