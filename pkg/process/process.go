package process

import (
	"errors"
	"fmt"
	"sort"
)

// Unset marks a timing field that has not been recorded yet
const Unset = -1

var (
	// ErrInvalidProcess is returned when a process record carries an out of domain field
	ErrInvalidProcess = errors.New("invalid process")
	// ErrInvalidBatch is returned when a batch violates a caller contract, such as duplicate IDs
	ErrInvalidBatch = errors.New("invalid batch")
)

// Process represents one schedulable unit of work
type Process struct {
	ID            int `yaml:"id" json:"id"`
	ArrivalTime   int `yaml:"arrivalTime" json:"arrivalTime"`
	ExecutionTime int `yaml:"executionTime" json:"executionTime"`
	Priority      int `yaml:"priority" json:"priority"`
	StartTime     int `yaml:"startTime" json:"startTime"`
	EndTime       int `yaml:"endTime" json:"endTime"`
	WaitingTime   int `yaml:"waitingTime" json:"waitingTime"`

	// BurstTime is the execution time the process was created with.
	BurstTime int `yaml:"burstTime" json:"burstTime"`
}

// New creates a process that has not been admitted or started
func New(id, arrival, execution, priority int) (Process, error) {
	p := Process{
		ID:            id,
		ArrivalTime:   arrival,
		ExecutionTime: execution,
		Priority:      priority,
		StartTime:     Unset,
		EndTime:       Unset,
		BurstTime:     execution,
	}
	if err := p.validate(); err != nil {
		return Process{}, err
	}
	return p, nil
}

func (p *Process) validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: id must be greater than 0, got %d", ErrInvalidProcess, p.ID)
	}
	if p.ArrivalTime < 0 {
		return fmt.Errorf("%w: process %d: arrivalTime must not be negative", ErrInvalidProcess, p.ID)
	}
	if p.ExecutionTime <= 0 {
		return fmt.Errorf("%w: process %d: executionTime must be greater than 0", ErrInvalidProcess, p.ID)
	}
	if p.Priority < 1 {
		return fmt.Errorf("%w: process %d: priority must be at least 1", ErrInvalidProcess, p.ID)
	}
	return nil
}

// Completed reports whether the process has been dispatched and run to completion
func (p *Process) Completed() bool {
	return p.ExecutionTime == 0
}

// Turnaround returns the time from arrival to completion, or Unset for unfinished processes
func (p *Process) Turnaround() int {
	if p.EndTime == Unset {
		return Unset
	}
	return p.EndTime - p.ArrivalTime
}

// Batch is the fixed set of processes subject to one simulation run
type Batch []Process

// Validate checks every record and rejects duplicate IDs
func (b Batch) Validate() error {
	seen := make(map[int]bool, len(b))
	for i := range b {
		if err := b[i].validate(); err != nil {
			return err
		}
		if seen[b[i].ID] {
			return fmt.Errorf("%w: duplicate process id %d", ErrInvalidBatch, b[i].ID)
		}
		seen[b[i].ID] = true
	}
	return nil
}

// Clone returns an independent copy of the batch
func (b Batch) Clone() Batch {
	if b == nil {
		return nil
	}
	out := make(Batch, len(b))
	copy(out, b)
	return out
}

// SortByArrival orders the batch by arrival time, keeping the relative order of equal arrivals
func (b Batch) SortByArrival() {
	sort.SliceStable(b, func(i, j int) bool {
		return b[i].ArrivalTime < b[j].ArrivalTime
	})
}

// IDs returns the process IDs in batch order
func (b Batch) IDs() []int {
	ids := make([]int, len(b))
	for i := range b {
		ids[i] = b[i].ID
	}
	return ids
}

// Find returns the process with the given ID
func (b Batch) Find(id int) (*Process, bool) {
	for i := range b {
		if b[i].ID == id {
			return &b[i], true
		}
	}
	return nil, false
}
