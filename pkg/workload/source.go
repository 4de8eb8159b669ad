// Package workload produces batches of processes for the simulator: random
// batches like the reference run, fixed batches read from a file, and
// recurring workloads expanded from cron schedules.
package workload

import (
	"fmt"
	"time"

	"github.com/sherine-k/schedsim/pkg/config"
	"github.com/sherine-k/schedsim/pkg/process"
)

// Source supplies batches of processes. Each call returns a batch the caller owns.
type Source interface {
	Next() (process.Batch, error)
}

// NewSource picks the source described by cfg: a fixed batch when processes are
// listed, cron workloads when workloads are listed, random generation otherwise.
func NewSource(cfg *config.Config) (Source, error) {
	switch {
	case len(cfg.Processes) > 0:
		return NewFixed(cfg.Processes)
	case len(cfg.Workloads) > 0:
		return NewCron(cfg.Workloads, cfg.HorizonTicks)
	default:
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewRandom(seed, cfg.ProcessCount, cfg.Arrival, cfg.Execution, cfg.Priority), nil
	}
}

// Fixed returns the same batch on every call
type Fixed struct {
	batch process.Batch
}

// NewFixed builds a fixed source from process specs
func NewFixed(specs []config.ProcessSpec) (*Fixed, error) {
	batch := make(process.Batch, 0, len(specs))
	for _, spec := range specs {
		p, err := process.New(spec.ID, spec.ArrivalTime, spec.ExecutionTime, spec.Priority)
		if err != nil {
			return nil, err
		}
		batch = append(batch, p)
	}
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	return &Fixed{batch: batch}, nil
}

func (f *Fixed) Next() (process.Batch, error) {
	return f.batch.Clone(), nil
}

// Specs converts a batch back to its file form
func Specs(batch process.Batch) []config.ProcessSpec {
	specs := make([]config.ProcessSpec, len(batch))
	for i, p := range batch {
		specs[i] = config.ProcessSpec{
			ID:            p.ID,
			ArrivalTime:   p.ArrivalTime,
			ExecutionTime: p.BurstTime,
			Priority:      p.Priority,
		}
	}
	return specs
}

func rangeError(name string, r config.Range) error {
	return fmt.Errorf("%w: %s range [%d, %d] is empty", process.ErrInvalidProcess, name, r.Min, r.Max)
}
