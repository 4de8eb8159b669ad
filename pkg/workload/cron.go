package workload

import (
	"fmt"
	"sort"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sherine-k/schedsim/pkg/config"
	"github.com/sherine-k/schedsim/pkg/process"
)

// Epoch is tick 0 of the virtual clock. One tick is one minute of cron time.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Cron expands recurring workloads into one process per occurrence
type Cron struct {
	batch process.Batch
}

type occurrence struct {
	tick     int
	workload int
}

// NewCron expands every workload over [0, horizon) ticks. Processes are numbered
// by arrival, ties in workload order.
func NewCron(workloads []config.Workload, horizon int) (*Cron, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	occurrences := []occurrence{}
	for i, w := range workloads {
		schedule, err := parser.Parse(w.CronSchedule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cron schedule for workload %s: %w", w.Name, err)
		}

		// Next is strictly after its argument, step back so tick 0 can match.
		currentTime := Epoch.Add(-time.Second)
		for {
			nextRun := schedule.Next(currentTime)
			if nextRun.IsZero() {
				break
			}
			tick := int(nextRun.Sub(Epoch) / time.Minute)
			if tick >= horizon {
				break
			}
			occurrences = append(occurrences, occurrence{tick: tick, workload: i})
			currentTime = nextRun
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].tick < occurrences[j].tick
	})

	batch := make(process.Batch, 0, len(occurrences))
	for i, o := range occurrences {
		w := workloads[o.workload]
		p, err := process.New(i+1, o.tick, w.ExecutionTime, w.Priority)
		if err != nil {
			return nil, fmt.Errorf("workload %s: %w", w.Name, err)
		}
		batch = append(batch, p)
	}

	return &Cron{batch: batch}, nil
}

func (c *Cron) Next() (process.Batch, error) {
	return c.batch.Clone(), nil
}
