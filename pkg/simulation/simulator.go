package simulation

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sherine-k/schedsim/pkg/process"
)

// ErrInvalidParameter is returned when a policy is configured with an out of domain value
var ErrInvalidParameter = errors.New("invalid parameter")

// Policy decides which ready process is dispatched next.
type Policy interface {
	// Name identifies the policy in reports and logs.
	Name() string
	// Age runs once per tick before selection and returns the indices of ready
	// processes whose priority changed.
	Age(now int, batch process.Batch, ready []int) []int
	// Prefer reports whether a should be dispatched before b. It must be a strict total order.
	Prefer(a, b *process.Process) bool
}

// NewPolicy creates a Policy by name. Valid names are "sjf" and "aging".
func NewPolicy(name string, agingThreshold int) (Policy, error) {
	switch name {
	case PolicySJF:
		return NewSJF(), nil
	case PolicyAging:
		return NewAging(agingThreshold)
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidParameter, name)
	}
}

// Option configures a Simulator
type Option func(*Simulator)

// WithLogger sets the logger used for per-dispatch debug output
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Simulator runs one scheduling policy over a batch on a virtual clock
type Simulator struct {
	policy Policy
	logger *slog.Logger
	events []Event
	stats  Stats
}

// NewSimulator creates a new simulator
func NewSimulator(policy Policy, opts ...Option) *Simulator {
	s := &Simulator{
		policy: policy,
		logger: slog.Default(),
		events: []Event{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the policy driving the simulator
func (s *Simulator) Policy() Policy {
	return s.policy
}

// Run executes the simulation over a copy of batch and returns the completed copy.
// The returned batch is ordered by arrival time. The input is never modified.
func (s *Simulator) Run(batch process.Batch) (process.Batch, error) {
	if err := batch.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.policy.Name(), err)
	}

	procs := batch.Clone()
	procs.SortByArrival()
	for i := range procs {
		procs[i].StartTime = process.Unset
		procs[i].EndTime = process.Unset
		procs[i].WaitingTime = 0
		procs[i].BurstTime = procs[i].ExecutionTime
	}

	s.events = []Event{}
	s.stats = Stats{}

	ready := newReadySet(len(procs))
	now := 0
	completed := 0
	idleSince := process.Unset

	for completed < len(procs) {
		s.stats.Ticks++

		for _, idx := range ready.admit(procs, now) {
			s.addEvent(Event{
				Time:      now,
				Type:      EventTypeAdmitted,
				ProcessID: procs[idx].ID,
				Priority:  procs[idx].Priority,
				Message:   fmt.Sprintf("Process %d admitted to ready set", procs[idx].ID),
			})
		}

		for _, idx := range s.policy.Age(now, procs, ready.members) {
			s.stats.AgingSteps++
			s.addEvent(Event{
				Time:      now,
				Type:      EventTypeAged,
				ProcessID: procs[idx].ID,
				Priority:  procs[idx].Priority,
				Message:   fmt.Sprintf("Process %d aged to priority %d", procs[idx].ID, procs[idx].Priority),
			})
		}

		if ready.empty() {
			if idleSince == process.Unset {
				idleSince = now
			}
			now++
			s.stats.IdleTicks++
			continue
		}

		if idleSince != process.Unset {
			s.closeIdle(idleSince, now)
			idleSince = process.Unset
		}

		idx := ready.best(procs, s.policy.Prefer)
		ready.remove(idx)
		now = s.dispatch(&procs[idx], now)
		completed++
	}

	s.stats.Makespan = now
	return procs, nil
}

// dispatch runs p to completion starting at now and returns the new clock value
func (s *Simulator) dispatch(p *process.Process, now int) int {
	if p.StartTime == process.Unset {
		p.StartTime = now
		p.WaitingTime = now - p.ArrivalTime
	}

	s.addEvent(Event{
		Time:      now,
		Type:      EventTypeDispatched,
		ProcessID: p.ID,
		Duration:  p.ExecutionTime,
		Priority:  p.Priority,
		Message:   fmt.Sprintf("Process %d dispatched after waiting %d", p.ID, p.WaitingTime),
	})

	now += p.ExecutionTime
	p.ExecutionTime = 0
	p.EndTime = now
	s.stats.Dispatches++

	s.addEvent(Event{
		Time:      now,
		Type:      EventTypeCompleted,
		ProcessID: p.ID,
		Priority:  p.Priority,
		Message:   fmt.Sprintf("Process %d completed", p.ID),
	})

	s.logger.Debug("process dispatched",
		slog.String("policy", s.policy.Name()),
		slog.Int("pid", p.ID),
		slog.Int("start", p.StartTime),
		slog.Int("end", p.EndTime),
		slog.Int("wait", p.WaitingTime),
		slog.Int("priority", p.Priority),
	)
	return now
}

func (s *Simulator) closeIdle(since, now int) {
	s.addEvent(Event{
		Time:     since,
		Type:     EventTypeIdle,
		Duration: now - since,
		Message:  fmt.Sprintf("CPU idle for %d ticks", now-since),
	})
	s.logger.Debug("cpu idle",
		slog.String("policy", s.policy.Name()),
		slog.Int("from", since),
		slog.Int("to", now),
	)
}

// addEvent adds an event to the event list
func (s *Simulator) addEvent(event Event) {
	s.events = append(s.events, event)
}

// GetEvents returns all events of the last run
func (s *Simulator) GetEvents() []Event {
	return s.events
}

// GetEventsByType returns the events of the last run with the given type
func (s *Simulator) GetEventsByType(t EventType) []Event {
	out := []Event{}
	for _, event := range s.events {
		if event.Type == t {
			out = append(out, event)
		}
	}
	return out
}

// GetStats returns the clock statistics of the last run
func (s *Simulator) GetStats() Stats {
	return s.stats
}

// less orders equal-key candidates by earliest arrival, then lowest id
func less(a, b *process.Process) bool {
	if a.ArrivalTime != b.ArrivalTime {
		return a.ArrivalTime < b.ArrivalTime
	}
	return a.ID < b.ID
}
