package simulation

// EventType defines the type of event in the simulation
type EventType string

const (
	EventTypeAdmitted   EventType = "admitted"
	EventTypeAged       EventType = "aged"
	EventTypeDispatched EventType = "dispatched"
	EventTypeCompleted  EventType = "completed"
	EventTypeIdle       EventType = "idle"
)

// Event represents a point-in-time event on the virtual clock
type Event struct {
	Time      int       `json:"time" yaml:"time"`
	Type      EventType `json:"type" yaml:"type"`
	ProcessID int       `json:"processId,omitempty" yaml:"processId,omitempty"`
	// Duration is the service time of a dispatch or the length of an idle span.
	Duration int    `json:"duration,omitempty" yaml:"duration,omitempty"`
	Priority int    `json:"priority,omitempty" yaml:"priority,omitempty"`
	Message  string `json:"message" yaml:"message"`
}

// Stats summarises how the virtual clock advanced during a run
type Stats struct {
	Ticks      int `json:"ticks" yaml:"ticks"`
	IdleTicks  int `json:"idleTicks" yaml:"idleTicks"`
	AgingSteps int `json:"agingSteps" yaml:"agingSteps"`
	Dispatches int `json:"dispatches" yaml:"dispatches"`
	Makespan   int `json:"makespan" yaml:"makespan"`
}
