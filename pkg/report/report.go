package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sherine-k/schedsim/pkg/process"
	"github.com/sherine-k/schedsim/pkg/simulation"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Report is the machine-readable result of one policy run
type Report struct {
	RunID     string             `json:"runId" yaml:"runId"`
	Policy    string             `json:"policy" yaml:"policy"`
	Summary   simulation.Summary `json:"summary" yaml:"summary"`
	Stats     simulation.Stats   `json:"stats" yaml:"stats"`
	Processes process.Batch      `json:"processes" yaml:"processes"`
	Events    []simulation.Event `json:"events,omitempty" yaml:"events,omitempty"`
}

// New builds a report for a completed run and assigns it a fresh run ID
func New(policy string, batch process.Batch, stats simulation.Stats) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Policy:    policy,
		Summary:   simulation.Summarize(policy, batch, stats),
		Stats:     stats,
		Processes: batch,
	}
}

// WithEvents attaches the event log to the report
func (r *Report) WithEvents(events []simulation.Event) *Report {
	r.Events = events
	return r
}

// Write encodes reports in the given format. Table output is rendered by the chart package.
func Write(w io.Writer, format string, reports []*Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	return nil
}
