package chart

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/sherine-k/schedsim/pkg/process"
	"github.com/sherine-k/schedsim/pkg/simulation"
)

const (
	chartWidth = 80
)

// Generator generates ASCII reports of simulation runs
type Generator struct {
	width int
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{
		width: chartWidth,
	}
}

// WriteProcessTable renders one row per process, with the average wait in the footer
// once every process has completed.
func (g *Generator) WriteProcessTable(w io.Writer, title string, batch process.Batch) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Exec", "Priority", "Start", "End", "Wait"})

	completed := len(batch) > 0
	totalWait := 0
	for _, p := range batch {
		table.Append([]string{
			strconv.Itoa(p.ID),
			strconv.Itoa(p.ArrivalTime),
			strconv.Itoa(p.ExecutionTime),
			strconv.Itoa(p.Priority),
			strconv.Itoa(p.StartTime),
			strconv.Itoa(p.EndTime),
			strconv.Itoa(p.WaitingTime),
		})
		totalWait += p.WaitingTime
		if !p.Completed() {
			completed = false
		}
	}

	if completed {
		table.SetFooter([]string{"", "", "", "", "", "Avg wait",
			fmt.Sprintf("%.2f", float64(totalWait)/float64(len(batch)))})
	}

	table.Render()
}

// GenerateGanttChart draws dispatches and idle spans on a single time axis
func (g *Generator) GenerateGanttChart(policy string, events []simulation.Event, makespan int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Gantt Chart (%s)\n", policy))
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	if makespan <= 0 {
		sb.WriteString("No data to display\n")
		return sb.String()
	}

	scale := (g.width - 6) / makespan
	if scale < 1 {
		scale = 1
	}

	bar := []rune(strings.Repeat(" ", makespan*scale+1))
	axis := []rune(strings.Repeat(" ", makespan*scale+8))
	axisEnd := -1

	mark := func(t int) {
		pos := t * scale
		if pos <= axisEnd {
			return
		}
		label := strconv.Itoa(t)
		copy(axis[pos:], []rune(label))
		axisEnd = pos + len(label)
	}

	for _, event := range events {
		var label string
		fill := ' '
		switch event.Type {
		case simulation.EventTypeDispatched:
			label = fmt.Sprintf("P%d", event.ProcessID)
		case simulation.EventTypeIdle:
			fill = '.'
		default:
			continue
		}

		start := event.Time * scale
		end := (event.Time + event.Duration) * scale
		bar[start] = '|'
		for x := start + 1; x < end; x++ {
			bar[x] = fill
		}
		if inner := end - start - 1; len(label) <= inner {
			offset := start + 1 + (inner-len(label))/2
			copy(bar[offset:], []rune(label))
		}
		bar[end] = '|'
		mark(event.Time)
	}
	mark(makespan)

	sb.WriteString("  ")
	sb.WriteString(string(bar))
	sb.WriteString("\n  ")
	sb.WriteString(strings.TrimRight(string(axis), " "))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateEventSummary generates a summary of events
func (g *Generator) GenerateEventSummary(events []simulation.Event, stats simulation.Stats) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Event Summary\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	// Group events by type
	eventsByType := make(map[simulation.EventType]int)
	for _, event := range events {
		eventsByType[event.Type]++
	}

	sb.WriteString(fmt.Sprintf("Total Events: %d\n", len(events)))
	sb.WriteString(fmt.Sprintf("  - Admitted: %d\n", eventsByType[simulation.EventTypeAdmitted]))
	sb.WriteString(fmt.Sprintf("  - Dispatched: %d\n", eventsByType[simulation.EventTypeDispatched]))
	sb.WriteString(fmt.Sprintf("  - Completed: %d\n", eventsByType[simulation.EventTypeCompleted]))
	sb.WriteString(fmt.Sprintf("  - Aging Steps: %d\n", eventsByType[simulation.EventTypeAged]))
	sb.WriteString(fmt.Sprintf("  - Idle Spans: %d (%d ticks)\n", eventsByType[simulation.EventTypeIdle], stats.IdleTicks))
	sb.WriteString(fmt.Sprintf("Loop Ticks: %d\n", stats.Ticks))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateMetrics renders the aggregate metrics of a run
func (g *Generator) GenerateMetrics(summary simulation.Summary) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Metrics (%s)\n", summary.Policy))
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Processes:          %d\n", summary.Processes))
	sb.WriteString(fmt.Sprintf("Average Waiting:    %.2f\n", summary.AvgWaiting))
	sb.WriteString(fmt.Sprintf("Maximum Waiting:    %d\n", summary.MaxWaiting))
	sb.WriteString(fmt.Sprintf("Average Turnaround: %.2f\n", summary.AvgTurnaround))
	sb.WriteString(fmt.Sprintf("Makespan:           %d\n", summary.Makespan))
	sb.WriteString(fmt.Sprintf("Idle Time:          %d\n", summary.IdleTime))
	sb.WriteString(fmt.Sprintf("CPU Utilization:    %.1f%%\n", summary.CPUUtilization*100))
	sb.WriteString(fmt.Sprintf("Throughput:         %.3f processes/tick\n", summary.Throughput))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateDetailedTimeline generates a detailed timeline of events
func (g *Generator) GenerateDetailedTimeline(events []simulation.Event, limit int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Detailed Timeline")
	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf(" (showing first %d events)", limit))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	displayCount := len(events)
	if limit > 0 && limit < displayCount {
		displayCount = limit
	}

	for i := 0; i < displayCount; i++ {
		event := events[i]

		typeIcon := " "
		switch event.Type {
		case simulation.EventTypeAdmitted:
			typeIcon = "+"
		case simulation.EventTypeAged:
			typeIcon = "v"
		case simulation.EventTypeDispatched:
			typeIcon = ">"
		case simulation.EventTypeCompleted:
			typeIcon = "-"
		case simulation.EventTypeIdle:
			typeIcon = "."
		}

		sb.WriteString(fmt.Sprintf("[t=%4d] %s %s\n",
			event.Time,
			typeIcon,
			event.Message))
	}

	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf("\n... and %d more events\n", len(events)-limit))
	}

	sb.WriteString("\n")

	return sb.String()
}
