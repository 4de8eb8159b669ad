package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sherine-k/schedsim/pkg/chart"
	"github.com/sherine-k/schedsim/pkg/config"
	"github.com/sherine-k/schedsim/pkg/logging"
	"github.com/sherine-k/schedsim/pkg/process"
	"github.com/sherine-k/schedsim/pkg/report"
	"github.com/sherine-k/schedsim/pkg/simulation"
	"github.com/sherine-k/schedsim/pkg/tracing"
	"github.com/sherine-k/schedsim/pkg/workload"
)

const version = "0.1.0"

const policyBoth = "both"

type options struct {
	configFile     string
	batchFile      string
	policy         string
	count          int
	agingThreshold int
	seed           int64
	sameBatch      bool
	output         string
	showGantt      bool
	showSummary    bool
	showTimeline   bool
	timelineLimit  int
	logLevel       string
	logFormat      string
	traceFile      string
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand creates the schedsim command tree
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "schedsim",
		Short:   "CPU Scheduling Simulator",
		Version: version,
		Long: `A CLI tool that simulates CPU scheduling of a batch of processes.

The batch is run through non-preemptive Shortest Job First and through
Priority Scheduling with Aging on a virtual clock. For every process the
start, end and waiting times are reported, together with a Gantt chart
and aggregate metrics.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Path to configuration file")
	flags.StringVarP(&opts.batchFile, "batch", "b", "", "Path to a batch file with a fixed list of processes")
	flags.StringVarP(&opts.policy, "policy", "p", policyBoth, "Scheduling policy: sjf, aging or both")
	flags.IntVarP(&opts.count, "count", "n", config.DefaultProcessCount, "Number of processes to generate")
	flags.IntVarP(&opts.agingThreshold, "aging-threshold", "a", config.DefaultAgingThreshold, "Ticks a process waits before its priority ages")
	flags.Int64Var(&opts.seed, "seed", 0, "Random seed for process generation (0 uses the current time)")
	flags.BoolVar(&opts.sameBatch, "same-batch", false, "Run every policy on the same generated batch")
	flags.StringVarP(&opts.output, "output", "o", report.FormatTable, "Output format: table, json or yaml")
	flags.BoolVarP(&opts.showGantt, "gantt", "g", true, "Show Gantt chart")
	flags.BoolVarP(&opts.showSummary, "summary", "s", true, "Show metrics and event summary")
	flags.BoolVarP(&opts.showTimeline, "timeline", "t", false, "Show detailed timeline of events")
	flags.IntVarP(&opts.timelineLimit, "timeline-limit", "l", 50, "Limit number of timeline events to display")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&opts.traceFile, "trace-file", "", "Write OpenTelemetry spans of each run to this file")

	rootCmd.AddCommand(newGenerateCommand())

	return rootCmd
}

func runSimulation(cmd *cobra.Command, opts *options) error {
	// Load configuration
	cfg, err := loadConfiguration(cmd, opts)
	if err != nil {
		return err
	}

	policies, err := policyNames(opts.policy)
	if err != nil {
		return err
	}

	switch opts.output {
	case report.FormatTable, report.FormatJSON, report.FormatYAML:
	default:
		return fmt.Errorf("unsupported output format %q", opts.output)
	}

	logger := logging.NewLoggerWithWriter(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.traceFile != "" {
		shutdown, err := tracing.Init("schedsim", version, opts.traceFile)
		if err != nil {
			return fmt.Errorf("failed to initialise tracing: %w", err)
		}
		defer func() {
			if err := shutdown(ctx); err != nil {
				logger.Warn("failed to flush traces", logging.ErrAttr(err))
			}
		}()
	}

	source, err := workload.NewSource(cfg)
	if err != nil {
		return fmt.Errorf("failed to create process source: %w", err)
	}

	out := cmd.OutOrStdout()
	tableOutput := opts.output == report.FormatTable
	chartGen := chart.NewGenerator()

	batch, err := source.Next()
	if err != nil {
		return fmt.Errorf("failed to generate processes: %w", err)
	}
	logger.Info("batch ready", slog.Int("processes", len(batch)), slog.Int("aging_threshold", cfg.AgingThreshold))

	if tableOutput {
		chartGen.WriteProcessTable(out, "Generated Processes", batch)
	}

	// Only random sources produce a different batch on each call.
	_, regenerate := source.(*workload.Random)
	regenerate = regenerate && !opts.sameBatch

	reports := make([]*report.Report, 0, len(policies))
	for i, name := range policies {
		if i > 0 && regenerate {
			if batch, err = source.Next(); err != nil {
				return fmt.Errorf("failed to generate processes: %w", err)
			}
			if tableOutput {
				chartGen.WriteProcessTable(out, "Regenerated Processes", batch)
			}
		}

		rep, err := runPolicy(ctx, logger, name, cfg.AgingThreshold, batch)
		if err != nil {
			return fmt.Errorf("simulation failed: %w", err)
		}
		reports = append(reports, rep)

		if tableOutput {
			writeTableReport(out, chartGen, rep, opts)
		}
	}

	if tableOutput {
		return nil
	}

	if !opts.showTimeline {
		for _, rep := range reports {
			rep.Events = nil
		}
	}
	return report.Write(out, opts.output, reports)
}

func loadConfiguration(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.LoadConfig(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.ProcessCount = opts.count
	}
	if flags.Changed("aging-threshold") {
		cfg.AgingThreshold = opts.agingThreshold
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}

	if opts.batchFile != "" {
		specs, err := config.LoadBatch(opts.batchFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load batch: %w", err)
		}
		cfg.Processes = specs
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func policyNames(policy string) ([]string, error) {
	switch policy {
	case policyBoth:
		return []string{simulation.PolicySJF, simulation.PolicyAging}, nil
	case simulation.PolicySJF, simulation.PolicyAging:
		return []string{policy}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q: must be sjf, aging or both", policy)
	}
}

func runPolicy(ctx context.Context, logger *slog.Logger, name string, agingThreshold int, batch process.Batch) (*report.Report, error) {
	_, span := tracing.StartSpan(ctx, "simulate/"+name)

	policy, err := simulation.NewPolicy(name, agingThreshold)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}

	sim := simulation.NewSimulator(policy, simulation.WithLogger(logger))
	result, err := sim.Run(batch)
	if err != nil {
		tracing.EndSpan(span, err)
		return nil, err
	}

	rep := report.New(name, result, sim.GetStats()).WithEvents(sim.GetEvents())

	span.WithAttributes(map[string]string{
		"policy":      name,
		"run.id":      rep.RunID,
		"processes":   tracing.Int(len(result)),
		"avg.waiting": fmt.Sprintf("%.2f", rep.Summary.AvgWaiting),
	})
	for _, event := range sim.GetEventsByType(simulation.EventTypeDispatched) {
		span.AddEvent("dispatch", map[string]int{
			"pid":      event.ProcessID,
			"time":     event.Time,
			"duration": event.Duration,
			"priority": event.Priority,
		})
	}
	tracing.EndSpan(span, nil)

	logger.Info("simulation finished",
		slog.String("policy", name),
		slog.String("run_id", rep.RunID),
		slog.Int("processes", len(result)),
		slog.Float64("avg_wait", rep.Summary.AvgWaiting),
		slog.Int("makespan", rep.Stats.Makespan),
	)
	return rep, nil
}

func writeTableReport(out io.Writer, chartGen *chart.Generator, rep *report.Report, opts *options) {
	chartGen.WriteProcessTable(out, policyTitle(rep.Policy), rep.Processes)

	if opts.showGantt {
		fmt.Fprintln(out, chartGen.GenerateGanttChart(rep.Policy, rep.Events, rep.Stats.Makespan))
	}

	if opts.showSummary {
		fmt.Fprintln(out, chartGen.GenerateMetrics(rep.Summary))
		fmt.Fprintln(out, chartGen.GenerateEventSummary(rep.Events, rep.Stats))
	}

	if opts.showTimeline {
		fmt.Fprintln(out, chartGen.GenerateDetailedTimeline(rep.Events, opts.timelineLimit))
	}
}

func policyTitle(policy string) string {
	switch policy {
	case simulation.PolicySJF:
		return "Simulating Shortest Job First (SJF)"
	case simulation.PolicyAging:
		return "Simulating Priority Scheduling with Aging"
	default:
		return policy
	}
}
