package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sherine-k/schedsim/pkg/config"
	"github.com/sherine-k/schedsim/pkg/report"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeBatch(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	content := `processes:
  - {id: 1, arrivalTime: 0, executionTime: 4, priority: 3}
  - {id: 2, arrivalTime: 1, executionTime: 1, priority: 5}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRoot_TableOutput(t *testing.T) {
	out, _, err := execute(t, "--seed", "7", "--timeline")
	require.NoError(t, err)

	assert.Contains(t, out, "Generated Processes")
	assert.Contains(t, out, "Simulating Shortest Job First (SJF)")
	assert.Contains(t, out, "Regenerated Processes")
	assert.Contains(t, out, "Simulating Priority Scheduling with Aging")
	assert.Contains(t, out, "Gantt Chart (sjf)")
	assert.Contains(t, out, "Metrics (aging)")
	assert.Contains(t, out, "Detailed Timeline")
}

func TestRoot_JSONWithFixedBatch(t *testing.T) {
	out, _, err := execute(t, "--batch", writeBatch(t), "--aging-threshold", "1", "--output", "json")
	require.NoError(t, err)

	var reports []report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, "sjf", reports[0].Policy)
	assert.Equal(t, "aging", reports[1].Policy)
	assert.Empty(t, reports[1].Events)

	b, ok := reports[1].Processes.Find(2)
	require.True(t, ok)
	assert.Equal(t, [4]int{4, 5, 3, 4}, [4]int{b.StartTime, b.EndTime, b.WaitingTime, b.Priority})
}

func TestRoot_SinglePolicyYAML(t *testing.T) {
	out, _, err := execute(t, "--policy", "sjf", "--seed", "3", "--count", "6", "--output", "yaml", "--timeline")
	require.NoError(t, err)

	var reports []report.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Len(t, reports[0].Processes, 6)
	assert.NotEmpty(t, reports[0].Events)
}

func TestRoot_SameBatch(t *testing.T) {
	out, _, err := execute(t, "--seed", "11", "--same-batch", "--output", "json")
	require.NoError(t, err)

	var reports []report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	arrivals := func(r report.Report) map[int]int {
		m := map[int]int{}
		for _, p := range r.Processes {
			m[p.ID] = p.ArrivalTime
		}
		return m
	}
	assert.Equal(t, arrivals(reports[0]), arrivals(reports[1]))
}

func TestRoot_ConfigFileAndDebugLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("processCount: 3\nseed: 5\nlog:\n  level: debug\n  format: json\n"), 0o644))

	out, logs, err := execute(t, "--config", path, "--policy", "aging", "--output", "json")
	require.NoError(t, err)

	var reports []report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	assert.Len(t, reports[0].Processes, 3)
	assert.Contains(t, logs, `"msg":"process dispatched"`)
	assert.Contains(t, logs, `"msg":"simulation finished"`)
}

func TestRoot_TraceFile(t *testing.T) {
	traceFile := filepath.Join(t.TempDir(), "trace.json")
	_, _, err := execute(t, "--batch", writeBatch(t), "--output", "json", "--trace-file", traceFile)
	require.NoError(t, err)

	data, err := os.ReadFile(traceFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "simulate/sjf")
	assert.Contains(t, string(data), "simulate/aging")
}

func TestRoot_Errors(t *testing.T) {
	cases := map[string]struct {
		args    []string
		message string
	}{
		"unknown policy":     {[]string{"--policy", "fifo"}, `unknown policy "fifo"`},
		"bad output":         {[]string{"--output", "xml"}, `unsupported output format "xml"`},
		"negative threshold": {[]string{"--aging-threshold=-2"}, "agingThreshold must not be negative"},
		"zero count":         {[]string{"--count", "0"}, "processCount must be greater than 0"},
		"missing config":     {[]string{"--config", "/nonexistent/config.yaml"}, "failed to load configuration"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, c.args...)
			assert.ErrorContains(t, err, c.message)
		})
	}
}

func TestGenerate_RoundTripsThroughBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.yaml")
	_, _, err := execute(t, "generate", "--count", "4", "--seed", "21", "--file", path)
	require.NoError(t, err)

	specs, err := config.LoadBatch(path)
	require.NoError(t, err)
	assert.Len(t, specs, 4)

	stdout, _, err := execute(t, "generate", "--count", "4", "--seed", "21")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(data), stdout)

	_, _, err = execute(t, "--batch", path, "--output", "json")
	assert.NoError(t, err)
}
