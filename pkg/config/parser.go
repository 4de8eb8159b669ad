package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sherine-k/schedsim/pkg/process"
)

// LoadConfig loads and parses the configuration file on top of Default
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate configuration
	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadBatch loads a fixed batch of processes from a YAML file
func LoadBatch(filename string) ([]ProcessSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch BatchFile
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	if len(batch.Processes) == 0 {
		return nil, fmt.Errorf("invalid batch file: at least one process must be defined")
	}
	if err := validateProcesses(batch.Processes); err != nil {
		return nil, fmt.Errorf("invalid batch file: %w", err)
	}

	return batch.Processes, nil
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config.AgingThreshold < 0 {
		return fmt.Errorf("agingThreshold must not be negative")
	}

	if len(config.Processes) > 0 {
		return validateProcesses(config.Processes)
	}

	if len(config.Workloads) > 0 {
		return validateWorkloads(config)
	}

	if config.ProcessCount <= 0 {
		return fmt.Errorf("processCount must be greater than 0")
	}

	if config.Arrival.Min < 0 {
		return fmt.Errorf("arrival.min must not be negative")
	}

	if config.Execution.Min < 1 {
		return fmt.Errorf("execution.min must be at least 1")
	}

	if config.Priority.Min < 1 {
		return fmt.Errorf("priority.min must be at least 1")
	}

	for name, r := range map[string]Range{"arrival": config.Arrival, "execution": config.Execution, "priority": config.Priority} {
		if r.Min > r.Max {
			return fmt.Errorf("%s.min must not exceed %s.max", name, name)
		}
	}

	return nil
}

func validateProcesses(specs []ProcessSpec) error {
	batch := make(process.Batch, 0, len(specs))
	for i, spec := range specs {
		p, err := process.New(spec.ID, spec.ArrivalTime, spec.ExecutionTime, spec.Priority)
		if err != nil {
			return fmt.Errorf("process %d: %w", i, err)
		}
		batch = append(batch, p)
	}
	return batch.Validate()
}

func validateWorkloads(config *Config) error {
	if config.HorizonTicks <= 0 {
		return fmt.Errorf("horizonTicks must be greater than 0")
	}

	for i, w := range config.Workloads {
		if w.Name == "" {
			return fmt.Errorf("workload %d: name is required", i)
		}

		if w.CronSchedule == "" {
			return fmt.Errorf("workload %s: cronSchedule is required", w.Name)
		}

		if w.ExecutionTime <= 0 {
			return fmt.Errorf("workload %s: executionTime must be greater than 0", w.Name)
		}

		if w.Priority < 1 {
			return fmt.Errorf("workload %s: priority must be at least 1", w.Name)
		}
	}

	return nil
}
