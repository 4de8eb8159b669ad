package config

// Config represents the entire configuration for the scheduling simulator
type Config struct {
	ProcessCount   int   `yaml:"processCount"`
	AgingThreshold int   `yaml:"agingThreshold"`
	Seed           int64 `yaml:"seed"`

	Arrival   Range `yaml:"arrival"`
	Execution Range `yaml:"execution"`
	Priority  Range `yaml:"priority"`

	// Processes is a fixed batch. When set, no processes are generated.
	Processes []ProcessSpec `yaml:"processes,omitempty"`

	// Workloads generate arrivals from cron schedules, one tick per minute.
	Workloads    []Workload `yaml:"workloads,omitempty"`
	HorizonTicks int        `yaml:"horizonTicks"`

	Log LogConfig `yaml:"log"`
}

// Range is an inclusive integer interval for random generation
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ProcessSpec describes one process of a fixed batch
type ProcessSpec struct {
	ID            int `yaml:"id"`
	ArrivalTime   int `yaml:"arrivalTime"`
	ExecutionTime int `yaml:"executionTime"`
	Priority      int `yaml:"priority"`
}

// Workload is a recurring process arriving on a cron schedule
type Workload struct {
	Name          string `yaml:"name"`
	CronSchedule  string `yaml:"cronSchedule"`
	ExecutionTime int    `yaml:"executionTime"`
	Priority      int    `yaml:"priority"`
}

// LogConfig selects the log level and handler format
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// BatchFile is the on-disk form of a fixed batch
type BatchFile struct {
	Processes []ProcessSpec `yaml:"processes"`
}

const (
	DefaultProcessCount   = 5
	DefaultAgingThreshold = 5
	DefaultHorizonTicks   = 60
)

// Default returns the configuration of the reference run
func Default() *Config {
	return &Config{
		ProcessCount:   DefaultProcessCount,
		AgingThreshold: DefaultAgingThreshold,
		Arrival:        Range{Min: 0, Max: 10},
		Execution:      Range{Min: 1, Max: 10},
		Priority:       Range{Min: 1, Max: 5},
		HorizonTicks:   DefaultHorizonTicks,
		Log:            LogConfig{Level: "info", Format: "text"},
	}
}
