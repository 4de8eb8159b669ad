package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sherine-k/schedsim/pkg/config"
	"github.com/sherine-k/schedsim/pkg/workload"
)

func newGenerateCommand() *cobra.Command {
	var (
		count      int
		seed       int64
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random batch file",
		Long: `Generate a random batch of processes and write it as YAML.

The file can be passed back with --batch to replay the exact same batch
under every policy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be greater than 0")
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			defaults := config.Default()
			batch, err := workload.NewRandom(seed, count, defaults.Arrival, defaults.Execution, defaults.Priority).Next()
			if err != nil {
				return fmt.Errorf("failed to generate processes: %w", err)
			}

			data, err := yaml.Marshal(config.BatchFile{Processes: workload.Specs(batch)})
			if err != nil {
				return fmt.Errorf("failed to encode batch: %w", err)
			}

			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write batch file: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", config.DefaultProcessCount, "Number of processes to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 uses the current time)")
	cmd.Flags().StringVarP(&outputFile, "file", "f", "", "Write the batch to this file instead of stdout")

	return cmd
}
