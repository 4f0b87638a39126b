package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/config"
)

var sampleConfigCmd = &cobra.Command{
	Use:   "sample-config",
	Short: "Print a starter configuration",
	Long: `Print a starter .pre-commit-config.yaml to stdout:

  hooksmith sample-config > .pre-commit-config.yaml`,
	Args: cobra.NoArgs,
	RunE: runSampleConfig,
}

func init() {
	rootCmd.AddCommand(sampleConfigCmd)
}

func runSampleConfig(_ *cobra.Command, _ []string) error {
	_, _ = fmt.Fprint(os.Stdout, config.Sample)

	return nil
}
