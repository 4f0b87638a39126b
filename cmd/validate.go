package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/config"
	"github.com/hooksmith/hooksmith/internal/model"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Validate configuration files",
	Long: `Check .pre-commit-config.yaml documents for schema and semantic
problems: malformed YAML, unknown keys, invalid regular expressions,
unknown stages or types, and local hooks missing entry or language.
Every problem in a file is reported, not just the first.

Examples:
  hooksmith validate
  hooksmith validate ci/.pre-commit-config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		files = []string{model.ConfigFileName}
	}

	failed := false

	for _, file := range files {
		if err := validateConfigFile(file); err != nil {
			failed = true

			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	if failed {
		os.Exit(1)
	}

	return nil
}

func validateConfigFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cfg, err := config.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if problems := config.Validate(cfg); len(problems) > 0 {
		return &config.Error{File: path, Problems: problems}
	}

	return nil
}
