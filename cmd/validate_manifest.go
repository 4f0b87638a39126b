package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/config"
	"github.com/hooksmith/hooksmith/internal/model"
)

var validateManifestCmd = &cobra.Command{
	Use:   "validate-manifest [file...]",
	Short: "Validate hook repository manifests",
	Long: `Check .pre-commit-hooks.yaml documents: every exported hook needs
an id, name, entry and language, and ids must be unique.

Examples:
  hooksmith validate-manifest
  hooksmith validate-manifest path/to/.pre-commit-hooks.yaml`,
	RunE: runValidateManifest,
}

func init() {
	rootCmd.AddCommand(validateManifestCmd)
}

func runValidateManifest(_ *cobra.Command, args []string) error {
	files := args
	if len(files) == 0 {
		files = []string{model.ManifestFileName}
	}

	failed := false

	for _, file := range files {
		if err := validateManifestFile(file); err != nil {
			failed = true

			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	if failed {
		os.Exit(1)
	}

	return nil
}

func validateManifestFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	manifest, err := config.ParseManifest(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if problems := config.ValidateManifest(manifest); len(problems) > 0 {
		return &config.Error{File: path, Problems: problems}
	}

	return nil
}
