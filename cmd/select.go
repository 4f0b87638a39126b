package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/cli"
	"github.com/hooksmith/hooksmith/internal/config"
	"github.com/hooksmith/hooksmith/internal/model"
	"github.com/hooksmith/hooksmith/internal/runner"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick a hook interactively and run it",
	Long: `Open an interactive picker over the configured hooks and run the
chosen one against every tracked file.`,
	Args: cobra.NoArgs,
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

func runSelect(_ *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := context.Background()

	if !rt.git.IsRepository(ctx) {
		return fmt.Errorf("not a git repository")
	}

	top, err := rt.git.TopLevel(ctx)
	if err != nil {
		return err
	}

	cfg, err := config.Load(top)
	if err != nil {
		return err
	}

	hooks, err := rt.resolver.Resolve(ctx, cfg)
	if err != nil {
		return err
	}

	if len(hooks) == 0 {
		return fmt.Errorf("no hooks configured")
	}

	choice, err := cli.PickHook(hooks)
	if err != nil {
		return err
	}

	if choice == "" {
		return nil
	}

	return executeRun(runner.Options{
		Stage:    model.StageManual,
		HookID:   choice,
		AllFiles: true,
	}, false)
}
