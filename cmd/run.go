package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/config"
	"github.com/hooksmith/hooksmith/internal/git"
	"github.com/hooksmith/hooksmith/internal/params"
	"github.com/hooksmith/hooksmith/internal/runner"
)

var (
	runAllFiles      bool
	runFiles         []string
	runStage         string
	runVerbose       bool
	runCommitMsgFile string
	runFromRef       string
	runToRef         string
)

var runCmd = &cobra.Command{
	Use:   "run [hook-id]",
	Short: "Run hooks against the repository",
	Long: `Run the configured hooks. Without arguments every hook of the
pre-commit stage runs against the staged files.

Examples:
  hooksmith run                    # staged files, pre-commit stage
  hooksmith run --all-files        # every tracked file
  hooksmith run ruff               # a single hook by id or alias
  hooksmith run --hook-stage manual
  hooksmith run --files custom_components/linkytic/sensor.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVarP(&runAllFiles, "all-files", "a", false, "Run on all tracked files instead of the staged ones")
	runCmd.Flags().StringSliceVar(&runFiles, "files", nil, "Run on the given files only")
	runCmd.Flags().StringVar(&runStage, "hook-stage", "", "Stage to run hooks for (default pre-commit)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print hook output even on success")
	runCmd.Flags().StringVar(&runCommitMsgFile, "commit-msg-filename", "", "Commit message file for commit-msg stages")
	runCmd.Flags().StringVar(&runFromRef, "from-ref", "", "Old revision for pre-push file selection")
	runCmd.Flags().StringVar(&runToRef, "to-ref", "", "New revision for pre-push file selection")
}

func runRun(_ *cobra.Command, args []string) error {
	opts := runner.Options{
		Stage:         runStage,
		AllFiles:      runAllFiles,
		Files:         runFiles,
		CommitMsgFile: runCommitMsgFile,
	}

	if runFromRef != "" && runToRef != "" {
		opts.PushRanges = []runner.RefRange{{From: runFromRef, To: runToRef}}
	}

	if len(args) == 1 {
		opts.HookID = args[0]
	}

	return executeRun(opts, runVerbose)
}

// errHooksFailed reports a run where at least one hook failed. The
// results are already printed, so Execute exits without another message.
var errHooksFailed = errors.New("hooks failed")

// executeRun is shared by run, hook-impl and select.
func executeRun(opts runner.Options, verbose bool) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := context.Background()

	top, err := rt.git.TopLevel(ctx)
	if err != nil {
		if git.IsNotRepository(err) {
			return fmt.Errorf("not a git repository (run %s from inside one)", params.AppName)
		}

		return err
	}

	cfg, err := config.Load(top)
	if err != nil {
		return err
	}

	printer := rt.printer(verbose)

	r := rt.runner()
	r.Reporter = printer

	results, err := r.Run(ctx, cfg, opts)
	if err != nil {
		return err
	}

	printer.Summary(results)

	if runner.AnyFailed(results) {
		return errHooksFailed
	}

	return nil
}
