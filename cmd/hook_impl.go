package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/model"
	"github.com/hooksmith/hooksmith/internal/runner"
)

var hookImplType string

// zeroRev is what git reports for a ref that does not exist yet.
const zeroRev = "0000000000000000000000000000000000000000"

var hookImplCmd = &cobra.Command{
	Use:    "hook-impl -- [args from git]",
	Short:  "Entry point for installed hook scripts",
	Hidden: true,
	RunE:   runHookImpl,
}

func init() {
	rootCmd.AddCommand(hookImplCmd)
	hookImplCmd.Flags().StringVar(&hookImplType, "hook-type", model.StagePreCommit, "Hook type being executed")
}

func runHookImpl(_ *cobra.Command, args []string) error {
	opts := runner.Options{Stage: hookImplType}

	switch hookImplType {
	case model.StageCommitMsg, model.StagePrepareCommitMsg:
		if len(args) > 0 {
			opts.CommitMsgFile = args[0]
		}

	case model.StagePrePush:
		opts.PushRanges, opts.AllFiles = prePushRanges(os.Stdin)
		if len(opts.PushRanges) == 0 && !opts.AllFiles {
			// Nothing is being pushed.
			return nil
		}
	}

	return executeRun(opts, false)
}

// prePushRanges reads the ref lines git writes to the hook's stdin:
// "<local ref> <local sha> <remote ref> <remote sha>" per pushed ref.
// Every pushed ref contributes a range. A remote sha of all zeros means
// a brand new ref, which is checked against every tracked file instead.
func prePushRanges(in *os.File) (ranges []runner.RefRange, allFiles bool) {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 4 {
			continue
		}

		localSha, remoteSha := fields[1], fields[3]
		if localSha == zeroRev {
			// Deleting a remote ref; nothing to check.
			continue
		}

		if remoteSha == zeroRev {
			return nil, true
		}

		ranges = append(ranges, runner.RefRange{From: remoteSha, To: localSha})
	}

	return ranges, false
}
