package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/cli"
	"github.com/hooksmith/hooksmith/internal/git"
	"github.com/hooksmith/hooksmith/internal/params"
	"github.com/hooksmith/hooksmith/internal/repo"
	"github.com/hooksmith/hooksmith/internal/runner"
	"github.com/hooksmith/hooksmith/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   params.AppName,
	Short: "A git hook manager",
	Long: `Hooksmith runs the hooks declared in a repository's
.pre-commit-config.yaml: it installs itself into the git hook scripts,
fetches hook repositories at their pinned revisions, and executes the
configured checks against the files of each commit.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line and exits non-zero on failure. Hook
// failures have already been reported hook by hook, so only setup
// errors get a message here.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errHooksFailed) {
			_, _ = fmt.Fprintf(os.Stderr, "%s: %v\n", params.AppName, err)
		}

		os.Exit(1)
	}
}

// runtime bundles what most commands need wired together.
type runtime struct {
	settings *params.Settings
	store    store.Store
	resolver *repo.Resolver
	git      *git.Client
}

func newRuntime() (*runtime, error) {
	settings, err := params.Load()
	if err != nil {
		return nil, err
	}

	if err := settings.EnsureHome(); err != nil {
		return nil, err
	}

	st, err := store.Open(settings.DBPath())
	if err != nil {
		return nil, err
	}

	return &runtime{
		settings: settings,
		store:    st,
		resolver: repo.NewResolver(settings, st),
		git:      git.NewClient(),
	}, nil
}

func (rt *runtime) close() {
	_ = rt.store.Close()
}

func (rt *runtime) runner() *runner.Runner {
	r := runner.New(rt.settings, rt.git, rt.resolver)
	r.Reporter = rt.printer(false)

	return r
}

func (rt *runtime) printer(verbose bool) *cli.Printer {
	color := rt.settings.ColorEnabled(cli.IsTTY(os.Stdout))

	return cli.NewPrinter(os.Stdout, color, verbose)
}
