package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/config"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "List the configured hooks",
	Long: `Resolve the configuration and list every hook with its source
repository, stages and file filter. Remote hook repositories are
fetched if they are not cached yet.`,
	Args: cobra.NoArgs,
	RunE: runHooks,
}

func init() {
	rootCmd.AddCommand(hooksCmd)
}

func runHooks(_ *cobra.Command, _ []string) error {
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

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSOURCE\tSTAGES\tFILES")

	for _, h := range hooks {
		files := h.Files
		if files == "" {
			files = "-"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			h.ID, h.Source, strings.Join(h.StagesFor(cfg.DefaultStages), ","), files)
	}

	return w.Flush()
}
