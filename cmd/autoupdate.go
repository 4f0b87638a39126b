package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/config"
	"github.com/hooksmith/hooksmith/internal/git"
	"github.com/hooksmith/hooksmith/internal/model"
	"github.com/hooksmith/hooksmith/internal/update"
)

var autoupdateDryRun bool

var autoupdateCmd = &cobra.Command{
	Use:   "autoupdate",
	Short: "Move hook repository pins to their newest tags",
	Long: `Look up the newest tag of every remote hook repository and rewrite
the rev lines of .pre-commit-config.yaml. Comments, ordering and
quoting in the file are preserved. GitHub repositories are queried over
the API (set GITHUB_TOKEN to raise the rate limit); anything else is
asked via git ls-remote.

Examples:
  hooksmith autoupdate
  hooksmith autoupdate --dry-run`,
	Args: cobra.NoArgs,
	RunE: runAutoupdate,
}

func init() {
	rootCmd.AddCommand(autoupdateCmd)
	autoupdateCmd.Flags().BoolVarP(&autoupdateDryRun, "dry-run", "n", false, "Show what would change without rewriting the file")
}

func runAutoupdate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	client := git.NewClient()
	if !client.IsRepository(ctx) {
		return fmt.Errorf("not a git repository")
	}

	top, err := client.TopLevel(ctx)
	if err != nil {
		return err
	}

	path := filepath.Join(top, model.ConfigFileName)

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	cfg, err := config.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", model.ConfigFileName, err)
	}

	updater := update.New(client, os.Getenv("GITHUB_TOKEN"))

	changes, err := updater.Plan(ctx, cfg)
	if err != nil {
		return err
	}

	if len(changes) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "all repositories are up to date")
		return nil
	}

	for _, c := range changes {
		_, _ = fmt.Fprintf(os.Stdout, "%s: %s -> %s\n", c.Repo, c.OldRev, c.NewRev)
	}

	if autoupdateDryRun {
		return nil
	}

	rewritten, err := update.Apply(raw, changes)
	if err != nil {
		return err
	}

	return os.WriteFile(path, rewritten, 0o644)
}
