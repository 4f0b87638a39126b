package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached hook repository",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

var gcOlderThan time.Duration

var gcCmd = &cobra.Command{
	Use:   "gc",
	Short: "Remove cached hook repositories that have not been used recently",
	Long: `Remove checkouts whose last use is older than the cutoff. Checkouts
still referenced by recent runs are kept.

Examples:
  hooksmith gc
  hooksmith gc --older-than 168h`,
	Args: cobra.NoArgs,
	RunE: runGC,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(gcCmd)
	gcCmd.Flags().DurationVar(&gcOlderThan, "older-than", 30*24*time.Hour, "Remove checkouts unused for this long")
}

func runClean(_ *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	if err := rt.resolver.Clean(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "cleaned %s\n", rt.settings.ReposDir())

	return nil
}

func runGC(_ *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	removed, err := rt.resolver.GC(time.Now().Add(-gcOlderThan))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "removed %d checkout(s)\n", removed)

	return nil
}
