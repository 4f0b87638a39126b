package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/git"
	"github.com/hooksmith/hooksmith/internal/model"
	"github.com/hooksmith/hooksmith/internal/params"
)

var uninstallHookTypes []string

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove Hooksmith hook scripts from the repository",
	Long: `Remove the hook scripts Hooksmith installed. Scripts written by
anything else are left alone, and preserved .legacy hooks are restored.

Examples:
  hooksmith uninstall
  hooksmith uninstall --hook-type pre-push`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
	uninstallCmd.Flags().StringSliceVarP(&uninstallHookTypes, "hook-type", "t", nil, "Hook type to uninstall (repeatable)")
}

func runUninstall(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	client := git.NewClient()
	if !client.IsRepository(ctx) {
		return fmt.Errorf("not a git repository")
	}

	hooksDir, err := client.HooksDir(ctx)
	if err != nil {
		return err
	}

	hookTypes := uninstallHookTypes
	if len(hookTypes) == 0 {
		hookTypes = model.InstallableHookTypes
	}

	for _, hookType := range hookTypes {
		path := filepath.Join(hooksDir, hookType)

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}

			return err
		}

		if !strings.Contains(string(data), scriptMarker) {
			continue
		}

		if err := os.Remove(path); err != nil {
			return err
		}

		// Put a preserved foreign hook back in place.
		legacy := path + legacySuffix
		if _, err := os.Stat(legacy); err == nil {
			if err := os.Rename(legacy, path); err != nil {
				return err
			}
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s uninstalled from %s\n", params.AppName, path)
	}

	return nil
}
