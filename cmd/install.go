package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hooksmith/hooksmith/internal/config"
	"github.com/hooksmith/hooksmith/internal/git"
	"github.com/hooksmith/hooksmith/internal/model"
	"github.com/hooksmith/hooksmith/internal/params"
)

// scriptMarker identifies hook scripts Hooksmith wrote, so uninstall
// never touches scripts belonging to the user or another tool.
const scriptMarker = "# generated by " + params.AppName

// legacySuffix is appended to a pre-existing foreign hook script, which
// keeps running before the Hooksmith one.
const legacySuffix = ".legacy"

var installHookTypes []string

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install hook scripts into the repository",
	Long: `Write Hooksmith hook scripts into the repository's hook directory.

By default the hook types from default_install_hook_types are installed,
falling back to pre-commit. Pre-existing hook scripts from other tools
are preserved as <hook>.legacy and keep running first.

Examples:
  hooksmith install
  hooksmith install --hook-type pre-commit --hook-type pre-push`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringSliceVarP(&installHookTypes, "hook-type", "t", nil, "Hook type to install (repeatable)")
}

func runInstall(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	client := git.NewClient()
	if !client.IsRepository(ctx) {
		return fmt.Errorf("not a git repository")
	}

	hookTypes, err := resolveHookTypes(ctx, client)
	if err != nil {
		return err
	}

	hooksDir, err := client.HooksDir(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return err
	}

	// Hook scripts run with whatever PATH git gives them, so they must
	// name this binary by its absolute path.
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("cannot locate the %s binary: %w", params.AppName, err)
	}

	for _, hookType := range hookTypes {
		path := filepath.Join(hooksDir, hookType)

		if err := preserveLegacy(path); err != nil {
			return err
		}

		if err := os.WriteFile(path, []byte(hookScript(hookType, exe)), 0o755); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s installed at %s\n", params.AppName, path)
	}

	return nil
}

// resolveHookTypes picks the hook types to install: the --hook-type
// flags, then default_install_hook_types, then pre-commit.
func resolveHookTypes(ctx context.Context, client *git.Client) ([]string, error) {
	hookTypes := installHookTypes

	if len(hookTypes) == 0 {
		if top, err := client.TopLevel(ctx); err == nil {
			if cfg, err := config.Load(top); err == nil {
				hookTypes = cfg.DefaultInstallHookTypes
			}
		}
	}

	if len(hookTypes) == 0 {
		hookTypes = []string{model.StagePreCommit}
	}

	for _, hookType := range hookTypes {
		if !isInstallable(hookType) {
			return nil, fmt.Errorf("%q is not an installable hook type (one of: %s)",
				hookType, strings.Join(model.InstallableHookTypes, ", "))
		}
	}

	return hookTypes, nil
}

func isInstallable(hookType string) bool {
	for _, t := range model.InstallableHookTypes {
		if t == hookType {
			return true
		}
	}

	return false
}

// preserveLegacy moves a foreign hook script out of the way. Scripts
// Hooksmith wrote itself are simply overwritten.
func preserveLegacy(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	if strings.Contains(string(data), scriptMarker) {
		return nil
	}

	return os.Rename(path, path+legacySuffix)
}

// hookScript renders the shell script git invokes for one hook type.
// The script chains to a preserved legacy hook before handing over to
// the binary that wrote it.
func hookScript(hookType, exe string) string {
	var sb strings.Builder

	sb.WriteString("#!/usr/bin/env sh\n")
	sb.WriteString(scriptMarker + "\n")
	sb.WriteString(`HERE="$(cd "$(dirname "$0")" && pwd)"` + "\n")
	sb.WriteString(fmt.Sprintf(`if [ -x "$HERE/%s%s" ]; then
  "$HERE/%s%s" "$@" || exit $?
fi
`, hookType, legacySuffix, hookType, legacySuffix))
	sb.WriteString(fmt.Sprintf(`exec "%s" hook-impl --hook-type=%s -- "$@"`+"\n", exe, hookType))

	return sb.String()
}
