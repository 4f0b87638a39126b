package repo

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hooksmith/hooksmith/internal/filter"
	"github.com/hooksmith/hooksmith/internal/model"
)

// metaManifest is the manifest of the built-in "meta" repository. The
// hooks check the configuration against the repository it lives in.
var metaManifest = model.Manifest{
	{
		ID:       model.MetaCheckHooksApply,
		Name:     "Check hooks apply to the repository",
		Entry:    model.MetaCheckHooksApply,
		Language: "system",
		Files:    `^\.pre-commit-config\.yaml$`,
	},
	{
		ID:       model.MetaCheckUselessExclude,
		Name:     "Check for useless excludes",
		Entry:    model.MetaCheckUselessExclude,
		Language: "system",
		Files:    `^\.pre-commit-config\.yaml$`,
	},
	{
		ID:       model.MetaIdentity,
		Name:     "identity",
		Entry:    model.MetaIdentity,
		Language: "system",
		Verbose:  true,
	},
}

// RunMeta executes a built-in meta hook. hooks is every resolved hook of
// the current configuration, allFiles the full tracked file list, and
// matched the files this meta hook itself matched. It returns the exit
// code and the output to display.
func RunMeta(id string, cfg *model.Config, hooks []ResolvedHook, allFiles, matched []string, classifier *filter.Classifier) (int, string) {
	switch id {
	case model.MetaIdentity:
		return 0, strings.Join(matched, "\n")
	case model.MetaCheckHooksApply:
		return checkHooksApply(cfg, hooks, allFiles, classifier)
	case model.MetaCheckUselessExclude:
		return checkUselessExcludes(cfg, hooks, allFiles)
	default:
		return 1, fmt.Sprintf("unknown meta hook %q", id)
	}
}

// checkHooksApply reports hooks that would never run because no file in
// the repository matches their filters.
func checkHooksApply(cfg *model.Config, hooks []ResolvedHook, allFiles []string, classifier *filter.Classifier) (int, string) {
	var lines []string

	for _, hook := range hooks {
		if hook.Source == model.RepoMeta || hook.AlwaysRun {
			continue
		}

		matched, err := filter.ForHook(hook.Hook, cfg, allFiles, classifier)
		if err != nil {
			return 1, err.Error()
		}

		if len(matched) == 0 {
			lines = append(lines, fmt.Sprintf("%s does not apply to this repository", hook.ID))
		}
	}

	if len(lines) > 0 {
		return 1, strings.Join(lines, "\n")
	}

	return 0, ""
}

// checkUselessExcludes reports exclude patterns that match nothing.
func checkUselessExcludes(cfg *model.Config, hooks []ResolvedHook, allFiles []string) (int, string) {
	var lines []string

	if cfg.Exclude != "" && !excludesAnything(cfg.Exclude, allFiles) {
		lines = append(lines, fmt.Sprintf("The global exclude pattern %q does not match any files", cfg.Exclude))
	}

	for _, hook := range hooks {
		if hook.Source == model.RepoMeta || hook.Exclude == "" {
			continue
		}

		if !excludesAnything(hook.Exclude, allFiles) {
			lines = append(lines, fmt.Sprintf("The exclude pattern %q for %s does not match any files", hook.Exclude, hook.ID))
		}
	}

	if len(lines) > 0 {
		return 1, strings.Join(lines, "\n")
	}

	return 0, ""
}

func excludesAnything(expr string, files []string) bool {
	re, err := regexp.Compile(expr)
	if err != nil {
		// Validation rejects broken patterns before a run gets here.
		return false
	}

	for _, f := range files {
		if re.MatchString(f) {
			return true
		}
	}

	return false
}
