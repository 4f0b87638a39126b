package config

import (
	"fmt"
	"regexp"

	"github.com/hooksmith/hooksmith/internal/identify"
	"github.com/hooksmith/hooksmith/internal/model"
)

var localLanguages = map[string]struct{}{
	"system": {},
	"script": {},
	"fail":   {},
}

// Validate checks a parsed configuration against the schema rules that
// YAML decoding alone cannot express: every regular expression compiles,
// remote repos carry a pinned rev, local hooks are complete, stage and
// type names are known. It returns every problem found, not just the
// first.
func Validate(cfg *model.Config) []string {
	var problems []string

	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	checkRegexp(report, "top-level files", cfg.Files)
	checkRegexp(report, "top-level exclude", cfg.Exclude)
	checkStages(report, "default_stages", cfg.DefaultStages)

	for _, ht := range cfg.DefaultInstallHookTypes {
		if !model.IsValidStage(ht) || ht == model.StageManual {
			report("default_install_hook_types: %q is not an installable hook type", ht)
		}
	}

	for i, repo := range cfg.Repos {
		where := fmt.Sprintf("repos[%d] (%s)", i, repo.Repo)

		if repo.Repo == "" {
			report("repos[%d]: missing repo", i)
			continue
		}

		if repo.IsRemote() && repo.Rev == "" {
			report("%s: remote repos must pin a rev", where)
		}

		if !repo.IsRemote() && repo.Rev != "" {
			report("%s: rev is only valid for remote repos", where)
		}

		if len(repo.Hooks) == 0 {
			report("%s: no hooks selected", where)
		}

		for _, hook := range repo.Hooks {
			validateHook(report, where, repo, hook)
		}
	}

	return problems
}

func validateHook(report func(string, ...any), where string, repo model.Repo, hook model.Hook) {
	if hook.ID == "" {
		report("%s: hook entry missing id", where)
		return
	}

	where = fmt.Sprintf("%s hook %q", where, hook.ID)

	checkRegexp(report, where+" files", hook.Files)
	checkRegexp(report, where+" exclude", hook.Exclude)
	checkStages(report, where+" stages", hook.Stages)
	checkTypes(report, where, hook)

	if len(hook.AdditionalDependencies) > 0 {
		report("%s: additional_dependencies is not supported; hooks run as system commands", where)
	}

	switch {
	case repo.IsLocal():
		if hook.Entry == "" {
			report("%s: local hooks must set entry", where)
		}
		if hook.Language == "" {
			report("%s: local hooks must set language", where)
		} else if _, ok := localLanguages[hook.Language]; !ok {
			report("%s: unsupported language %q (supported: system, script, fail)", where, hook.Language)
		}
	case repo.IsMeta():
		if !model.IsMetaHookID(hook.ID) {
			report("%s: unknown meta hook (known: %v)", where, model.MetaHookIDs)
		}
	}
}

// ValidateManifest checks a hook repository manifest: every entry must be
// a complete hook definition, unlike config entries which may override a
// subset of keys.
func ValidateManifest(manifest model.Manifest) []string {
	var problems []string

	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	seen := make(map[string]struct{}, len(manifest))

	for i, hook := range manifest {
		where := fmt.Sprintf("hooks[%d]", i)

		if hook.ID == "" {
			report("%s: missing id", where)
			continue
		}

		where = fmt.Sprintf("%s (%s)", where, hook.ID)

		if _, dup := seen[hook.ID]; dup {
			report("%s: duplicate id", where)
		}
		seen[hook.ID] = struct{}{}

		if hook.Name == "" {
			report("%s: missing name", where)
		}

		if hook.Entry == "" {
			report("%s: missing entry", where)
		}

		if hook.Language == "" {
			report("%s: missing language", where)
		}

		checkRegexp(report, where+" files", hook.Files)
		checkRegexp(report, where+" exclude", hook.Exclude)
		checkStages(report, where+" stages", hook.Stages)
		checkTypes(report, where, hook)
	}

	return problems
}

func checkRegexp(report func(string, ...any), where, expr string) {
	if expr == "" {
		return
	}

	if _, err := regexp.Compile(expr); err != nil {
		report("%s: invalid regular expression %q: %v", where, expr, err)
	}
}

func checkStages(report func(string, ...any), where string, stages []string) {
	for _, s := range stages {
		if !model.IsValidStage(s) {
			report("%s: unknown stage %q (known: %v)", where, s, model.Stages)
		}
	}
}

func checkTypes(report func(string, ...any), where string, hook model.Hook) {
	for _, group := range [][]string{hook.Types, hook.TypesOr, hook.ExcludeTypes} {
		for _, tag := range group {
			if !identify.KnownTag(tag) {
				report("%s: unknown file type %q", where, tag)
			}
		}
	}
}
