// Package runner executes the hooks of a configuration against the
// files of one git repository, stage by stage, and reports per-hook
// results.
package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hooksmith/hooksmith/internal/filter"
	"github.com/hooksmith/hooksmith/internal/git"
	"github.com/hooksmith/hooksmith/internal/model"
	"github.com/hooksmith/hooksmith/internal/params"
	"github.com/hooksmith/hooksmith/internal/repo"
)

// Options selects what a run covers.
type Options struct {
	// Stage is the hook type being run. Defaults to "pre-commit".
	Stage string

	// HookID restricts the run to hooks whose id or alias matches.
	HookID string

	// AllFiles runs against every tracked file instead of the staged set.
	AllFiles bool

	// Files runs against an explicit file list, as given on the command
	// line. Takes precedence over AllFiles.
	Files []string

	// CommitMsgFile is the message file path for the commit-msg and
	// prepare-commit-msg stages.
	CommitMsgFile string

	// PushRanges delimit what is being pushed, one range per pushed
	// ref. Pre-push runs check the union of their changed files.
	PushRanges []RefRange
}

// RefRange is the old..new span of one pushed ref.
type RefRange struct {
	From string
	To   string
}

// Runner executes resolved hooks inside one repository.
type Runner struct {
	Settings *params.Settings
	Git      *git.Client
	Resolver *repo.Resolver
	Reporter Reporter
}

// New creates a runner for the repository the git client points at.
func New(settings *params.Settings, gitClient *git.Client, resolver *repo.Resolver) *Runner {
	return &Runner{
		Settings: settings,
		Git:      gitClient,
		Resolver: resolver,
		Reporter: nopReporter{},
	}
}

// Run executes every hook the options select and returns their results.
// The returned error covers setup failures only; hook failures are
// reported through the results.
func (r *Runner) Run(ctx context.Context, cfg *model.Config, opts Options) ([]Result, error) {
	if opts.Stage == "" {
		opts.Stage = model.StagePreCommit
	}

	if !model.IsValidStage(opts.Stage) {
		return nil, fmt.Errorf("unknown hook stage %q", opts.Stage)
	}

	top, err := r.Git.TopLevel(ctx)
	if err != nil {
		return nil, err
	}

	resolved, err := r.Resolver.Resolve(ctx, cfg)
	if err != nil {
		return nil, err
	}

	selected, err := selectHooks(resolved, cfg, opts)
	if err != nil {
		return nil, err
	}

	if len(selected) == 0 {
		return nil, nil
	}

	candidates, err := r.candidateFiles(ctx, opts)
	if err != nil {
		return nil, err
	}

	restore, err := r.stashUnstaged(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer restore()

	classifier := filter.NewClassifier(top)

	// Meta hooks inspect every tracked file, not just the candidates.
	var allFiles []string
	for _, hook := range selected {
		if hook.Source == model.RepoMeta {
			allFiles, err = r.Git.AllFiles(ctx)
			if err != nil {
				return nil, err
			}

			break
		}
	}

	skip := r.Settings.SkipSet()

	var results []Result

	for _, hook := range selected {
		res := r.runHook(ctx, cfg, hook, resolved, top, candidates, allFiles, classifier, skip)
		results = append(results, res)

		if res.Failed() && (cfg.FailFast || hook.FailFast) {
			break
		}
	}

	return results, nil
}

// selectHooks filters the resolved hooks down to the requested stage and,
// when set, a single id or alias.
func selectHooks(hooks []repo.ResolvedHook, cfg *model.Config, opts Options) ([]repo.ResolvedHook, error) {
	var selected []repo.ResolvedHook

	for _, hook := range hooks {
		if opts.HookID != "" && hook.ID != opts.HookID && hook.Alias != opts.HookID {
			continue
		}

		if !stageApplies(hook.StagesFor(cfg.DefaultStages), opts.Stage) {
			continue
		}

		selected = append(selected, hook)
	}

	if opts.HookID != "" && len(selected) == 0 {
		return nil, fmt.Errorf("no hook with id or alias %q runs in stage %s", opts.HookID, opts.Stage)
	}

	return selected, nil
}

func stageApplies(stages []string, stage string) bool {
	for _, s := range stages {
		if s == stage {
			return true
		}
	}

	return false
}

// candidateFiles computes the file set the stage runs against.
func (r *Runner) candidateFiles(ctx context.Context, opts Options) ([]string, error) {
	if len(opts.Files) > 0 {
		return opts.Files, nil
	}

	if opts.AllFiles {
		return r.Git.AllFiles(ctx)
	}

	switch opts.Stage {
	case model.StageCommitMsg, model.StagePrepareCommitMsg:
		if opts.CommitMsgFile == "" {
			return nil, fmt.Errorf("stage %s requires a commit message file", opts.Stage)
		}

		return []string{opts.CommitMsgFile}, nil

	case model.StagePrePush:
		if len(opts.PushRanges) == 0 {
			return r.Git.AllFiles(ctx)
		}

		seen := make(map[string]struct{})

		var files []string

		for _, rng := range opts.PushRanges {
			changed, err := r.Git.ChangedFiles(ctx, rng.From, rng.To)
			if err != nil {
				return nil, err
			}

			for _, f := range changed {
				if _, dup := seen[f]; dup {
					continue
				}

				seen[f] = struct{}{}
				files = append(files, f)
			}
		}

		return files, nil

	case model.StagePostCheckout, model.StagePostCommit, model.StagePostMerge, model.StagePostRewrite:
		// Post hooks observe an event, not a file set.
		return nil, nil

	default:
		return r.Git.StagedFiles(ctx)
	}
}

// stashUnstaged saves unstaged changes out of the way for staged-file
// stages, so hooks check exactly what will be committed. The returned
// function restores them.
func (r *Runner) stashUnstaged(ctx context.Context, opts Options) (func(), error) {
	nop := func() {}

	switch opts.Stage {
	case model.StagePreCommit, model.StagePreMergeCommit:
	default:
		return nop, nil
	}

	if opts.AllFiles || len(opts.Files) > 0 {
		return nop, nil
	}

	if err := r.Settings.EnsureHome(); err != nil {
		return nop, err
	}

	patch := filepath.Join(r.Settings.PatchDir(),
		fmt.Sprintf("%s-%s.patch", time.Now().UTC().Format("20060102-150405"), uuid.New().String()[:8]))

	saved, err := r.Git.SaveUnstagedPatch(ctx, patch)
	if err != nil {
		return nop, err
	}

	if !saved {
		return nop, nil
	}

	return func() {
		if err := r.Git.ApplyPatch(ctx, patch); err != nil {
			// Leave the patch on disk so nothing is lost.
			_, _ = fmt.Fprintf(os.Stderr, "failed to restore unstaged changes, patch kept at %s: %v\n", patch, err)
			return
		}

		_ = os.Remove(patch)
	}, nil
}

// runHook executes one hook against the candidate files.
func (r *Runner) runHook(ctx context.Context, cfg *model.Config, hook repo.ResolvedHook,
	resolved []repo.ResolvedHook, top string, candidates, allFiles []string,
	classifier *filter.Classifier, skip map[string]struct{}) Result {
	res := Result{Hook: hook}

	_, skipID := skip[hook.ID]
	_, skipAlias := skip[hook.Alias]

	if skipID || (hook.Alias != "" && skipAlias) {
		res.Status = StatusSkipped
		res.Reason = "skipped via SKIP"

		r.Reporter.StartHook(hook, 0)
		r.Reporter.FinishHook(res)

		return res
	}

	matched, err := filter.ForHook(hook.Hook, cfg, candidates, classifier)
	if err != nil {
		res.Status = StatusFailed
		res.ExitCode = 1
		res.Output = err.Error()

		r.Reporter.StartHook(hook, 0)
		r.Reporter.FinishHook(res)

		return res
	}

	if len(matched) == 0 && !hook.AlwaysRun {
		res.Status = StatusSkipped
		res.Reason = "no files to check"

		r.Reporter.StartHook(hook, 0)
		r.Reporter.FinishHook(res)

		return res
	}

	res.Files = len(matched)
	r.Reporter.StartHook(hook, res.Files)

	start := time.Now()

	switch {
	case hook.Source == model.RepoMeta:
		code, out := repo.RunMeta(hook.ID, cfg, resolved, allFiles, matched, classifier)
		res.ExitCode = code
		res.Output = out

	case hook.Language == "fail":
		res.ExitCode = 1
		res.Output = failOutput(hook, matched)

	default:
		res.ExitCode, res.Output = r.execute(ctx, hook, top, matched)
	}

	res.Duration = time.Since(start)

	if res.ExitCode != 0 {
		res.Status = StatusFailed
	}

	r.Reporter.FinishHook(res)

	return res
}

// execute runs a system or script hook from the working tree root,
// parallelizing across file batches, and flags hooks that modify the
// working tree. Candidate files are named relative to the root, so the
// hook must run there even when the process sits in a subdirectory.
func (r *Runner) execute(ctx context.Context, hook repo.ResolvedHook, top string, matched []string) (int, string) {
	before, beforeErr := r.treeState(ctx)

	var batches [][]string
	if hook.FilenamesPassed() {
		workers := r.Settings.MaxWorkers
		if hook.RequireSerial {
			workers = 1
		}

		batches = partition(matched, workers, maxBatchBytes)
	}

	if len(batches) == 0 {
		batches = [][]string{nil}
	}

	inv := runBatches(ctx, hook, batches, top, r.Settings.MaxWorkers)

	if inv.exitCode == 0 && beforeErr == nil {
		if after, err := r.treeState(ctx); err == nil && after != before {
			inv.exitCode = 1
			if inv.output != "" {
				inv.output += "\n"
			}
			inv.output += "files were modified by this hook"
		}
	}

	return inv.exitCode, inv.output
}

// treeState fingerprints the difference between working tree and index,
// so hooks that rewrite files are caught even when they exit zero.
func (r *Runner) treeState(ctx context.Context) (string, error) {
	out, err := r.Git.Command(ctx, "diff", "--no-ext-diff", "--ignore-submodules").Output()
	if err != nil {
		return "", err
	}

	return string(out), nil
}

func failOutput(hook repo.ResolvedHook, files []string) string {
	out := hook.Entry
	for _, f := range files {
		out += "\n" + f
	}

	return out
}

// AnyFailed reports whether at least one result blocks the commit.
func AnyFailed(results []Result) bool {
	for _, res := range results {
		if res.Failed() {
			return true
		}
	}

	return false
}
