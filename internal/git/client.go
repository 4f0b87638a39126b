// Package git wraps the git binary for the operations Hooksmith needs:
// repository discovery, staged-file listing, hook repo checkouts and the
// unstaged-change patch dance around a run.
package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Client runs git commands against one repository.
type Client struct {
	RepoDir string // Repository directory; empty means the process cwd
	GitPath string // Path to git executable
}

// NewClient creates a client for the current directory.
func NewClient() *Client {
	gitPath, _ := exec.LookPath("git")

	return &Client{GitPath: gitPath}
}

// NewClientForRepo creates a client for a specific repository.
func NewClientForRepo(repoDir string) *Client {
	c := NewClient()
	c.RepoDir = repoDir

	return c
}

// Command creates a git command without running it.
func (c *Client) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)

	if c.RepoDir != "" {
		cmd.Dir = c.RepoDir
	}

	// Hook repo fetches must never hang on a credential prompt.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	return cmd
}

// output runs a git command and returns its trimmed stdout, wrapping
// failures in a GitError carrying stderr.
func (c *Client) output(ctx context.Context, args ...string) (string, error) {
	cmd := c.Command(ctx, args...)

	out, err := cmd.Output()
	if err != nil {
		return "", NewGitError(args, stderrOf(err), err)
	}

	return strings.TrimSpace(string(out)), nil
}

// run runs a git command discarding output, wrapping failures in a GitError.
func (c *Client) run(ctx context.Context, args ...string) error {
	cmd := c.Command(ctx, args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return NewGitError(args, string(out), err)
	}

	return nil
}

func stderrOf(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(exitErr.Stderr)
	}

	return ""
}

// IsRepository checks if the client's directory is inside a git repository.
func (c *Client) IsRepository(ctx context.Context) bool {
	return c.Command(ctx, "rev-parse", "--git-dir").Run() == nil
}

// TopLevel returns the repository's working tree root.
func (c *Client) TopLevel(ctx context.Context) (string, error) {
	return c.output(ctx, "rev-parse", "--show-toplevel")
}

// GitDir returns the absolute path of the .git directory.
func (c *Client) GitDir(ctx context.Context) (string, error) {
	return c.output(ctx, "rev-parse", "--absolute-git-dir")
}

// StagedFiles lists files staged for commit. Deleted files are excluded;
// hooks cannot run against paths that no longer exist.
func (c *Client) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := c.zOutput(ctx, "diff", "--staged", "--name-only", "--diff-filter=ACMRTUXB", "-z")
	if err != nil {
		return nil, err
	}

	return out, nil
}

// AllFiles lists every file tracked by git.
func (c *Client) AllFiles(ctx context.Context) ([]string, error) {
	return c.zOutput(ctx, "ls-files", "-z")
}

// ChangedFiles lists files that differ between two revisions, used for
// pre-push runs.
func (c *Client) ChangedFiles(ctx context.Context, from, to string) ([]string, error) {
	return c.zOutput(ctx, "diff", "--name-only", "--diff-filter=ACMRTUXB", "-z", from+"..."+to)
}

// zOutput runs a git command producing NUL-separated paths.
func (c *Client) zOutput(ctx context.Context, args ...string) ([]string, error) {
	cmd := c.Command(ctx, args...)

	out, err := cmd.Output()
	if err != nil {
		return nil, NewGitError(args, stderrOf(err), err)
	}

	var files []string
	for _, f := range strings.Split(string(out), "\x00") {
		if f != "" {
			files = append(files, f)
		}
	}

	return files, nil
}

// HasUnstagedChanges reports whether the working tree differs from the index.
func (c *Client) HasUnstagedChanges(ctx context.Context) (bool, error) {
	err := c.Command(ctx, "diff", "--quiet", "--ignore-submodules").Run()
	if err == nil {
		return false, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}

	return false, NewGitError([]string{"diff", "--quiet"}, stderrOf(err), err)
}

// SaveUnstagedPatch writes the unstaged diff to patchPath and reverts the
// working tree to the index, so hooks see exactly what will be committed.
// It returns false when there was nothing to save.
func (c *Client) SaveUnstagedPatch(ctx context.Context, patchPath string) (bool, error) {
	args := []string{
		"diff", "--no-color", "--no-ext-diff", "--ignore-submodules",
		"--binary", "--output=" + patchPath,
	}

	if err := c.run(ctx, args...); err != nil {
		return false, err
	}

	info, err := os.Stat(patchPath)
	if err != nil {
		return false, err
	}

	if info.Size() == 0 {
		_ = os.Remove(patchPath)
		return false, nil
	}

	if err := c.run(ctx, "checkout", "--", "."); err != nil {
		return false, err
	}

	return true, nil
}

// ApplyPatch restores a patch saved by SaveUnstagedPatch.
func (c *Client) ApplyPatch(ctx context.Context, patchPath string) error {
	return c.run(ctx, "apply", "--whitespace=nowarn", patchPath)
}

// CloneAtRev clones a hook repository and checks out its pinned revision.
func (c *Client) CloneAtRev(ctx context.Context, cloneURL, rev, targetPath string) error {
	if err := c.run(ctx, "clone", "--quiet", cloneURL, targetPath); err != nil {
		return err
	}

	checkout := NewClientForRepo(targetPath)
	checkout.GitPath = c.GitPath

	return checkout.run(ctx, "checkout", "--quiet", rev)
}

// LsRemoteTags lists the tag names a remote repository advertises.
func (c *Client) LsRemoteTags(ctx context.Context, remoteURL string) ([]string, error) {
	out, err := c.output(ctx, "ls-remote", "--tags", remoteURL)
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, line := range strings.Split(out, "\n") {
		_, ref, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}

		// Annotated tags appear twice, once dereferenced as "tag^{}".
		if strings.HasSuffix(ref, "^{}") {
			continue
		}

		if tag := strings.TrimPrefix(ref, "refs/tags/"); tag != ref {
			tags = append(tags, tag)
		}
	}

	return tags, nil
}

// HeadRev resolves HEAD to a commit SHA.
func (c *Client) HeadRev(ctx context.Context) (string, error) {
	return c.output(ctx, "rev-parse", "HEAD")
}

