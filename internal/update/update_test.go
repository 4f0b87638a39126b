package update

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hooksmith/hooksmith/internal/config"
	"github.com/hooksmith/hooksmith/internal/git"
)

func TestLatestTag(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
		ok   bool
	}{
		{"simple", []string{"v1.0.0", "v1.2.0", "v1.1.0"}, "v1.2.0", true},
		{"without v prefix", []string{"1.0.0", "2.0.0"}, "2.0.0", true},
		{"stable beats newer prerelease", []string{"v1.0.0", "v2.0.0-rc1"}, "v1.0.0", true},
		{"prerelease only", []string{"v2.0.0-rc1", "v2.0.0-rc2"}, "v2.0.0-rc2", true},
		{"junk ignored", []string{"latest", "stable", "v0.3.1"}, "v0.3.1", true},
		{"no versions", []string{"latest", "tip"}, "", false},
		{"empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := latestTag(tt.tags)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	doc := []byte(`# project hooks
repos:
  - repo: https://github.com/astral-sh/ruff-pre-commit
    rev: v0.1.0  # pinned
    hooks:
      - id: ruff
  - repo: https://github.com/codespell-project/codespell
    rev: "v2.2.0"
    hooks:
      - id: codespell
  - repo: local
    hooks:
      - id: mypy
        name: mypy
        entry: mypy
        language: system
`)

	changes := []Change{
		{Repo: "https://github.com/astral-sh/ruff-pre-commit", OldRev: "v0.1.0", NewRev: "v0.6.3"},
		{Repo: "https://github.com/codespell-project/codespell", OldRev: "v2.2.0", NewRev: "v2.3.0"},
	}

	out, err := Apply(doc, changes)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "rev: v0.6.3  # pinned", "comment and spacing survive")
	assert.Contains(t, s, `rev: "v2.3.0"`, "quoting survives")
	assert.Contains(t, s, "# project hooks", "header comment survives")
	assert.NotContains(t, s, "v0.1.0")
}

func TestApply_RevMismatch(t *testing.T) {
	doc := []byte(`repos:
  - repo: https://github.com/psf/black
    rev: v23.0.0
    hooks: [{id: black}]
`)

	_, err := Apply(doc, []Change{{Repo: "https://github.com/psf/black", OldRev: "v22.0.0", NewRev: "v24.0.0"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "v23.0.0")
}

func TestApply_MissingRevLine(t *testing.T) {
	doc := []byte(`repos:
  - repo: local
    hooks: [{id: x, name: x, entry: x, language: system}]
`)

	_, err := Apply(doc, []Change{{Repo: "https://github.com/psf/black", OldRev: "v1", NewRev: "v2"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no rev line")
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

func setupTaggedRepo(t *testing.T, tags ...string) string {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	runGit(t, dir, "init", "--quiet")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme"), []byte("hi\n"), 0o644))
	runGit(t, dir, "add", "readme")
	runGit(t, dir, "commit", "--quiet", "-m", "initial")

	for _, tag := range tags {
		runGit(t, dir, "tag", tag)
	}

	return dir
}

func TestLatestRev_LsRemote(t *testing.T) {
	dir := setupTaggedRepo(t, "v1.0.0", "v1.4.0", "v1.2.0", "experimental")

	u := New(git.NewClient(), "")

	rev, err := u.LatestRev(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "v1.4.0", rev)
}

func TestLatestRev_NoTags(t *testing.T) {
	dir := setupTaggedRepo(t)

	u := New(git.NewClient(), "")

	_, err := u.LatestRev(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no version tags")
}

func TestPlan(t *testing.T) {
	dir := setupTaggedRepo(t, "v1.0.0", "v2.0.0")

	cfg, err := config.Parse([]byte(`repos:
  - repo: ` + dir + `
    rev: v1.0.0
    hooks: [{id: anything}]
  - repo: local
    hooks:
      - id: mypy
        name: mypy
        entry: mypy
        language: system
`))
	require.NoError(t, err)

	u := New(git.NewClient(), "")

	changes, err := u.Plan(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, "v1.0.0", changes[0].OldRev)
	assert.Equal(t, "v2.0.0", changes[0].NewRev)
}

func TestPlan_AlreadyCurrent(t *testing.T) {
	dir := setupTaggedRepo(t, "v1.0.0")

	cfg, err := config.Parse([]byte(`repos:
  - repo: ` + dir + `
    rev: v1.0.0
    hooks: [{id: anything}]
`))
	require.NoError(t, err)

	u := New(git.NewClient(), "")

	changes, err := u.Plan(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, changes)
}
