package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func gitAvailable(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
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

func setupTestRepo(t *testing.T) string {
	t.Helper()
	gitAvailable(t)

	dir := t.TempDir()
	runGit(t, dir, "init", "--quiet")

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("# test\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	runGit(t, dir, "add", "README.md")
	runGit(t, dir, "commit", "--quiet", "-m", "initial")

	return dir
}

func TestIsRepository(t *testing.T) {
	gitAvailable(t)
	ctx := context.Background()

	if !NewClientForRepo(setupTestRepo(t)).IsRepository(ctx) {
		t.Error("IsRepository = false inside a repo")
	}

	if NewClientForRepo(t.TempDir()).IsRepository(ctx) {
		t.Error("IsRepository = true outside a repo")
	}
}

func TestTopLevelAndGitDir(t *testing.T) {
	repo := setupTestRepo(t)
	client := NewClientForRepo(repo)
	ctx := context.Background()

	top, err := client.TopLevel(ctx)
	if err != nil {
		t.Fatalf("TopLevel: %v", err)
	}

	gitDir, err := client.GitDir(ctx)
	if err != nil {
		t.Fatalf("GitDir: %v", err)
	}

	if filepath.Base(gitDir) != ".git" {
		t.Errorf("GitDir = %q, want a .git directory", gitDir)
	}

	if wantTop, _ := filepath.EvalSymlinks(repo); filepath.Clean(top) != wantTop {
		// macOS tempdirs live behind /private symlinks.
		if gotTop, _ := filepath.EvalSymlinks(top); gotTop != wantTop {
			t.Errorf("TopLevel = %q, want %q", top, wantTop)
		}
	}
}

func TestStagedFiles(t *testing.T) {
	repo := setupTestRepo(t)
	client := NewClientForRepo(repo)
	ctx := context.Background()

	files, err := client.StagedFiles(ctx)
	if err != nil {
		t.Fatalf("StagedFiles: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("StagedFiles = %v, want empty after commit", files)
	}

	if err := os.WriteFile(filepath.Join(repo, "parser.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, repo, "add", "parser.py")

	files, err = client.StagedFiles(ctx)
	if err != nil {
		t.Fatalf("StagedFiles: %v", err)
	}
	if len(files) != 1 || files[0] != "parser.py" {
		t.Errorf("StagedFiles = %v, want [parser.py]", files)
	}
}

func TestAllFiles(t *testing.T) {
	repo := setupTestRepo(t)

	files, err := NewClientForRepo(repo).AllFiles(context.Background())
	if err != nil {
		t.Fatalf("AllFiles: %v", err)
	}

	if len(files) != 1 || files[0] != "README.md" {
		t.Errorf("AllFiles = %v, want [README.md]", files)
	}
}

func TestHasUnstagedChanges(t *testing.T) {
	repo := setupTestRepo(t)
	client := NewClientForRepo(repo)
	ctx := context.Background()

	dirty, err := client.HasUnstagedChanges(ctx)
	if err != nil {
		t.Fatalf("HasUnstagedChanges: %v", err)
	}
	if dirty {
		t.Error("clean tree reported dirty")
	}

	if err := os.WriteFile(filepath.Join(repo, "README.md"), []byte("# changed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dirty, err = client.HasUnstagedChanges(ctx)
	if err != nil {
		t.Fatalf("HasUnstagedChanges: %v", err)
	}
	if !dirty {
		t.Error("dirty tree reported clean")
	}
}

func TestSaveAndApplyUnstagedPatch(t *testing.T) {
	repo := setupTestRepo(t)
	client := NewClientForRepo(repo)
	ctx := context.Background()

	readme := filepath.Join(repo, "README.md")
	if err := os.WriteFile(readme, []byte("# unstaged edit\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	patch := filepath.Join(t.TempDir(), "unstaged.patch")

	saved, err := client.SaveUnstagedPatch(ctx, patch)
	if err != nil {
		t.Fatalf("SaveUnstagedPatch: %v", err)
	}
	if !saved {
		t.Fatal("SaveUnstagedPatch = false with a dirty tree")
	}

	// Working tree must now match the index again.
	content, err := os.ReadFile(readme)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "# test\n" {
		t.Errorf("working tree not reverted, README.md = %q", content)
	}

	if err := client.ApplyPatch(ctx, patch); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}

	content, err = os.ReadFile(readme)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "# unstaged edit\n" {
		t.Errorf("patch not restored, README.md = %q", content)
	}
}

func TestSaveUnstagedPatch_CleanTree(t *testing.T) {
	repo := setupTestRepo(t)
	patch := filepath.Join(t.TempDir(), "unstaged.patch")

	saved, err := NewClientForRepo(repo).SaveUnstagedPatch(context.Background(), patch)
	if err != nil {
		t.Fatalf("SaveUnstagedPatch: %v", err)
	}
	if saved {
		t.Error("SaveUnstagedPatch = true with a clean tree")
	}

	if _, err := os.Stat(patch); !os.IsNotExist(err) {
		t.Error("empty patch file left behind")
	}
}

func TestHooksDir_Default(t *testing.T) {
	repo := setupTestRepo(t)

	hooks, err := NewClientForRepo(repo).HooksDir(context.Background())
	if err != nil {
		t.Fatalf("HooksDir: %v", err)
	}

	if filepath.Base(hooks) != "hooks" || !strings.Contains(hooks, ".git") {
		t.Errorf("HooksDir = %q, want .git/hooks", hooks)
	}
}

func TestHooksDir_CoreHooksPath(t *testing.T) {
	repo := setupTestRepo(t)
	custom := filepath.Join(repo, "githooks")
	runGit(t, repo, "config", "core.hooksPath", "githooks")

	hooks, err := NewClientForRepo(repo).HooksDir(context.Background())
	if err != nil {
		t.Fatalf("HooksDir: %v", err)
	}

	if filepath.Clean(hooks) != custom {
		t.Errorf("HooksDir = %q, want %q", hooks, custom)
	}
}

func TestCloneAtRev(t *testing.T) {
	src := setupTestRepo(t)
	runGit(t, src, "tag", "v1.0.0")

	if err := os.WriteFile(filepath.Join(src, "later.txt"), []byte("after the tag\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, src, "add", "later.txt")
	runGit(t, src, "commit", "--quiet", "-m", "after tag")

	target := filepath.Join(t.TempDir(), "checkout")

	if err := NewClient().CloneAtRev(context.Background(), src, "v1.0.0", target); err != nil {
		t.Fatalf("CloneAtRev: %v", err)
	}

	if _, err := os.Stat(filepath.Join(target, "README.md")); err != nil {
		t.Error("checkout missing README.md")
	}

	if _, err := os.Stat(filepath.Join(target, "later.txt")); !os.IsNotExist(err) {
		t.Error("checkout contains a file committed after the pinned tag")
	}
}

func TestCloneAtRev_BadRev(t *testing.T) {
	src := setupTestRepo(t)
	target := filepath.Join(t.TempDir(), "checkout")

	err := NewClient().CloneAtRev(context.Background(), src, "v9.9.9", target)
	if err == nil {
		t.Fatal("CloneAtRev succeeded with an unknown rev")
	}

	if !IsRefNotFound(err) {
		t.Errorf("IsRefNotFound = false for %v", err)
	}
}

func TestLsRemoteTags(t *testing.T) {
	src := setupTestRepo(t)
	runGit(t, src, "tag", "v1.0.0")
	runGit(t, src, "tag", "-a", "v1.1.0", "-m", "annotated")

	tags, err := NewClient().LsRemoteTags(context.Background(), src)
	if err != nil {
		t.Fatalf("LsRemoteTags: %v", err)
	}

	want := map[string]bool{"v1.0.0": false, "v1.1.0": false}
	for _, tag := range tags {
		if _, ok := want[tag]; !ok {
			t.Errorf("unexpected tag %q", tag)
		}
		want[tag] = true
	}
	for tag, seen := range want {
		if !seen {
			t.Errorf("missing tag %q", tag)
		}
	}
}

func TestGitError(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := NewClientForRepo(repo).output(context.Background(), "rev-parse", "no-such-rev")
	if err == nil {
		t.Fatal("expected error")
	}

	var gitErr *GitError
	if !errors.As(err, &gitErr) {
		t.Fatalf("error %T is not a *GitError", err)
	}

	if gitErr.ExitCode == 0 {
		t.Error("ExitCode = 0 for a failed command")
	}

	if !strings.Contains(gitErr.Error(), "rev-parse") {
		t.Errorf("error %q does not mention the command", gitErr)
	}
}
