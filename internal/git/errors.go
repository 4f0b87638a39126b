package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// GitError carries the exit code and stderr of a failed git command.
type GitError struct {
	ExitCode int
	Stderr   string
	Args     []string
	err      error
}

func (e *GitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.err)
	}

	return fmt.Sprintf("git %s failed: %s", strings.Join(e.Args, " "), strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.err
}

// NewGitError creates a GitError from command output and error.
func NewGitError(args []string, stderr string, err error) *GitError {
	exitCode := -1

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &GitError{
		ExitCode: exitCode,
		Stderr:   stderr,
		Args:     args,
		err:      err,
	}
}

// Common error messages from git
const (
	errMsgNotRepository = "not a git repository"
	errMsgRefNotFound   = "couldn't find remote ref"
	errMsgBadRevision   = "unknown revision"
	errMsgBadPathspec   = "did not match"
)

// IsNotRepository checks if the error indicates not a git repository.
func IsNotRepository(err error) bool {
	return containsError(err, errMsgNotRepository)
}

// IsRefNotFound checks if the error indicates a ref was not found on the
// remote, typically a rev pin pointing at a deleted tag.
func IsRefNotFound(err error) bool {
	return containsError(err, errMsgRefNotFound) ||
		containsError(err, errMsgBadRevision) ||
		containsError(err, errMsgBadPathspec)
}

// containsError checks if the error contains a specific message.
func containsError(err error, msg string) bool {
	if err == nil {
		return false
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return strings.Contains(strings.ToLower(gitErr.Stderr), strings.ToLower(msg))
	}

	return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(msg))
}
