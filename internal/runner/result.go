package runner

import (
	"time"

	"github.com/hooksmith/hooksmith/internal/repo"
)

// Status is the outcome of one hook.
type Status int

const (
	// StatusPassed means every invocation exited zero and no files were
	// modified.
	StatusPassed Status = iota

	// StatusFailed means a non-zero exit or files modified by the hook.
	// A failed hook blocks the commit.
	StatusFailed

	// StatusSkipped means the hook did not run: no matching files, a
	// stage mismatch resolved earlier, or SKIP in the environment.
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "Passed"
	case StatusFailed:
		return "Failed"
	case StatusSkipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// Result records one hook's outcome.
type Result struct {
	Hook     repo.ResolvedHook
	Status   Status
	Reason   string // for skips: "no files to check", "skipped via SKIP"
	ExitCode int
	Output   string
	Files    int // number of files the hook ran against
	Duration time.Duration
}

// Failed reports whether this result blocks the commit.
func (r Result) Failed() bool {
	return r.Status == StatusFailed
}

// Reporter receives results as hooks finish, so output streams while
// later hooks still run.
type Reporter interface {
	StartHook(hook repo.ResolvedHook, files int)
	FinishHook(res Result)
}

type nopReporter struct{}

func (nopReporter) StartHook(repo.ResolvedHook, int) {}
func (nopReporter) FinishHook(Result)                {}
