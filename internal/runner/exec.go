package runner

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hooksmith/hooksmith/internal/repo"
)

// maxBatchBytes caps the bytes of filename arguments per invocation,
// well below any ARG_MAX we run on.
const maxBatchBytes = 32 << 10

// partition splits files into at most workers batches whose argument
// bytes stay under maxBytes, preserving order. Serial hooks get a single
// batch regardless.
func partition(files []string, workers, maxBytes int) [][]string {
	if len(files) == 0 {
		return nil
	}

	if workers < 1 {
		workers = 1
	}

	total := 0
	for _, f := range files {
		total += len(f) + 1
	}

	// Spread the files evenly across workers, then respect the hard
	// byte cap per batch.
	target := total/workers + 1
	if target > maxBytes {
		target = maxBytes
	}

	var (
		batches [][]string
		current []string
		size    int
	)

	for _, f := range files {
		if len(current) > 0 && size+len(f)+1 > target {
			batches = append(batches, current)
			current = nil
			size = 0
		}

		current = append(current, f)
		size += len(f) + 1
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}

// hookCommand builds the argv for one invocation. The entry is split on
// whitespace; hooks needing shell features wrap themselves in sh -c.
func hookCommand(hook repo.ResolvedHook, batch []string) []string {
	argv := strings.Fields(hook.Entry)

	if hook.Language == "script" && len(argv) > 0 && hook.RepoDir != "" {
		argv[0] = filepath.Join(hook.RepoDir, argv[0])
	}

	argv = append(argv, hook.Args...)
	argv = append(argv, batch...)

	return argv
}

// invocation is the outcome of one batch.
type invocation struct {
	exitCode int
	output   string
}

// runBatches executes the hook once per batch, at most workers at a
// time, and merges the outcomes. The reported exit code is the highest
// seen, matching the commit-blocking contract.
func runBatches(ctx context.Context, hook repo.ResolvedHook, batches [][]string, dir string, workers int) invocation {
	if hook.RequireSerial || workers < 1 {
		workers = 1
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		merged  invocation
		outputs = make([]string, len(batches))
	)

	sem := make(chan struct{}, workers)

	for i, batch := range batches {
		wg.Add(1)

		go func(i int, batch []string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			code, out := runOne(ctx, hook, batch, dir)

			mu.Lock()
			outputs[i] = out
			if code > merged.exitCode {
				merged.exitCode = code
			}
			mu.Unlock()
		}(i, batch)
	}

	wg.Wait()

	var sb strings.Builder
	for _, out := range outputs {
		if out != "" {
			sb.WriteString(out)
			if !strings.HasSuffix(out, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	merged.output = strings.TrimRight(sb.String(), "\n")

	return merged
}

// runOne executes a single hook invocation.
func runOne(ctx context.Context, hook repo.ResolvedHook, batch []string, dir string) (int, string) {
	argv := hookCommand(hook, batch)
	if len(argv) == 0 {
		return 1, "hook has an empty entry"
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOOKSMITH=1")

	out, err := cmd.CombinedOutput()
	if err == nil {
		return 0, string(out)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), string(out)
	}

	// The command could not start at all (entry not on PATH, not
	// executable). Surface that as the hook output.
	return 1, strings.TrimSpace(string(out) + "\n" + err.Error())
}
