// Package params resolves Hooksmith's runtime environment: the cache
// directory layout and tuning knobs read from environment variables.
package params

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// AppName is the application name used for directories and identification.
const AppName = "hooksmith"

// Settings holds everything Hooksmith reads from the environment.
type Settings struct {
	// Home is the cache root. Cloned hook repositories and the checkout
	// database live under it. Defaults to <user cache dir>/hooksmith.
	Home string `env:"HOOKSMITH_HOME"`

	// MaxWorkers caps the number of parallel hook invocations.
	// Defaults to the number of CPUs.
	MaxWorkers int `env:"HOOKSMITH_MAX_WORKERS"`

	// Color selects colored output: "auto", "always" or "never".
	Color string `env:"HOOKSMITH_COLOR" envDefault:"auto"`

	// NoColor disables colored output regardless of Color (NO_COLOR=1).
	NoColor bool `env:"NO_COLOR"`

	// Skip lists hook ids to skip, comma separated (SKIP=ruff,mypy).
	Skip []string `env:"SKIP"`
}

// Load reads the settings from the environment and fills in defaults.
func Load() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if s.Home == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate cache directory: %w", err)
		}
		s.Home = filepath.Join(base, AppName)
	}

	if s.MaxWorkers <= 0 {
		s.MaxWorkers = runtime.NumCPU()
	}

	switch s.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("HOOKSMITH_COLOR must be auto, always or never, got %q", s.Color)
	}

	return &s, nil
}

// ReposDir is where hook repository checkouts are cloned.
func (s *Settings) ReposDir() string {
	return filepath.Join(s.Home, "repos")
}

// DBPath is the checkout database location.
func (s *Settings) DBPath() string {
	return filepath.Join(s.Home, "hooksmith.db")
}

// PatchDir is where unstaged-change patches are saved during runs.
func (s *Settings) PatchDir() string {
	return filepath.Join(s.Home, "patches")
}

// EnsureHome creates the cache directory tree.
func (s *Settings) EnsureHome() error {
	for _, dir := range []string{s.Home, s.ReposDir(), s.PatchDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return nil
}

// SkipSet returns the hooks to skip as a lookup set.
func (s *Settings) SkipSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Skip))
	for _, id := range s.Skip {
		if id != "" {
			set[id] = struct{}{}
		}
	}

	return set
}

// ColorEnabled decides whether output should be colored for a terminal
// whose TTY status is isTTY.
func (s *Settings) ColorEnabled(isTTY bool) bool {
	if s.NoColor {
		return false
	}

	switch s.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTTY
	}
}
