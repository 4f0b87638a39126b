package params

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOOKSMITH_HOME", "")
	t.Setenv("HOOKSMITH_MAX_WORKERS", "")
	t.Setenv("HOOKSMITH_COLOR", "")
	t.Setenv("SKIP", "")

	s, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, s.Home)
	assert.Greater(t, s.MaxWorkers, 0)
	assert.Equal(t, "auto", s.Color)
	assert.Empty(t, s.SkipSet())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOOKSMITH_HOME", "/tmp/hscache")
	t.Setenv("HOOKSMITH_MAX_WORKERS", "3")
	t.Setenv("HOOKSMITH_COLOR", "never")
	t.Setenv("SKIP", "ruff,mypy")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/hscache", s.Home)
	assert.Equal(t, 3, s.MaxWorkers)
	assert.Equal(t, filepath.Join("/tmp/hscache", "repos"), s.ReposDir())
	assert.Equal(t, filepath.Join("/tmp/hscache", "hooksmith.db"), s.DBPath())

	skip := s.SkipSet()
	assert.Contains(t, skip, "ruff")
	assert.Contains(t, skip, "mypy")
	assert.Len(t, skip, 2)
}

func TestLoad_BadColor(t *testing.T) {
	t.Setenv("HOOKSMITH_COLOR", "sometimes")

	_, err := Load()
	assert.Error(t, err)
}

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		name    string
		color   string
		noColor bool
		isTTY   bool
		want    bool
	}{
		{"auto tty", "auto", false, true, true},
		{"auto pipe", "auto", false, false, false},
		{"always pipe", "always", false, false, true},
		{"never tty", "never", false, true, false},
		{"no_color wins", "always", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settings{Color: tt.color, NoColor: tt.noColor}
			assert.Equal(t, tt.want, s.ColorEnabled(tt.isTTY))
		})
	}
}

func TestEnsureHome(t *testing.T) {
	s := &Settings{Home: filepath.Join(t.TempDir(), "home")}
	require.NoError(t, s.EnsureHome())

	for _, dir := range []string{s.Home, s.ReposDir(), s.PatchDir()} {
		assert.DirExists(t, dir)
	}
}
