package giturl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"https", "https://github.com/astral-sh/ruff-pre-commit", "github.com/astral-sh/ruff-pre-commit"},
		{"https with .git", "https://github.com/astral-sh/ruff-pre-commit.git", "github.com/astral-sh/ruff-pre-commit"},
		{"trailing slash", "https://github.com/astral-sh/ruff-pre-commit/", "github.com/astral-sh/ruff-pre-commit"},
		{"scp-like", "git@github.com:astral-sh/ruff-pre-commit.git", "github.com/astral-sh/ruff-pre-commit"},
		{"ssh", "ssh://git@github.com/astral-sh/ruff-pre-commit", "github.com/astral-sh/ruff-pre-commit"},
		{"git+https", "git+https://github.com/astral-sh/ruff-pre-commit", "github.com/astral-sh/ruff-pre-commit"},
		{"upper host", "https://GitHub.com/Astral-sh/ruff-pre-commit", "github.com/Astral-sh/ruff-pre-commit"},
		{"other forge", "https://gitlab.com/group/sub/hooks", "gitlab.com/group/sub/hooks"},
		{"filesystem", "/srv/git/hooks.git", "srv/git/hooks"},
		{"file scheme", "file:///srv/git/hooks", "srv/git/hooks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonical_Equivalence(t *testing.T) {
	a, err := Canonical("git@github.com:psf/black.git")
	require.NoError(t, err)

	b, err := Canonical("https://github.com/psf/black")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCanonical_Invalid(t *testing.T) {
	for _, input := range []string{"", "https://", "local"} {
		_, err := Canonical(input)
		assert.Error(t, err, input)
	}
}

func TestOwnerRepo(t *testing.T) {
	owner, repo, err := OwnerRepo("https://github.com/codespell-project/codespell")
	require.NoError(t, err)
	assert.Equal(t, "codespell-project", owner)
	assert.Equal(t, "codespell", repo)

	_, _, err = OwnerRepo("https://gitlab.com/group/sub/hooks")
	assert.Error(t, err)
}

func TestIsGitHub(t *testing.T) {
	assert.True(t, IsGitHub("https://github.com/psf/black"))
	assert.True(t, IsGitHub("git@github.com:psf/black.git"))
	assert.False(t, IsGitHub("https://gitlab.com/group/hooks"))
	assert.False(t, IsGitHub("not a url"))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://github.com/psf/black"))
	assert.True(t, IsURL("git@github.com:psf/black.git"))
	assert.False(t, IsURL("local"))
	assert.False(t, IsURL("meta"))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "github.com-psf-black", Slug("github.com/psf/black"))
}
