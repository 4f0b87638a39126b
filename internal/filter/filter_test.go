package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hooksmith/hooksmith/internal/model"
)

func hookFromYAML(t *testing.T, doc string) model.Hook {
	t.Helper()

	var h model.Hook
	require.NoError(t, yaml.Unmarshal([]byte(doc), &h))

	return h
}

func setupTree(t *testing.T, files map[string]string) (*Classifier, []string) {
	t.Helper()

	root := t.TempDir()
	var names []string

	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		names = append(names, name)
	}

	return NewClassifier(root), names
}

func TestForHook_FilesPattern(t *testing.T) {
	classifier, files := setupTree(t, map[string]string{
		"custom_components/linkytic/parser.py": "import serial\n",
		"tests/test_parser.py":                 "def test(): pass\n",
		"README.md":                            "# docs\n",
	})

	hook := hookFromYAML(t, `
id: mypy
files: ^(custom_components)/.+\.(py|pyi)$
`)

	matched, err := ForHook(hook, &model.Config{}, files, classifier)
	require.NoError(t, err)
	assert.Equal(t, []string{"custom_components/linkytic/parser.py"}, matched)
}

func TestForHook_Exclude(t *testing.T) {
	classifier, files := setupTree(t, map[string]string{
		"pkg/a.py":    "",
		"vendor/b.py": "",
	})

	hook := hookFromYAML(t, `
id: ruff
files: \.py$
exclude: ^vendor/
`)

	matched, err := ForHook(hook, &model.Config{}, files, classifier)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/a.py"}, matched)
}

func TestForHook_GlobalPatterns(t *testing.T) {
	classifier, files := setupTree(t, map[string]string{
		"src/a.py":   "",
		"src/b.md":   "",
		"build/c.py": "",
	})

	cfg := &model.Config{Files: `^src/`, Exclude: `\.md$`}
	hook := hookFromYAML(t, "id: any")

	matched, err := ForHook(hook, cfg, files, classifier)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.py"}, matched)
}

func TestForHook_Types(t *testing.T) {
	classifier, files := setupTree(t, map[string]string{
		"a.py":   "print()\n",
		"b.yaml": "x: 1\n",
		"c.md":   "# hi\n",
	})

	hook := hookFromYAML(t, "id: check\ntypes: [python]")

	matched, err := ForHook(hook, &model.Config{}, files, classifier)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py"}, matched)
}

func TestForHook_TypesOr(t *testing.T) {
	classifier, files := setupTree(t, map[string]string{
		"a.py":  "",
		"b.pyi": "",
		"c.md":  "",
	})

	hook := hookFromYAML(t, "id: ruff\ntypes_or: [python, pyi]")

	matched, err := ForHook(hook, &model.Config{}, files, classifier)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.py", "b.pyi"}, matched)
}

func TestForHook_ExcludeTypes(t *testing.T) {
	classifier, files := setupTree(t, map[string]string{
		"a.json": "{}",
		"b.yaml": "x: 1\n",
	})

	hook := hookFromYAML(t, "id: prettier\nexclude_types: [json]")

	matched, err := ForHook(hook, &model.Config{}, files, classifier)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.yaml"}, matched)
}

func TestForHook_TypesAndPatternCombine(t *testing.T) {
	classifier, files := setupTree(t, map[string]string{
		"src/a.py":  "",
		"src/a.md":  "",
		"misc/b.py": "",
	})

	hook := hookFromYAML(t, "id: ruff\nfiles: ^src/\ntypes: [python]")

	matched, err := ForHook(hook, &model.Config{}, files, classifier)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/a.py"}, matched)
}

func TestForHook_NoCandidates(t *testing.T) {
	classifier, _ := setupTree(t, nil)

	hook := hookFromYAML(t, "id: ruff\nfiles: \\.py$")

	matched, err := ForHook(hook, &model.Config{}, nil, classifier)
	require.NoError(t, err)
	assert.Empty(t, matched)
}
