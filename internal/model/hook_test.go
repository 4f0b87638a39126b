package model

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func decodeHook(t *testing.T, doc string) Hook {
	t.Helper()

	var h Hook
	if err := yaml.Unmarshal([]byte(doc), &h); err != nil {
		t.Fatalf("failed to decode hook: %v", err)
	}

	return h
}

func TestHook_Unmarshal(t *testing.T) {
	h := decodeHook(t, `
id: ruff
args: [--fix]
files: \.py$
exclude: ^vendor/
require_serial: true
`)

	if h.ID != "ruff" {
		t.Errorf("ID = %q, want %q", h.ID, "ruff")
	}

	if len(h.Args) != 1 || h.Args[0] != "--fix" {
		t.Errorf("Args = %v, want [--fix]", h.Args)
	}

	if !h.RequireSerial {
		t.Error("RequireSerial = false, want true")
	}

	if !h.Has("files") || h.Has("types") {
		t.Errorf("key tracking wrong: files=%v types=%v", h.Has("files"), h.Has("types"))
	}
}

func TestHook_UnmarshalUnknownKey(t *testing.T) {
	var h Hook

	err := yaml.Unmarshal([]byte("id: ruff\nflies: \\.py$\n"), &h)
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}

	if !strings.Contains(err.Error(), `"flies"`) {
		t.Errorf("error %q does not name the unknown key", err)
	}
}

func TestHook_FilenamesPassed(t *testing.T) {
	if got := decodeHook(t, "id: a").FilenamesPassed(); !got {
		t.Error("default FilenamesPassed = false, want true")
	}

	if got := decodeHook(t, "id: a\npass_filenames: false").FilenamesPassed(); got {
		t.Error("explicit pass_filenames: false ignored")
	}
}

func TestHook_StagesFor(t *testing.T) {
	h := decodeHook(t, "id: a")

	if got := h.StagesFor([]string{StagePrePush}); len(got) != 1 || got[0] != StagePrePush {
		t.Errorf("StagesFor(defaults) = %v, want [pre-push]", got)
	}

	if got := h.StagesFor(nil); len(got) != len(Stages) {
		t.Errorf("StagesFor(nil) = %v, want all stages", got)
	}

	h = decodeHook(t, "id: a\nstages: [commit-msg]")
	if got := h.StagesFor([]string{StagePrePush}); len(got) != 1 || got[0] != StageCommitMsg {
		t.Errorf("explicit stages not honored, got %v", got)
	}
}

func TestMerge(t *testing.T) {
	base := decodeHook(t, `
id: prettier
name: prettier
entry: prettier --write
language: system
files: \.(md|json|yaml)$
pass_filenames: true
`)
	override := decodeHook(t, `
id: prettier
args: [--no-editorconfig]
exclude: ^custom_components/manifest\.json$
`)

	merged := Merge(base, override)

	if merged.Entry != "prettier --write" {
		t.Errorf("Entry = %q, manifest value lost", merged.Entry)
	}

	if len(merged.Args) != 1 || merged.Args[0] != "--no-editorconfig" {
		t.Errorf("Args = %v, override not applied", merged.Args)
	}

	if merged.Exclude != `^custom_components/manifest\.json$` {
		t.Errorf("Exclude = %q, override not applied", merged.Exclude)
	}

	if !merged.Has("exclude") || !merged.Has("entry") {
		t.Error("merged key tracking lost keys")
	}
}

func TestMerge_FalseOverride(t *testing.T) {
	base := decodeHook(t, "id: a\nalways_run: true")
	override := decodeHook(t, "id: a\nalways_run: false")

	if merged := Merge(base, override); merged.AlwaysRun {
		t.Error("explicit false override did not win over base true")
	}
}

func TestRepo_Kinds(t *testing.T) {
	tests := []struct {
		repo   string
		local  bool
		meta   bool
		remote bool
	}{
		{RepoLocal, true, false, false},
		{RepoMeta, false, true, false},
		{"https://github.com/astral-sh/ruff-pre-commit", false, false, true},
	}

	for _, tt := range tests {
		r := Repo{Repo: tt.repo}
		if r.IsLocal() != tt.local || r.IsMeta() != tt.meta || r.IsRemote() != tt.remote {
			t.Errorf("Repo %q: local=%v meta=%v remote=%v", tt.repo, r.IsLocal(), r.IsMeta(), r.IsRemote())
		}
	}
}
