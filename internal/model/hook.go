package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Hook describes a single hook. The same struct is used for manifest
// entries (.pre-commit-hooks.yaml) and for configuration entries, where
// only "id" is required and any other key overrides the manifest value.
type Hook struct {
	// ID identifies the hook within its repository.
	ID string `yaml:"id"`

	// Alias lets the command line address this hook instance by another
	// name, useful when the same id appears twice with different args.
	Alias string `yaml:"alias,omitempty"`

	// Name is shown while the hook runs.
	Name string `yaml:"name,omitempty"`

	// Entry is the command to execute. Required for local hooks.
	Entry string `yaml:"entry,omitempty"`

	// Language tells Hooksmith how to resolve the entry: "system" for
	// commands on PATH, "script" for scripts inside the hook repository,
	// "fail" for hooks that print their entry and fail when files match.
	Language string `yaml:"language,omitempty"`

	// Description is informational only.
	Description string `yaml:"description,omitempty"`

	// Args are appended to the entry before the filenames.
	Args []string `yaml:"args,omitempty"`

	// Files is a regular expression filtering candidate filenames.
	Files string `yaml:"files,omitempty"`

	// Exclude is a regular expression removing candidate filenames.
	Exclude string `yaml:"exclude,omitempty"`

	// Types narrows candidates to files carrying every listed tag.
	Types []string `yaml:"types,omitempty"`

	// TypesOr narrows candidates to files carrying at least one tag.
	TypesOr []string `yaml:"types_or,omitempty"`

	// ExcludeTypes removes files carrying any of the listed tags.
	ExcludeTypes []string `yaml:"exclude_types,omitempty"`

	// Stages limits which hook types this hook runs for.
	Stages []string `yaml:"stages,omitempty"`

	// AlwaysRun runs the hook even when no files match.
	AlwaysRun bool `yaml:"always_run,omitempty"`

	// PassFilenames controls whether matched filenames are appended to
	// the command. Defaults to true; use FilenamesPassed to read it.
	PassFilenames bool `yaml:"pass_filenames,omitempty"`

	// RequireSerial forces a single invocation on a single worker.
	RequireSerial bool `yaml:"require_serial,omitempty"`

	// FailFast aborts the whole run when this hook fails.
	FailFast bool `yaml:"fail_fast,omitempty"`

	// Verbose prints the hook output even on success.
	Verbose bool `yaml:"verbose,omitempty"`

	// AdditionalDependencies is accepted for schema compatibility but
	// rejected by validation: Hooksmith does not build language
	// environments.
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`

	set map[string]struct{} `yaml:"-"`
}

var hookKeys = map[string]struct{}{
	"id":                      {},
	"alias":                   {},
	"name":                    {},
	"entry":                   {},
	"language":                {},
	"description":             {},
	"args":                    {},
	"files":                   {},
	"exclude":                 {},
	"types":                   {},
	"types_or":                {},
	"exclude_types":           {},
	"stages":                  {},
	"always_run":              {},
	"pass_filenames":          {},
	"require_serial":          {},
	"fail_fast":               {},
	"verbose":                 {},
	"additional_dependencies": {},
}

// UnmarshalYAML decodes a hook entry, rejecting unknown keys and
// remembering which keys were present so overrides merge correctly.
func (h *Hook) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: hook entry must be a mapping", node.Line)
	}

	type plain Hook
	if err := node.Decode((*plain)(h)); err != nil {
		return err
	}

	h.set = make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, ok := hookKeys[key]; !ok {
			return fmt.Errorf("line %d: unknown key %q in hook entry", node.Content[i].Line, key)
		}
		h.set[key] = struct{}{}
	}

	return nil
}

// Has reports whether the key was present in the source document.
func (h Hook) Has(key string) bool {
	_, ok := h.set[key]
	return ok
}

// FilenamesPassed reports whether matched filenames should be appended to
// the hook command. True unless pass_filenames was explicitly disabled.
func (h Hook) FilenamesPassed() bool {
	if h.Has("pass_filenames") {
		return h.PassFilenames
	}

	return true
}

// StagesFor returns the stages this hook runs in, falling back to the
// configuration's default_stages and finally to every stage.
func (h Hook) StagesFor(defaults []string) []string {
	if len(h.Stages) > 0 {
		return h.Stages
	}
	if len(defaults) > 0 {
		return defaults
	}

	return Stages
}

// DisplayName returns the name to print for the hook, falling back to the id.
func (h Hook) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}

	return h.ID
}

// Merge overlays the configuration entry override onto the manifest entry
// base. Only keys present in the override's source document are applied.
func Merge(base, override Hook) Hook {
	merged := base

	if merged.set == nil {
		merged.set = make(map[string]struct{})
	} else {
		clone := make(map[string]struct{}, len(merged.set)+len(override.set))
		for k := range merged.set {
			clone[k] = struct{}{}
		}
		merged.set = clone
	}

	for key := range override.set {
		switch key {
		case "id":
			merged.ID = override.ID
		case "alias":
			merged.Alias = override.Alias
		case "name":
			merged.Name = override.Name
		case "entry":
			merged.Entry = override.Entry
		case "language":
			merged.Language = override.Language
		case "description":
			merged.Description = override.Description
		case "args":
			merged.Args = override.Args
		case "files":
			merged.Files = override.Files
		case "exclude":
			merged.Exclude = override.Exclude
		case "types":
			merged.Types = override.Types
		case "types_or":
			merged.TypesOr = override.TypesOr
		case "exclude_types":
			merged.ExcludeTypes = override.ExcludeTypes
		case "stages":
			merged.Stages = override.Stages
		case "always_run":
			merged.AlwaysRun = override.AlwaysRun
		case "pass_filenames":
			merged.PassFilenames = override.PassFilenames
		case "require_serial":
			merged.RequireSerial = override.RequireSerial
		case "fail_fast":
			merged.FailFast = override.FailFast
		case "verbose":
			merged.Verbose = override.Verbose
		case "additional_dependencies":
			merged.AdditionalDependencies = override.AdditionalDependencies
		}
		merged.set[key] = struct{}{}
	}

	return merged
}
