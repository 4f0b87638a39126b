package model

const (
	// ConfigFileName is the configuration file read from the repository root.
	ConfigFileName = ".pre-commit-config.yaml"

	// ManifestFileName is the hook manifest exported by a hook repository.
	ManifestFileName = ".pre-commit-hooks.yaml"
)

// Special values for the "repo" key of a [Repo] entry.
const (
	// RepoLocal marks a repo whose hooks are defined inline in the
	// configuration and run from the consuming repository itself.
	RepoLocal = "local"

	// RepoMeta marks the built-in hooks that check the configuration
	// against the repository it lives in.
	RepoMeta = "meta"
)

// Config is the root of a .pre-commit-config.yaml document.
type Config struct {
	// Repos lists the hook sources in the order their hooks run.
	Repos []Repo `yaml:"repos"`

	// DefaultInstallHookTypes selects which hook scripts "install"
	// writes when no --hook-type flag is given. Defaults to pre-commit.
	DefaultInstallHookTypes []string `yaml:"default_install_hook_types,omitempty"`

	// DefaultStages applies to hooks that do not set "stages" themselves.
	DefaultStages []string `yaml:"default_stages,omitempty"`

	// Files is a global include pattern ANDed with each hook's own.
	Files string `yaml:"files,omitempty"`

	// Exclude is a global exclude pattern ORed with each hook's own.
	Exclude string `yaml:"exclude,omitempty"`

	// FailFast stops the run after the first failing hook.
	FailFast bool `yaml:"fail_fast,omitempty"`
}

// Repo is one entry of the "repos" list.
type Repo struct {
	// Repo is the clone URL of a hook repository, or "local" or "meta".
	Repo string `yaml:"repo"`

	// Rev is the pinned revision (tag or commit SHA) for remote repos.
	Rev string `yaml:"rev,omitempty"`

	// Hooks selects and optionally overrides hooks from the repo.
	Hooks []Hook `yaml:"hooks"`
}

// IsLocal reports whether the entry defines inline hooks.
func (r Repo) IsLocal() bool { return r.Repo == RepoLocal }

// IsMeta reports whether the entry refers to the built-in meta hooks.
func (r Repo) IsMeta() bool { return r.Repo == RepoMeta }

// IsRemote reports whether the entry points at a hook repository that
// must be fetched at its pinned revision.
func (r Repo) IsRemote() bool { return !r.IsLocal() && !r.IsMeta() }
