// Package model defines the data structures used throughout Hooksmith.
//
// This package contains the configuration schema models shared by the
// loader, the hook repository resolver, and the runner.
//
// # Config
//
// The [Config] struct is the root of a .pre-commit-config.yaml file:
//
//	type Config struct {
//	    Repos         []Repo // Hook sources (remote URL, "local" or "meta")
//	    DefaultStages []string
//	    Files         string // Global include pattern
//	    Exclude       string // Global exclude pattern
//	    FailFast      bool
//	}
//
// # Hook
//
// The [Hook] struct describes a single hook, either as exported by a hook
// repository's manifest (.pre-commit-hooks.yaml) or as configured (and
// possibly overridden) by a consuming repository. Hooks track which keys
// were present in the source document so that configuration overrides can
// be applied on top of manifest defaults without clobbering unset fields.
package model
