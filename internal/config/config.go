// Package config loads and validates .pre-commit-config.yaml and
// .pre-commit-hooks.yaml documents.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hooksmith/hooksmith/internal/model"
)

// ErrNotFound is returned when the repository has no configuration file.
var ErrNotFound = errors.New("config file not found")

// Load reads and parses the configuration file inside dir, then validates
// it. Validation problems are returned as a single *Error.
func Load(dir string) (*model.Config, error) {
	path := filepath.Join(dir, model.ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (run `hooksmith sample-config` to create one)", ErrNotFound, path)
		}

		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", model.ConfigFileName, err)
	}

	if problems := Validate(cfg); len(problems) > 0 {
		return nil, &Error{File: path, Problems: problems}
	}

	return cfg, nil
}

// Parse decodes a configuration document. Unknown keys are rejected.
func Parse(data []byte) (*model.Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg model.Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}

		return nil, err
	}

	return &cfg, nil
}

// ParseManifest decodes a hook repository manifest. Both the bare list
// form and the legacy "hooks:" mapping form are accepted.
func ParseManifest(data []byte) (model.Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var manifest model.Manifest
	if err := dec.Decode(&manifest); err == nil {
		return manifest, nil
	}

	var wrapped struct {
		Hooks model.Manifest `yaml:"hooks"`
	}

	dec = yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&wrapped); err != nil {
		return nil, err
	}

	return wrapped.Hooks, nil
}

// LoadManifest reads and parses the manifest of a hook repository checkout.
func LoadManifest(repoDir string) (model.Manifest, error) {
	path := filepath.Join(repoDir, model.ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if problems := ValidateManifest(manifest); len(problems) > 0 {
		return nil, &Error{File: path, Problems: problems}
	}

	return manifest, nil
}

// Error aggregates every validation problem found in one document so the
// user can fix them in a single pass.
type Error struct {
	File     string
	Problems []string
}

func (e *Error) Error() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s: %d problem(s) found", e.File, len(e.Problems))
	for _, p := range e.Problems {
		fmt.Fprintf(&buf, "\n  - %s", p)
	}

	return buf.String()
}
