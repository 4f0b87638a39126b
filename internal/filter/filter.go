// Package filter computes which candidate files a hook runs against,
// combining the global and per-hook regular expressions with the type
// tags from the identify package.
package filter

import (
	"path/filepath"
	"regexp"
	"sync"

	"github.com/hooksmith/hooksmith/internal/identify"
	"github.com/hooksmith/hooksmith/internal/model"
)

// Classifier caches identify lookups for files below one repository root.
// A run classifies the same file once no matter how many hooks filter it.
type Classifier struct {
	root  string
	cache map[string]identify.Set
}

// NewClassifier creates a classifier for files relative to root.
func NewClassifier(root string) *Classifier {
	return &Classifier{
		root:  root,
		cache: make(map[string]identify.Set),
	}
}

// Tags returns the type tags for a repository-relative path.
func (c *Classifier) Tags(file string) (identify.Set, error) {
	if tags, ok := c.cache[file]; ok {
		return tags, nil
	}

	tags, err := identify.TagsFor(filepath.Join(c.root, file))
	if err != nil {
		return nil, err
	}

	c.cache[file] = tags

	return tags, nil
}

// compiled regexes per pattern; hooks frequently share patterns.
var (
	patternMu    sync.Mutex
	patternCache = map[string]*regexp.Regexp{}
)

func pattern(expr string) (*regexp.Regexp, error) {
	patternMu.Lock()
	defer patternMu.Unlock()

	if re, ok := patternCache[expr]; ok {
		return re, nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	patternCache[expr] = re

	return re, nil
}

// ForHook filters files down to the ones the hook applies to. Validation
// has already checked the patterns, so compile errors only occur when a
// caller skips it.
func ForHook(hook model.Hook, cfg *model.Config, files []string, classifier *Classifier) ([]string, error) {
	var matched []string

	for _, file := range files {
		ok, err := matches(hook, cfg, file, classifier)
		if err != nil {
			return nil, err
		}

		if ok {
			matched = append(matched, file)
		}
	}

	return matched, nil
}

func matches(hook model.Hook, cfg *model.Config, file string, classifier *Classifier) (bool, error) {
	include := func(expr string) (bool, error) {
		if expr == "" {
			return true, nil
		}

		re, err := pattern(expr)
		if err != nil {
			return false, err
		}

		return re.MatchString(file), nil
	}

	for _, expr := range []string{cfg.Files, hook.Files} {
		ok, err := include(expr)
		if err != nil || !ok {
			return false, err
		}
	}

	for _, expr := range []string{cfg.Exclude, hook.Exclude} {
		if expr == "" {
			continue
		}

		re, err := pattern(expr)
		if err != nil {
			return false, err
		}

		if re.MatchString(file) {
			return false, nil
		}
	}

	if len(hook.Types) == 0 && len(hook.TypesOr) == 0 && len(hook.ExcludeTypes) == 0 {
		return true, nil
	}

	tags, err := classifier.Tags(file)
	if err != nil {
		return false, err
	}

	if !tags.HasAll(hook.Types) {
		return false, nil
	}

	if !tags.HasAny(hook.TypesOr) {
		return false, nil
	}

	for _, tag := range hook.ExcludeTypes {
		if tags.Has(tag) {
			return false, nil
		}
	}

	return true, nil
}
