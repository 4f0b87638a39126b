// Package identify tags files with the type names hook filters use in
// "types", "types_or" and "exclude_types".
//
// Tags combine what the file is (file, symlink, executable), what it
// contains (text, binary) and what its name suggests (python, yaml, ...).
package identify

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Set is a collection of type tags attached to one file.
type Set map[string]struct{}

// Has reports whether the tag is present.
func (s Set) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// HasAll reports whether every tag is present. An empty list matches.
func (s Set) HasAll(tags []string) bool {
	for _, t := range tags {
		if !s.Has(t) {
			return false
		}
	}

	return true
}

// HasAny reports whether at least one tag is present. An empty list matches.
func (s Set) HasAny(tags []string) bool {
	if len(tags) == 0 {
		return true
	}

	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}

	return false
}

// Sorted returns the tags in lexical order, mostly for display and tests.
func (s Set) Sorted() []string {
	tags := make([]string, 0, len(s))
	for t := range s {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	return tags
}

func (s Set) add(tags ...string) {
	for _, t := range tags {
		s[t] = struct{}{}
	}
}

// TagsFor inspects the file at path and returns its tags. The path must
// exist; hooks only ever filter files reported by git.
func TagsFor(path string) (Set, error) {
	tags := make(Set)

	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		tags.add("symlink")
		return tags, nil
	}

	if info.IsDir() {
		tags.add("directory")
		return tags, nil
	}

	tags.add("file")

	if info.Mode()&0o111 != 0 {
		tags.add("executable")
	} else {
		tags.add("non-executable")
	}

	tags.add(tagsByName(info.Name())...)

	isText, err := looksLikeText(path)
	if err != nil {
		return nil, err
	}

	if isText {
		tags.add("text")
	} else {
		tags.add("binary")
	}

	return tags, nil
}

func tagsByName(name string) []string {
	switch strings.ToLower(name) {
	case "dockerfile":
		return []string{"dockerfile"}
	case "makefile", "gnumakefile":
		return []string{"makefile"}
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")

	return extensionTags[ext]
}

// looksLikeText sniffs the head of the file; a NUL byte marks it binary,
// the same heuristic git uses. Empty files count as text.
func looksLikeText(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 1024)

	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false, err
	}

	return !bytes.ContainsRune(buf[:n], 0), nil
}

// KnownTag reports whether tag is produced by TagsFor for some file.
func KnownTag(tag string) bool {
	_, ok := allTags[tag]
	return ok
}

var baseTags = []string{
	"file", "directory", "symlink",
	"executable", "non-executable",
	"text", "binary",
}

var allTags = func() map[string]struct{} {
	m := make(map[string]struct{})
	for _, t := range baseTags {
		m[t] = struct{}{}
	}
	for _, tags := range extensionTags {
		for _, t := range tags {
			m[t] = struct{}{}
		}
	}
	m["dockerfile"] = struct{}{}
	m["makefile"] = struct{}{}

	return m
}()
