package update

import (
	"fmt"
	"regexp"
	"strings"
)

// Rewriting works on the raw document text instead of re-marshalling it,
// so comments, ordering and quoting survive an update untouched.

var (
	repoLineRe = regexp.MustCompile(`^\s*-\s+repo:\s*(\S+)\s*$`)
	revLineRe  = regexp.MustCompile(`^(\s*rev:\s*)(['"]?)([^'"\s#]+)(['"]?)(\s*(?:#.*)?)$`)
)

// Apply rewrites the rev lines of the changed repos in the raw
// configuration document and returns the new document.
func Apply(raw []byte, changes []Change) ([]byte, error) {
	byRepo := make(map[string]Change, len(changes))
	for _, c := range changes {
		byRepo[c.Repo] = c
	}

	applied := make(map[string]bool, len(changes))

	lines := strings.Split(string(raw), "\n")

	var current string

	for i, line := range lines {
		if m := repoLineRe.FindStringSubmatch(line); m != nil {
			current = strings.Trim(m[1], `'"`)
			continue
		}

		m := revLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		change, ok := byRepo[current]
		if !ok {
			continue
		}

		if m[3] != change.OldRev {
			return nil, fmt.Errorf("rev for %s is %q in the document but %q was resolved", current, m[3], change.OldRev)
		}

		lines[i] = m[1] + m[2] + change.NewRev + m[4] + m[5]
		applied[current] = true
		current = ""
	}

	for _, c := range changes {
		if !applied[c.Repo] {
			return nil, fmt.Errorf("no rev line found for repo %s", c.Repo)
		}
	}

	return []byte(strings.Join(lines, "\n")), nil
}
